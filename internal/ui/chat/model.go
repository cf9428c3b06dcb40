// Copyright (c) 2026 Davidcm2803 and the bot-literario contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Davidcm2803/bot-literario/internal/conversation"
	"github.com/Davidcm2803/bot-literario/internal/ui/components"
	"github.com/Davidcm2803/bot-literario/internal/ui/styles"
)

// Placeholder is the empty-input hint.
const Placeholder = "Pregúntame sobre cualquier obra literaria, autor o movimiento..."

// Rows taken by everything but the viewport: header (3), gap (1),
// thinking line (1), input box (3), hint (1), footer (1).
const chromeHeight = 10

// ScrollLock reports whether scrolling is suspended.
type ScrollLock interface {
	Held() bool
}

// Options configures a Model.
type Options struct {
	ProbeTimeout time.Duration
	ScrollLock   ScrollLock
	Markdown     *components.Markdown
	Now          func() time.Time
}

// Model is the Bubble Tea model of the conversation panel.
type Model struct {
	ctrl  *conversation.Controller
	theme *styles.Theme
	opts  Options

	width  int
	height int

	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model
	keyMap   KeyMap

	suggestion int
	rendered   int
	focused    bool
}

// New creates the panel over ctrl.
func New(ctrl *conversation.Controller, theme *styles.Theme, opts Options) Model {
	if opts.ProbeTimeout <= 0 {
		opts.ProbeTimeout = 5 * time.Second
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = Placeholder
	ti.CharLimit = 2048
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Spinner{
		Frames: []string{"|", "/", "-", "\\"},
		FPS:    time.Second / 10,
	}

	m := Model{
		ctrl:       ctrl,
		opts:       opts,
		viewport:   viewport.New(80, 20),
		input:      ti,
		spinner:    sp,
		keyMap:     DefaultKeyMap(),
		suggestion: -1,
		focused:    true,
	}
	m.SetTheme(theme)
	return m
}

// Init starts the cursor blink and the reachability probe.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.probeCmd())
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ProbeResultMsg:
		return m, nil

	case AnswerMsg:
		m.ctrl.Resolve(msg.Request, msg.Result)
		m.refresh()
		return m, nil

	case spinner.TickMsg:
		if !m.ctrl.Pending() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if !m.focused {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keyMap.Submit):
		return m.submit()

	case key.Matches(msg, m.keyMap.Suggestion):
		return m.nextSuggestion(), nil

	case key.Matches(msg, m.keyMap.Cancel):
		m.ctrl.Cancel()
		return m, nil

	case key.Matches(msg, m.keyMap.scrollKeys()...):
		return m.scroll(msg), nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.ctrl.SetDraft(m.input.Value())
	return m, cmd
}

// submit hands the draft to the controller and, when accepted, starts the
// request and the spinner.
func (m Model) submit() (Model, tea.Cmd) {
	req, ok := m.ctrl.Submit(m.input.Value())
	if !ok {
		return m, nil
	}
	m.input.Reset()
	m.suggestion = -1
	m.refresh()
	return m, tea.Batch(m.askCmd(req), m.spinner.Tick)
}

// nextSuggestion copies the next suggestion into the draft.
func (m Model) nextSuggestion() Model {
	items := m.ctrl.Suggestions()
	if len(items) == 0 {
		return m
	}
	m.suggestion = (m.suggestion + 1) % len(items)
	q := items[m.suggestion]
	m.ctrl.SelectSuggestion(q)
	m.input.SetValue(q)
	m.input.CursorEnd()
	return m
}

func (m Model) scroll(msg tea.KeyMsg) Model {
	if m.opts.ScrollLock != nil && m.opts.ScrollLock.Held() {
		return m
	}
	switch {
	case key.Matches(msg, m.keyMap.PageUp):
		m.viewport.ViewUp()
	case key.Matches(msg, m.keyMap.PageDown):
		m.viewport.ViewDown()
	case key.Matches(msg, m.keyMap.Top):
		m.viewport.GotoTop()
	case key.Matches(msg, m.keyMap.Bottom):
		m.viewport.GotoBottom()
	}
	return m
}

// =============================================================================
// COMMANDS
// =============================================================================

func (m Model) probeCmd() tea.Cmd {
	ctrl := m.ctrl
	timeout := m.opts.ProbeTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return ProbeResultMsg{Status: ctrl.Probe(ctx)}
	}
}

func (m Model) askCmd(req *conversation.Request) tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		return AnswerMsg{Request: req, Result: ctrl.Execute(req)}
	}
}

// =============================================================================
// LAYOUT AND STATE
// =============================================================================

// SetSize resizes the panel.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height

	m.viewport.Width = max(width, 1)
	m.viewport.Height = max(height-chromeHeight, 1)

	// Input box border (2) + padding (2) + prompt (2).
	m.input.Width = max(width-6, 10)

	m.rendered = -1
	m.refresh()
}

// SetTheme switches the palette.
func (m *Model) SetTheme(theme *styles.Theme) {
	m.theme = theme
	m.spinner.Style = theme.Spinner
	m.input.PromptStyle = theme.InputPrompt
	m.input.PlaceholderStyle = theme.InputHint
	m.rendered = -1
	m.refresh()
}

// Focus gives the panel the keyboard.
func (m *Model) Focus() tea.Cmd {
	m.focused = true
	return m.input.Focus()
}

// Blur releases the keyboard.
func (m *Model) Blur() {
	m.focused = false
	m.input.Blur()
}

// Focused reports whether the panel has the keyboard.
func (m Model) Focused() bool {
	return m.focused
}

// Controller returns the underlying conversation controller.
func (m Model) Controller() *conversation.Controller {
	return m.ctrl
}

// Close unmounts the panel, canceling any in-flight request.
func (m Model) Close() {
	m.ctrl.Close()
}

// refresh re-renders the message list into the viewport when the message
// count or layout changed, and follows the conversation to the bottom.
func (m *Model) refresh() {
	if m.theme == nil {
		return
	}
	msgs := m.ctrl.Messages()
	if len(msgs) == m.rendered {
		return
	}
	m.rendered = len(msgs)

	list := components.NewMessageList(m.theme, m.opts.Markdown)
	list.Messages = msgs
	list.Width = max(m.viewport.Width-2, 20)
	list.Now = m.opts.Now()
	m.viewport.SetContent(list.View())
	m.viewport.GotoBottom()
}
