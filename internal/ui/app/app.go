// Copyright (c) 2026 Davidcm2803 and the bot-literario contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package app provides the page shell of the TUI: the sidebar next to the
// conversation panel on wide terminals, and the conversation panel with an
// overlay sidebar on narrow ones.
package app

import (
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/Davidcm2803/bot-literario/internal/conversation"
	"github.com/Davidcm2803/bot-literario/internal/effect"
	"github.com/Davidcm2803/bot-literario/internal/prefs"
	"github.com/Davidcm2803/bot-literario/internal/sidebar"
	"github.com/Davidcm2803/bot-literario/internal/ui/chat"
	"github.com/Davidcm2803/bot-literario/internal/ui/components"
	"github.com/Davidcm2803/bot-literario/internal/ui/styles"
	"github.com/Davidcm2803/bot-literario/internal/util"
)

// DefaultNarrowWidth is the column count below which the layout is narrow.
const DefaultNarrowWidth = 80

// Options configures the shell.
type Options struct {
	NarrowWidth  int
	Markdown     bool
	ProbeTimeout time.Duration
	Logger       *slog.Logger
}

// KeyMap defines the shell-level key bindings.
type KeyMap struct {
	Quit   key.Binding
	Menu   key.Binding
	Theme  key.Binding
	Search key.Binding
	Close  key.Binding
	Enter  key.Binding
}

// DefaultKeyMap returns the default shell bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit:   key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "salir")),
		Menu:   key.NewBinding(key.WithKeys("ctrl+b"), key.WithHelp("ctrl+b", "menú")),
		Theme:  key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "tema")),
		Search: key.NewBinding(key.WithKeys("ctrl+f"), key.WithHelp("ctrl+f", "buscar")),
		Close:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cerrar")),
		Enter:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "buscar")),
	}
}

// Model is the root Bubble Tea model.
type Model struct {
	conv *conversation.Controller
	side *sidebar.Controller
	lock *effect.Lock
	log  *slog.Logger
	opts Options

	theme  *styles.Theme
	chat   chat.Model
	search textinput.Model
	keyMap KeyMap

	searching bool
	notice    string
	width     int
	height    int
}

// New mounts the shell. The sidebar reads its theme from store; the scroll
// lock is created here and shared by the sidebar and the panel.
func New(conv *conversation.Controller, store prefs.Store, opts Options) *Model {
	if opts.NarrowWidth <= 0 {
		opts.NarrowWidth = DefaultNarrowWidth
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}

	lock := effect.NewLock()
	side := sidebar.New(store, lock, opts.Logger.With("component", "sidebar"))
	theme := styles.NewTheme(side.Theme().IsDark())

	search := textinput.New()
	search.Prompt = ""
	search.Placeholder = "Buscar libros..."
	search.CharLimit = 256

	return &Model{
		conv:  conv,
		side:  side,
		lock:  lock,
		log:   opts.Logger,
		opts:  opts,
		theme: theme,
		chat: chat.New(conv, theme, chat.Options{
			ProbeTimeout: opts.ProbeTimeout,
			ScrollLock:   lock,
			Markdown:     components.NewMarkdown(opts.Markdown),
		}),
		search: search,
		keyMap: DefaultKeyMap(),
	}
}

// Init starts the panel.
func (m *Model) Init() tea.Cmd {
	return m.chat.Init()
}

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.narrow() {
			m.side.CloseOverlay()
		}
		m.layout()
		if m.searching && !m.sidebarVisible() {
			return m, m.stopSearch()
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.chat, cmd = m.chat.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Quit):
		m.Close()
		return m, tea.Quit

	case key.Matches(msg, m.keyMap.Theme):
		m.toggleTheme()
		return m, nil

	case key.Matches(msg, m.keyMap.Menu):
		m.toggleMenu()
		if m.searching && !m.sidebarVisible() {
			return m, m.stopSearch()
		}
		return m, nil

	case key.Matches(msg, m.keyMap.Search):
		return m, m.startSearch()

	case key.Matches(msg, m.keyMap.Close):
		switch {
		case m.searching:
			return m, m.stopSearch()
		case m.side.MobileOpen():
			m.side.CloseOverlay()
			return m, nil
		}
	}

	if m.searching {
		return m, m.handleSearchKey(msg)
	}
	if m.side.MobileOpen() {
		// The overlay is modal.
		return m, nil
	}

	var cmd tea.Cmd
	m.chat, cmd = m.chat.Update(msg)
	return m, cmd
}

func (m *Model) toggleTheme() {
	theme, err := m.side.ToggleTheme()
	if err != nil {
		m.notice = "Tema no guardado"
	} else {
		m.notice = ""
	}
	m.log.Debug("theme toggled", "theme", theme)
	m.theme = styles.NewTheme(theme.IsDark())
	m.chat.SetTheme(m.theme)
}

func (m *Model) toggleMenu() {
	if m.narrow() {
		m.side.ToggleMobile()
	} else {
		m.side.ToggleCollapsed()
	}
	m.layout()
}

func (m *Model) startSearch() tea.Cmd {
	if m.narrow() {
		if !m.side.MobileOpen() {
			m.side.ToggleMobile()
		}
	} else if m.side.Collapsed() {
		m.side.ToggleCollapsed()
		m.layout()
	}
	m.searching = true
	m.chat.Blur()
	return m.search.Focus()
}

func (m *Model) stopSearch() tea.Cmd {
	m.searching = false
	m.search.Blur()
	return m.chat.Focus()
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keyMap.Enter) {
		if q, ok := m.side.SubmitSearch(); ok {
			m.notice = "Buscando: " + q
		}
		return m.stopSearch()
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.side.SetSearch(m.search.Value())
	return cmd
}

// Close unmounts both controllers, canceling any in-flight request and
// releasing the scroll lock.
func (m *Model) Close() {
	m.chat.Close()
	m.side.Close()
}

// =============================================================================
// LAYOUT
// =============================================================================

func (m *Model) narrow() bool {
	return m.width < m.opts.NarrowWidth
}

func (m *Model) sidebarVisible() bool {
	if m.narrow() {
		return m.side.MobileOpen()
	}
	return !m.side.Collapsed()
}

func (m *Model) sidebarWidth() int {
	switch {
	case m.narrow():
		return 0
	case m.side.Collapsed():
		return components.SidebarCollapsedWidth
	default:
		return components.SidebarWidth
	}
}

func (m *Model) layout() {
	if m.width == 0 {
		return
	}
	m.chat.SetSize(m.width-m.sidebarWidth(), m.height)
	m.search.Width = components.SidebarWidth - 8
}

// View renders the shell.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Cargando..."
	}

	panel := m.chat.View()
	if !m.narrow() {
		return lipgloss.JoinHorizontal(lipgloss.Top, m.sidebarView(false), panel)
	}
	if m.side.MobileOpen() {
		return overlay(panel, m.sidebarView(true), m.theme.Scrim)
	}
	return panel
}

func (m *Model) sidebarView(asOverlay bool) string {
	v := components.NewSidebarView(m.theme)
	v.Theme = m.side.Theme()
	v.Collapsed = m.side.Collapsed()
	v.Overlay = asOverlay
	v.Height = m.height
	v.SearchFocused = m.searching
	v.Notice = m.notice
	if m.searching || m.side.Search() != "" {
		v.Search = m.search.View()
	}
	return v.View()
}

// overlay draws top over the left edge of base and dims what remains
// visible of base.
func overlay(base, top string, scrim lipgloss.Style) string {
	baseLines := strings.Split(base, "\n")
	topLines := strings.Split(top, "\n")
	topWidth := lipgloss.Width(top)
	pad := lipgloss.NewStyle().Width(topWidth)

	out := make([]string, max(len(baseLines), len(topLines)))
	for i := range out {
		left := strings.Repeat(" ", topWidth)
		if i < len(topLines) {
			left = pad.Render(topLines[i])
		}
		right := ""
		if i < len(baseLines) {
			right = scrim.Render(util.SkipWidth(ansi.Strip(baseLines[i]), topWidth))
		}
		out[i] = left + right
	}
	return strings.Join(out, "\n")
}
