// Copyright (c) 2026 Davidcm2803 and the bot-literario contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

// Markdown renders bot answers with glamour. Renderers are built lazily and
// cached per style and wrap width, since building one parses a full style
// sheet.
type Markdown struct {
	mu        sync.Mutex
	renderers map[markdownKey]*glamour.TermRenderer
	disabled  bool
}

type markdownKey struct {
	style string
	width int
}

// NewMarkdown returns a renderer. When enabled is false Render returns its
// input unchanged.
func NewMarkdown(enabled bool) *Markdown {
	return &Markdown{
		renderers: make(map[markdownKey]*glamour.TermRenderer),
		disabled:  !enabled,
	}
}

// Render formats content for a terminal. style is a glamour standard style
// name ("dark", "light", "notty"). On any renderer failure the content is
// returned as is.
func (m *Markdown) Render(content, style string, width int) string {
	if m == nil || m.disabled || strings.TrimSpace(content) == "" {
		return content
	}

	r := m.renderer(style, width)
	if r == nil {
		return content
	}
	out, err := r.Render(content)
	if err != nil {
		return content
	}
	return strings.Trim(out, "\n")
}

func (m *Markdown) renderer(style string, width int) *glamour.TermRenderer {
	if width < 20 {
		width = 20
	}
	key := markdownKey{style: style, width: width}

	m.mu.Lock()
	defer m.mu.Unlock()

	if r, ok := m.renderers[key]; ok {
		return r
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		r = nil
	}
	m.renderers[key] = r
	return r
}
