// Copyright (c) 2026 Davidcm2803 and the bot-literario contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package sidebar holds the display state of the navigation sidebar: the
// persisted color theme, whether the overlay is open on narrow terminals,
// whether the sidebar is collapsed on wide ones, and the book search box.
package sidebar

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/Davidcm2803/bot-literario/internal/effect"
	"github.com/Davidcm2803/bot-literario/internal/prefs"
)

// Theme is the color theme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme maps a stored value to a Theme. Only "dark" is dark.
func ParseTheme(s string) Theme {
	if s == string(ThemeDark) {
		return ThemeDark
	}
	return ThemeLight
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// IsDark reports whether t is the dark theme.
func (t Theme) IsDark() bool {
	return t == ThemeDark
}

// Label is the action offered by the theme toggle: switching away from t.
func (t Theme) Label() string {
	if t == ThemeDark {
		return "Modo Claro"
	}
	return "Modo Oscuro"
}

// Controller is the sidebar display state. It is safe for concurrent use.
type Controller struct {
	store  prefs.Store
	scroll *effect.Scope
	log    *slog.Logger

	mu         sync.Mutex
	theme      Theme
	mobileOpen bool
	collapsed  bool
	search     string
	closed     bool
}

// New mounts a sidebar. The theme is read from store once; a missing key or
// a read error yields light. While the mobile overlay is open the
// controller holds scrollLock.
func New(store prefs.Store, scrollLock effect.Resource, log *slog.Logger) *Controller {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	c := &Controller{
		store:  store,
		scroll: effect.NewScope(scrollLock),
		log:    log,
		theme:  ThemeLight,
	}

	if store != nil {
		value, ok, err := store.Get(prefs.KeyTheme)
		switch {
		case err != nil:
			log.Warn("theme preference unreadable, using light", "error", err)
		case ok:
			c.theme = ParseTheme(value)
		}
	}
	return c
}

// ToggleTheme flips the theme and persists it. The new theme is applied
// even when the write fails; the error is returned for the caller to log.
func (c *Controller) ToggleTheme() (Theme, error) {
	c.mu.Lock()
	c.theme = c.theme.Toggle()
	theme := c.theme
	c.mu.Unlock()

	if c.store == nil {
		return theme, nil
	}
	if err := c.store.Set(prefs.KeyTheme, string(theme)); err != nil {
		c.log.Warn("theme preference not saved", "theme", theme, "error", err)
		return theme, fmt.Errorf("saving theme: %w", err)
	}
	return theme, nil
}

// SetTheme applies and persists t.
func (c *Controller) SetTheme(t Theme) error {
	c.mu.Lock()
	c.theme = t
	c.mu.Unlock()

	if c.store == nil {
		return nil
	}
	if err := c.store.Set(prefs.KeyTheme, string(t)); err != nil {
		return fmt.Errorf("saving theme: %w", err)
	}
	return nil
}

// Theme returns the active theme.
func (c *Controller) Theme() Theme {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.theme
}

// ToggleMobile opens or closes the overlay.
func (c *Controller) ToggleMobile() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setMobileLocked(!c.mobileOpen)
	return c.mobileOpen
}

// CloseOverlay closes the overlay. Closing a closed overlay is a no-op.
func (c *Controller) CloseOverlay() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setMobileLocked(false)
}

// setMobileLocked keeps mobileOpen and the scroll lock in step. Once closed
// the overlay stays shut.
func (c *Controller) setMobileLocked(open bool) {
	if c.closed {
		return
	}
	c.mobileOpen = open
	c.scroll.Set(open)
}

// MobileOpen reports whether the overlay is open.
func (c *Controller) MobileOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mobileOpen
}

// ToggleCollapsed switches between the full and the icon-width sidebar.
func (c *Controller) ToggleCollapsed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.collapsed = !c.collapsed
	return c.collapsed
}

// Collapsed reports whether the sidebar is collapsed.
func (c *Controller) Collapsed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.collapsed
}

// SetSearch replaces the search box text.
func (c *Controller) SetSearch(q string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.search = q
}

// Search returns the search box text.
func (c *Controller) Search() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.search
}

// SubmitSearch records the trimmed search text. Book search has no backend
// endpoint yet, so the query is only logged. Blank text is ignored.
func (c *Controller) SubmitSearch() (string, bool) {
	c.mu.Lock()
	q := strings.TrimSpace(c.search)
	c.mu.Unlock()

	if q == "" {
		return "", false
	}
	c.log.Info("book search", "query", q)
	return q, true
}

// Close releases the scroll lock if held. The controller stays readable.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.mobileOpen = false
	c.scroll.Close()
}
