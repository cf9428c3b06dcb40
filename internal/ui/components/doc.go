// Copyright (c) 2026 Davidcm2803 and the bot-literario contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the Biblio IA TUI.
//
// Components are stateless renderers: each takes the data to draw plus a
// *styles.Theme and returns a string. State lives in the conversation and
// sidebar controllers; the Bubble Tea models in ui/chat and ui/app pass a
// snapshot in on every View.
//
// Available components:
//
//   - Header: title, subtitle and the reachability pill
//   - StatusPill: checking / online / offline badge
//   - SuggestionList: suggested-question cards
//   - MessageList: the conversation, bot answers rendered as markdown
//   - SidebarView: brand, search, theme toggle, account entries, key hints
//   - Markdown: cached glamour renderer keyed by style and width
package components
