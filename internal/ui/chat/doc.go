// Copyright (c) 2026 Davidcm2803 and the bot-literario contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the conversation panel of the TUI.
//
// The panel is a thin Bubble Tea layer over conversation.Controller. The
// controller owns every piece of conversation state; the panel owns only
// widgets (text input, viewport, spinner) and translates key presses into
// controller calls.
//
// Network work never runs inside Update. Submitting returns a command that
// executes the request on Bubble Tea's command goroutine and reports back
// with AnswerMsg, which Update feeds to Controller.Resolve:
//
//	enter    -> Controller.Submit -> askCmd
//	askCmd   -> Controller.Execute -> AnswerMsg
//	AnswerMsg -> Controller.Resolve -> viewport refresh
//
// The reachability probe follows the same pattern at Init.
package chat
