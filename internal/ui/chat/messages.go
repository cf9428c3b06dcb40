// Copyright (c) 2026 Davidcm2803 and the bot-literario contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import "github.com/Davidcm2803/bot-literario/internal/conversation"

// ProbeResultMsg carries the outcome of the reachability probe.
type ProbeResultMsg struct {
	Status conversation.Reachability
}

// AnswerMsg carries the outcome of one executed request.
type AnswerMsg struct {
	Request *conversation.Request
	Result  conversation.Result
}
