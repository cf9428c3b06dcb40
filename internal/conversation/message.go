// Copyright (c) 2026 Davidcm2803 and the bot-literario contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package conversation

import "time"

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the sender of a message.
type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

// DisplayName returns the label shown above a message.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "Tú"
	case RoleBot:
		return "Biblio IA"
	default:
		return string(r)
	}
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message is one entry of the conversation. Messages are values and are
// never modified after they are appended.
type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Error     bool      `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// IsUser reports whether the user wrote the message.
func (m Message) IsUser() bool {
	return m.Role == RoleUser
}

// =============================================================================
// REACHABILITY
// =============================================================================

// Reachability is the advisory status of the backend. It never blocks
// submission.
type Reachability int

const (
	ReachabilityChecking Reachability = iota
	ReachabilityOnline
	ReachabilityOffline
)

// String returns checking, online or offline.
func (r Reachability) String() string {
	switch r {
	case ReachabilityOnline:
		return "online"
	case ReachabilityOffline:
		return "offline"
	default:
		return "checking"
	}
}
