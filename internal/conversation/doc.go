// Copyright (c) 2026 Davidcm2803 and the bot-literario contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package conversation owns the state of one conversation panel: the
// message list, the pending flag, the draft, the sampled suggestions and
// the backend reachability status.
//
// # Lifecycle
//
// New is the mount. It samples the suggestions once and starts with no
// messages, no pending request and reachability Checking. Probe runs the
// reachability check at most once. Close is the unmount. It cancels any
// in-flight request and drops its result.
//
// # Submitting
//
// A submission is split in three so a UI can run the network call off its
// event loop:
//
//	req, ok := c.Submit(text)   // guard, append user message, mark pending
//	res := c.Execute(req)       // one backend call, no state touched
//	c.Resolve(req, res)         // append bot message, clear pending
//
// Send does all three synchronously. At most one request is in flight, so
// answers arrive in the order questions were asked.
package conversation
