// Copyright (c) 2026 Davidcm2803 and the bot-literario contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package effect models UI side effects that a component acquires while in
// some state and must release when leaving it or when torn down.
//
// A Resource is owned by the page shell, one per instance. Components hold
// it through a Scope, which makes acquire and release idempotent so a
// component can never leak or double-release its hold.
package effect

import "sync"

// Resource is something a component can hold, such as the scroll lock.
type Resource interface {
	Acquire()
	Release()
}

// =============================================================================
// LOCK
// =============================================================================

// Lock is a counted Resource. It is held while at least one holder has
// acquired it and not yet released.
type Lock struct {
	mu      sync.Mutex
	holders int
}

// NewLock returns an unheld Lock.
func NewLock() *Lock {
	return &Lock{}
}

// Acquire adds a holder.
func (l *Lock) Acquire() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.holders++
}

// Release removes a holder. Releasing an unheld lock is a no-op.
func (l *Lock) Release() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.holders > 0 {
		l.holders--
	}
}

// Held reports whether any holder remains.
func (l *Lock) Held() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.holders > 0
}

// =============================================================================
// SCOPE
// =============================================================================

// Scope is one component's hold on a Resource.
type Scope struct {
	mu     sync.Mutex
	res    Resource
	held   bool
	closed bool
}

// NewScope returns a Scope over res. A nil res gives a Scope that only
// tracks state.
func NewScope(res Resource) *Scope {
	return &Scope{res: res}
}

// Set acquires the resource when active is true and releases it when false.
// Repeated calls with the same value do nothing. After Close, Set is a no-op.
func (s *Scope) Set(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.held == active {
		return
	}
	s.held = active
	if s.res == nil {
		return
	}
	if active {
		s.res.Acquire()
	} else {
		s.res.Release()
	}
}

// Held reports whether this scope currently holds the resource.
func (s *Scope) Held() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.held
}

// Close releases any hold and disables the scope.
func (s *Scope) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	if s.held && s.res != nil {
		s.res.Release()
	}
	s.held = false
	s.closed = true
}
