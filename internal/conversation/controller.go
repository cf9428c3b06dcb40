// Copyright (c) 2026 Davidcm2803 and the bot-literario contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package conversation

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Davidcm2803/bot-literario/internal/backend"
)

// FailureNotice is the content of the bot message appended when a question
// could not be answered, whatever the reason.
const FailureNotice = "Lo siento, no pude obtener una respuesta del servidor. Inténtalo de nuevo."

// DefaultTimeout bounds a request when Options.Timeout is zero.
const DefaultTimeout = 30 * time.Second

// DefaultSuggestionCount is used when Options.SuggestionCount is zero.
const DefaultSuggestionCount = 3

var errNoRequest = errors.New("conversation: nil request")

// Backend is the question-answering collaborator.
type Backend interface {
	// Ping reports whether the service is reachable.
	Ping(ctx context.Context) error
	// Answer returns the display text for question.
	Answer(ctx context.Context, question string) (string, error)
}

// Options configures a Controller.
type Options struct {
	// Timeout bounds each request.
	Timeout time.Duration
	// Suggestions is the pool suggestions are sampled from.
	Suggestions []string
	// SuggestionCount is how many suggestions are drawn.
	SuggestionCount int
	// Rand drives sampling; nil uses the global source.
	Rand *rand.Rand
	// Logger receives developer traces; nil discards.
	Logger *slog.Logger
	// Clock stamps messages; nil uses time.Now.
	Clock func() time.Time
}

// Request is one accepted submission.
type Request struct {
	ID    string
	Query string

	ctx    context.Context
	cancel context.CancelFunc
}

// Context returns the request's deadline-bound, cancellable context.
func (r *Request) Context() context.Context {
	return r.ctx
}

// Result is the outcome of executing a Request.
type Result struct {
	Answer string
	Err    error
}

// Snapshot is a consistent copy of the controller state.
type Snapshot struct {
	Messages     []Message
	Pending      bool
	Draft        string
	Suggestions  []string
	Reachability Reachability
}

// =============================================================================
// CONTROLLER
// =============================================================================

// Controller owns the state of one conversation panel and mediates every
// transition. It is safe for concurrent use.
type Controller struct {
	backend Backend
	timeout time.Duration
	clock   func() time.Time
	log     *slog.Logger

	probeOnce sync.Once

	mu          sync.Mutex
	messages    []Message
	draft       string
	suggestions []string
	reach       Reachability
	inflight    *Request
	closed      bool
}

// New mounts a controller over b. Suggestions are sampled here and never
// re-sampled.
func New(b Backend, opts Options) *Controller {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.SuggestionCount == 0 {
		opts.SuggestionCount = DefaultSuggestionCount
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}

	return &Controller{
		backend:     b,
		timeout:     opts.Timeout,
		clock:       opts.Clock,
		log:         opts.Logger,
		suggestions: Sample(opts.Suggestions, opts.SuggestionCount, opts.Rand),
		reach:       ReachabilityChecking,
	}
}

// Submit accepts text as a question. It is a no-op returning false when
// the trimmed text is empty, a request is pending, or the controller is
// closed. Otherwise it appends the user message, clears the draft, marks
// the controller pending and returns the request to Execute.
func (c *Controller) Submit(text string) (*Request, bool) {
	query := strings.TrimSpace(text)
	if query == "" {
		return nil, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, false
	}
	if c.inflight != nil {
		c.log.Debug("submit ignored while pending", "pending_id", c.inflight.ID)
		return nil, false
	}

	c.messages = append(c.messages, c.newMessage(RoleUser, query, false))
	c.draft = ""

	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	req := &Request{
		ID:     uuid.NewString(),
		Query:  query,
		ctx:    ctx,
		cancel: cancel,
	}
	c.inflight = req

	c.log.Debug("question submitted", "request_id", req.ID, "chars", len(query))
	return req, true
}

// Execute performs the single backend call for req. It does not touch
// controller state and may run on any goroutine.
func (c *Controller) Execute(req *Request) Result {
	if req == nil {
		return Result{Err: errNoRequest}
	}
	answer, err := c.backend.Answer(req.ctx, req.Query)
	return Result{Answer: answer, Err: err}
}

// Resolve applies the outcome of req. A failure appends a bot message with
// Error set and FailureNotice as content; a success appends the answer.
// Either way pending is cleared. Resolve returns false, changing nothing,
// when req is not the in-flight request (stale or after Close).
func (c *Controller) Resolve(req *Request, res Result) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if req == nil || c.inflight != req {
		return false
	}
	c.inflight = nil
	req.cancel()

	if res.Err != nil {
		c.log.Warn("question failed", "request_id", req.ID, "error", res.Err)
		c.messages = append(c.messages, c.newMessage(RoleBot, FailureNotice, true))
		return true
	}

	answer := res.Answer
	if strings.TrimSpace(answer) == "" {
		answer = backend.Acknowledgment
	}
	c.log.Debug("question answered", "request_id", req.ID, "chars", len(answer))
	c.messages = append(c.messages, c.newMessage(RoleBot, answer, false))
	return true
}

// Send submits text and waits for the answer. It reports whether the text
// was accepted.
func (c *Controller) Send(text string) bool {
	req, ok := c.Submit(text)
	if !ok {
		return false
	}
	c.Resolve(req, c.Execute(req))
	return true
}

// Cancel aborts the in-flight request. Its resolution will be a failure
// message. It reports whether anything was pending.
func (c *Controller) Cancel() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inflight == nil {
		return false
	}
	c.log.Debug("request canceled by user", "request_id", c.inflight.ID)
	c.inflight.cancel()
	return true
}

// Close unmounts the controller. Any in-flight request is canceled and its
// result discarded; later submissions are no-ops.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	if c.inflight != nil {
		c.inflight.cancel()
		c.inflight = nil
	}
}

// Probe checks backend reachability. Only the first call contacts the
// backend; later calls return the stored status. Probing never appends a
// message.
func (c *Controller) Probe(ctx context.Context) Reachability {
	c.probeOnce.Do(func() {
		status := ReachabilityOnline
		if err := c.backend.Ping(ctx); err != nil {
			status = ReachabilityOffline
			c.log.Info("backend unreachable", "error", err)
		}
		c.mu.Lock()
		c.reach = status
		c.mu.Unlock()
	})
	return c.Reachability()
}

// =============================================================================
// DRAFT AND SUGGESTIONS
// =============================================================================

// SetDraft replaces the draft text.
func (c *Controller) SetDraft(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = text
}

// Draft returns the draft text.
func (c *Controller) Draft() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// SelectSuggestion puts question into the draft verbatim. It never submits.
func (c *Controller) SelectSuggestion(question string) {
	c.SetDraft(question)
}

// Suggestions returns the suggestions sampled at mount.
func (c *Controller) Suggestions() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.suggestions...)
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Messages returns a copy of the messages, oldest first.
func (c *Controller) Messages() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Message(nil), c.messages...)
}

// Last returns the newest message.
func (c *Controller) Last() (Message, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.messages) == 0 {
		return Message{}, false
	}
	return c.messages[len(c.messages)-1], true
}

// Pending reports whether a request is in flight.
func (c *Controller) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inflight != nil
}

// Reachability returns the probed status.
func (c *Controller) Reachability() Reachability {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reach
}

// Snapshot returns all state under one lock.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		Messages:     append([]Message(nil), c.messages...),
		Pending:      c.inflight != nil,
		Draft:        c.draft,
		Suggestions:  append([]string(nil), c.suggestions...),
		Reachability: c.reach,
	}
}

func (c *Controller) newMessage(role Role, content string, isErr bool) Message {
	return Message{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		Error:     isErr,
		CreatedAt: c.clock(),
	}
}
