// Copyright (c) 2026 Davidcm2803 and the bot-literario contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package conversation

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Davidcm2803/bot-literario/internal/backend"
)

// fakeBackend answers from fields. When gate is non-nil Answer blocks
// until the gate closes or its context ends.
type fakeBackend struct {
	answer  string
	err     error
	pingErr error
	gate    chan struct{}

	asks  atomic.Int32
	pings atomic.Int32

	mu      sync.Mutex
	queries []string
}

func (f *fakeBackend) Ping(ctx context.Context) error {
	f.pings.Add(1)
	return f.pingErr
}

func (f *fakeBackend) Answer(ctx context.Context, q string) (string, error) {
	f.asks.Add(1)
	f.mu.Lock()
	f.queries = append(f.queries, q)
	f.mu.Unlock()
	if f.gate != nil {
		select {
		case <-f.gate:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return f.answer, f.err
}

var pool = []string{
	"¿Quién escribió Cien años de soledad?",
	"¿De qué trata Don Quijote?",
	"Recomiéndame una novela corta",
	"¿Qué es el realismo mágico?",
	"¿Quién es Pablo Neruda?",
}

func newTestController(b Backend) *Controller {
	return New(b, Options{
		Suggestions: pool,
		Rand:        rand.New(rand.NewPCG(1, 2)),
	})
}

func TestNew_InitialState(t *testing.T) {
	c := newTestController(&fakeBackend{})
	snap := c.Snapshot()
	assert.Empty(t, snap.Messages)
	assert.False(t, snap.Pending)
	assert.Equal(t, "", snap.Draft)
	assert.Len(t, snap.Suggestions, 3)
	assert.Equal(t, ReachabilityChecking, snap.Reachability)
}

func TestSend_Success(t *testing.T) {
	fb := &fakeBackend{answer: "Gabriel García Márquez."}
	c := newTestController(fb)

	c.SetDraft("  ¿Quién escribió Cien años de soledad?  ")
	require.True(t, c.Send(c.Draft()))

	msgs := c.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, RoleUser, msgs[0].Role)
	assert.Equal(t, "¿Quién escribió Cien años de soledad?", msgs[0].Content, "content is trimmed")
	assert.Equal(t, RoleBot, msgs[1].Role)
	assert.Equal(t, "Gabriel García Márquez.", msgs[1].Content)
	assert.False(t, msgs[1].Error)
	assert.False(t, c.Pending())
	assert.Equal(t, "", c.Draft())
	assert.Equal(t, []string{"¿Quién escribió Cien años de soledad?"}, fb.queries)
}

func TestSend_FailureAppendsNotice(t *testing.T) {
	fb := &fakeBackend{err: backend.ErrUnreachable}
	c := newTestController(fb)

	require.True(t, c.Send("hola"))

	last, ok := c.Last()
	require.True(t, ok)
	assert.Equal(t, RoleBot, last.Role)
	assert.True(t, last.Error)
	assert.Equal(t, FailureNotice, last.Content)
	assert.False(t, c.Pending())
}

func TestSend_EmptyAnswerIsAcknowledged(t *testing.T) {
	c := newTestController(&fakeBackend{answer: "   "})
	require.True(t, c.Send("hola"))

	last, _ := c.Last()
	assert.Equal(t, backend.Acknowledgment, last.Content)
	assert.False(t, last.Error)
}

func TestSubmit_BlankIsNoop(t *testing.T) {
	fb := &fakeBackend{}
	c := newTestController(fb)

	for _, text := range []string{"", "   ", "\t\n"} {
		c.SetDraft(text)
		req, ok := c.Submit(text)
		assert.Nil(t, req)
		assert.False(t, ok)
		assert.Equal(t, text, c.Draft(), "draft untouched")
	}
	assert.Empty(t, c.Messages())
	assert.False(t, c.Pending())
	assert.Zero(t, fb.asks.Load())
}

func TestSubmit_ClearsDraftAndMarksPending(t *testing.T) {
	c := newTestController(&fakeBackend{})
	c.SetDraft("pregunta")

	req, ok := c.Submit(c.Draft())
	require.True(t, ok)
	assert.Equal(t, "", c.Draft())
	assert.True(t, c.Pending())
	assert.NotEmpty(t, req.ID)

	msgs := c.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, RoleUser, msgs[0].Role)
}

func TestSubmit_RejectedWhilePending(t *testing.T) {
	fb := &fakeBackend{answer: "uno"}
	c := newTestController(fb)

	first, ok := c.Submit("primera")
	require.True(t, ok)

	second, ok := c.Submit("segunda")
	assert.False(t, ok)
	assert.Nil(t, second)
	assert.Len(t, c.Messages(), 1)

	require.True(t, c.Resolve(first, c.Execute(first)))
	assert.Equal(t, int32(1), fb.asks.Load())

	_, ok = c.Submit("segunda")
	assert.True(t, ok, "accepted again after resolution")
}

func TestSend_AlternatesRoles(t *testing.T) {
	fb := &fakeBackend{answer: "ok"}
	c := newTestController(fb)

	for i := 0; i < 3; i++ {
		require.True(t, c.Send("pregunta"))
	}
	fb.err = errors.New("boom")
	require.True(t, c.Send("otra"))

	msgs := c.Messages()
	require.Len(t, msgs, 8)
	for i, m := range msgs {
		if i%2 == 0 {
			assert.Equal(t, RoleUser, m.Role, "message %d", i)
		} else {
			assert.Equal(t, RoleBot, m.Role, "message %d", i)
		}
	}
}

func TestResolve_StaleRequestIgnored(t *testing.T) {
	c := newTestController(&fakeBackend{answer: "ok"})

	req, ok := c.Submit("pregunta")
	require.True(t, ok)
	require.True(t, c.Resolve(req, Result{Answer: "ok"}))

	assert.False(t, c.Resolve(req, Result{Answer: "otra vez"}))
	assert.False(t, c.Resolve(nil, Result{}))
	assert.Len(t, c.Messages(), 2)
}

func TestExecute_Timeout(t *testing.T) {
	fb := &fakeBackend{gate: make(chan struct{})}
	c := New(fb, Options{Timeout: 20 * time.Millisecond})

	start := time.Now()
	require.True(t, c.Send("lenta"))
	assert.Less(t, time.Since(start), 2*time.Second)

	last, _ := c.Last()
	assert.True(t, last.Error)
	assert.Equal(t, FailureNotice, last.Content)
	assert.False(t, c.Pending())
}

func TestCancel_ResolvesAsFailure(t *testing.T) {
	fb := &fakeBackend{gate: make(chan struct{})}
	c := newTestController(fb)

	req, ok := c.Submit("pregunta")
	require.True(t, ok)

	done := make(chan Result, 1)
	go func() { done <- c.Execute(req) }()

	assert.True(t, c.Cancel())
	res := <-done
	assert.ErrorIs(t, res.Err, context.Canceled)

	require.True(t, c.Resolve(req, res))
	last, _ := c.Last()
	assert.True(t, last.Error)
	assert.False(t, c.Cancel(), "nothing pending")
}

func TestClose_DiscardsInflightResult(t *testing.T) {
	fb := &fakeBackend{answer: "tarde"}
	c := newTestController(fb)

	req, ok := c.Submit("pregunta")
	require.True(t, ok)

	c.Close()
	assert.ErrorIs(t, req.Context().Err(), context.Canceled)
	assert.False(t, c.Pending())

	assert.False(t, c.Resolve(req, Result{Answer: "tarde"}))
	assert.Len(t, c.Messages(), 1, "no bot message after close")

	_, ok = c.Submit("otra")
	assert.False(t, ok)
	c.Close()
}

func TestProbe_RunsOnce(t *testing.T) {
	fb := &fakeBackend{}
	c := newTestController(fb)

	assert.Equal(t, ReachabilityOnline, c.Probe(context.Background()))
	fb.pingErr = errors.New("down")
	assert.Equal(t, ReachabilityOnline, c.Probe(context.Background()))
	assert.Equal(t, int32(1), fb.pings.Load())
	assert.Empty(t, c.Messages(), "probe never adds messages")
}

func TestProbe_Offline(t *testing.T) {
	fb := &fakeBackend{pingErr: backend.ErrUnreachable, answer: "sí"}
	c := newTestController(fb)

	assert.Equal(t, ReachabilityOffline, c.Probe(context.Background()))

	// Advisory only: submission still goes through.
	require.True(t, c.Send("hola"))
	assert.Equal(t, int32(1), fb.asks.Load())
}

func TestSelectSuggestion_SetsDraftOnly(t *testing.T) {
	fb := &fakeBackend{}
	c := newTestController(fb)

	s := c.Suggestions()[0]
	c.SelectSuggestion(s)

	assert.Equal(t, s, c.Draft())
	assert.Empty(t, c.Messages())
	assert.False(t, c.Pending())
	assert.Zero(t, fb.asks.Load())
}

func TestSuggestions_StableAndCopied(t *testing.T) {
	c := newTestController(&fakeBackend{answer: "ok"})
	before := c.Suggestions()

	before[0] = "mutated"
	require.True(t, c.Send("hola"))

	after := c.Suggestions()
	assert.NotEqual(t, "mutated", after[0])
	assert.Equal(t, after, c.Suggestions())
}

func TestMessages_ReturnsCopy(t *testing.T) {
	c := newTestController(&fakeBackend{answer: "ok"})
	require.True(t, c.Send("hola"))

	msgs := c.Messages()
	msgs[0].Content = "changed"
	assert.Equal(t, "hola", c.Messages()[0].Content)
}

func TestMessages_UseClock(t *testing.T) {
	at := time.Date(2024, 4, 23, 10, 0, 0, 0, time.UTC)
	c := New(&fakeBackend{answer: "ok"}, Options{Clock: func() time.Time { return at }})
	require.True(t, c.Send("hola"))

	for _, m := range c.Messages() {
		assert.Equal(t, at, m.CreatedAt)
		assert.NotEmpty(t, m.ID)
	}
}

func TestSend_ConcurrentSubmitsAcceptOne(t *testing.T) {
	fb := &fakeBackend{gate: make(chan struct{})}
	c := newTestController(fb)

	var accepted atomic.Int32
	var reqs sync.Map
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if req, ok := c.Submit("pregunta"); ok {
				accepted.Add(1)
				reqs.Store(i, req)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), accepted.Load())
	assert.Len(t, c.Messages(), 1)

	close(fb.gate)
	reqs.Range(func(_, v any) bool {
		req := v.(*Request)
		c.Resolve(req, c.Execute(req))
		return true
	})
	assert.False(t, c.Pending())
}

func TestRole_DisplayName(t *testing.T) {
	assert.Equal(t, "Tú", RoleUser.DisplayName())
	assert.Equal(t, "Biblio IA", RoleBot.DisplayName())
}

func TestReachability_String(t *testing.T) {
	assert.Equal(t, "checking", ReachabilityChecking.String())
	assert.Equal(t, "online", ReachabilityOnline.String())
	assert.Equal(t, "offline", ReachabilityOffline.String())
}
