package scheduler

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/astral-cool/astral-web/internal/api"
	"github.com/astral-cool/astral-web/internal/logger"
	"github.com/astral-cool/astral-web/internal/session"
)

type fakeSessions struct {
	mu     sync.Mutex
	states map[string]session.State
}

func (f *fakeSessions) Lookup(_ context.Context, token string) (session.State, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	st, ok := f.states[token]
	return st, ok, nil
}

func (f *fakeSessions) Replace(_ context.Context, token string, st session.State) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.states[token]; !ok {
		return session.ErrGone
	}
	f.states[token] = st
	return nil
}

func (f *fakeSessions) get(token string) session.State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.states[token]
}

func user(name string) session.State {
	return session.State{User: api.User{Username: name}, Tokens: api.Tokens{Access: "old", Refresh: "r"}}
}

func newTestRefresher(sessions Sessions, reload ReloadFunc) (*SessionRefresher, *MemoryQueue) {
	q := NewMemoryQueue()
	sr := NewSessionRefresher(q, sessions, reload, logger.New("error", false), 13*time.Minute, make(chan struct{}))
	return sr, q
}

func TestRefreshDue(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	sessions := &fakeSessions{states: map[string]session.State{
		"tok-ann": user("ann"),
		"tok-bob": user("bob"),
		"tok-eve": user("eve"),
	}}
	reload := func(_ context.Context, prev session.State) (session.State, error) {
		if prev.User.Username == "eve" {
			return session.State{}, &api.Error{Status: 401, Message: "expired"}
		}
		return prev.WithTokens(api.Tokens{Access: "new", Refresh: "r"}), nil
	}

	sr, q := newTestRefresher(sessions, reload)
	sr.now = func() time.Time { return base }
	for _, tok := range []string{"tok-ann", "tok-bob", "tok-eve", "tok-gone"} {
		if err := sr.Track(ctx, tok); err != nil {
			t.Fatal(err)
		}
	}

	if n := sr.RefreshDue(ctx, base.Add(time.Minute)); n != 0 {
		t.Fatalf("nothing should be due before the interval, refreshed %d", n)
	}

	sr.now = func() time.Time { return base.Add(13 * time.Minute) }
	if n := sr.RefreshDue(ctx, base.Add(13*time.Minute)); n != 2 {
		t.Errorf("RefreshDue() = %d, want 2", n)
	}

	if got := sessions.get("tok-ann").Tokens.Access; got != "new" {
		t.Errorf("ann access token = %q, want new", got)
	}
	if got := sessions.get("tok-eve").Tokens.Access; got != "old" {
		t.Errorf("failed refresh must leave the old snapshot, got %q", got)
	}

	due, _ := q.Due(ctx, base.Add(100*time.Hour))
	sort.Strings(due)
	if len(due) != 2 || due[0] != "tok-ann" || due[1] != "tok-bob" {
		t.Errorf("tracked after refresh = %v, want ann and bob only", due)
	}

	// rescheduled one interval after the refresh
	due, _ = q.Due(ctx, base.Add(25*time.Minute))
	if len(due) != 0 {
		t.Errorf("sessions should not be due again before %v, got %v", base.Add(26*time.Minute), due)
	}
}

func TestManualTrigger(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sessions := &fakeSessions{states: map[string]session.State{"tok": user("ann")}}
	done := make(chan struct{}, 1)
	reload := func(_ context.Context, prev session.State) (session.State, error) {
		done <- struct{}{}
		return prev, nil
	}

	trigger := make(chan struct{})
	q := NewMemoryQueue()
	sr := NewSessionRefresher(q, sessions, reload, logger.New("error", false), time.Hour, trigger)
	if err := sr.Track(ctx, "tok"); err != nil {
		t.Fatal(err)
	}

	sr.Start(ctx)
	defer sr.Stop()
	trigger <- struct{}{}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("manual trigger did not refresh the tracked session")
	}
}

func TestUntrackAndStopTwice(t *testing.T) {
	ctx := context.Background()
	sr, _ := newTestRefresher(&fakeSessions{}, nil)

	_ = sr.Track(ctx, "tok")
	if n, _ := sr.Tracked(ctx); n != 1 {
		t.Fatalf("Tracked() = %d", n)
	}
	_ = sr.Untrack(ctx, "tok")
	if n, _ := sr.Tracked(ctx); n != 0 {
		t.Errorf("Tracked() after untrack = %d", n)
	}

	sr.Stop()
	sr.Stop()
}

type failingQueue struct{ MemoryQueue }

func (*failingQueue) Due(context.Context, time.Time) ([]string, error) {
	return nil, errors.New("redis down")
}

func TestRefreshDueQueueError(t *testing.T) {
	sr := NewSessionRefresher(&failingQueue{}, &fakeSessions{}, nil, logger.New("error", false), time.Minute, nil)
	if n := sr.RefreshDue(context.Background(), time.Now()); n != 0 {
		t.Errorf("RefreshDue() = %d on queue error", n)
	}
}
