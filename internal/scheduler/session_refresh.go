package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/astral-cool/astral-web/internal/logger"
	"github.com/astral-cool/astral-web/internal/session"
)

// Sessions reads and rewrites stored sessions by token.
type Sessions interface {
	Lookup(ctx context.Context, token string) (session.State, bool, error)
	Replace(ctx context.Context, token string, st session.State) error
}

// ReloadFunc builds the next snapshot from the previous one.
type ReloadFunc func(ctx context.Context, prev session.State) (session.State, error)

// SessionRefresher re-bootstraps signed-in sessions on a fixed delay after
// login so access tokens never go stale. A failed refresh drops the session
// from the queue; the user keeps the old snapshot until they sign in again.
type SessionRefresher struct {
	queue         Queue
	sessions      Sessions
	reload        ReloadFunc
	logger        logger.Logger
	interval      time.Duration
	tick          time.Duration
	stopCh        chan struct{}
	stopOnce      sync.Once
	manualTrigger chan struct{}
	now           func() time.Time
}

// NewSessionRefresher creates a refresher. interval is the delay between
// refreshes of one session; the queue is polled at most once a minute.
func NewSessionRefresher(
	queue Queue,
	sessions Sessions,
	reload ReloadFunc,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *SessionRefresher {
	return &SessionRefresher{
		queue:         queue,
		sessions:      sessions,
		reload:        reload,
		logger:        log,
		interval:      interval,
		tick:          min(interval, time.Minute),
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
		now:           time.Now,
	}
}

// Track schedules the session behind token for its first refresh.
func (sr *SessionRefresher) Track(ctx context.Context, token string) error {
	return sr.queue.Track(ctx, token, sr.now().Add(sr.interval))
}

// Untrack stops refreshing the session, e.g. on logout.
func (sr *SessionRefresher) Untrack(ctx context.Context, token string) error {
	return sr.queue.Untrack(ctx, token)
}

// Tracked counts the sessions waiting for a refresh.
func (sr *SessionRefresher) Tracked(ctx context.Context) (int, error) {
	return sr.queue.Tracked(ctx)
}

// Start begins polling the queue
func (sr *SessionRefresher) Start(ctx context.Context) {
	ticker := time.NewTicker(sr.tick)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				sr.RefreshDue(ctx, sr.now())
			case <-sr.manualTrigger:
				sr.logger.Info("manual session refresh triggered")
				// everything tracked is due within one interval
				sr.RefreshDue(ctx, sr.now().Add(sr.interval))
			case <-sr.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop stops the refresher
func (sr *SessionRefresher) Stop() {
	sr.stopOnce.Do(func() { close(sr.stopCh) })
}

// RefreshDue refreshes every session due at or before now, one after the
// other, and returns how many succeeded.
func (sr *SessionRefresher) RefreshDue(ctx context.Context, now time.Time) int {
	tokens, err := sr.queue.Due(ctx, now)
	if err != nil {
		sr.logger.Error("failed to list due sessions", logger.Error(err))
		return 0
	}

	refreshed := 0
	for _, token := range tokens {
		if ctx.Err() != nil {
			break
		}
		if sr.refresh(ctx, token) {
			refreshed++
		}
	}

	if len(tokens) > 0 {
		sr.logger.Info("session refresh done",
			logger.Int("due", len(tokens)),
			logger.Int("refreshed", refreshed))
	}
	return refreshed
}

func (sr *SessionRefresher) refresh(ctx context.Context, token string) bool {
	prev, ok, err := sr.sessions.Lookup(ctx, token)
	if err != nil {
		sr.logger.Warn("failed to load session for refresh", logger.Error(err))
		sr.drop(ctx, token)
		return false
	}
	if !ok {
		sr.drop(ctx, token)
		return false
	}

	next, err := sr.reload(ctx, prev)
	if err != nil {
		sr.logger.Warn("session refresh failed, no longer tracked",
			logger.String("user", prev.User.Username),
			logger.Error(err))
		sr.drop(ctx, token)
		return false
	}

	if err := sr.sessions.Replace(ctx, token, next); err != nil {
		if !errors.Is(err, session.ErrGone) {
			sr.logger.Error("failed to store refreshed session", logger.Error(err))
		}
		sr.drop(ctx, token)
		return false
	}

	if err := sr.queue.Track(ctx, token, sr.now().Add(sr.interval)); err != nil {
		sr.logger.Error("failed to reschedule session refresh", logger.Error(err))
	}
	return true
}

func (sr *SessionRefresher) drop(ctx context.Context, token string) {
	if err := sr.queue.Untrack(ctx, token); err != nil {
		sr.logger.Error("failed to untrack session", logger.Error(err))
	}
}
