package scheduler

import (
	"context"
	"sync"
	"time"
)

// Queue tracks which sessions are due for a refresh. The Redis store
// implements it for multi-instance deployments.
type Queue interface {
	Track(ctx context.Context, token string, due time.Time) error
	Untrack(ctx context.Context, token string) error
	Due(ctx context.Context, now time.Time) ([]string, error)
	Tracked(ctx context.Context) (int, error)
}

// MemoryQueue is the in-process Queue.
type MemoryQueue struct {
	mu  sync.Mutex
	due map[string]time.Time
}

func NewMemoryQueue() *MemoryQueue {
	return &MemoryQueue{due: make(map[string]time.Time)}
}

func (q *MemoryQueue) Track(_ context.Context, token string, due time.Time) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.due[token] = due
	return nil
}

func (q *MemoryQueue) Untrack(_ context.Context, token string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	delete(q.due, token)
	return nil
}

func (q *MemoryQueue) Due(_ context.Context, now time.Time) ([]string, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	var tokens []string
	for token, due := range q.due {
		if !due.After(now) {
			tokens = append(tokens, token)
		}
	}
	return tokens, nil
}

func (q *MemoryQueue) Tracked(context.Context) (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.due), nil
}
