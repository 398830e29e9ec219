package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store keeps session payloads and the refresh queue in Redis.
type Store struct {
	client *redis.Client
}

// NewStore creates a new Redis store
func NewStore(client *redis.Client) *Store {
	return &Store{
		client: client,
	}
}

// Ping reports whether Redis answers.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// FindCtx returns the session payload for token. found is false when the
// token is unknown or expired.
func (s *Store) FindCtx(ctx context.Context, token string) ([]byte, bool, error) {
	b, err := s.client.Get(ctx, SessionKey(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get session: %w", err)
	}
	return b, true, nil
}

// CommitCtx stores the payload until expiry.
func (s *Store) CommitCtx(ctx context.Context, token string, b []byte, expiry time.Time) error {
	ttl := time.Until(expiry)
	if ttl <= 0 {
		return s.DeleteCtx(ctx, token)
	}
	if err := s.client.Set(ctx, SessionKey(token), b, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// DeleteCtx removes the session and drops it from the refresh queue.
func (s *Store) DeleteCtx(ctx context.Context, token string) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, SessionKey(token))
	pipe.ZRem(ctx, KeyRefreshQueue, token)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// AllCtx returns every live session payload keyed by token.
func (s *Store) AllCtx(ctx context.Context) (map[string][]byte, error) {
	out := make(map[string][]byte)
	iter := s.client.Scan(ctx, 0, KeyPrefixSession+"*", 0).Iterator()
	for iter.Next(ctx) {
		token, err := ExtractSessionToken(iter.Val())
		if err != nil {
			continue
		}
		b, found, err := s.FindCtx(ctx, token)
		if err != nil {
			return nil, err
		}
		if found {
			out[token] = b
		}
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan sessions: %w", err)
	}
	return out, nil
}

// The context-free variants satisfy scs.Store; scs prefers the Ctx ones.

func (s *Store) Find(token string) ([]byte, bool, error) {
	return s.FindCtx(context.Background(), token)
}

func (s *Store) Commit(token string, b []byte, expiry time.Time) error {
	return s.CommitCtx(context.Background(), token, b, expiry)
}

func (s *Store) Delete(token string) error {
	return s.DeleteCtx(context.Background(), token)
}
