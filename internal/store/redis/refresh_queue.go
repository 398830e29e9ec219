package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Track schedules token for a refresh at due, replacing any earlier entry.
func (s *Store) Track(ctx context.Context, token string, due time.Time) error {
	err := s.client.ZAdd(ctx, KeyRefreshQueue, redis.Z{
		Score:  float64(due.UnixMilli()),
		Member: token,
	}).Err()
	if err != nil {
		return fmt.Errorf("failed to track session: %w", err)
	}
	return nil
}

// Untrack removes token from the refresh queue.
func (s *Store) Untrack(ctx context.Context, token string) error {
	if err := s.client.ZRem(ctx, KeyRefreshQueue, token).Err(); err != nil {
		return fmt.Errorf("failed to untrack session: %w", err)
	}
	return nil
}

// Due lists the tokens whose refresh time is at or before now.
func (s *Store) Due(ctx context.Context, now time.Time) ([]string, error) {
	tokens, err := s.client.ZRangeByScore(ctx, KeyRefreshQueue, &redis.ZRangeBy{
		Min: "-inf",
		Max: strconv.FormatInt(now.UnixMilli(), 10),
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list due sessions: %w", err)
	}
	return tokens, nil
}

// Tracked counts the sessions in the refresh queue.
func (s *Store) Tracked(ctx context.Context) (int, error) {
	n, err := s.client.ZCard(ctx, KeyRefreshQueue).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to count tracked sessions: %w", err)
	}
	return int(n), nil
}
