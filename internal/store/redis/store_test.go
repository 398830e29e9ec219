package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestSessionKeyRoundTrip(t *testing.T) {
	key := SessionKey("tok123")
	if key != "astral:session:tok123" {
		t.Fatalf("SessionKey() = %q", key)
	}
	token, err := ExtractSessionToken(key)
	if err != nil || token != "tok123" {
		t.Errorf("ExtractSessionToken() = %q, %v", token, err)
	}
	if _, err := ExtractSessionToken(KeyPrefixSession); err == nil {
		t.Error("prefix alone should be rejected")
	}
}

// unreachable returns a store whose client fails fast.
func unreachable() *Store {
	return NewStore(redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	}))
}

func TestErrorsAreWrapped(t *testing.T) {
	s := unreachable()
	ctx := context.Background()

	if _, _, err := s.FindCtx(ctx, "tok"); err == nil {
		t.Error("FindCtx() should fail without redis")
	}
	if err := s.CommitCtx(ctx, "tok", []byte("x"), time.Now().Add(time.Minute)); err == nil {
		t.Error("CommitCtx() should fail without redis")
	}
	if err := s.Track(ctx, "tok", time.Now()); err == nil {
		t.Error("Track() should fail without redis")
	}
	if err := s.Ping(ctx); err == nil {
		t.Error("Ping() should fail without redis")
	}
}
