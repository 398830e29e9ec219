package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2/memstore"

	"github.com/astral-cool/astral-web/internal/api"
	"github.com/astral-cool/astral-web/internal/notice"
)

func signedIn(name string) State {
	return State{
		User:   api.User{Username: name},
		Tokens: api.Tokens{Access: "a", Refresh: "r"},
	}
}

func newTestManager() *Manager {
	return NewManager(memstore.New(), time.Hour, false)
}

func loaded(t *testing.T, m *Manager, token string) context.Context {
	t.Helper()
	ctx, err := m.scs.Load(context.Background(), token)
	if err != nil {
		t.Fatalf("load session: %v", err)
	}
	return ctx
}

func TestCreateAndGet(t *testing.T) {
	m := newTestManager()
	ctx := loaded(t, m, "")

	if _, ok := m.Get(ctx); ok {
		t.Fatal("empty session should not be signed in")
	}
	if err := m.Create(ctx, signedIn("ann")); err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	st, ok := m.Get(ctx)
	if !ok || st.User.Username != "ann" {
		t.Errorf("Get() = %+v, %v", st, ok)
	}
	if m.Token(ctx) == "" {
		t.Error("Create() should assign a token")
	}
}

func TestFlashIsPoppedOnce(t *testing.T) {
	m := newTestManager()
	ctx := loaded(t, m, "")

	m.Flash(ctx, notice.Notice{})
	if _, ok := m.PopNotice(ctx); ok {
		t.Fatal("zero notice should not be stored")
	}

	m.Flash(ctx, notice.Success("Updated embed settings."))
	n, ok := m.PopNotice(ctx)
	if !ok || n.Description != "Updated embed settings." {
		t.Errorf("PopNotice() = %+v, %v", n, ok)
	}
	if _, ok := m.PopNotice(ctx); ok {
		t.Error("notice should be cleared after pop")
	}
}

func TestReplaceCommitsToStore(t *testing.T) {
	m := newTestManager()
	ctx := loaded(t, m, "")
	if err := m.Create(ctx, signedIn("ann")); err != nil {
		t.Fatal(err)
	}
	token, _, err := m.scs.Commit(ctx)
	if err != nil {
		t.Fatal(err)
	}

	next := signedIn("ann").WithPreviewZone("UTC")
	if err := m.Replace(context.Background(), token, next); err != nil {
		t.Fatalf("Replace() error: %v", err)
	}

	st, ok, err := m.Lookup(context.Background(), token)
	if err != nil || !ok {
		t.Fatalf("Lookup() = %v, %v", ok, err)
	}
	if st.PreviewZone != "UTC" {
		t.Errorf("PreviewZone = %q, want UTC", st.PreviewZone)
	}
}

func TestSaveKeepsRefreshedTokens(t *testing.T) {
	m := newTestManager()
	t0 := time.Date(2024, 3, 5, 14, 0, 0, 0, time.UTC)

	ctx := loaded(t, m, "")
	first := signedIn("ann")
	first.FetchedAt = t0
	if err := m.Create(ctx, first); err != nil {
		t.Fatal(err)
	}
	token, _, err := m.scs.Commit(ctx)
	if err != nil {
		t.Fatal(err)
	}

	// A settings request loads the snapshot, then a refresh lands.
	req := loaded(t, m, token)
	st, ok := m.Get(req)
	if !ok {
		t.Fatal("session should be signed in")
	}

	refreshed := signedIn("ann").WithTokens(api.Tokens{Access: "a-2", Refresh: "r-2"})
	refreshed.FetchedAt = t0.Add(13 * time.Minute)
	if err := m.Replace(context.Background(), token, refreshed); err != nil {
		t.Fatal(err)
	}

	settings := st.User.Settings
	settings.LongURL = true
	m.Save(req, st.WithSettings(settings).WithPreviewZone("Asia/Tokyo"))

	got, _ := m.Get(req)
	if got.Tokens.Access != "a-2" || got.Tokens.Refresh != "r-2" {
		t.Errorf("Tokens = %+v, want the refreshed pair", got.Tokens)
	}
	if !got.User.Settings.LongURL || got.PreviewZone != "Asia/Tokyo" {
		t.Errorf("page edits lost: %+v", got)
	}
	if !got.FetchedAt.Equal(refreshed.FetchedAt) {
		t.Errorf("FetchedAt = %v", got.FetchedAt)
	}
}

func TestSaveWithoutRefresh(t *testing.T) {
	m := newTestManager()
	ctx := loaded(t, m, "")
	if err := m.Create(ctx, signedIn("ann")); err != nil {
		t.Fatal(err)
	}
	m.Save(ctx, signedIn("ann").WithPreviewZone("UTC"))
	if got, _ := m.Get(ctx); got.PreviewZone != "UTC" {
		t.Errorf("PreviewZone = %q, want UTC", got.PreviewZone)
	}
}

func TestReplaceGoneSession(t *testing.T) {
	m := newTestManager()
	err := m.Replace(context.Background(), "does-not-exist", signedIn("ann"))
	if !errors.Is(err, ErrGone) {
		t.Errorf("Replace() error = %v, want ErrGone", err)
	}
}

func TestInviteRemembered(t *testing.T) {
	m := newTestManager()
	ctx := loaded(t, m, "")
	m.RememberInvite(ctx, "abc123")
	if got := m.Invite(ctx); got != "abc123" {
		t.Errorf("Invite() = %q", got)
	}
}
