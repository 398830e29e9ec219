package session

import (
	"context"
	"encoding/gob"
	"errors"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/astral-cool/astral-web/internal/notice"
)

const (
	stateKey  = "state"
	noticeKey = "notice"
	inviteKey = "invite"

	CookieName = "astral_session"

	lookupTimeout = 2 * time.Second
)

// ErrGone is returned by Replace when the session no longer exists.
var ErrGone = errors.New("session: gone")

func init() {
	gob.Register(State{})
	gob.Register(notice.Notice{})
}

// Manager stores State and flash notices through scs.
type Manager struct {
	scs *scs.SessionManager
}

// NewManager builds a manager over store. A nil store keeps the scs default
// (in-memory).
func NewManager(store scs.Store, lifetime time.Duration, secure bool) *Manager {
	sm := scs.New()
	if store != nil {
		sm.Store = store
	}
	sm.Lifetime = lifetime
	sm.Cookie.Name = CookieName
	sm.Cookie.Path = "/"
	sm.Cookie.HttpOnly = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Secure = secure
	return &Manager{scs: sm}
}

// LoadAndSave is the middleware that loads the session for each request.
func (m *Manager) LoadAndSave(next http.Handler) http.Handler {
	return m.scs.LoadAndSave(next)
}

// Create starts a fresh session holding st. The token is renewed to avoid
// fixation.
func (m *Manager) Create(ctx context.Context, st State) error {
	if err := m.scs.RenewToken(ctx); err != nil {
		return err
	}
	m.scs.Put(ctx, stateKey, st)
	return nil
}

// Get returns the request's state if the user is signed in.
func (m *Manager) Get(ctx context.Context) (State, bool) {
	st, ok := m.scs.Get(ctx, stateKey).(State)
	if !ok || !st.SignedIn() {
		return State{}, false
	}
	return st, true
}

// Save replaces the request's state. When a background refresh
// committed a newer snapshot after the request loaded st, st is rebased on
// it so the refreshed tokens and listings are not written back stale.
func (m *Manager) Save(ctx context.Context, st State) {
	if token := m.scs.Token(ctx); token != "" {
		// scs reuses the session already in ctx, so read the store from a
		// context without it.
		lctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
		fresh, ok, err := m.Lookup(lctx, token)
		cancel()
		if err == nil && ok && fresh.FetchedAt.After(st.FetchedAt) {
			st = st.Rebase(fresh)
		}
	}
	m.scs.Put(ctx, stateKey, st)
}

func (m *Manager) Destroy(ctx context.Context) error {
	return m.scs.Destroy(ctx)
}

// Token is the session token of the request, empty before the first write.
func (m *Manager) Token(ctx context.Context) string {
	return m.scs.Token(ctx)
}

// Flash stores n to be shown on the next page render.
func (m *Manager) Flash(ctx context.Context, n notice.Notice) {
	if n.Zero() {
		return
	}
	m.scs.Put(ctx, noticeKey, n)
}

// PopNotice returns and clears the pending notice.
func (m *Manager) PopNotice(ctx context.Context) (notice.Notice, bool) {
	n, ok := m.scs.Pop(ctx, noticeKey).(notice.Notice)
	return n, ok
}

// RememberInvite keeps an invite code from a landing link for the
// register form.
func (m *Manager) RememberInvite(ctx context.Context, code string) {
	m.scs.Put(ctx, inviteKey, code)
}

func (m *Manager) Invite(ctx context.Context) string {
	return m.scs.GetString(ctx, inviteKey)
}

// Lookup reads the state of another session by token, outside of any
// request.
func (m *Manager) Lookup(ctx context.Context, token string) (State, bool, error) {
	sctx, err := m.scs.Load(ctx, token)
	if err != nil {
		return State{}, false, err
	}
	st, ok := m.scs.Get(sctx, stateKey).(State)
	if !ok || !st.SignedIn() {
		return State{}, false, nil
	}
	return st, true, nil
}

// Replace overwrites the state of the session identified by token and
// commits it to the store. It fails with ErrGone once the session has
// expired or been destroyed.
func (m *Manager) Replace(ctx context.Context, token string, st State) error {
	sctx, err := m.scs.Load(ctx, token)
	if err != nil {
		return err
	}
	if _, ok := m.scs.Get(sctx, stateKey).(State); !ok {
		return ErrGone
	}
	m.scs.Put(sctx, stateKey, st)
	_, _, err = m.scs.Commit(sctx)
	return err
}
