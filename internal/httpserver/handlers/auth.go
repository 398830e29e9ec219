package handlers

import (
	"net/http"
	"strings"

	"github.com/astral-cool/astral-web/internal/api"
	"github.com/astral-cool/astral-web/internal/forms"
	"github.com/astral-cool/astral-web/internal/httpserver/deps"
	"github.com/astral-cool/astral-web/internal/logger"
	"github.com/astral-cool/astral-web/internal/notice"
	"github.com/astral-cool/astral-web/internal/session"
)

const (
	TabLogin    = "login"
	TabRegister = "register"
	TabReset    = "reset"

	MsgRegistered = "Registered successfully, check your email to verify."
	MsgResetSent  = "If a user exist with that email we'll send over the password reset instructions."
)

type landingPage struct {
	Tab        string
	Invite     string
	DiscordURL string
}

// Landing shows the login, register and password reset forms. An invite
// link (?code=) opens the register tab with the code filled in.
func Landing(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if _, ok := d.Sessions.Get(ctx); ok {
			http.Redirect(w, r, "/dashboard", http.StatusFound)
			return
		}

		q := r.URL.Query()
		tab := TabLogin
		switch q.Get("tab") {
		case TabRegister:
			tab = TabRegister
		case TabReset:
			tab = TabReset
		}
		if code := strings.TrimSpace(q.Get("code")); code != "" {
			d.Sessions.RememberInvite(ctx, code)
			tab = TabRegister
		}

		render(d, w, r, "landing", "", landingPage{
			Tab:        tab,
			Invite:     d.Sessions.Invite(ctx),
			DiscordURL: d.Backend.DiscordLoginURL(),
		})
	}
}

// Login signs the user in, loads their snapshot and schedules its refresh.
func Login(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if err := r.ParseForm(); err != nil {
			back(d, w, r, "/?tab=login", notice.Failure("Invalid form submission."))
			return
		}

		form := forms.ParseLogin(r.PostForm)
		if errs := form.Validate(); len(errs) > 0 {
			back(d, w, r, "/?tab=login", notice.Validation(errs))
			return
		}

		auth, err := d.Backend.Login(ctx, form.Username, form.Password)
		if err != nil {
			back(d, w, r, "/?tab=login", failure(d, r, "login", err))
			return
		}

		st, err := session.Load(ctx, d.Backend, auth, d.Site.DefaultDomain)
		if err != nil {
			back(d, w, r, "/?tab=login", failure(d, r, "load session", err))
			return
		}

		if err := d.Sessions.Create(ctx, st); err != nil {
			back(d, w, r, "/?tab=login", failure(d, r, "create session", err))
			return
		}
		if err := d.Refresher.Track(ctx, d.Sessions.Token(ctx)); err != nil {
			logFor(d, r).Warn("failed to schedule session refresh",
				logger.String("user", st.User.Username),
				logger.Error(err))
		}

		logFor(d, r).Info("user signed in", logger.String("user", st.User.Username))
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
	}
}

func Register(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			back(d, w, r, "/?tab=register", notice.Failure("Invalid form submission."))
			return
		}

		form := forms.ParseRegister(r.PostForm)
		if errs := form.Validate(); len(errs) > 0 {
			back(d, w, r, "/?tab=register", notice.Validation(errs))
			return
		}

		err := d.Backend.Register(r.Context(), api.Registration{
			Username: form.Username,
			Password: form.Password,
			Email:    form.Email,
			Invite:   form.Invite,
		})
		if err != nil {
			back(d, w, r, "/?tab=register", failure(d, r, "register", err))
			return
		}
		back(d, w, r, "/?tab=login", notice.Success(MsgRegistered))
	}
}

func PasswordReset(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			back(d, w, r, "/?tab=reset", notice.Failure("Invalid form submission."))
			return
		}

		form := forms.ParsePasswordReset(r.PostForm)
		if errs := form.Validate(); len(errs) > 0 {
			back(d, w, r, "/?tab=reset", notice.Validation(errs))
			return
		}

		if err := d.Backend.SendPasswordReset(r.Context(), form.Email); err != nil {
			back(d, w, r, "/?tab=reset", failure(d, r, "password reset", err))
			return
		}
		back(d, w, r, "/?tab=login", notice.Success(MsgResetSent))
	}
}

// Logout ends the session and stops its refresh.
func Logout(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if token := d.Sessions.Token(ctx); token != "" {
			if err := d.Refresher.Untrack(ctx, token); err != nil {
				logFor(d, r).Warn("failed to untrack session", logger.Error(err))
			}
		}
		if err := d.Sessions.Destroy(ctx); err != nil {
			logFor(d, r).Error("failed to destroy session", logger.Error(err))
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// Throttled answers auth form posts over the rate limit.
func Throttled(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		back(d, w, r, "/", notice.Failure("Too many attempts, please wait a minute and try again."))
	}
}

// RequireLogin sends anonymous visitors to the landing page.
func RequireLogin(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusFound)
}
