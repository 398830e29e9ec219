// Package forms validates the landing page forms before anything is sent to
// the backend.
package forms

import (
	"net/mail"
	"net/url"
	"strings"
	"unicode/utf8"
)

const (
	MsgUsername = "Provide a valid username"
	MsgPassword = "Provide a valid password"
	MsgEmail    = "Provide a valid email"
	MsgInvite   = "Provide a valid invite"
)

type Login struct {
	Username string
	Password string
}

type Register struct {
	Username string
	Password string
	Email    string
	Invite   string
}

type PasswordReset struct {
	Email string
}

// ParseLogin reads a login form. Values are trimmed except the password.
func ParseLogin(v url.Values) Login {
	return Login{
		Username: strings.TrimSpace(v.Get("username")),
		Password: v.Get("password"),
	}
}

func ParseRegister(v url.Values) Register {
	return Register{
		Username: strings.TrimSpace(v.Get("username")),
		Password: v.Get("password"),
		Email:    strings.TrimSpace(v.Get("email")),
		Invite:   strings.TrimSpace(v.Get("invite")),
	}
}

func ParsePasswordReset(v url.Values) PasswordReset {
	return PasswordReset{Email: strings.TrimSpace(v.Get("email"))}
}

// Validate returns the failed rule messages, de-duplicated in field order.
func (f Login) Validate() []string {
	return collect(
		check(minLen(f.Username, 3), MsgUsername),
		check(minLen(f.Password, 5), MsgPassword),
	)
}

func (f Register) Validate() []string {
	return collect(
		check(minLen(f.Username, 3), MsgUsername),
		check(minLen(f.Password, 5), MsgPassword),
		check(validEmail(f.Email), MsgEmail),
		check(f.Invite != "", MsgInvite),
	)
}

func (f PasswordReset) Validate() []string {
	return collect(check(validEmail(f.Email), MsgEmail))
}

func check(ok bool, msg string) string {
	if ok {
		return ""
	}
	return msg
}

func collect(msgs ...string) []string {
	var out []string
	seen := make(map[string]struct{}, len(msgs))
	for _, m := range msgs {
		if m == "" {
			continue
		}
		if _, dup := seen[m]; dup {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}
	return out
}

// minLen also covers "required": an empty value never reaches n >= 1.
func minLen(v string, n int) bool {
	return utf8.RuneCountInString(v) >= n
}

// validEmail accepts a bare address (no display name) with a dotted domain.
func validEmail(v string) bool {
	if v == "" {
		return false
	}
	addr, err := mail.ParseAddress(v)
	if err != nil || addr.Name != "" || addr.Address != v {
		return false
	}
	at := strings.LastIndexByte(v, '@')
	domain := v[at+1:]
	return strings.Contains(domain, ".") && !strings.HasSuffix(domain, ".")
}
