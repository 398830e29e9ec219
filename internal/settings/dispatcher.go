package settings

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/astral-cool/astral-web/internal/api"
	"github.com/astral-cool/astral-web/internal/embed"
	"github.com/astral-cool/astral-web/internal/logger"
	"github.com/astral-cool/astral-web/internal/notice"
	"github.com/astral-cool/astral-web/internal/session"
	"github.com/astral-cool/astral-web/internal/timezones"
)

var (
	ErrInvalidDomain   = errors.New("invalid domain selection")
	ErrInvalidInterval = errors.New("invalid auto-wipe interval")
	ErrSubdomainLength = errors.New("subdomain too long")
	ErrUnknownIntent   = errors.New("unknown intent")
)

// Backend is the subset of the API client settings are persisted with.
type Backend interface {
	UpdateSettings(ctx context.Context, access string, patch map[string]bool) error
	UpdateEmbed(ctx context.Context, access string, upd api.EmbedUpdate) error
	SaveDomain(ctx context.Context, access string, upd api.DomainUpdate) error
	SetWipeInterval(ctx context.Context, access string, ms int64) error
}

type Dispatcher struct {
	backend Backend
	logger  logger.Logger
}

func NewDispatcher(backend Backend, log logger.Logger) *Dispatcher {
	return &Dispatcher{backend: backend, logger: log}
}

// Dispatch applies in to st. On failure st is returned untouched together
// with an error notice and the cause.
func (d *Dispatcher) Dispatch(ctx context.Context, st session.State, in Intent) (session.State, notice.Notice, error) {
	switch in := in.(type) {
	case Toggle:
		return d.toggle(ctx, st, in)
	case EditEmbed:
		return editEmbed(st, in)
	case SaveEmbed:
		return d.saveEmbed(ctx, st)
	case SelectDomain:
		return selectDomain(st, in)
	case SetSubdomain:
		return setSubdomain(st, in)
	case SaveDomain:
		return d.saveDomain(ctx, st)
	case SetWipeInterval:
		return d.setWipeInterval(ctx, st, in)
	case SetPreviewZone:
		return setPreviewZone(st, in)
	default:
		return st, notice.Failure("Unsupported action"), fmt.Errorf("%w: %T", ErrUnknownIntent, in)
	}
}

// fail logs errors the user cannot act on and builds the matching notice.
func (d *Dispatcher) fail(st session.State, op string, err error) (session.State, notice.Notice, error) {
	if _, ok := api.AsError(err); !ok {
		d.logger.Error("settings update failed",
			logger.String("op", op),
			logger.String("user", st.User.Username),
			logger.Error(err))
	}
	return st, notice.FromError(err), fmt.Errorf("%s: %w", op, err)
}

func (d *Dispatcher) toggle(ctx context.Context, st session.State, in Toggle) (session.State, notice.Notice, error) {
	if _, err := ParseFlag(string(in.Flag)); err != nil {
		return st, notice.Failure("Unknown setting"), err
	}

	if err := d.backend.UpdateSettings(ctx, st.Tokens.Access, map[string]bool{string(in.Flag): in.Enabled}); err != nil {
		return d.fail(st, "update settings", err)
	}

	s := st.User.Settings
	switch in.Flag {
	case FlagLongURL:
		s.LongURL = in.Enabled
	case FlagShowLink:
		s.ShowLink = in.Enabled
	case FlagInvisibleURL:
		s.InvisibleURL = in.Enabled
	case FlagEmbeds:
		s.Embed.Enabled = in.Enabled
	case FlagAutoWipe:
		s.AutoWipe.Enabled = in.Enabled
	case FlagRandomDomain:
		s.RandomDomain.Enabled = in.Enabled
	}

	verb := "Disabled"
	if in.Enabled {
		verb = "Enabled"
	}
	return st.WithSettings(s), notice.Success(fmt.Sprintf("%s %s successfully.", verb, in.Flag)), nil
}

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

func editEmbed(st session.State, in EditEmbed) (session.State, notice.Notice, error) {
	s := st.User.Settings
	e := s.Embed

	var skipped []string
	set := func(dst *string, v, name string, limit int) {
		if utf8.RuneCountInString(v) > limit {
			skipped = append(skipped, fmt.Sprintf("%s is limited to %d characters", name, limit))
			return
		}
		*dst = v
	}
	set(&e.Title, in.Title, "Title", embed.MaxTitleLen)
	set(&e.Description, in.Description, "Description", embed.MaxDescriptionLen)
	set(&e.Author, in.Author, "Author", embed.MaxAuthorLen)

	if hexColor.MatchString(in.Color) {
		e.Color = in.Color
	}
	e.RandomColor = in.RandomColor

	s.Embed = e
	next := st.WithSettings(s)
	if len(skipped) > 0 {
		return next, notice.Failure(strings.Join(skipped, ", ") + "."), nil
	}
	return next, notice.Notice{}, nil
}

func (d *Dispatcher) saveEmbed(ctx context.Context, st session.State) (session.State, notice.Notice, error) {
	e := st.User.Settings.Embed
	err := d.backend.UpdateEmbed(ctx, st.Tokens.Access, api.EmbedUpdate{
		Color:       e.Color,
		Title:       e.Title,
		Description: e.Description,
		Author:      e.Author,
		RandomColor: e.RandomColor,
	})
	if err != nil {
		return d.fail(st, "update embed", err)
	}
	return st, notice.Success("Updated embed settings."), nil
}

func selectDomain(st session.State, in SelectDomain) (session.State, notice.Notice, error) {
	dom, ok := st.Domain(in.Name)
	if !ok {
		return st, notice.Failure("Invalid domain selection"), ErrInvalidDomain
	}

	sub := st.Selection.Subdomain
	if dom.Wildcard {
		sub = ""
	}
	return st.WithSelection(session.DomainSelection{
		Name:      dom.Name,
		Wildcard:  dom.Wildcard,
		Subdomain: sub,
	}), notice.Notice{}, nil
}

func setSubdomain(st session.State, in SetSubdomain) (session.State, notice.Notice, error) {
	v, ok := SanitizeSubdomain(in.Value)
	if !ok {
		return st, notice.Failure(fmt.Sprintf("Subdomains are limited to %d characters.", MaxSubdomainLen)), ErrSubdomainLength
	}
	sel := st.Selection
	sel.Subdomain = v
	return st.WithSelection(sel), notice.Notice{}, nil
}

func (d *Dispatcher) saveDomain(ctx context.Context, st session.State) (session.State, notice.Notice, error) {
	dom, ok := st.Domain(st.Selection.Name)
	if !ok {
		return st, notice.Failure("Invalid domain selection"), ErrInvalidDomain
	}

	sub := st.Selection.Subdomain
	if err := d.backend.SaveDomain(ctx, st.Tokens.Access, api.DomainUpdate{Domain: dom.Name, Subdomain: sub}); err != nil {
		return d.fail(st, "save domain", err)
	}

	s := st.User.Settings
	s.Domain = api.DomainPreference{Name: dom.Name, Subdomain: sub}
	return st.WithSettings(s), notice.Success("Updated domain successfully."), nil
}

func (d *Dispatcher) setWipeInterval(ctx context.Context, st session.State, in SetWipeInterval) (session.State, notice.Notice, error) {
	p, ok := PresetFor(in.Interval)
	if !ok {
		return st, notice.Failure("Invalid auto-wipe interval"), ErrInvalidInterval
	}

	ms := p.Millis()
	if err := d.backend.SetWipeInterval(ctx, st.Tokens.Access, ms); err != nil {
		return d.fail(st, "set wipe interval", err)
	}

	s := st.User.Settings
	s.AutoWipe.Interval = ms
	return st.WithSettings(s), notice.Success(fmt.Sprintf("Updated auto-wipe interval to %dms.", ms)), nil
}

func setPreviewZone(st session.State, in SetPreviewZone) (session.State, notice.Notice, error) {
	if in.Zone == "" {
		return st.WithPreviewZone(""), notice.Notice{}, nil
	}
	loc, err := timezones.Resolve(in.Zone)
	if err != nil {
		return st, notice.Failure("Unknown time zone"), err
	}
	return st.WithPreviewZone(loc.String()), notice.Notice{}, nil
}
