package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"

	"github.com/astral-cool/astral-web/internal/embed"
	"github.com/astral-cool/astral-web/internal/httpserver/deps"
	"github.com/astral-cool/astral-web/internal/session"
	"github.com/astral-cool/astral-web/internal/settings"
	"github.com/astral-cool/astral-web/internal/timezones"
)

type stateContextKey struct{}

// RegisterEmbedAPI mounts the JSON operations used by the embed editor.
func RegisterEmbedAPI(api huma.API, d deps.Deps) {
	group := huma.NewGroup(api, "/api/embed")

	huma.Get(group, "/suggest", suggestTokens)

	signedIn := huma.NewGroup(group)
	signedIn.UseMiddleware(sessionMiddleware(api, d))
	huma.Post(signedIn, "/preview", previewEmbed(d))
}

func sessionMiddleware(api huma.API, d deps.Deps) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		req, _ := humachi.Unwrap(ctx)
		st, ok := d.Sessions.Get(req.Context())
		if !ok {
			_ = huma.WriteErr(api, ctx, http.StatusUnauthorized, "unauthorized")
			return
		}
		next(huma.WithValue(ctx, stateContextKey{}, st))
	}
}

func stateFromContext(ctx context.Context) (session.State, error) {
	st, ok := ctx.Value(stateContextKey{}).(session.State)
	if !ok {
		return session.State{}, huma.Error401Unauthorized("unauthorized")
	}
	return st, nil
}

type suggestInput struct {
	Query string `query:"q" maxLength:"2000" doc:"Text of the field being edited"`
}

type suggestion struct {
	Token string `json:"token" doc:"Placeholder being suggested"`
	Value string `json:"value" doc:"Field text once the suggestion is accepted"`
}

type suggestOutput struct {
	Body struct {
		Suggestions []suggestion `json:"suggestions"`
	}
}

func suggestTokens(_ context.Context, in *suggestInput) (*suggestOutput, error) {
	out := &suggestOutput{}
	out.Body.Suggestions = []suggestion{}
	for _, token := range embed.Suggest(in.Query) {
		out.Body.Suggestions = append(out.Body.Suggestions, suggestion{
			Token: token,
			Value: embed.Complete(in.Query, token),
		})
	}
	return out, nil
}

type previewInput struct {
	Body struct {
		Author      string `json:"author,omitempty" maxLength:"200"`
		Title       string `json:"title,omitempty" maxLength:"200"`
		Description string `json:"description,omitempty" maxLength:"2000"`
		Color       string `json:"color,omitempty" pattern:"^#[0-9a-fA-F]{6}$"`
		RandomColor bool   `json:"randomColor,omitempty"`
		Zone        string `json:"zone,omitempty" doc:"IANA zone, defaults to the preview zone of the session"`
	}
}

type previewOutput struct {
	Body embed.Preview
}

// previewEmbed renders unsaved fields with the caller's session data, the
// way the settings page does.
func previewEmbed(d deps.Deps) func(context.Context, *previewInput) (*previewOutput, error) {
	return func(ctx context.Context, in *previewInput) (*previewOutput, error) {
		st, err := stateFromContext(ctx)
		if err != nil {
			return nil, err
		}

		fctx := settings.PreviewContext(st, d.Sample(), d.Now())
		if in.Body.Zone != "" {
			loc, err := timezones.Resolve(in.Body.Zone)
			if err != nil {
				return nil, huma.Error422UnprocessableEntity("unknown time zone", err)
			}
			fctx.Location = loc
		}

		p := embed.Render(
			embed.Fields{Author: in.Body.Author, Title: in.Body.Title, Description: in.Body.Description},
			embed.Appearance{Color: in.Body.Color, RandomColor: in.Body.RandomColor},
			fctx,
			d.Rand,
		)
		return &previewOutput{Body: p}, nil
	}
}
