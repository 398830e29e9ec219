package session

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/astral-cool/astral-web/internal/api"
)

type fakeBackend struct {
	calls   []string
	failAt  string
	refresh string
}

func (f *fakeBackend) step(name string) error {
	f.calls = append(f.calls, name)
	if f.failAt == name {
		return &api.Error{Status: 500, Message: name + " failed"}
	}
	return nil
}

func (f *fakeBackend) RefreshToken(_ context.Context, refresh string) (api.AuthResult, error) {
	f.refresh = refresh
	if err := f.step("refresh"); err != nil {
		return api.AuthResult{}, err
	}
	return api.AuthResult{
		Tokens: api.Tokens{Access: "a-2", Refresh: refresh},
		User: api.User{Username: "ann", Settings: api.Settings{
			Domain: api.DomainPreference{Name: "astral.cool", Subdomain: "ann"},
		}},
	}, nil
}

func (f *fakeBackend) Images(context.Context, string) (api.ImagesResult, error) {
	return api.ImagesResult{Images: []api.Image{{Filename: "new.png"}, {Filename: "old.png"}}, StorageUsed: 1024}, f.step("images")
}

func (f *fakeBackend) Invites(context.Context, string) ([]api.Invite, error) {
	return []api.Invite{{Code: "inv"}}, f.step("invites")
}

func (f *fakeBackend) Domains(context.Context, string) ([]api.Domain, error) {
	return []api.Domain{{Name: "astral.cool", Wildcard: true}, {Name: "short.ly"}}, f.step("domains")
}

func (f *fakeBackend) ShortenedURLs(context.Context, string) ([]api.ShortenedURL, error) {
	return []api.ShortenedURL{{ShortID: "x"}}, f.step("urls")
}

func TestBootstrapOrder(t *testing.T) {
	b := &fakeBackend{}
	st, err := Bootstrap(context.Background(), b, "r-1", "i.astral.cool")
	if err != nil {
		t.Fatalf("Bootstrap() error: %v", err)
	}

	want := []string{"refresh", "images", "invites", "domains", "urls"}
	if diff := cmp.Diff(want, b.calls); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}
	if b.refresh != "r-1" {
		t.Errorf("refresh token = %q", b.refresh)
	}
	if !st.SignedIn() || st.StorageUsed != 1024 || len(st.Invites) != 1 || len(st.URLs) != 1 {
		t.Errorf("unexpected state: %+v", st)
	}
	if img, _ := st.LatestImage(); img.Filename != "new.png" {
		t.Errorf("LatestImage() = %q", img.Filename)
	}
	if st.Selection != (DomainSelection{Name: "astral.cool", Wildcard: true, Subdomain: "ann"}) {
		t.Errorf("Selection = %+v", st.Selection)
	}
	if st.FetchedAt.IsZero() {
		t.Error("FetchedAt should be set")
	}
}

func TestBootstrapStopsAtFirstFailure(t *testing.T) {
	b := &fakeBackend{failAt: "invites"}
	_, err := Bootstrap(context.Background(), b, "r-1", "i.astral.cool")
	if err == nil {
		t.Fatal("expected error")
	}
	var apiErr *api.Error
	if !errors.As(err, &apiErr) {
		t.Errorf("error should wrap *api.Error, got %v", err)
	}
	if diff := cmp.Diff([]string{"refresh", "images", "invites"}, b.calls); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}
}

func TestReloadKeepsPagePicks(t *testing.T) {
	prev := State{
		Tokens:      api.Tokens{Access: "a-1", Refresh: "r-1"},
		Selection:   DomainSelection{Name: "short.ly", Subdomain: "kept"},
		PreviewZone: "Asia/Tokyo",
	}
	next, err := Reload(context.Background(), &fakeBackend{}, prev, "i.astral.cool")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(DomainSelection{Name: "short.ly", Subdomain: "kept"}, next.Selection); diff != "" {
		t.Errorf("Selection mismatch (-want +got):\n%s", diff)
	}
	if next.PreviewZone != "Asia/Tokyo" || next.Tokens.Access != "a-2" {
		t.Errorf("unexpected state: %+v", next)
	}

	prev.Selection.Name = "gone.example"
	next, _ = Reload(context.Background(), &fakeBackend{}, prev, "i.astral.cool")
	if next.Selection.Name != "astral.cool" {
		t.Errorf("vanished selection should fall back to the saved domain, got %q", next.Selection.Name)
	}
}

func TestInitialSelection(t *testing.T) {
	domains := []api.Domain{{Name: "astral.cool", Wildcard: true}, {Name: "short.ly"}}

	tests := []struct {
		name  string
		saved api.DomainPreference
		want  DomainSelection
	}{
		{"saved wildcard", api.DomainPreference{Name: "astral.cool", Subdomain: "ann"}, DomainSelection{Name: "astral.cool", Wildcard: true, Subdomain: "ann"}},
		{"saved plain", api.DomainPreference{Name: "short.ly"}, DomainSelection{Name: "short.ly"}},
		{"unknown falls back", api.DomainPreference{Name: "removed.io", Subdomain: "x"}, DomainSelection{Name: "i.astral.cool", Subdomain: "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := api.User{Settings: api.Settings{Domain: tt.saved}}
			got := InitialSelection(u, domains, "i.astral.cool")
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("InitialSelection() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWithDoesNotMutateReceiver(t *testing.T) {
	orig := State{
		User:    api.User{Settings: api.Settings{RandomDomain: api.RandomDomain{Domains: []string{"a"}}}},
		Domains: []api.Domain{{Name: "astral.cool"}},
	}

	settings := orig.User.Settings
	settings.LongURL = true
	next := orig.WithSettings(settings)
	next.User.Settings.RandomDomain.Domains[0] = "changed"
	next.Domains[0].Name = "changed"

	if orig.User.Settings.LongURL {
		t.Error("WithSettings mutated the receiver")
	}
	if orig.User.Settings.RandomDomain.Domains[0] != "a" || orig.Domains[0].Name != "astral.cool" {
		t.Error("copy shares slices with the receiver")
	}

	z := orig.WithPreviewZone("UTC")
	if orig.PreviewZone != "" || z.PreviewZone != "UTC" {
		t.Error("WithPreviewZone should only change the copy")
	}
}

func TestEffectiveSelection(t *testing.T) {
	if got := (DomainSelection{Name: "astral.cool", Wildcard: true, Subdomain: "foo"}).Effective(); got != "foo.astral.cool" {
		t.Errorf("Effective() = %q", got)
	}
	if got := (DomainSelection{Name: "short.ly", Subdomain: "foo"}).Effective(); got != "short.ly" {
		t.Errorf("Effective() = %q", got)
	}
}
