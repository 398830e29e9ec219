package embed

import (
	"testing"
	"time"
)

var testNow = time.Date(2024, time.March, 5, 14, 7, 9, 0, time.UTC)

func testContext() Context {
	return Context{
		Size:     "10.03 MB",
		Username: "ann",
		Filename: "ccb834e0.png",
		Uploads:  42,
		Now:      testNow,
		Location: time.UTC,
		Domain:   "i.astral.cool",
	}
}

func TestFormatWithoutTokensIsIdentity(t *testing.T) {
	templates := []string{
		"",
		"plain text",
		"{",
		"}{",
		"{unknown}",
		"{time:}",
		"{ size }",
		"{Size}",
		"curly {braces} everywhere",
	}

	for _, tpl := range templates {
		if got := Format(tpl, testContext()); got != tpl {
			t.Errorf("Format(%q) = %q, want unchanged", tpl, got)
		}
	}
}

func TestFormatSimpleTokens(t *testing.T) {
	tests := []struct {
		template string
		want     string
	}{
		{"{size}", "10.03 MB"},
		{"{username}", "ann"},
		{"{filename}", "ccb834e0.png"},
		{"{uploads}", "42"},
		{"{date}", "3/5/2024"},
		{"{time}", "2:07:09 PM"},
		{"{timestamp}", "3/5/2024, 2:07:09 PM"},
		{"{domain}", "i.astral.cool"},
		{"{username} uploaded {filename} ({size})", "ann uploaded ccb834e0.png (10.03 MB)"},
	}

	for _, tt := range tests {
		t.Run(tt.template, func(t *testing.T) {
			if got := Format(tt.template, testContext()); got != tt.want {
				t.Errorf("Format(%q) = %q, want %q", tt.template, got, tt.want)
			}
		})
	}
}

func TestFormatReplacesFirstOccurrenceOnly(t *testing.T) {
	got := Format("{username} {username}", Context{Username: "ann", Now: testNow, Location: time.UTC})
	if got != "ann {username}" {
		t.Errorf("got %q, want %q", got, "ann {username}")
	}

	got = Format("{uploads}/{uploads}/{uploads}", testContext())
	if got != "42/{uploads}/{uploads}" {
		t.Errorf("got %q", got)
	}
}

func TestFormatSubstitutesInFixedOrder(t *testing.T) {
	// {size} is substituted before {username}, so a size value carrying a
	// username token is expanded too; the reverse is not.
	ctx := testContext()
	ctx.Size = "{username}"
	if got := Format("{size}", ctx); got != "ann" {
		t.Errorf("got %q, want %q", got, "ann")
	}

	ctx = testContext()
	ctx.Domain = "{size}"
	if got := Format("{domain}", ctx); got != "{size}" {
		t.Errorf("got %q, want %q", got, "{size}")
	}
}

func TestFormatUsesViewerLocation(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		t.Fatal(err)
	}
	ctx := testContext()
	ctx.Location = tokyo

	if got := Format("{timestamp}", ctx); got != "3/5/2024, 11:07:09 PM" {
		t.Errorf("got %q", got)
	}
}

func TestFormatZoneTokens(t *testing.T) {
	tests := []struct {
		name     string
		template string
		want     string
	}{
		{"time utc", "{time:UTC}", "2:07:09 PM"},
		{"timestamp utc", "{timestamp:UTC}", "3/5/2024, 2:07:09 PM"},
		{"time new york", "{time:America/New_York}", "9:07:09 AM"},
		{"timestamp tokyo", "{timestamp:Asia/Tokyo}", "3/5/2024, 11:07:09 PM"},
		{"uppercase time renders timestamp", "{TIME:UTC}", "3/5/2024, 2:07:09 PM"},
		{"capitalised time renders timestamp", "{Time:UTC}", "3/5/2024, 2:07:09 PM"},
		{"mixed case timestamp", "{TimeStamp:UTC}", "3/5/2024, 2:07:09 PM"},
		{"lowercase zone", "{time:europe/paris}", "3:07:09 PM"},
		{"left to right", "{timestamp:UTC} and {time:UTC}", "3/5/2024, 2:07:09 PM and 2:07:09 PM"},
		{"repeated zone token", "{time:UTC}|{time:UTC}", "2:07:09 PM|2:07:09 PM"},
		{"embedded in text", "at {time:Asia/Tokyo} JST", "at 11:07:09 PM JST"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.template, testContext()); got != tt.want {
				t.Errorf("Format(%q) = %q, want %q", tt.template, got, tt.want)
			}
		})
	}
}

func TestFormatInvalidZoneStopsZonePhase(t *testing.T) {
	tests := []struct {
		name     string
		template string
		want     string
	}{
		{"alone", "{time:Not/AZone}", "{time:Not/AZone}"},
		{"blocks later tokens", "{time:Bad} {time:UTC}", "{time:Bad} {time:UTC}"},
		{"earlier tokens still rendered", "{time:UTC} {time:Bad} {timestamp:UTC}", "2:07:09 PM {time:Bad} {timestamp:UTC}"},
		{"local is not a zone", "{time:Local}", "{time:Local}"},
		{"simple tokens unaffected", "{username} {time:Bad} {size}", "ann {time:Bad} 10.03 MB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.template, testContext()); got != tt.want {
				t.Errorf("Format(%q) = %q, want %q", tt.template, got, tt.want)
			}
		})
	}
}

func TestFormatSimpleBeforeZone(t *testing.T) {
	if got := Format("{time:UTC}{time}", testContext()); got != "2:07:09 PM2:07:09 PM" {
		t.Errorf("got %q", got)
	}
}

func TestFormatDefaultsToLocalTime(t *testing.T) {
	ctx := testContext()
	ctx.Location = nil
	want := testNow.In(time.Local).Format(TimeLayout)
	if got := Format("{time}", ctx); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestEffectiveDomain(t *testing.T) {
	tests := []struct {
		name     string
		root     string
		wildcard bool
		sub      string
		want     string
	}{
		{"wildcard with subdomain", "example.com", true, "foo", "foo.example.com"},
		{"wildcard without subdomain", "example.com", true, "", "example.com"},
		{"non wildcard ignores subdomain", "short.ly", false, "foo", "short.ly"},
		{"non wildcard", "short.ly", false, "", "short.ly"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EffectiveDomain(tt.root, tt.wildcard, tt.sub); got != tt.want {
				t.Errorf("EffectiveDomain() = %q, want %q", got, tt.want)
			}
			ctx := testContext()
			ctx.Domain = EffectiveDomain(tt.root, tt.wildcard, tt.sub)
			if got := Format("https://{domain}/x", ctx); got != "https://"+tt.want+"/x" {
				t.Errorf("Format({domain}) = %q", got)
			}
		})
	}
}
