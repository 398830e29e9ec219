package timezones

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestDefaultZonesSortedAndCopied(t *testing.T) {
	zones, err := DefaultZones()
	if err != nil {
		t.Fatalf("DefaultZones() error: %v", err)
	}
	if len(zones) < 100 {
		t.Fatalf("expected a populated list, got %d zones", len(zones))
	}
	for i := 1; i < len(zones); i++ {
		if zones[i-1] >= zones[i] {
			t.Fatalf("zones not sorted/unique at %d: %q >= %q", i, zones[i-1], zones[i])
		}
	}

	zones[0] = "mutated"
	again, _ := DefaultZones()
	if again[0] == "mutated" {
		t.Error("DefaultZones() must return a copy")
	}
}

func TestLoadZonesSkipsCommentsAndDuplicates(t *testing.T) {
	zones, err := LoadZones(strings.NewReader("# header\n\nUTC\nEurope/Paris\n  UTC  \n"))
	if err != nil {
		t.Fatal(err)
	}
	if len(zones) != 2 || zones[0] != "Europe/Paris" || zones[1] != "UTC" {
		t.Errorf("LoadZones() = %v", zones)
	}
	if _, err := LoadZones(nil); err == nil {
		t.Error("LoadZones(nil) should fail")
	}
}

func TestEmbeddedZonesResolve(t *testing.T) {
	zones, _ := DefaultZones()
	for _, z := range zones {
		if _, err := Resolve(z); err != nil {
			t.Errorf("Resolve(%q) error: %v", z, err)
		}
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name    string
		zone    string
		want    string
		wantErr bool
	}{
		{name: "exact", zone: "America/New_York", want: "America/New_York"},
		{name: "utc", zone: "UTC", want: "UTC"},
		{name: "lowercase falls back to list", zone: "europe/paris", want: "Europe/Paris"},
		{name: "etc zone not in list", zone: "Etc/GMT+5", want: "Etc/GMT+5"},
		{name: "lowercase zone outside the picker list", zone: "etc/gmt+5", want: "Etc/GMT+5"},
		{name: "legacy rule zone", zone: "est5edt", want: "EST5EDT"},
		{name: "link name", zone: "us/eastern", want: "US/Eastern"},
		{name: "empty", zone: "", wantErr: true},
		{name: "local", zone: "Local", wantErr: true},
		{name: "garbage", zone: "Not/AZone", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := Resolve(tt.zone)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownZone) {
					t.Fatalf("Resolve(%q) error = %v, want ErrUnknownZone", tt.zone, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve(%q) error: %v", tt.zone, err)
			}
			if loc.String() != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.zone, loc.String(), tt.want)
			}
		})
	}
}

func TestResolveCachesCanonicalNamesOnly(t *testing.T) {
	variants := []string{"europe/paris", "EUROPE/PARIS", "Europe/Paris", "eUrOpE/pArIs", "EuRoPe/PaRiS"}

	var first *time.Location
	for _, v := range variants {
		loc, err := Resolve(v)
		if err != nil {
			t.Fatalf("Resolve(%q) error: %v", v, err)
		}
		if first == nil {
			first = loc
		} else if loc != first {
			t.Errorf("Resolve(%q) returned a new location", v)
		}
	}

	var keys []string
	cache.Range(func(k, _ any) bool {
		if strings.EqualFold(k.(string), "europe/paris") {
			keys = append(keys, k.(string))
		}
		return true
	})
	if len(keys) != 1 || keys[0] != "Europe/Paris" {
		t.Errorf("cache keys = %v, want [Europe/Paris]", keys)
	}
}

func TestSearch(t *testing.T) {
	zones := []string{"America/New_York", "Europe/Amsterdam", "Europe/Berlin", "Asia/Tokyo", "UTC"}
	opts := NewOptions()

	got := Search(zones, "ber", 0, opts)
	if len(got) != 1 || got[0] != "Europe/Berlin" {
		t.Errorf("Search(ber) = %v", got)
	}

	got = Search(zones, "e", 0, opts)
	// prefix matches ("Europe/...") come before substring matches, each alphabetical
	want := []string{"Europe/Amsterdam", "Europe/Berlin", "America/New_York"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("Search(e) = %v, want %v", got, want)
	}

	if got := Search(zones, "", 2, opts); len(got) != 2 {
		t.Errorf("empty query with limit 2 returned %v", got)
	}
	if got := Search(zones, "e", -1, opts); got != nil {
		t.Errorf("negative limit should return nil, got %v", got)
	}
	if got := Search(zones, "e", 1000, NewOptions(WithMaxLimit(1))); len(got) != 1 {
		t.Errorf("limit should clamp to MaxLimit, got %v", got)
	}
}

func TestHandler(t *testing.T) {
	h := Handler(WithZones([]string{"America/New_York", "Europe/Paris"}))

	req := httptest.NewRequest(http.MethodGet, "/api/timezones?q=new&limit=5", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	var body optionsResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(body.Data) != 1 || body.Data[0].Value != "America/New_York" || body.Data[0].Label != "America/New York" {
		t.Errorf("unexpected body: %+v", body)
	}

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/timezones?q=zzz", nil))
	if strings.TrimSpace(rr.Body.String()) != `{"data":[]}` {
		t.Errorf("no match should encode an empty array, got %s", rr.Body.String())
	}
}
