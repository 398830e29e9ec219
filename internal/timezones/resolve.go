package timezones

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	// Zone data ships with the binary so distroless images resolve zones too.
	_ "time/tzdata"
)

var ErrUnknownZone = errors.New("timezones: unknown zone")

// cache is keyed by canonical zone name only, so its size is bounded by the
// tz database whatever spellings callers send.
var cache sync.Map // canonical name -> *time.Location

var (
	namesOnce sync.Once
	names     map[string]string // lowercase -> canonical
)

// Resolve maps a zone name to a location. Any name of the tz database
// resolves in any case to its canonical spelling. Empty names and "Local"
// are rejected.
func Resolve(name string) (*time.Location, error) {
	if name == "" || strings.EqualFold(name, "local") {
		return nil, fmt.Errorf("%w: %q", ErrUnknownZone, name)
	}

	lookup := name
	if canonical, ok := canonicalName(name); ok {
		lookup = canonical
	}
	if loc, ok := cache.Load(lookup); ok {
		return loc.(*time.Location), nil
	}

	loc, err := time.LoadLocation(lookup)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrUnknownZone, name, err)
	}

	actual, _ := cache.LoadOrStore(lookup, loc)
	return actual.(*time.Location), nil
}

// Valid reports whether Resolve would accept name.
func Valid(name string) bool {
	_, err := Resolve(name)
	return err == nil
}

func canonicalName(name string) (string, bool) {
	namesOnce.Do(loadNames)
	c, ok := names[strings.ToLower(name)]
	return c, ok
}

func loadNames() {
	names = make(map[string]string, 640)
	for _, path := range []string{namesPath, defaultListPath} {
		f, err := dataFS.Open(path)
		if err != nil {
			continue
		}
		zones, err := LoadZones(f)
		_ = f.Close()
		if err != nil {
			continue
		}
		for _, z := range zones {
			names[strings.ToLower(z)] = z
		}
	}
}
