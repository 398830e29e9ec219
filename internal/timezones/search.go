package timezones

import (
	"sort"
	"strings"
)

// Search returns zones containing query (case-insensitive). Prefix matches
// sort ahead of substring matches, ties alphabetically. An empty query
// returns the head of the list.
func Search(zones []string, query string, limit int, opts Options) []string {
	limit = clampLimit(limit, opts)
	if limit == 0 {
		return nil
	}

	query = strings.TrimSpace(query)
	if query == "" {
		if len(zones) <= limit {
			return append([]string{}, zones...)
		}
		return append([]string{}, zones[:limit]...)
	}

	q := strings.ToLower(query)
	type match struct {
		name   string
		prefix bool
	}
	matches := make([]match, 0, 16)
	for _, zone := range zones {
		lower := strings.ToLower(zone)
		if !strings.Contains(lower, q) {
			continue
		}
		matches = append(matches, match{name: zone, prefix: strings.HasPrefix(lower, q)})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].prefix != matches[j].prefix {
			return matches[i].prefix
		}
		return matches[i].name < matches[j].name
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.name)
	}
	return out
}

func SearchOptions(zones []string, query string, limit int, opts Options) []Option {
	results := Search(zones, query, limit, opts)
	out := make([]Option, 0, len(results))
	for _, zone := range results {
		out = append(out, Option{Value: zone, Label: strings.ReplaceAll(zone, "_", " ")})
	}
	return out
}
