// Package views renders the server-side pages.
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/astral-cool/astral-web/internal/notice"
	"github.com/astral-cool/astral-web/internal/site"
)

//go:embed templates/*.html
var files embed.FS

// Page is what every template receives.
type Page struct {
	Site site.Config
	// Title is the page name shown before the site title.
	Title  string
	Notice notice.Notice
	// Username is empty for anonymous visitors.
	Username string
	Data     any
}

// Views holds one parsed template set per page, each layered on base.html.
type Views struct {
	pages map[string]*template.Template
}

var funcs = template.FuncMap{
	"bytes": func(n int64) string {
		return humanize.Bytes(uint64(max(n, 0)))
	},
	"comma": func(n int) string {
		return humanize.Comma(int64(n))
	},
	"since": func(ts string) string {
		t, err := time.Parse(time.RFC3339, ts)
		if err != nil {
			return ts
		}
		return humanize.Time(t)
	},
}

// New parses the embedded templates.
func New() (*Views, error) {
	base, err := template.New("base.html").Funcs(funcs).ParseFS(files, "templates/base.html")
	if err != nil {
		return nil, fmt.Errorf("parse base: %w", err)
	}

	names, err := fs.Glob(files, "templates/*.html")
	if err != nil {
		return nil, err
	}

	v := &Views{pages: make(map[string]*template.Template, len(names))}
	for _, path := range names {
		name := strings.TrimSuffix(strings.TrimPrefix(path, "templates/"), ".html")
		if name == "base" {
			continue
		}
		t, err := template.Must(base.Clone()).ParseFS(files, path)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		v.pages[name] = t
	}
	return v, nil
}

// Has reports whether a page called name exists.
func (v *Views) Has(name string) bool {
	_, ok := v.pages[name]
	return ok
}

// Render executes page name into w. Nothing is written when execution fails.
func (v *Views) Render(w http.ResponseWriter, status int, name string, p Page) error {
	t, ok := v.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "base", p); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
