package embed

import (
	"fmt"
	"math/rand/v2"
)

// DefaultValue marks a field that renders its built-in text.
const DefaultValue = "default"

// Field length limits enforced by the editor.
const (
	MaxTitleLen       = 200
	MaxAuthorLen      = 200
	MaxDescriptionLen = 2000
)

// Fields are the user-authored embed templates. An empty field is hidden.
type Fields struct {
	Author      string `json:"author"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Appearance is the embed styling stored alongside the fields.
type Appearance struct {
	Color       string `json:"color"`
	RandomColor bool   `json:"randomColor"`
}

// Preview is a rendered embed. Empty strings are hidden lines.
type Preview struct {
	Author      string `json:"author"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

// Empty reports whether no text line is shown.
func (p Preview) Empty() bool {
	return p.Author == "" && p.Title == "" && p.Description == ""
}

// IntN is satisfied by *rand.Rand from math/rand/v2.
type IntN interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// Render builds the preview of f. rnd picks the color when RandomColor is
// set and may be nil to use the global source.
func Render(f Fields, a Appearance, ctx Context, rnd IntN) Preview {
	p := Preview{Color: a.Color}
	if a.RandomColor {
		p.Color = RandomColor(rnd)
	}

	switch f.Author {
	case "":
	case DefaultValue:
		p.Author = ctx.Username
	default:
		p.Author = Format(f.Author, ctx)
	}

	switch f.Title {
	case "":
	case DefaultValue:
		p.Title = ctx.Filename
	default:
		p.Title = Format(f.Title, ctx)
	}

	switch f.Description {
	case "":
	case DefaultValue:
		p.Description = fmt.Sprintf("Uploaded at %s by %s.", ctx.Timestamp(), ctx.Username)
	default:
		p.Description = Format(f.Description, ctx)
	}

	return p
}

// RandomColor returns a #rrggbb color.
func RandomColor(rnd IntN) string {
	if rnd == nil {
		rnd = globalRand{}
	}
	return fmt.Sprintf("#%06x", rnd.IntN(1<<24))
}
