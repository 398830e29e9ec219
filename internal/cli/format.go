package cli

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/astral-cool/astral-web/internal/embed"
	"github.com/astral-cool/astral-web/internal/site"
	"github.com/astral-cool/astral-web/internal/timezones"
)

// contextFlags describe the upload a template is rendered for.
type contextFlags struct {
	size     string
	username string
	filename string
	uploads  int
	domain   string
	zone     string
	at       string
}

func (f *contextFlags) register(cmd *cobra.Command) {
	sample := site.Default()
	fl := cmd.Flags()
	fl.StringVar(&f.size, "size", humanize.Bytes(uint64(sample.Sample.Size)), "file size, raw bytes or human readable (\"10 MB\")")
	fl.StringVar(&f.username, "username", "astral", "uploader name")
	fl.StringVar(&f.filename, "filename", sample.Sample.Filename, "uploaded file name")
	fl.IntVar(&f.uploads, "uploads", 0, "uploader's upload count")
	fl.StringVar(&f.domain, "domain", sample.DefaultDomain, "upload domain")
	fl.StringVar(&f.zone, "zone", "", "IANA zone for {date}, {time} and {timestamp} (default local)")
	fl.StringVar(&f.at, "at", "", "render time, RFC 3339 (default now)")
}

func (f *contextFlags) context(now time.Time) (embed.Context, error) {
	ctx := embed.Context{
		Username: f.username,
		Filename: f.filename,
		Uploads:  f.uploads,
		Domain:   f.domain,
		Now:      now,
	}

	size, err := humanize.ParseBytes(f.size)
	if err != nil {
		return ctx, fmt.Errorf("invalid --size %q: %w", f.size, err)
	}
	ctx.Size = humanize.Bytes(size)

	if f.at != "" {
		t, err := time.Parse(time.RFC3339, f.at)
		if err != nil {
			return ctx, fmt.Errorf("invalid --at %q: %w", f.at, err)
		}
		ctx.Now = t
	}
	if f.zone != "" {
		loc, err := timezones.Resolve(f.zone)
		if err != nil {
			return ctx, fmt.Errorf("invalid --zone %q: %w", f.zone, err)
		}
		ctx.Location = loc
	}
	return ctx, nil
}

func newFormatCmd(opts *options) *cobra.Command {
	flags := &contextFlags{}
	cmd := &cobra.Command{
		Use:   "format TEMPLATE",
		Short: "Substitute the placeholders of one template",
		Example: `  embedfmt format "{filename} ({size}) by {username}"
  embedfmt format "{timestamp:Europe/Paris}" --at 2024-03-05T14:07:09Z`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := flags.context(time.Now())
			if err != nil {
				return err
			}
			out := embed.Format(args[0], ctx)
			if opts.json {
				return writeJSON(cmd.OutOrStdout(), map[string]string{"template": args[0], "result": out})
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}
	flags.register(cmd)
	return cmd
}

func newPreviewCmd(opts *options) *cobra.Command {
	var (
		flags       = &contextFlags{}
		fields      embed.Fields
		appearance  embed.Appearance
		printHidden bool
	)
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Render a whole embed (author, title, description, color)",
		Long: `Render a whole embed. A field set to "default" shows its built-in text and
an empty field is hidden.`,
		Example: `  embedfmt preview --title default --description "{size} uploaded {timestamp}"`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, err := flags.context(time.Now())
			if err != nil {
				return err
			}
			p := embed.Render(fields, appearance, ctx, nil)
			w := cmd.OutOrStdout()
			if opts.json {
				return writeJSON(w, p)
			}

			for _, line := range []struct{ name, value string }{
				{"color", p.Color},
				{"author", p.Author},
				{"title", p.Title},
				{"description", p.Description},
			} {
				if line.value == "" && !printHidden {
					continue
				}
				if _, err := fmt.Fprintf(w, "%-12s %s\n", line.name+":", line.value); err != nil {
					return err
				}
			}
			return nil
		},
	}
	flags.register(cmd)
	fl := cmd.Flags()
	fl.StringVar(&fields.Author, "author", embed.DefaultValue, "author template")
	fl.StringVar(&fields.Title, "title", embed.DefaultValue, "title template")
	fl.StringVar(&fields.Description, "description", embed.DefaultValue, "description template")
	fl.StringVar(&appearance.Color, "color", "#e6a3d6", "embed color")
	fl.BoolVar(&appearance.RandomColor, "random-color", false, "pick a random color")
	fl.BoolVar(&printHidden, "show-hidden", false, "print hidden (empty) lines too")
	return cmd
}
