// Package cli implements embedfmt, a command line companion for writing
// embed templates without a browser.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/astral-cool/astral-web/internal/version"
)

type options struct {
	json bool
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "embedfmt",
		Short: "Render and debug Astral embed templates",
		Long: `embedfmt renders embed templates the way the Astral settings page
previews them: {size}, {username}, {filename}, {uploads}, {date}, {time},
{timestamp}, {domain}, {time:Zone} and {timestamp:Zone}.`,
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVar(&opts.json, "json", false, "output in JSON format")

	root.AddCommand(
		newFormatCmd(opts),
		newPreviewCmd(opts),
		newZonesCmd(opts),
		newSuggestCmd(opts),
	)
	return root
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
