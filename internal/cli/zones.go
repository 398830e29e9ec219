package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/astral-cool/astral-web/internal/embed"
	"github.com/astral-cool/astral-web/internal/timezones"
)

func newZonesCmd(opts *options) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "zones [QUERY]",
		Short: "Search the time zones accepted by {time:Zone}",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			zones, err := timezones.DefaultZones()
			if err != nil {
				return err
			}
			query := strings.Join(args, "")
			o := timezones.NewOptions()
			found := timezones.Search(zones, query, limit, o)

			if opts.json {
				return writeJSON(cmd.OutOrStdout(), timezones.SearchOptions(zones, query, limit, o))
			}
			if len(found) == 0 {
				return fmt.Errorf("no zone matches %q", query)
			}
			for _, z := range found {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), z); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of zones listed")
	return cmd
}

func newSuggestCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "suggest TEXT",
		Short:   "List the placeholders completing the last word of TEXT",
		Example: `  embedfmt suggest "uploaded by {us"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tokens := embed.Suggest(args[0])
			if opts.json {
				if tokens == nil {
					tokens = []string{}
				}
				return writeJSON(cmd.OutOrStdout(), tokens)
			}
			for _, t := range tokens {
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", t, embed.Complete(args[0], t)); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
