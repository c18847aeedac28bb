package cli

import (
	"encoding/json"
	"fmt"

	"github.com/boardkit/flashctl/internal/branding"
	"github.com/spf13/cobra"
)

func newVersionCmd(a *app) *cobra.Command {
	var short, asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if short {
				fmt.Fprintln(out, a.build.Version)
				return nil
			}

			if asJSON {
				info := map[string]string{
					"version":  a.build.Version,
					"commit":   a.build.Commit,
					"date":     a.build.Date,
					"platform": a.profile.Platform,
				}
				data, err := json.MarshalIndent(info, "", "  ")
				if err != nil {
					return fmt.Errorf("marshaling version info: %w", err)
				}
				fmt.Fprintln(out, string(data))
				return nil
			}

			fmt.Fprintf(out, "%s version %s (commit: %s, built: %s, profile: %s)\n",
				branding.CLIName(), a.build.Version, a.build.Commit, a.build.Date, a.profile.Platform)
			return nil
		},
	}
	cmd.Flags().BoolVar(&short, "short", false, "Print version number only")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print version info as JSON")
	return cmd
}
