package cli

import (
	"encoding/json"
	"fmt"

	"github.com/boardkit/flashctl/internal/profile"
	"github.com/spf13/cobra"
)

func newProfileCmd(a *app) *cobra.Command {
	profileCmd := &cobra.Command{
		Use:   "profile",
		Short: "Inspect and validate board profiles",
	}

	var showJSON bool
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the built-in profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showJSON {
				out, err := json.MarshalIndent(a.profile, "", "  ")
				if err != nil {
					return fmt.Errorf("marshaling profile: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(out))
				return nil
			}
			_, err := cmd.OutOrStdout().Write(profile.BuiltinSource())
			return err
		},
	}
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Output as JSON")

	validateCmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a profile file against the profile schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := profile.ValidateFile(args[0])
			if err != nil {
				return err
			}
			if result.Valid {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: valid\n", args[0])
				return nil
			}
			for _, issue := range result.Issues {
				path := issue.Path
				if path == "" {
					path = "/"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "  %s: %s (%s)\n", path, issue.Message, issue.Keyword)
			}
			return fmt.Errorf("%s: %d validation issue(s)", args[0], len(result.Issues))
		},
	}

	profileCmd.AddCommand(showCmd, validateCmd)
	return profileCmd
}
