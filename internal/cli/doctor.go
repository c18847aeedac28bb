package cli

import (
	"errors"
	"strings"

	"github.com/boardkit/flashctl/internal/profile"
	"github.com/boardkit/flashctl/internal/toolcheck"
	"github.com/spf13/cobra"
)

var errToolsMissing = errors.New("one or more required tools are missing or outdated")

func newDoctorCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check that the external tools this board needs are installed",
		Long: `Look up every tool the built-in profile depends on, plus the delegate
used for forwarded targets, and compare versions where a minimum is declared.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.settings()
			if err != nil {
				return err
			}

			tools := doctorTools(a.profile.Tools, s.Delegate)
			checker := &toolcheck.Checker{}
			results := checker.Check(cmd.Context(), tools)
			if !toolcheck.Report(cmd.OutOrStdout(), results) {
				return errToolsMissing
			}
			return nil
		},
	}
}

// doctorTools appends the delegate's program to the profile's tools unless
// the profile already lists it.
func doctorTools(tools []profile.Tool, delegate string) []profile.Tool {
	out := append([]profile.Tool(nil), tools...)
	fields := strings.Fields(delegate)
	if len(fields) == 0 {
		return out
	}
	for _, t := range out {
		if t.Name == fields[0] {
			return out
		}
	}
	return append(out, profile.Tool{Name: fields[0]})
}
