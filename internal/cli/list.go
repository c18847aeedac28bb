package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/boardkit/flashctl/internal/dispatch"
	"github.com/spf13/cobra"
)

// listEntry is one registry row for display.
type listEntry struct {
	Name        string `json:"name"`
	Kind        string `json:"kind"`
	Action      string `json:"action"`
	Description string `json:"description,omitempty"`
}

func newListCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the operations of the built-in profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := dispatch.NewRegistry(a.profile)
			if err != nil {
				return err
			}

			var entries []listEntry
			for _, op := range reg.Operations() {
				entries = append(entries, listEntry{
					Name:        op.Name,
					Kind:        op.Kind.String(),
					Action:      describeAction(op),
					Description: op.Description,
				})
			}

			if asJSON {
				data, err := json.MarshalIndent(entries, "", "  ")
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "OPERATION\tKIND\tACTION")
			for _, e := range entries {
				fmt.Fprintf(w, "%s\t%s\t%s\n", e.Name, e.Kind, e.Action)
			}
			return w.Flush()
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output in JSON format")
	return cmd
}

func describeAction(op *dispatch.Operation) string {
	switch op.Kind {
	case dispatch.External:
		return strings.TrimSpace(op.Tool + " " + strings.Join(op.ArgTemplates(), " "))
	case dispatch.Forward:
		return "-> " + op.Target
	case dispatch.Unsupported:
		return op.Message
	default:
		return "-"
	}
}
