package cli

import (
	"github.com/boardkit/flashctl/internal/branding"
	"github.com/boardkit/flashctl/internal/dispatch"
	"github.com/boardkit/flashctl/internal/profile"
	"github.com/spf13/cobra"
)

// addOperationCommands registers one subcommand per profile operation and
// returns them by name.
func addOperationCommands(root *cobra.Command, a *app) map[string]*cobra.Command {
	cmds := make(map[string]*cobra.Command, len(a.profile.Operations))
	for _, op := range a.profile.Operations {
		cmd := newOperationCmd(a, op)
		root.AddCommand(cmd)
		cmds[op.Name] = cmd
	}
	return cmds
}

func newOperationCmd(a *app, op profile.Operation) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   op.Name,
		Short: op.Description,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []dispatch.Option
			if dryRun {
				opts = append(opts, dispatch.WithDryRun(cmd.OutOrStdout()))
			}
			d, err := a.dispatcher(cmd, opts...)
			if err != nil {
				return err
			}
			return d.Run(cmd.Context(), op.Name)
		},
	}

	switch op.Kind {
	case profile.KindExternal, profile.KindForward:
		cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the command instead of running it")
	case profile.KindNoOp:
		// "help" replaces cobra's help command, which passes topic arguments.
		cmd.Args = cobra.ArbitraryArgs
		cmd.Short = op.Description + " (once the platform is bound)"
		cmd.Long = op.Description + ". Prints nothing and exits 0.\n\n" + platformNote(a)
	case profile.KindUnsupported:
		cmd.Long = op.Description + ". Prints \"" + op.Message + "\" and exits non-zero.\n\n" + platformNote(a)
	}
	return cmd
}

// platformNote explains the platform check that runs before every operation.
func platformNote(a *app) string {
	return "Like every operation, this first checks that the bound platform is " + a.profile.Platform +
		". Bind it with --platform " + a.profile.Platform + ", " + branding.EnvVar("PLATFORM") + "=" + a.profile.Platform +
		" or \"" + branding.CLIName() + " config set platform " + a.profile.Platform + "\"; otherwise the command\n" +
		"fails with a configuration mismatch and exit status 1."
}
