package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/boardkit/flashctl/internal/config"
	"github.com/spf13/cobra"
)

func newConfigCmd(a *app) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage user settings",
		Long:  `Read and write settings stored at ` + config.FilePath() + `.`,
	}

	setCmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]
			if err := config.Set(a.v, key, value); err != nil {
				return fmt.Errorf("setting config key %q: %w", key, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
			return nil
		},
	}

	getCmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := config.Get(a.v, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Show the resolved value of every setting",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.settings()
			if err != nil {
				return err
			}
			s = s.WithProfileDefaults(a.profile)

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
			rows := [][2]string{
				{config.KeyPlatform, s.Platform},
				{config.KeyTarget, s.Target},
				{config.KeyProgPort, s.ProgPort},
				{config.KeyCommPort, s.CommPort},
				{config.KeyBaud, fmt.Sprint(s.Baud)},
				{config.KeyBuildDir, s.BuildDir},
				{config.KeyFirmwareBase, s.FirmwareBase},
				{config.KeyOpenOCDConfig, s.OpenOCDConfig},
				{config.KeyDelegate, s.Delegate},
			}
			for _, r := range rows {
				fmt.Fprintf(w, "%s\t%s\n", r[0], r[1])
			}
			return w.Flush()
		},
	}

	configCmd.AddCommand(setCmd, getCmd, listCmd)
	return configCmd
}
