package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/boardkit/flashctl/internal/branding"
	"github.com/boardkit/flashctl/internal/config"
	"github.com/boardkit/flashctl/internal/dispatch"
	"github.com/boardkit/flashctl/internal/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// buildInfo is injected via ldflags.
type buildInfo struct {
	Version string
	Commit  string
	Date    string
}

// app carries everything a command needs. One app serves one invocation.
type app struct {
	build   buildInfo
	v       *viper.Viper
	profile *profile.Profile
	verbose bool
	logger  *slog.Logger

	// runner overrides process execution in tests.
	runner dispatch.Runner
}

// flagKeys maps persistent flag names to config keys.
var flagKeys = []struct {
	flag  string
	key   string
	usage string
}{
	{"platform", config.KeyPlatform, "board platform identifier (must match the built-in profile)"},
	{"target", config.KeyTarget, "target variant (default \"" + config.DefaultTarget + "\")"},
	{"prog-port", config.KeyProgPort, "programming port (default " + config.DefaultProgPort + ")"},
	{"comm-port", config.KeyCommPort, "serial communication port (default " + config.DefaultCommPort + ")"},
	{"build-dir", config.KeyBuildDir, "target build directory (default build/<platform>_<target>)"},
	{"firmware-base", config.KeyFirmwareBase, "firmware image path without .bin"},
	{"openocd-config", config.KeyOpenOCDConfig, "OpenOCD board/interface config file"},
	{"delegate", config.KeyDelegate, "command that runs forwarded build targets (default \"" + config.DefaultDelegate + "\")"},
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   branding.CLIName(),
		Short: branding.Description(),
		Long: branding.DisplayName() + ` loads and flashes gateware and firmware for the ` + a.profile.Platform + ` board.

Settings come from flags, ` + branding.EnvPrefix() + `_* environment variables, and ` + "~/" + branding.HomeDir() + `/config.yaml.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelWarn
			if a.verbose {
				level = slog.LevelDebug
			}
			a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
			return config.Load(a.v)
		},
	}

	pf := root.PersistentFlags()
	for _, f := range flagKeys {
		pf.String(f.flag, "", f.usage)
	}
	pf.Int("baud", 0, fmt.Sprintf("serial speed (default %d)", config.DefaultBaud))
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "log resolved commands to stderr")

	for _, f := range flagKeys {
		_ = a.v.BindPFlag(f.key, pf.Lookup(f.flag))
	}
	_ = a.v.BindPFlag(config.KeyBaud, pf.Lookup("baud"))

	ops := addOperationCommands(root, a)
	root.AddCommand(
		newListCmd(a),
		newDoctorCmd(a),
		newProfileCmd(a),
		newConfigCmd(a),
		newVersionCmd(a),
	)
	root.SetHelpCommand(ops["help"])
	return root
}

// settings resolves the configuration for this invocation.
func (a *app) settings() (config.Settings, error) {
	return config.Resolve(a.v)
}

// dispatcher builds the dispatcher for cmd, enforcing the platform check.
func (a *app) dispatcher(cmd *cobra.Command, opts ...dispatch.Option) (*dispatch.Dispatcher, error) {
	s, err := a.settings()
	if err != nil {
		return nil, err
	}

	runner := a.runner
	if runner == nil {
		runner = &dispatch.ExecRunner{
			Stdin:  cmd.InOrStdin(),
			Stdout: cmd.OutOrStdout(),
			Stderr: cmd.ErrOrStderr(),
		}
	}
	opts = append([]dispatch.Option{dispatch.WithRunner(runner), dispatch.WithLogger(a.logger)}, opts...)
	return dispatch.New(s, a.profile, opts...)
}

func newApp(build buildInfo) (*app, error) {
	p, err := profile.Builtin()
	if err != nil {
		return nil, err
	}
	return &app{
		build:   build,
		v:       viper.New(),
		profile: p,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, nil
}

// Execute runs the command tree with build info injected via ldflags.
// SIGINT and SIGTERM cancel the context, which interrupts a running tool.
func Execute(version, commit, date string) error {
	a, err := newApp(buildInfo{Version: version, Commit: commit, Date: date})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return newRootCmd(a).ExecuteContext(ctx)
}

// ExitCode maps an Execute error to a process exit status. A failed tool's
// status passes through unchanged; anything else is 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *dispatch.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 1
}

// ReportError writes err to w unless the failing tool has already spoken
// for itself through its exit status.
func ReportError(w io.Writer, err error) {
	var exitErr *dispatch.ExitError
	if err == nil || errors.As(err, &exitErr) {
		return
	}
	fmt.Fprintln(w, err)
}
