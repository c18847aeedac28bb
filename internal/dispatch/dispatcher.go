package dispatch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/boardkit/flashctl/internal/config"
	"github.com/boardkit/flashctl/internal/profile"
)

// Dispatcher runs operations of one profile with frozen settings.
type Dispatcher struct {
	settings config.Settings
	registry *Registry
	runner   Runner
	logger   *slog.Logger
	dryRun   io.Writer
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithRunner replaces the process runner (default: &ExecRunner{}).
func WithRunner(r Runner) Option {
	return func(d *Dispatcher) { d.runner = r }
}

// WithLogger sets the logger used for debug traces.
func WithLogger(l *slog.Logger) Option {
	return func(d *Dispatcher) { d.logger = l }
}

// WithDryRun makes Run print resolved commands to w instead of starting them.
func WithDryRun(w io.Writer) Option {
	return func(d *Dispatcher) { d.dryRun = w }
}

// New checks that settings are bound to p's platform and builds the
// dispatcher. A mismatch returns ErrConfigMismatch and nothing else is done.
// Unset values are filled from the profile.
func New(settings config.Settings, p *profile.Profile, opts ...Option) (*Dispatcher, error) {
	if settings.Platform == "" {
		return nil, fmt.Errorf("%w: platform is not set, this build supports %q", ErrConfigMismatch, p.Platform)
	}
	if settings.Platform != p.Platform {
		return nil, fmt.Errorf("%w: platform %q does not match profile %q", ErrConfigMismatch, settings.Platform, p.Platform)
	}

	reg, err := NewRegistry(p)
	if err != nil {
		return nil, fmt.Errorf("building operation registry for %s: %w", p.Platform, err)
	}

	settings = settings.WithProfileDefaults(p)

	d := &Dispatcher{
		settings: settings,
		registry: reg,
		runner:   &ExecRunner{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Settings returns the settings the dispatcher was built with.
func (d *Dispatcher) Settings() config.Settings { return d.settings }

// Registry returns the operation table.
func (d *Dispatcher) Registry() *Registry { return d.registry }

// Resolve returns the command an operation would start. NoOp and
// Unsupported operations have no command and report ok == false.
func (d *Dispatcher) Resolve(name string) (cmd Command, ok bool, err error) {
	op, found := d.registry.Lookup(name)
	if !found {
		return Command{}, false, fmt.Errorf("%w %q", ErrUnknownOperation, name)
	}

	switch op.Kind {
	case External:
		args, err := op.expandArgs(d.argData())
		if err != nil {
			return Command{}, false, err
		}
		return Command{Name: op.Tool, Args: args}, true, nil
	case Forward:
		fields := strings.Fields(d.settings.Delegate)
		if len(fields) == 0 {
			return Command{}, false, fmt.Errorf("operation %s: no delegate command configured", op.Name)
		}
		vars := d.settings.Vars()
		args := make([]string, 0, len(fields)+len(vars))
		args = append(args, fields[1:]...)
		args = append(args, op.Target)
		args = append(args, vars...)
		return Command{Name: fields[0], Args: args, Env: vars}, true, nil
	default:
		return Command{}, false, nil
	}
}

// Run performs one operation and blocks until any spawned process exits.
// There are no retries: a non-zero exit comes back as *ExitError.
func (d *Dispatcher) Run(ctx context.Context, name string) error {
	op, found := d.registry.Lookup(name)
	if !found {
		return fmt.Errorf("%w %q", ErrUnknownOperation, name)
	}

	switch op.Kind {
	case NoOp:
		return nil
	case Unsupported:
		return &UnsupportedError{Operation: op.Name, Message: op.Message}
	}

	cmd, _, err := d.Resolve(name)
	if err != nil {
		return err
	}

	if d.dryRun != nil {
		fmt.Fprintln(d.dryRun, cmd.String())
		return nil
	}

	d.logger.DebugContext(ctx, "starting operation",
		"operation", op.Name,
		"kind", op.Kind.String(),
		"command", cmd.String(),
	)
	return d.runner.Run(ctx, cmd)
}

func (d *Dispatcher) argData() argData {
	s := d.settings
	return argData{
		Platform:      s.Platform,
		Target:        s.Target,
		ProgPort:      s.ProgPort,
		CommPort:      s.CommPort,
		Baud:          s.Baud,
		BuildDir:      s.BuildDir,
		Bitstream:     s.Bitstream(),
		FirmwareImage: s.FirmwareImage(),
		OpenOCDConfig: s.OpenOCDConfig,
	}
}
