package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"syscall"
)

// Command is a fully resolved process invocation.
type Command struct {
	Name string
	Args []string
	// Env holds KEY=VALUE entries layered over the current environment.
	Env []string
}

// String renders the command as a shell would read it.
func (c Command) String() string {
	parts := make([]string, 0, len(c.Args)+1)
	parts = append(parts, shellQuote(c.Name))
	for _, a := range c.Args {
		parts = append(parts, shellQuote(a))
	}
	return strings.Join(parts, " ")
}

// Runner starts a command and waits for it to exit.
type Runner interface {
	Run(ctx context.Context, cmd Command) error
}

// ExecRunner runs commands as child processes attached to the terminal.
type ExecRunner struct {
	// Stdin, Stdout and Stderr can be set for testing; they default to the
	// process's own streams.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Run starts c once and blocks until it exits. A non-zero exit is returned
// as *ExitError carrying the child's code; cancelling ctx interrupts the
// child.
func (r *ExecRunner) Run(ctx context.Context, c Command) error {
	bin, err := exec.LookPath(c.Name)
	if err != nil {
		return fmt.Errorf("%s is required: %w", c.Name, err)
	}

	cmd := exec.CommandContext(ctx, bin, c.Args...)
	cmd.Cancel = func() error { return cmd.Process.Signal(os.Interrupt) }
	cmd.Env = buildEnv(os.Environ(), c.Env)

	cmd.Stdin = r.Stdin
	if cmd.Stdin == nil {
		cmd.Stdin = os.Stdin
	}
	cmd.Stdout = r.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = r.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &ExitError{Name: c.Name, Code: exitCode(exitErr)}
		}
		return fmt.Errorf("running %s: %w", c.Name, err)
	}
	return nil
}

// exitCode maps a signal death to the shell convention 128+signal.
func exitCode(err *exec.ExitError) int {
	if status, ok := err.Sys().(syscall.WaitStatus); ok && status.Signaled() {
		return 128 + int(status.Signal())
	}
	if code := err.ExitCode(); code > 0 {
		return code
	}
	return 1
}

// buildEnv returns base with each KEY=VALUE in extra set or replaced.
func buildEnv(base, extra []string) []string {
	env := append([]string(nil), base...)
	for _, kv := range extra {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		env = setEnv(env, key, value)
	}
	return env
}

// setEnv sets or replaces an environment variable in the env slice.
func setEnv(env []string, key, value string) []string {
	prefix := key + "="
	for i, e := range env {
		if strings.HasPrefix(e, prefix) {
			env[i] = prefix + value
			return env
		}
	}
	return append(env, prefix+value)
}

func shellQuote(s string) string {
	if s == "" {
		return "''"
	}
	if !strings.ContainsAny(s, " \t\n\"'\\$;&|<>()*?`#~{}[]!") {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
