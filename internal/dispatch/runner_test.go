package dispatch

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"runtime"
	"testing"
	"time"
)

func requireShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available, skipping")
	}
}

func TestExecRunner_Success(t *testing.T) {
	requireShell(t)

	var stdout, stderr bytes.Buffer
	r := &ExecRunner{Stdout: &stdout, Stderr: &stderr}

	err := r.Run(context.Background(), Command{Name: "sh", Args: []string{"-c", "echo hello; echo oops >&2"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := stdout.String(); got != "hello\n" {
		t.Errorf("stdout = %q, want %q", got, "hello\n")
	}
	if got := stderr.String(); got != "oops\n" {
		t.Errorf("stderr = %q, want %q", got, "oops\n")
	}
}

func TestExecRunner_NonZeroExit(t *testing.T) {
	requireShell(t)

	r := &ExecRunner{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}
	err := r.Run(context.Background(), Command{Name: "sh", Args: []string{"-c", "exit 42"}})

	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected *ExitError, got %v", err)
	}
	if exitErr.Code != 42 {
		t.Errorf("exit code = %d, want 42", exitErr.Code)
	}
	if exitErr.Name != "sh" {
		t.Errorf("name = %q, want %q", exitErr.Name, "sh")
	}
}

func TestExecRunner_Env(t *testing.T) {
	requireShell(t)
	t.Setenv("BAUD", "9600")

	var stdout bytes.Buffer
	r := &ExecRunner{Stdout: &stdout, Stderr: &bytes.Buffer{}}
	err := r.Run(context.Background(), Command{
		Name: "sh",
		Args: []string{"-c", `printf "%s %s" "$PLATFORM" "$BAUD"`},
		Env:  []string{"PLATFORM=mars_ax3", "BAUD=115200"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := stdout.String(); got != "mars_ax3 115200" {
		t.Errorf("stdout = %q, want %q", got, "mars_ax3 115200")
	}
}

func TestExecRunner_CancelInterruptsChild(t *testing.T) {
	requireShell(t)
	if _, err := exec.LookPath("sleep"); err != nil {
		t.Skip("sleep not available, skipping")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	timer := time.AfterFunc(300*time.Millisecond, cancel)
	defer timer.Stop()

	r := &ExecRunner{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}
	start := time.Now()
	err := r.Run(ctx, Command{Name: "sleep", Args: []string{"5"}})
	elapsed := time.Since(start)

	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected *ExitError, got %v", err)
	}
	if exitErr.Code != 130 {
		t.Errorf("exit code = %d, want 130 (128+SIGINT)", exitErr.Code)
	}
	if elapsed >= 4*time.Second {
		t.Errorf("Run returned after %v, want the child interrupted early", elapsed)
	}
}

func TestExecRunner_ToolNotFound(t *testing.T) {
	r := &ExecRunner{}
	err := r.Run(context.Background(), Command{Name: "flashctl-no-such-tool"})
	if err == nil {
		t.Fatal("expected error for missing tool, got nil")
	}
	if !errors.Is(err, exec.ErrNotFound) {
		t.Errorf("expected exec.ErrNotFound, got %v", err)
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		t.Error("a missing tool must not look like a tool exit")
	}
}

func TestCommandString(t *testing.T) {
	tests := []struct {
		name string
		cmd  Command
		want string
	}{
		{
			name: "plain",
			cmd:  Command{Name: "flterm", Args: []string{"--port=/dev/ttyUSB1", "--speed=115200"}},
			want: "flterm --port=/dev/ttyUSB1 --speed=115200",
		},
		{
			name: "spaces and semicolons",
			cmd:  Command{Name: "openocd", Args: []string{"-c", "init; exit"}},
			want: "openocd -c 'init; exit'",
		},
		{
			name: "single quote",
			cmd:  Command{Name: "echo", Args: []string{"it's"}},
			want: `echo 'it'\''s'`,
		},
		{
			name: "empty argument",
			cmd:  Command{Name: "echo", Args: []string{""}},
			want: "echo ''",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cmd.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSetEnv(t *testing.T) {
	tests := []struct {
		name     string
		env      []string
		key      string
		value    string
		expected []string
	}{
		{
			name:     "add new variable",
			env:      []string{"FOO=bar"},
			key:      "BAUD",
			value:    "115200",
			expected: []string{"FOO=bar", "BAUD=115200"},
		},
		{
			name:     "replace existing variable",
			env:      []string{"FOO=bar", "BAUD=9600"},
			key:      "BAUD",
			value:    "115200",
			expected: []string{"FOO=bar", "BAUD=115200"},
		},
		{
			name:     "add to empty env",
			env:      nil,
			key:      "PLATFORM",
			value:    "mars_ax3",
			expected: []string{"PLATFORM=mars_ax3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := setEnv(tt.env, tt.key, tt.value)
			if len(result) != len(tt.expected) {
				t.Fatalf("expected %d entries, got %d: %v", len(tt.expected), len(result), result)
			}
			for i, e := range tt.expected {
				if result[i] != e {
					t.Errorf("env[%d] = %q, want %q", i, result[i], e)
				}
			}
		})
	}
}

func TestBuildEnv_DoesNotMutateBase(t *testing.T) {
	base := []string{"BAUD=9600"}
	env := buildEnv(base, []string{"BAUD=115200", "malformed"})
	if base[0] != "BAUD=9600" {
		t.Errorf("base mutated: %v", base)
	}
	if len(env) != 1 || env[0] != "BAUD=115200" {
		t.Errorf("env = %v, want [BAUD=115200]", env)
	}
}
