package toolcheck

import (
	"context"
	"fmt"
	"io"
	"os/exec"

	"github.com/boardkit/flashctl/internal/profile"
)

// Status is the outcome of checking one tool.
type Status string

const (
	StatusOK       Status = "ok"
	StatusMissing  Status = "missing"
	StatusOutdated Status = "outdated"
	StatusUnknown  Status = "unknown"
)

// Result is the check outcome for one tool.
type Result struct {
	Tool    profile.Tool
	Path    string
	Version string
	Status  Status
	Detail  string
}

// Failed reports whether the result should fail the check run.
func (r Result) Failed() bool {
	if !r.Tool.Required {
		return false
	}
	return r.Status == StatusMissing || r.Status == StatusOutdated
}

// Checker probes tools on the host. The zero value uses exec.LookPath and
// runs the real binaries.
type Checker struct {
	LookPath func(file string) (string, error)
	Output   func(ctx context.Context, path string, args ...string) ([]byte, error)
}

func (c *Checker) lookPath(file string) (string, error) {
	if c.LookPath != nil {
		return c.LookPath(file)
	}
	return exec.LookPath(file)
}

// output returns combined stdout and stderr; openocd prints its version on
// stderr.
func (c *Checker) output(ctx context.Context, path string, args ...string) ([]byte, error) {
	if c.Output != nil {
		return c.Output(ctx, path, args...)
	}
	return exec.CommandContext(ctx, path, args...).CombinedOutput()
}

// Check probes each tool in order.
func (c *Checker) Check(ctx context.Context, tools []profile.Tool) []Result {
	results := make([]Result, 0, len(tools))
	for _, tool := range tools {
		results = append(results, c.checkOne(ctx, tool))
	}
	return results
}

func (c *Checker) checkOne(ctx context.Context, tool profile.Tool) Result {
	r := Result{Tool: tool}

	path, err := c.lookPath(tool.Name)
	if err != nil {
		r.Status = StatusMissing
		r.Detail = "not found in PATH"
		return r
	}
	r.Path = path

	if tool.MinVersion == "" {
		r.Status = StatusOK
		return r
	}

	args := tool.VersionArgs
	if len(args) == 0 {
		args = []string{"--version"}
	}
	// Some tools exit non-zero after printing their version, so the output
	// is inspected regardless of err.
	out, err := c.output(ctx, path, args...)
	version, ok := ExtractVersion(string(out))
	if !ok {
		r.Status = StatusUnknown
		r.Detail = "could not determine version"
		if err != nil {
			r.Detail = fmt.Sprintf("could not determine version: %v", err)
		}
		return r
	}
	r.Version = version

	atLeast, err := AtLeast(version, tool.MinVersion)
	if err != nil {
		r.Status = StatusUnknown
		r.Detail = err.Error()
		return r
	}
	if !atLeast {
		r.Status = StatusOutdated
		r.Detail = fmt.Sprintf("version %s is older than required %s", version, tool.MinVersion)
		return r
	}
	r.Status = StatusOK
	return r
}

// Report writes one line per result and returns false if any required tool
// is missing or outdated.
func Report(w io.Writer, results []Result) bool {
	allOK := true
	fmt.Fprintln(w, "Tool check:")
	for _, r := range results {
		switch r.Status {
		case StatusOK:
			if r.Version != "" {
				fmt.Fprintf(w, "  [ OK ] %s %s (%s)\n", r.Tool.Name, r.Version, r.Path)
			} else {
				fmt.Fprintf(w, "  [ OK ] %s (%s)\n", r.Tool.Name, r.Path)
			}
		case StatusMissing:
			fmt.Fprintf(w, "  [MISS] %s %s\n", r.Tool.Name, r.Detail)
		case StatusOutdated:
			tag := "[WARN]"
			if r.Failed() {
				tag = "[FAIL]"
			}
			fmt.Fprintf(w, "  %s %s %s\n", tag, r.Tool.Name, r.Detail)
		default:
			fmt.Fprintf(w, "  [WARN] %s %s\n", r.Tool.Name, r.Detail)
		}
		if r.Failed() {
			allOK = false
		}
	}
	return allOK
}
