package git

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Runner executes a git command in a directory and returns its trimmed
// standard output.
type Runner interface {
	Run(ctx context.Context, dir string, args ...string) (string, error)
}

// CommandError reports a git invocation that could not run or exited non-zero.
type CommandError struct {
	Binary string
	Args   []string
	Dir    string
	Stderr string
	Err    error
}

// Command returns the command line that failed, e.g. "git log a..b".
func (e *CommandError) Command() string {
	return strings.TrimSpace(e.Binary + " " + strings.Join(e.Args, " "))
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("git command failed: %s", e.Command())
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		return fmt.Sprintf("%s: %s", msg, stderr)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// ExecRunner runs the git binary as a child process.
type ExecRunner struct {
	// Binary is the executable to run. Defaults to "git".
	Binary string

	// newCmd builds the process; tests swap it for a helper process.
	newCmd func(ctx context.Context, name string, args ...string) *exec.Cmd
}

// NewExecRunner returns a runner for the given git executable.
func NewExecRunner(binary string) *ExecRunner {
	if binary == "" {
		binary = "git"
	}
	return &ExecRunner{Binary: binary}
}

// Run executes the command with cmd.Dir set to dir.
func (r *ExecRunner) Run(ctx context.Context, dir string, args ...string) (string, error) {
	binary := r.Binary
	if binary == "" {
		binary = "git"
	}
	newCmd := r.newCmd
	if newCmd == nil {
		newCmd = exec.CommandContext
	}

	cmd := newCmd(ctx, binary, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logDebug("[git] running %s %s (in %s)", binary, strings.Join(args, " "), dir)

	if err := cmd.Run(); err != nil {
		return "", &CommandError{
			Binary: binary,
			Args:   args,
			Dir:    dir,
			Stderr: stderr.String(),
			Err:    err,
		}
	}

	return strings.TrimSpace(stdout.String()), nil
}
