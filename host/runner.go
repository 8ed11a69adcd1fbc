// Package host provides a narrow command-execution abstraction over external
// tools (brew, colima, docker, python, pip, orchestrate). Every collaborator
// is treated as a black box: the only observable contract is its exit status
// and, where a caller asks for it, its captured stdout.
package host

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/moby/term"
)

// Runner runs host commands. The two entry points differ only in where the
// child's output goes: Run streams it to the user (install progress, sudo
// prompts), Output captures stdout for the caller.
type Runner interface {
	// LookPath reports the absolute path of an executable on PATH.
	LookPath(name string) (string, error)
	// Run executes a command with stdio inherited from this process and
	// returns a non-nil error iff the command did not exit zero.
	Run(ctx context.Context, name string, args ...string) error
	// Output executes a command quietly and returns its captured stdout.
	Output(ctx context.Context, name string, args ...string) (string, error)
}

// ExecCommandFunc creates the exec.Cmd for a command invocation.
// Injectable so tests can substitute a recording fake.
type ExecCommandFunc func(ctx context.Context, name string, arg ...string) *exec.Cmd

// LookPathFunc resolves an executable name on PATH.
type LookPathFunc func(name string) (string, error)

// Exec is the production Runner backed by os/exec.
type Exec struct {
	execCommand ExecCommandFunc
	lookPath    LookPathFunc

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// Option configures an Exec.
type Option func(*Exec)

// WithExecCommand substitutes the exec.Cmd factory. Used by tests.
func WithExecCommand(fn ExecCommandFunc) Option {
	return func(e *Exec) { e.execCommand = fn }
}

// WithLookPath substitutes PATH resolution. Used by tests.
func WithLookPath(fn LookPathFunc) Option {
	return func(e *Exec) { e.lookPath = fn }
}

// WithStdio redirects the streams attached to Run commands.
func WithStdio(stdin io.Reader, stdout, stderr io.Writer) Option {
	return func(e *Exec) {
		e.stdin = stdin
		e.stdout = stdout
		e.stderr = stderr
	}
}

// NewExec creates a Runner that executes real host commands with stdio
// attached to this process.
func NewExec(opts ...Option) *Exec {
	e := &Exec{
		execCommand: exec.CommandContext,
		lookPath:    exec.LookPath,
		stdin:       os.Stdin,
		stdout:      os.Stdout,
		stderr:      os.Stderr,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// LookPath implements Runner.
func (e *Exec) LookPath(name string) (string, error) {
	return e.lookPath(name)
}

// Run implements Runner. The child inherits stdin so tools that prompt
// (brew link asking for credentials) stay usable.
func (e *Exec) Run(ctx context.Context, name string, args ...string) error {
	cmd := e.execCommand(ctx, name, args...)
	cmd.Stdin = e.stdin
	cmd.Stdout = e.stdout
	cmd.Stderr = e.stderr
	if err := cmd.Run(); err != nil {
		return commandError(name, args, err, "")
	}
	return nil
}

// Output implements Runner. Stderr is captured and folded into the error on
// failure so diagnostics are not lost for quiet probes.
func (e *Exec) Output(ctx context.Context, name string, args ...string) (string, error) {
	cmd := e.execCommand(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", commandError(name, args, err, stderr.String())
	}
	return stdout.String(), nil
}

// commandError formats a failed invocation as a single diagnosable error.
func commandError(name string, args []string, err error, stderr string) error {
	argv := name
	if len(args) > 0 {
		argv += " " + strings.Join(args, " ")
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if msg := strings.TrimSpace(stderr); msg != "" {
			return fmt.Errorf("%s: exit status %d: %s", argv, exitErr.ExitCode(), msg)
		}
		return fmt.Errorf("%s: exit status %d", argv, exitErr.ExitCode())
	}
	return fmt.Errorf("%s: %w", argv, err)
}

// StdinIsTerminal reports whether stdin is an interactive terminal. The
// prerequisite resolver uses this to warn that a relink needing credentials
// cannot prompt in a non-interactive session.
func StdinIsTerminal() bool {
	_, isTerm := term.GetFdInfo(os.Stdin)
	return isTerm
}
