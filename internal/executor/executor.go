// Package executor runs the wrapped package tools as child processes, with
// optional sudo elevation and dry-run support.
package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"fpm/internal/logging"
)

// ExitError reports a wrapped tool that could not be started or exited
// non-zero.
type ExitError struct {
	Command string // command line, without the sudo prefix
	Code    int    // exit code, -1 if the process never ran
	Stderr  string // captured stderr, when the call captured it
	Err     error
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	if e.Code < 0 {
		return fmt.Sprintf("failed to run %s: %v", e.Command, e.Err)
	}
	msg := fmt.Sprintf("%s exited with status %d", e.Command, e.Code)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + s
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// Executor handles command execution with optional sudo elevation.
type Executor struct {
	dryRun  bool
	useSudo bool

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// New creates a new Executor. useSudo controls whether RunSudo elevates
// when the process is not already root.
func New(dryRun, useSudo bool) *Executor {
	return &Executor{
		dryRun:  dryRun,
		useSudo: useSudo,
		stdin:   os.Stdin,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
	}
}

// SetDryRun enables or disables dry-run mode.
func (e *Executor) SetDryRun(dryRun bool) {
	e.dryRun = dryRun
}

// DryRun reports whether commands are only printed.
func (e *Executor) DryRun() bool {
	return e.dryRun
}

// SetUseSudo enables or disables sudo elevation.
func (e *Executor) SetUseSudo(useSudo bool) {
	e.useSudo = useSudo
}

// SetOutput redirects the child's stdout and stderr along with dry-run
// messages.
func (e *Executor) SetOutput(stdout, stderr io.Writer) {
	e.stdout = stdout
	e.stderr = stderr
}

// Run executes a command without elevation, attached to the terminal.
func (e *Executor) Run(ctx context.Context, name string, args ...string) error {
	if e.dryRun {
		e.printDryRun(name, args, false)
		return nil
	}

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = e.stdin
	cmd.Stdout = e.stdout
	cmd.Stderr = e.stderr

	logging.Get("exec").Info("executing", "cmd", commandLine(name, args))
	return wrapErr(name, args, cmd.Run(), "")
}

// RunSudo executes a command attached to the terminal, through sudo if
// elevation is enabled and the process is not root.
func (e *Executor) RunSudo(ctx context.Context, name string, args ...string) error {
	if e.dryRun {
		e.printDryRun(name, args, e.elevates())
		return nil
	}

	cmd, err := e.sudoCommand(ctx, name, args)
	if err != nil {
		return err
	}

	cmd.Stdin = e.stdin
	cmd.Stdout = e.stdout
	cmd.Stderr = e.stderr

	logging.Get("exec").Info("executing", "cmd", commandLine(name, args), "sudo", e.elevates())
	return wrapErr(name, args, cmd.Run(), "")
}

// Output runs a read-only query and returns its stdout. Queries run even
// in dry-run mode so listings and searches still show results. On failure
// the captured stderr is part of the returned *ExitError.
func (e *Executor) Output(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logging.Get("exec").Debug("capturing", "cmd", commandLine(name, args))
	err := cmd.Run()
	return stdout.String(), wrapErr(name, args, err, stderr.String())
}

func (e *Executor) elevates() bool {
	return e.useSudo && !isRoot()
}

func (e *Executor) sudoCommand(ctx context.Context, name string, args []string) (*exec.Cmd, error) {
	if err := CheckPrivileges(e.elevates()); err != nil {
		return nil, err
	}
	if !e.elevates() {
		return exec.CommandContext(ctx, name, args...), nil
	}
	sudoArgs := append([]string{name}, args...)
	return exec.CommandContext(ctx, "sudo", sudoArgs...), nil
}

func (e *Executor) printDryRun(name string, args []string, sudo bool) {
	prefix := ""
	if sudo {
		prefix = "sudo "
	}
	fmt.Fprintf(e.stdout, "[dry-run] Would execute: %s%s\n", prefix, commandLine(name, args))
}

func commandLine(name string, args []string) string {
	if len(args) == 0 {
		return name
	}
	return name + " " + strings.Join(args, " ")
}

func wrapErr(name string, args []string, err error, stderr string) error {
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ExitError{
			Command: commandLine(name, args),
			Code:    exitErr.ExitCode(),
			Stderr:  stderr,
			Err:     err,
		}
	}

	return &ExitError{
		Command: commandLine(name, args),
		Code:    -1,
		Stderr:  stderr,
		Err:     err,
	}
}
