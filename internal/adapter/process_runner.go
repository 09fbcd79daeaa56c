package adapter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"syscall"
	"time"

	m "github.com/mouse-blink/tqfuzz/internal/model"
)

// DefaultMaxOutput caps each captured stream of the target process.
const DefaultMaxOutput = 1 << 20 // 1 MB

// waitDelay bounds how long a killed target may keep its pipes open.
const waitDelay = 2 * time.Second

// Invocation is the fixed argument contract of the dosing engine CLI.
type Invocation struct {
	Executable m.Path
	DrugDir    m.Path
	Input      m.Path
	Output     m.Path
	// Timeout and MaxOutput override the runner defaults when positive.
	Timeout   time.Duration
	MaxOutput int
}

// Args returns the argv handed to the executable, without argv[0].
func (inv Invocation) Args() []string {
	return []string{
		"-d", string(inv.DrugDir),
		"-i", string(inv.Input),
		"-o", string(inv.Output),
	}
}

// ProcessResult holds what the harness observes of one target execution.
type ProcessResult struct {
	ExitCode  int
	Stdout    []byte
	Stderr    []byte
	TimedOut  bool
	Truncated bool
	Duration  time.Duration
}

// ProcessRunner executes the target once per mutant.
type ProcessRunner interface {
	// Execute blocks until the target exits. A non-nil error means the
	// process could not be run at all; non-zero exit codes are not errors.
	// Cancelling ctx does not kill the target, only the timeout does.
	Execute(ctx context.Context, inv Invocation) (ProcessResult, error)
}

// LocalProcessRunner runs the target as a child process.
type LocalProcessRunner struct {
	// Timeout bounds each invocation; zero waits forever.
	Timeout   time.Duration
	MaxOutput int
}

// NewLocalProcessRunner constructs a LocalProcessRunner.
func NewLocalProcessRunner(timeout time.Duration, maxOutput int) *LocalProcessRunner {
	if maxOutput <= 0 {
		maxOutput = DefaultMaxOutput
	}

	return &LocalProcessRunner{Timeout: timeout, MaxOutput: maxOutput}
}

// Execute runs the executable with the -d/-i/-o contract.
func (r *LocalProcessRunner) Execute(ctx context.Context, inv Invocation) (ProcessResult, error) {
	if inv.Executable == "" {
		return ProcessResult{}, fmt.Errorf("empty executable path")
	}

	timeout := r.Timeout
	if inv.Timeout > 0 {
		timeout = inv.Timeout
	}

	maxOutput := r.MaxOutput
	if inv.MaxOutput > 0 {
		maxOutput = inv.MaxOutput
	}

	runCtx := context.WithoutCancel(ctx)

	if timeout > 0 {
		var cancel context.CancelFunc

		runCtx, cancel = context.WithTimeout(runCtx, timeout)
		defer cancel()
	}

	// #nosec G204 - the executable is the configured target under test
	cmd := exec.CommandContext(runCtx, string(inv.Executable), inv.Args()...)
	cmd.WaitDelay = waitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &limitWriter{buf: &stdout, limit: maxOutput}
	cmd.Stderr = &limitWriter{buf: &stderr, limit: maxOutput}

	start := time.Now()
	runErr := cmd.Run()
	duration := time.Since(start)

	result := ProcessResult{
		Stdout:    stdout.Bytes(),
		Stderr:    stderr.Bytes(),
		Truncated: stdout.Len() >= maxOutput || stderr.Len() >= maxOutput,
		Duration:  duration,
	}

	if runErr == nil {
		return result, nil
	}

	var exitErr *exec.ExitError
	if !errors.As(runErr, &exitErr) {
		return ProcessResult{}, fmt.Errorf("executing %s: %w", inv.Executable, runErr)
	}

	result.TimedOut = errors.Is(runCtx.Err(), context.DeadlineExceeded)
	result.ExitCode = exitCode(exitErr, result.TimedOut)

	return result, nil
}

// exitCode reports a signal death as the negated signal number, -11 for
// SIGSEGV. A process killed on timeout reports -1.
func exitCode(exitErr *exec.ExitError, timedOut bool) int {
	if timedOut {
		return -1
	}

	if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return -int(ws.Signal())
	}

	return exitErr.ExitCode()
}

// limitWriter writes up to limit bytes to buf, then silently discards the rest.
type limitWriter struct {
	buf   *bytes.Buffer
	limit int
}

func (w *limitWriter) Write(p []byte) (int, error) {
	remaining := w.limit - w.buf.Len()
	if remaining <= 0 {
		return len(p), nil
	}

	if len(p) > remaining {
		w.buf.Write(p[:remaining])

		return len(p), nil
	}

	return w.buf.Write(p)
}
