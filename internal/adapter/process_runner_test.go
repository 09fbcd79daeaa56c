package adapter

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"testing"
	"time"

	m "github.com/mouse-blink/tqfuzz/internal/model"
)

func writeScript(t *testing.T, body string) m.Path {
	t.Helper()

	path := filepath.Join(t.TempDir(), "target.sh")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o700); err != nil {
		t.Fatalf("failed to write script: %v", err)
	}

	return m.Path(path)
}

func invocation(exe m.Path) Invocation {
	return Invocation{Executable: exe, DrugDir: "drugs", Input: "in.tqf", Output: "out.xml"}
}

func TestInvocation_Args(t *testing.T) {
	got := strings.Join(invocation("x").Args(), " ")
	if got != "-d drugs -i in.tqf -o out.xml" {
		t.Fatalf("Args() = %q", got)
	}
}

func TestLocalProcessRunner_PassesArguments(t *testing.T) {
	r := NewLocalProcessRunner(0, 0)

	res, err := r.Execute(context.Background(), invocation(writeScript(t, `echo "$@"`)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.ExitCode != 0 {
		t.Errorf("ExitCode = %d, want 0", res.ExitCode)
	}

	if strings.TrimSpace(string(res.Stdout)) != "-d drugs -i in.tqf -o out.xml" {
		t.Errorf("Stdout = %q", res.Stdout)
	}
}

func TestLocalProcessRunner_ExitCodes(t *testing.T) {
	r := NewLocalProcessRunner(0, 0)

	for _, code := range []string{"1", "2", "3", "42"} {
		t.Run(code, func(t *testing.T) {
			res, err := r.Execute(context.Background(), invocation(writeScript(t, "exit "+code)))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got := strconv.Itoa(res.ExitCode); got != code {
				t.Errorf("ExitCode = %s, want %s", got, code)
			}

			if len(res.Stderr) != 0 {
				t.Errorf("Stderr = %q, want empty", res.Stderr)
			}
		})
	}
}

func TestLocalProcessRunner_CapturesStderr(t *testing.T) {
	r := NewLocalProcessRunner(0, 0)

	res, err := r.Execute(context.Background(), invocation(writeScript(t, "echo 'segfault in parser' >&2\nexit 139")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.ExitCode != 139 {
		t.Errorf("ExitCode = %d, want 139", res.ExitCode)
	}

	if !strings.Contains(string(res.Stderr), "segfault in parser") {
		t.Errorf("Stderr = %q", res.Stderr)
	}

	if res.TimedOut {
		t.Error("TimedOut = true, want false")
	}
}

func TestLocalProcessRunner_Timeout(t *testing.T) {
	r := NewLocalProcessRunner(100*time.Millisecond, 0)

	res, err := r.Execute(context.Background(), invocation(writeScript(t, "exec sleep 10")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !res.TimedOut {
		t.Fatalf("TimedOut = false, want true (exit code %d)", res.ExitCode)
	}

	if res.Duration > 5*time.Second {
		t.Errorf("Duration = %v, expected the process to be killed", res.Duration)
	}
}

func TestLocalProcessRunner_ParentCancelledRunsToCompletion(t *testing.T) {
	r := NewLocalProcessRunner(0, 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := r.Execute(ctx, invocation(writeScript(t, "sleep 0.1\nexit 2")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.ExitCode != 2 {
		t.Errorf("ExitCode = %d, want 2", res.ExitCode)
	}
}

func TestLocalProcessRunner_CancelKeepsTimeout(t *testing.T) {
	r := NewLocalProcessRunner(100*time.Millisecond, 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := r.Execute(ctx, invocation(writeScript(t, "exec sleep 10")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !res.TimedOut || res.ExitCode != -1 {
		t.Errorf("TimedOut = %v, ExitCode = %d, want true, -1", res.TimedOut, res.ExitCode)
	}
}

func TestLocalProcessRunner_SignalDeath(t *testing.T) {
	r := NewLocalProcessRunner(0, 0)

	res, err := r.Execute(context.Background(), invocation(writeScript(t, "echo boom >&2\nkill -SEGV $$")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if want := -int(syscall.SIGSEGV); res.ExitCode != want {
		t.Errorf("ExitCode = %d, want %d", res.ExitCode, want)
	}

	if !strings.Contains(string(res.Stderr), "boom") {
		t.Errorf("Stderr = %q", res.Stderr)
	}

	if res.TimedOut {
		t.Error("TimedOut = true, want false")
	}
}

func TestLocalProcessRunner_MissingExecutable(t *testing.T) {
	r := NewLocalProcessRunner(0, 0)

	_, err := r.Execute(context.Background(), invocation("/nonexistent/target-xyz"))
	if err == nil {
		t.Fatal("expected error for missing executable")
	}

	if !strings.Contains(err.Error(), "target-xyz") {
		t.Errorf("error = %q, want to mention the executable", err)
	}

	if _, err := r.Execute(context.Background(), Invocation{}); err == nil {
		t.Fatal("expected error for empty executable")
	}
}

func TestLocalProcessRunner_TruncatesOutput(t *testing.T) {
	r := NewLocalProcessRunner(0, 16)

	res, err := r.Execute(context.Background(), invocation(writeScript(t, "printf '%0100d' 0 >&2\nexit 5")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(res.Stderr) != 16 || !res.Truncated {
		t.Errorf("Stderr len = %d, Truncated = %v", len(res.Stderr), res.Truncated)
	}
}

func TestLimitWriter(t *testing.T) {
	var buf bytes.Buffer

	w := &limitWriter{buf: &buf, limit: 4}

	n, err := w.Write([]byte("abcdef"))
	if err != nil || n != 6 {
		t.Fatalf("Write() = %d, %v", n, err)
	}

	n, err = w.Write([]byte("gh"))
	if err != nil || n != 2 {
		t.Fatalf("Write() = %d, %v", n, err)
	}

	if buf.String() != "abcd" {
		t.Fatalf("buffer = %q, want abcd", buf.String())
	}
}

func TestLocalProcessRunner_InvocationOverrides(t *testing.T) {
	r := NewLocalProcessRunner(0, 0)

	inv := invocation(writeScript(t, "printf '%0100d' 0 >&2\nexec sleep 10"))
	inv.Timeout = 100 * time.Millisecond
	inv.MaxOutput = 8

	res, err := r.Execute(context.Background(), inv)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !res.TimedOut {
		t.Error("TimedOut = false, want true")
	}

	if len(res.Stderr) != 8 {
		t.Errorf("Stderr len = %d, want 8", len(res.Stderr))
	}
}
