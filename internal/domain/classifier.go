package domain

import (
	"fmt"
	"time"

	"github.com/mouse-blink/tqfuzz/internal/adapter"
	m "github.com/mouse-blink/tqfuzz/internal/model"
)

// Exit codes of the dosing engine CLI.
const (
	ExitSuccess            = 0
	ExitPartialFailure     = 1
	ExitNoRequestProcessed = 2
	ExitQueryLoadFailure   = 3
)

const logSeparator = "---------------"

// Classify maps what the target did to an Outcome. A timed-out run is a
// Timeout whatever its exit code; otherwise the exit code decides and
// unexpected codes split on whether the target wrote diagnostics.
func Classify(exitCode int, stderr []byte, timedOut bool) m.Outcome {
	if timedOut {
		return m.Timeout
	}

	switch exitCode {
	case ExitSuccess:
		return m.Success
	case ExitPartialFailure:
		return m.PartialFailure
	case ExitNoRequestProcessed:
		return m.NoRequestProcessed
	case ExitQueryLoadFailure:
		return m.QueryLoadFailure
	}

	if len(stderr) > 0 {
		return m.Crash
	}

	return m.UnknownFailure
}

// OutcomeMessage is the line that reports the outcome in the logs.
func OutcomeMessage(r m.Report, timeout time.Duration) string {
	switch r.Outcome {
	case m.Success:
		return "Execution complete!"
	case m.PartialFailure:
		return "Execution complete but some request failed at some stage of the process."
	case m.NoRequestProcessed:
		return fmt.Sprintf("EXECUTION FAILED [%d]: No request could be fully processed", r.ExitCode)
	case m.QueryLoadFailure:
		return fmt.Sprintf("EXECUTION FAILED [%d]: The query file could not be loaded.", r.ExitCode)
	case m.Crash:
		return fmt.Sprintf("EXECUTION FAILED [%d]: Program crashed during processing of file: %s", r.ExitCode, r.Attempt.Name())
	case m.Timeout:
		return fmt.Sprintf("EXECUTION FAILED [timeout]: Execution exceeded %s during processing of file: %s", timeout, r.Attempt.Name())
	default:
		return fmt.Sprintf("EXECUTION FAILED [%d]: Unknown error during processing of file: %s", r.ExitCode, r.Attempt.Name())
	}
}

// LogEntryFor builds the lines r contributes to the run, error and crash logs.
func LogEntryFor(r m.Report, timeout time.Duration) adapter.LogEntry {
	message := OutcomeMessage(r, timeout)

	entry := adapter.LogEntry{
		Run: []string{
			"File modified: " + string(r.Attempt.Artifact),
			fmt.Sprintf("Changed cell %s to %s", r.Attempt.Field, r.Attempt.Mutated),
			message,
			logSeparator,
		},
	}

	if r.Outcome.IsFailure() {
		entry.Error = []string{message}
	}

	if r.Outcome.HasDiagnostics() {
		entry.Crash = []string{message}
		entry.Diagnostics = r.Stderr
	}

	return entry
}
