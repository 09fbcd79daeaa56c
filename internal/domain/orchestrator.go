package domain

import (
	"context"
	"fmt"
	"time"

	"github.com/mouse-blink/tqfuzz/internal/adapter"
	m "github.com/mouse-blink/tqfuzz/internal/model"
)

// Target describes the executable under test and how to invoke it.
type Target struct {
	Executable m.Path
	DrugDir    m.Path
	Timeout    time.Duration
	MaxOutput  int
}

// Orchestrator runs the target on a serialized mutant and classifies what
// it did.
type Orchestrator interface {
	TestMutation(ctx context.Context, attempt m.MutationAttempt) (m.Report, error)
}

type orchestrator struct {
	runner adapter.ProcessRunner
	target Target
}

// NewOrchestrator constructs an Orchestrator backed by the provided process runner.
func NewOrchestrator(runner adapter.ProcessRunner, target Target) Orchestrator {
	return &orchestrator{
		runner: runner,
		target: target,
	}
}

func (o *orchestrator) TestMutation(ctx context.Context, attempt m.MutationAttempt) (m.Report, error) {
	res, err := o.runner.Execute(ctx, adapter.Invocation{
		Executable: o.target.Executable,
		DrugDir:    o.target.DrugDir,
		Input:      attempt.Artifact,
		Output:     attempt.Output,
		Timeout:    o.target.Timeout,
		MaxOutput:  o.target.MaxOutput,
	})
	if err != nil {
		return m.Report{}, fmt.Errorf("failed to run mutant %d: %w", attempt.Seq, err)
	}

	return m.Report{
		Attempt:  attempt,
		Outcome:  Classify(res.ExitCode, res.Stderr, res.TimedOut),
		ExitCode: res.ExitCode,
		Stderr:   res.Stderr,
		Duration: res.Duration,
	}, nil
}
