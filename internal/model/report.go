package model

import "time"

// Report is the classified result of running the target on one mutant.
type Report struct {
	Attempt  MutationAttempt
	Outcome  Outcome
	ExitCode int
	Stderr   []byte
	Duration time.Duration
}

// LogFiles names the three text logs of a run.
type LogFiles struct {
	Run   Path
	Error Path
	Crash Path
}

// Summary aggregates the reports of one run.
type Summary struct {
	RunID     string
	Logs      LogFiles
	Total     int
	Skipped   int
	ByOutcome map[Outcome]int
	// ByMutator counts outcomes per mutator name.
	ByMutator map[string]map[Outcome]int
}

// NewSummary returns an empty Summary for runID.
func NewSummary(runID string) Summary {
	return Summary{
		RunID:     runID,
		ByOutcome: make(map[Outcome]int),
		ByMutator: make(map[string]map[Outcome]int),
	}
}

// Add records a report in the summary.
func (s *Summary) Add(r Report) {
	s.Total++
	s.ByOutcome[r.Outcome]++

	perMutator, ok := s.ByMutator[r.Attempt.Mutator]
	if !ok {
		perMutator = make(map[Outcome]int)
		s.ByMutator[r.Attempt.Mutator] = perMutator
	}

	perMutator[r.Outcome]++
}

// Failures returns the number of reports that reached the error log.
func (s Summary) Failures() int {
	n := 0

	for o, c := range s.ByOutcome {
		if o.IsFailure() {
			n += c
		}
	}

	return n
}

// RunInfo identifies one harness run in the results store.
type RunInfo struct {
	ID         string
	StartedAt  time.Time
	Input      Path
	Executable Path
	Mutators   int
}
