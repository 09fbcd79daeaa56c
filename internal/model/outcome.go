package model

// Outcome is the classified result of a single target invocation.
type Outcome int

// Available Outcome values.
const (
	Success Outcome = iota
	PartialFailure
	NoRequestProcessed
	QueryLoadFailure
	Crash
	UnknownFailure
	Timeout
)

// Outcomes lists every Outcome in declaration order.
var Outcomes = []Outcome{
	Success,
	PartialFailure,
	NoRequestProcessed,
	QueryLoadFailure,
	Crash,
	UnknownFailure,
	Timeout,
}

var outcomeNames = map[Outcome]string{
	Success:            "success",
	PartialFailure:     "partial_failure",
	NoRequestProcessed: "no_request_processed",
	QueryLoadFailure:   "query_load_failure",
	Crash:              "crash",
	UnknownFailure:     "unknown_failure",
	Timeout:            "timeout",
}

func (o Outcome) String() string {
	if name, ok := outcomeNames[o]; ok {
		return name
	}

	return "invalid"
}

// ParseOutcome is the inverse of Outcome.String.
func ParseOutcome(name string) (Outcome, bool) {
	for o, n := range outcomeNames {
		if n == name {
			return o, true
		}
	}

	return 0, false
}

// IsFailure reports whether the outcome belongs in the error log.
func (o Outcome) IsFailure() bool {
	return o != Success && o != PartialFailure
}

// HasDiagnostics reports whether the outcome belongs in the crash log.
func (o Outcome) HasDiagnostics() bool {
	return o == Crash || o == Timeout
}
