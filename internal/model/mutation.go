package model

import "path/filepath"

// MutationAttempt describes one single-field mutant of the query document.
// It lives from the serialization of the mutant until its outcome is logged.
type MutationAttempt struct {
	Seq      uint64
	Mutator  string
	Field    string // tag of the mutated element
	Position string // element path with 1-based sibling indexes
	Original string
	Mutated  string
	Artifact Path // serialized mutant handed to the target
	Output   Path // where the target is told to write its response
}

// Name returns the artifact name without directory or extension.
func (a MutationAttempt) Name() string {
	base := filepath.Base(string(a.Artifact))

	return base[:len(base)-len(filepath.Ext(base))]
}
