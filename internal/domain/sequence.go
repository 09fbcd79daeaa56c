package domain

import "sync/atomic"

// Sequence hands out the artifact numbers of a run. Numbers start at 1 and
// strictly increase; it is safe for concurrent use.
type Sequence struct {
	n atomic.Uint64
}

// Next returns the next sequence number.
func (s *Sequence) Next() uint64 {
	return s.n.Add(1)
}

// Current returns the last number handed out, or zero.
func (s *Sequence) Current() uint64 {
	return s.n.Load()
}
