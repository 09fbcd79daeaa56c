package controller

import (
	"time"

	m "github.com/mouse-blink/tqfuzz/internal/model"
)

// Message types.
type tickMsg time.Time

type runInfoMsg struct {
	info RunInfo
}

type upcomingMsg struct {
	count int
}

type startMutatorMsg struct {
	index int
	total int
	name  string
}

type completedMutationMsg struct {
	seq      uint64
	mutator  string
	position string
	outcome  m.Outcome
}

type finishedMsg struct{}
