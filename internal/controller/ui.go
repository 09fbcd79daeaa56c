// Package controller provides the user-facing output of the harness: plain
// text tables for pipes and a Bubble Tea progress view for terminals.
package controller

import (
	"context"

	m "github.com/mouse-blink/tqfuzz/internal/model"
)

// CatalogEntry is one row of the mutator catalog listing.
type CatalogEntry struct {
	Name        string
	Description string
	// Applicable is the number of fields the mutator applies to; only
	// meaningful when Estimated is set.
	Applicable int
	Estimated  bool
}

// RunInfo describes a starting run.
type RunInfo struct {
	RunID      string
	Input      m.Path
	OutDir     m.Path
	Executable m.Path
	DrugDir    m.Path
	Logs       m.LogFiles
	Threads    int
	Mutators   int
}

// StartMode defines the mode of operation for the UI.
type StartMode int

// Available StartMode values.
const (
	ModeList StartMode = iota
	ModeRun
)

// StartOption is a functional option for Start method.
type StartOption func(*StartConfig)

// StartConfig holds configuration for starting the UI.
type StartConfig struct {
	mode   StartMode
	cancel context.CancelFunc
}

// WithListMode sets the UI to static listing mode.
func WithListMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeList
	}
}

// WithRunMode sets the UI to sweep progress mode.
func WithRunMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeRun
	}
}

// WithCancel lets an interactive UI abort the run it displays.
func WithCancel(cancel context.CancelFunc) StartOption {
	return func(c *StartConfig) {
		c.cancel = cancel
	}
}

func newStartConfig(options ...StartOption) StartConfig {
	cfg := StartConfig{mode: ModeList}
	for _, opt := range options {
		opt(&cfg)
	}

	return cfg
}

// UI defines the interface for displaying harness progress and results.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	Start(options ...StartOption) error
	Close()
	DisplayCatalog(entries []CatalogEntry) error
	DisplayRunInfo(info RunInfo)
	DisplayUpcomingMutations(total int)
	DisplayStartingMutator(index, total int, name string)
	DisplayCompletedMutation(report m.Report)
	DisplaySummary(summary m.Summary) error
	DisplayRuns(runs []m.RunInfo) error
}
