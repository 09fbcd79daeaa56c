package controller

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	m "github.com/mouse-blink/tqfuzz/internal/model"
)

// TUI implements UI using Bubble Tea for interactive display.
// Run mode drives a live progress program; static listings are printed
// once with lipgloss styling.
type TUI struct {
	output  io.Writer
	options []tea.ProgramOption

	mu      sync.Mutex
	program *tea.Program
	done    chan struct{}
	runErr  error
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

// Start initializes the UI. In run mode it launches the progress program.
func (t *TUI) Start(options ...StartOption) error {
	cfg := newStartConfig(options...)
	if cfg.mode != ModeRun {
		return nil
	}

	return t.startWithModel(newSweepModel(cfg.cancel))
}

func (t *TUI) startWithModel(model tea.Model) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.program != nil {
		return fmt.Errorf("ui already started")
	}

	opts := append([]tea.ProgramOption{tea.WithOutput(t.output)}, t.options...)
	program := tea.NewProgram(model, opts...)
	done := make(chan struct{})

	go func() {
		defer close(done)

		if _, err := program.Run(); err != nil {
			t.mu.Lock()
			t.runErr = err
			t.mu.Unlock()
		}
	}()

	t.program = program
	t.done = done

	return nil
}

// Close stops the progress program, if any, and waits for it to exit.
func (t *TUI) Close() {
	t.mu.Lock()
	program, done := t.program, t.done
	t.program, t.done = nil, nil
	t.mu.Unlock()

	if program == nil {
		return
	}

	program.Send(finishedMsg{})
	<-done
}

func (t *TUI) send(msg tea.Msg) {
	t.mu.Lock()
	program := t.program
	t.mu.Unlock()

	if program != nil {
		program.Send(msg)
	}
}

// DisplayCatalog prints the mutator catalog.
func (t *TUI) DisplayCatalog(entries []CatalogEntry) error {
	var buf bytes.Buffer

	renderCatalog(&buf, entries)

	return t.print("Mutator catalog", buf.String())
}

// DisplayRunInfo forwards the run description to the progress program.
func (t *TUI) DisplayRunInfo(info RunInfo) {
	t.send(runInfoMsg{info: info})
}

// DisplayUpcomingMutations sets the progress total.
func (t *TUI) DisplayUpcomingMutations(total int) {
	t.send(upcomingMsg{count: total})
}

// DisplayStartingMutator shows which mutator is sweeping.
func (t *TUI) DisplayStartingMutator(index, total int, name string) {
	t.send(startMutatorMsg{index: index, total: total, name: name})
}

// DisplayCompletedMutation advances the progress bar.
func (t *TUI) DisplayCompletedMutation(report m.Report) {
	t.send(completedMutationMsg{
		seq:      report.Attempt.Seq,
		mutator:  report.Attempt.Mutator,
		position: report.Attempt.Position,
		outcome:  report.Outcome,
	})
}

// DisplaySummary prints the mutator x outcome table of a run.
func (t *TUI) DisplaySummary(summary m.Summary) error {
	var buf bytes.Buffer

	renderSummary(&buf, summary)

	return t.print(fmt.Sprintf("Run %s", summary.RunID), buf.String())
}

// DisplayRuns prints the stored runs.
func (t *TUI) DisplayRuns(runs []m.RunInfo) error {
	var buf bytes.Buffer

	renderRuns(&buf, runs)

	return t.print("Stored runs", buf.String())
}

func (t *TUI) print(title, body string) error {
	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("205")).
		Bold(true).
		Padding(1, 0, 0, 2)

	_, err := fmt.Fprintf(t.output, "%s\n%s", titleStyle.Render(title), body)

	return err
}
