package controller

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	m "github.com/mouse-blink/tqfuzz/internal/model"
)

const recentLimit = 8

var outcomeColors = map[m.Outcome]lipgloss.Color{
	m.Success:            lipgloss.Color("2"), // Green
	m.PartialFailure:     lipgloss.Color("3"), // Yellow
	m.NoRequestProcessed: lipgloss.Color("1"),
	m.QueryLoadFailure:   lipgloss.Color("1"),
	m.Crash:              lipgloss.Color("9"), // Bright red
	m.UnknownFailure:     lipgloss.Color("5"),
	m.Timeout:            lipgloss.Color("9"),
}

// sweepModel shows the progress of a run.
type sweepModel struct {
	width        int
	progressBar  progress.Model
	info         RunInfo
	total        int
	completed    int
	counts       map[m.Outcome]int
	mutatorIndex int
	mutatorTotal int
	mutatorName  string
	recent       []completedMutationMsg
	cancel       context.CancelFunc
	aborting     bool
	finished     bool
}

func newSweepModel(cancel context.CancelFunc) sweepModel {
	prog := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(40),
		progress.WithoutPercentage(),
	)

	return sweepModel{
		progressBar: prog,
		counts:      make(map[m.Outcome]int),
		cancel:      cancel,
	}
}

func (sm sweepModel) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Millisecond*100, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (sm sweepModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		sm.width = msg.Width

	case tea.KeyMsg:
		return sm.handleKeyMsg(msg)

	case tickMsg:
		if sm.finished {
			return sm, nil
		}

		return sm, tick()

	case runInfoMsg:
		sm.info = msg.info

	case upcomingMsg:
		sm.total = msg.count
		sm.completed = 0

	case startMutatorMsg:
		sm.mutatorIndex = msg.index
		sm.mutatorTotal = msg.total
		sm.mutatorName = msg.name

	case completedMutationMsg:
		sm.completed++
		sm.counts[msg.outcome]++

		sm.recent = append(sm.recent, msg)
		if len(sm.recent) > recentLimit {
			sm.recent = sm.recent[len(sm.recent)-recentLimit:]
		}

	case finishedMsg:
		sm.finished = true
		return sm, tea.Quit
	}

	return sm, nil
}

func (sm sweepModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		if !sm.aborting && sm.cancel != nil {
			sm.cancel()
		}

		sm.aborting = true
	}

	return sm, nil
}

func (sm sweepModel) percent() float64 {
	if sm.total == 0 {
		return 0
	}

	return float64(sm.completed) / float64(sm.total)
}

func (sm sweepModel) View() string {
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("205")).
		Bold(true).
		Padding(1, 0, 0, 2)

	bodyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252")).
		Padding(0, 0, 0, 2)

	title := titleStyle.Render("tqfuzz " + sm.info.RunID)

	summary := bodyStyle.Render(fmt.Sprintf(
		"Mutants: %s / %s  •  Mutator: %s / %s %s",
		accentStyle.Render(fmt.Sprintf("%d", sm.completed)),
		accentStyle.Render(fmt.Sprintf("%d", sm.total)),
		accentStyle.Render(fmt.Sprintf("%d", sm.mutatorIndex)),
		accentStyle.Render(fmt.Sprintf("%d", sm.mutatorTotal)),
		sm.mutatorName,
	))

	progressView := lipgloss.NewStyle().Padding(1, 2).Render(sm.progressBar.ViewAs(sm.percent()))

	counts := make([]string, 0, len(m.Outcomes))
	for _, o := range m.Outcomes {
		style := lipgloss.NewStyle().Foreground(outcomeColors[o])
		counts = append(counts, style.Render(fmt.Sprintf("%s %d", o, sm.counts[o])))
	}

	recent := make([]string, 0, len(sm.recent))
	for _, r := range sm.recent {
		style := lipgloss.NewStyle().Foreground(outcomeColors[r.outcome])
		recent = append(recent, fmt.Sprintf("%5d  %-26s %s  %s", r.seq, r.mutator, style.Render(r.outcome.String()), r.position))
	}

	footerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Padding(1, 0, 0, 2)

	footer := footerStyle.Render("Press q to abort")
	if sm.aborting {
		footer = footerStyle.Render("Aborting after the current mutant…")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		summary,
		progressView,
		bodyStyle.Render(strings.Join(counts, "  ")),
		bodyStyle.Render(strings.Join(recent, "\n")),
		footer,
	) + "\n"
}
