package controller

import (
	"bytes"
	"fmt"
	"io"
	"sort"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "github.com/mouse-blink/tqfuzz/internal/model"
)

const timeLayout = "2006-01-02 15:04:05"

// SimpleUI implements UI using cobra Command's output.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start initializes the UI.
func (s *SimpleUI) Start(_ ...StartOption) error {
	return nil
}

// Close finalizes the UI.
func (s *SimpleUI) Close() {

}

// DisplayCatalog prints the mutator catalog as a table.
func (s *SimpleUI) DisplayCatalog(entries []CatalogEntry) error {
	var buf bytes.Buffer

	renderCatalog(&buf, entries)
	s.printf("\n%s", buf.String())

	return nil
}

// DisplayRunInfo prints where the run reads and writes.
func (s *SimpleUI) DisplayRunInfo(info RunInfo) {
	s.printf("Run %s\n", info.RunID)
	s.printf("  input:      %s\n", info.Input)
	s.printf("  executable: %s\n", info.Executable)
	s.printf("  drugs:      %s\n", info.DrugDir)
	s.printf("  output:     %s\n", info.OutDir)
	s.printf("  log:        %s\n", info.Logs.Run)
	s.printf("  mutators:   %d (%d worker(s))\n", info.Mutators, info.Threads)
}

// DisplayUpcomingMutations shows the number of mutants about to be run.
func (s *SimpleUI) DisplayUpcomingMutations(total int) {
	s.printf("Upcoming mutants: %d\n", total)
}

// DisplayStartingMutator announces the sweep of one mutator.
func (s *SimpleUI) DisplayStartingMutator(index, total int, name string) {
	s.printf("## Test %d / %d --- [%s]\n", index, total, name)
}

// DisplayCompletedMutation prints the outcome of one mutant.
func (s *SimpleUI) DisplayCompletedMutation(report m.Report) {
	s.printf("[%d] %s %s -> %s\n",
		report.Attempt.Seq, report.Attempt.Mutator, report.Attempt.Position, report.Outcome)
}

// DisplaySummary prints the mutator x outcome table of a run.
func (s *SimpleUI) DisplaySummary(summary m.Summary) error {
	var buf bytes.Buffer

	renderSummary(&buf, summary)
	s.printf("\n%s", buf.String())

	return nil
}

// DisplayRuns prints the stored runs, newest first.
func (s *SimpleUI) DisplayRuns(runs []m.RunInfo) error {
	var buf bytes.Buffer

	renderRuns(&buf, runs)
	s.printf("\n%s", buf.String())

	return nil
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

func renderCatalog(w io.Writer, entries []CatalogEntry) {
	estimated := false
	total := 0

	for _, e := range entries {
		estimated = estimated || e.Estimated
		total += e.Applicable
	}

	header := []string{"Mutator", "Description"}
	if estimated {
		header = append(header, "Fields")
	}

	table := newTable(w, header)

	for _, e := range entries {
		row := []string{e.Name, e.Description}
		if estimated {
			row = append(row, fmt.Sprintf("%d", e.Applicable))
		}

		table.Append(row)
	}

	footer := []string{fmt.Sprintf("Total Mutators %d", len(entries)), ""}
	if estimated {
		footer = append(footer, fmt.Sprintf("%d", total))
	}

	table.SetFooter(footer)
	table.Render()
}

func renderSummary(w io.Writer, summary m.Summary) {
	_, _ = fmt.Fprintf(w, "Run %s: %d mutants, %d failures, %d skipped\n\n",
		summary.RunID, summary.Total, summary.Failures(), summary.Skipped)

	header := []string{"Mutator"}
	for _, o := range m.Outcomes {
		header = append(header, o.String())
	}

	table := newTable(w, header)

	names := make([]string, 0, len(summary.ByMutator))
	for name := range summary.ByMutator {
		names = append(names, name)
	}

	sort.Strings(names)

	for _, name := range names {
		row := []string{name}
		for _, o := range m.Outcomes {
			row = append(row, fmt.Sprintf("%d", summary.ByMutator[name][o]))
		}

		table.Append(row)
	}

	footer := []string{fmt.Sprintf("Total %d", summary.Total)}
	for _, o := range m.Outcomes {
		footer = append(footer, fmt.Sprintf("%d", summary.ByOutcome[o]))
	}

	table.SetFooter(footer)
	table.Render()

	if summary.Logs.Run != "" {
		_, _ = fmt.Fprintf(w, "Logs: %s\n", summary.Logs.Run)
	}
}

func renderRuns(w io.Writer, runs []m.RunInfo) {
	table := newTable(w, []string{"Run", "Started", "Input", "Executable", "Mutators"})

	for _, r := range runs {
		table.Append([]string{
			r.ID,
			r.StartedAt.Format(timeLayout),
			string(r.Input),
			string(r.Executable),
			fmt.Sprintf("%d", r.Mutators),
		})
	}

	table.Render()
}

func newTable(w io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	return table
}
