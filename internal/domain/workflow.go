package domain

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/beevik/etree"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mouse-blink/tqfuzz/internal/adapter"
	"github.com/mouse-blink/tqfuzz/internal/controller"
	"github.com/mouse-blink/tqfuzz/internal/domain/mutagens"
	m "github.com/mouse-blink/tqfuzz/internal/model"
)

// Defaults of RunArgs.
const (
	DefaultInput       = m.Path("imatinib.tqf")
	DefaultOutDir      = m.Path("output")
	DefaultLogFileName = "000_LOG.txt"
	DefaultScratch     = m.Path("tmptqf")
)

// RunArgs configures a full harness run.
type RunArgs struct {
	Input       m.Path
	OutDir      m.Path
	LogFileName string
	Executable  m.Path
	DrugDir     m.Path
	// Strict requires OutDir not to exist yet.
	Strict   bool
	Scratch  m.Path
	Prefix   string
	Mutators []string
	Threads  int
	// Timeout bounds each target invocation; zero waits forever.
	Timeout   time.Duration
	MaxOutput int
	ResultsDB m.Path
}

func (a RunArgs) withDefaults() RunArgs {
	if a.Input == "" {
		a.Input = DefaultInput
	}

	if a.OutDir == "" {
		a.OutDir = DefaultOutDir
	}

	if a.LogFileName == "" {
		a.LogFileName = DefaultLogFileName
	}

	if a.Scratch == "" {
		a.Scratch = DefaultScratch
	}

	if a.Prefix == "" {
		base := filepath.Base(string(a.Input))
		a.Prefix = strings.TrimSuffix(base, filepath.Ext(base))
	}

	if a.Threads <= 0 {
		a.Threads = 1
	}

	return a
}

// ListArgs configures the catalog listing.
type ListArgs struct {
	// Input, when set, is used to count the fields each mutator applies to.
	Input    m.Path
	Mutators []string
}

// ViewArgs selects stored results to display.
type ViewArgs struct {
	ResultsDB m.Path
	// RunID selects one run; empty lists every run.
	RunID string
}

// Workflow defines the harness operations exposed to the CLI.
type Workflow interface {
	Run(ctx context.Context, args RunArgs) (m.Summary, error)
	List(args ListArgs) error
	View(ctx context.Context, args ViewArgs) error
}

type workflow struct {
	fs        adapter.FSAdapter
	docs      adapter.DocumentAdapter
	runner    adapter.ProcessRunner
	openSink  adapter.LogSinkOpener
	openStore adapter.ReportStoreOpener
	ui        controller.UI
	logger    *zap.Logger
}

// NewWorkflow creates a new Workflow instance with the provided adapters.
func NewWorkflow(
	fs adapter.FSAdapter,
	docs adapter.DocumentAdapter,
	runner adapter.ProcessRunner,
	openSink adapter.LogSinkOpener,
	openStore adapter.ReportStoreOpener,
	ui controller.UI,
	logger *zap.Logger,
) Workflow {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &workflow{
		fs:        fs,
		docs:      docs,
		runner:    runner,
		openSink:  openSink,
		openStore: openStore,
		ui:        ui,
		logger:    logger,
	}
}

// Run sweeps every selected mutator over the input document.
func (w *workflow) Run(ctx context.Context, args RunArgs) (m.Summary, error) {
	args = args.withDefaults()

	mutators, err := mutagens.Select(args.Mutators)
	if err != nil {
		return m.Summary{}, &ConfigError{Problems: []string{err.Error()}}
	}

	if err := w.preflight(args); err != nil {
		return m.Summary{}, err
	}

	doc, err := w.docs.Load(args.Input)
	if err != nil {
		return m.Summary{}, &ConfigError{Problems: []string{err.Error()}}
	}

	if err := w.fs.MkdirAll(args.OutDir); err != nil {
		return m.Summary{}, fmt.Errorf("failed to create output directory: %w", err)
	}

	logs, err := w.fs.UniqueLogFiles(args.OutDir, args.LogFileName)
	if err != nil {
		return m.Summary{}, err
	}

	if err := w.fs.ResetDir(args.Scratch); err != nil {
		return m.Summary{}, fmt.Errorf("failed to prepare scratch directory: %w", err)
	}

	sink, err := w.openSink(logs)
	if err != nil {
		return m.Summary{}, err
	}

	summary, runErr := w.runWithSink(ctx, args, doc, mutators, sink)
	summary.Logs = logs

	if err := sink.Close(); err != nil {
		runErr = errors.Join(runErr, fmt.Errorf("failed to close logs: %w", err))
	}

	return summary, runErr
}

func (w *workflow) runWithSink(
	ctx context.Context,
	args RunArgs,
	doc *etree.Document,
	mutators []mutagens.Mutator,
	sink adapter.LogSink,
) (summary m.Summary, err error) {
	store, err := w.openStore(args.ResultsDB)
	if err != nil {
		return m.Summary{}, err
	}

	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("failed to close results db: %w", closeErr))
		}
	}()

	runID := uuid.NewString()
	summary = m.NewSummary(runID)

	if err := store.BeginRun(ctx, m.RunInfo{
		ID:         runID,
		StartedAt:  time.Now(),
		Input:      args.Input,
		Executable: args.Executable,
		Mutators:   len(mutators),
	}); err != nil {
		return summary, err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := w.ui.Start(controller.WithRunMode(), controller.WithCancel(cancel)); err != nil {
		return summary, err
	}

	uiClosed := false
	defer func() {
		if !uiClosed {
			w.ui.Close()
		}
	}()

	w.ui.DisplayRunInfo(controller.RunInfo{
		RunID:      runID,
		Input:      args.Input,
		OutDir:     args.OutDir,
		Executable: args.Executable,
		DrugDir:    args.DrugDir,
		Logs:       sink.Files(),
		Threads:    args.Threads,
		Mutators:   len(mutators),
	})

	logger := w.logger.With(zap.String("run_id", runID))
	logger.Info("starting run",
		zap.String("input", string(args.Input)),
		zap.String("out_dir", string(args.OutDir)),
		zap.String("log", string(sink.Files().Run)),
		zap.String("executable", string(args.Executable)),
		zap.String("drug_dir", string(args.DrugDir)),
		zap.Int("mutators", len(mutators)),
		zap.Int("threads", args.Threads))

	seq := &Sequence{}
	mg := NewMutagen(w.fs, w.docs, seq, Layout{Scratch: args.Scratch, OutDir: args.OutDir, Prefix: args.Prefix})

	total := 0
	for _, n := range mg.Estimate(doc, mutators) {
		total += n
	}

	w.ui.DisplayUpcomingMutations(total)

	rec := &recorder{
		sink:    sink,
		store:   store,
		ui:      w.ui,
		logger:  logger,
		runID:   runID,
		timeout: args.Timeout,
		summary: &summary,
	}
	orch := NewOrchestrator(w.runner, Target{
		Executable: args.Executable,
		DrugDir:    args.DrugDir,
		Timeout:    args.Timeout,
		MaxOutput:  args.MaxOutput,
	})

	visit := func(ctx context.Context, attempt m.MutationAttempt) error {
		report, err := orch.TestMutation(ctx, attempt)
		if err != nil {
			return err
		}

		return rec.record(ctx, report)
	}

	sweepErr := w.sweepAll(ctx, doc, mg, mutators, args.Threads, visit, rec)

	w.ui.Close()
	uiClosed = true

	if sweepErr != nil {
		logger.Error("run aborted", zap.Error(sweepErr), zap.Uint64("last_seq", seq.Current()))
		return summary, sweepErr
	}

	logger.Info("run complete",
		zap.Int("mutants", summary.Total),
		zap.Int("failures", summary.Failures()),
		zap.Int("skipped", summary.Skipped))

	return summary, w.ui.DisplaySummary(summary)
}

// sweepAll runs every mutator sweep. With a single thread the sweeps share
// doc and run in catalog order; otherwise each sweep works on its own copy.
func (w *workflow) sweepAll(
	ctx context.Context,
	doc *etree.Document,
	mg Mutagen,
	mutators []mutagens.Mutator,
	threads int,
	visit Visit,
	rec *recorder,
) error {
	sweep := func(ctx context.Context, i int, mutator mutagens.Mutator, doc *etree.Document) error {
		rec.starting(i+1, len(mutators), mutator.Name)

		stats, err := mg.Sweep(ctx, doc, mutator, visit)
		rec.skipped(stats.Skipped)

		if err != nil {
			return fmt.Errorf("mutator %s: %w", mutator.Name, err)
		}

		rec.logger.Debug("mutator done",
			zap.String("mutator", mutator.Name),
			zap.Int("mutants", stats.Mutants),
			zap.Int("skipped", stats.Skipped))

		return nil
	}

	if threads <= 1 {
		for i, mutator := range mutators {
			if err := sweep(ctx, i, mutator, doc); err != nil {
				return err
			}
		}

		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(threads)

	for i, mutator := range mutators {
		clone := doc.Copy()

		g.Go(func() error {
			return sweep(gctx, i, mutator, clone)
		})
	}

	return g.Wait()
}

// preflight checks every configured path before anything is touched.
func (w *workflow) preflight(args RunArgs) error {
	var problems []string

	if info, err := w.fs.FileInfo(args.Input); err != nil || info.IsDir() {
		problems = append(problems, "invalid input TQF file: "+string(args.Input))
	}

	if args.Executable == "" {
		problems = append(problems, "no target executable configured")
	} else if info, err := w.fs.FileInfo(args.Executable); err != nil || info.IsDir() {
		problems = append(problems, "invalid target executable path: "+string(args.Executable))
	}

	if args.DrugDir == "" {
		problems = append(problems, "no drug definitions directory configured")
	} else if info, err := w.fs.FileInfo(args.DrugDir); err != nil || !info.IsDir() {
		problems = append(problems, "invalid drug definitions directory path: "+string(args.DrugDir))
	}

	if args.Strict {
		if _, err := w.fs.FileInfo(args.OutDir); err == nil || !os.IsNotExist(err) {
			problems = append(problems, "output directory already exists: "+string(args.OutDir))
		}
	}

	if len(problems) == 0 {
		return nil
	}

	for _, p := range problems {
		w.logger.Error(p)
	}

	return &ConfigError{Problems: problems}
}

// List displays the mutator catalog, with applicable counts when an input
// document is given.
func (w *workflow) List(args ListArgs) error {
	mutators, err := mutagens.Select(args.Mutators)
	if err != nil {
		return &ConfigError{Problems: []string{err.Error()}}
	}

	var counts map[string]int

	if args.Input != "" {
		doc, err := w.docs.Load(args.Input)
		if err != nil {
			return &ConfigError{Problems: []string{err.Error()}}
		}

		counts = NewMutagen(w.fs, w.docs, &Sequence{}, Layout{}).Estimate(doc, mutators)
	}

	entries := make([]controller.CatalogEntry, 0, len(mutators))

	for _, mutator := range mutators {
		entry := controller.CatalogEntry{Name: mutator.Name, Description: mutator.Description}
		if counts != nil {
			entry.Applicable = counts[mutator.Name]
			entry.Estimated = true
		}

		entries = append(entries, entry)
	}

	if err := w.ui.Start(controller.WithListMode()); err != nil {
		return err
	}
	defer w.ui.Close()

	return w.ui.DisplayCatalog(entries)
}

// View displays stored runs, or the summary of one run.
func (w *workflow) View(ctx context.Context, args ViewArgs) error {
	if args.ResultsDB == "" {
		return &ConfigError{Problems: []string{"no results database configured"}}
	}

	if _, err := w.fs.FileInfo(args.ResultsDB); err != nil {
		return &ConfigError{Problems: []string{"invalid results database path: " + string(args.ResultsDB)}}
	}

	store, err := w.openStore(args.ResultsDB)
	if err != nil {
		return err
	}

	defer func() { _ = store.Close() }()

	if err := w.ui.Start(controller.WithListMode()); err != nil {
		return err
	}
	defer w.ui.Close()

	if args.RunID == "" {
		runs, err := store.LoadRuns(ctx)
		if err != nil {
			return err
		}

		return w.ui.DisplayRuns(runs)
	}

	reports, err := store.LoadReports(ctx, args.RunID)
	if err != nil {
		return err
	}

	if len(reports) == 0 {
		return fmt.Errorf("no results stored for run %s", args.RunID)
	}

	summary := m.NewSummary(args.RunID)
	for _, r := range reports {
		summary.Add(r)
	}

	return w.ui.DisplaySummary(summary)
}

// recorder is the logging half of the classifier: it routes each report to
// the logs, the results store and the UI.
type recorder struct {
	mu      sync.Mutex
	sink    adapter.LogSink
	store   adapter.ReportStore
	ui      controller.UI
	logger  *zap.Logger
	runID   string
	timeout time.Duration
	summary *m.Summary
}

func (r *recorder) record(ctx context.Context, report m.Report) error {
	if err := r.sink.Append(LogEntryFor(report, r.timeout)); err != nil {
		return err
	}

	// The mutant has run and is in the run log; store it even when the run
	// is being cancelled.
	if err := r.store.SaveReport(context.WithoutCancel(ctx), r.runID, report); err != nil {
		return err
	}

	r.mu.Lock()
	r.summary.Add(report)
	r.ui.DisplayCompletedMutation(report)
	r.mu.Unlock()

	r.logger.Debug("mutant classified",
		zap.Uint64("seq", report.Attempt.Seq),
		zap.String("mutator", report.Attempt.Mutator),
		zap.String("position", report.Attempt.Position),
		zap.Stringer("outcome", report.Outcome),
		zap.Int("exit_code", report.ExitCode),
		zap.Duration("duration", report.Duration))

	return nil
}

func (r *recorder) starting(index, total int, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.logger.Info(fmt.Sprintf("## Test %d / %d --- [%s]", index, total, name))
	r.ui.DisplayStartingMutator(index, total, name)
}

func (r *recorder) skipped(n int) {
	r.mu.Lock()
	r.summary.Skipped += n
	r.mu.Unlock()
}
