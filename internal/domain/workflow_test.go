package domain

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/mouse-blink/tqfuzz/internal/adapter"
	"github.com/mouse-blink/tqfuzz/internal/controller"
	controllermocks "github.com/mouse-blink/tqfuzz/internal/controller/mocks"
	"github.com/mouse-blink/tqfuzz/internal/domain/mutagens"
	m "github.com/mouse-blink/tqfuzz/internal/model"
)

// exitOnNaN fails to load any query carrying NaN and succeeds otherwise.
const exitOnNaN = `if grep -q NaN "$4"; then exit 3; fi
exit 0`

type runFixture struct {
	dir  string
	args RunArgs
}

func newRunFixture(t *testing.T, query, script string) runFixture {
	t.Helper()

	dir := t.TempDir()
	drugs := filepath.Join(dir, "drugs")
	require.NoError(t, os.MkdirAll(drugs, 0o750))

	return runFixture{
		dir: dir,
		args: RunArgs{
			Input:      writeFile(t, filepath.Join(dir, "query.tqf"), query, 0o600),
			OutDir:     m.Path(filepath.Join(dir, "output")),
			Executable: writeScript(t, dir, script),
			DrugDir:    m.Path(drugs),
			Scratch:    m.Path(filepath.Join(dir, "tmptqf")),
			ResultsDB:  m.Path(filepath.Join(dir, "output", "results.db")),
		},
	}
}

func newTestWorkflow(t *testing.T, ui controller.UI) Workflow {
	t.Helper()

	return NewWorkflow(
		adapter.NewLocalFSAdapter(),
		adapter.NewLocalDocumentAdapter(),
		adapter.NewLocalProcessRunner(0, 0),
		adapter.OpenLogSink,
		adapter.OpenReportStore,
		ui,
		zaptest.NewLogger(t),
	)
}

func newBufferedUI() (controller.UI, *bytes.Buffer) {
	var buf bytes.Buffer

	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	return controller.NewSimpleUI(cmd), &buf
}

func readLog(t *testing.T, path m.Path) string {
	t.Helper()

	content, err := os.ReadFile(string(path))
	require.NoError(t, err)

	return string(content)
}

func TestWorkflow_Run_NaNQueryLoadFailure(t *testing.T) {
	fx := newRunFixture(t, `<dose>10</dose>`, exitOnNaN)
	fx.args.Mutators = []string{"inject-nan"}

	ui, out := newBufferedUI()

	summary, err := newTestWorkflow(t, ui).Run(context.Background(), fx.args)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Total)
	assert.Equal(t, 1, summary.ByOutcome[m.QueryLoadFailure])
	assert.Equal(t, 1, summary.ByMutator["inject-nan"][m.QueryLoadFailure])
	assert.Equal(t, 0, summary.Skipped)
	assert.NotEmpty(t, summary.RunID)

	output := filepath.Join(fx.dir, "output")
	assert.Equal(t, m.LogFiles{
		Run:   m.Path(filepath.Join(output, "000_LOG.txt")),
		Error: m.Path(filepath.Join(output, "000_ERROR.txt")),
		Crash: m.Path(filepath.Join(output, "000_CRASH.txt")),
	}, summary.Logs)

	g := goldie.New(t)
	g.AssertWithTemplate(t, "nan_query_load_failure", struct{ Scratch string }{Scratch: string(fx.args.Scratch)},
		[]byte(readLog(t, summary.Logs.Run)))

	assert.Equal(t, "EXECUTION FAILED [3]: The query file could not be loaded.\n", readLog(t, summary.Logs.Error))
	assert.NoFileExists(t, string(summary.Logs.Crash))

	assert.FileExists(t, filepath.Join(string(fx.args.Scratch), "query_1.tqf"))
	assert.Contains(t, out.String(), "[1] inject-nan /dose[1] -> query_load_failure")
	assert.Contains(t, out.String(), "Run "+summary.RunID)
}

func TestWorkflow_Run_CrashLog(t *testing.T) {
	fx := newRunFixture(t, `<dose>10</dose>`, `echo "Segmentation fault (core dumped)" >&2
exit 139`)
	fx.args.Mutators = []string{"zero-numeric"}

	ui, _ := newBufferedUI()

	summary, err := newTestWorkflow(t, ui).Run(context.Background(), fx.args)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.ByOutcome[m.Crash])

	g := goldie.New(t)
	g.Assert(t, "crash_log", []byte(readLog(t, summary.Logs.Crash)))

	assert.Equal(t,
		"EXECUTION FAILED [139]: Program crashed during processing of file: query_1\n",
		readLog(t, summary.Logs.Error))
}

func TestWorkflow_Run_UnknownFailure(t *testing.T) {
	fx := newRunFixture(t, `<dose>10</dose>`, `exit 42`)
	fx.args.Mutators = []string{"negate-numeric"}

	ui, _ := newBufferedUI()

	summary, err := newTestWorkflow(t, ui).Run(context.Background(), fx.args)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.ByOutcome[m.UnknownFailure])
	assert.Equal(t,
		"EXECUTION FAILED [42]: Unknown error during processing of file: query_1\n",
		readLog(t, summary.Logs.Error))
	assert.NoFileExists(t, string(summary.Logs.Crash))
}

func TestWorkflow_Run_Timeout(t *testing.T) {
	fx := newRunFixture(t, `<dose>10</dose>`, `exec sleep 10`)
	fx.args.Mutators = []string{"inject-extreme"}
	fx.args.Timeout = 200 * time.Millisecond

	ui, _ := newBufferedUI()

	summary, err := newTestWorkflow(t, ui).Run(context.Background(), fx.args)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.ByOutcome[m.Timeout])
	assert.Contains(t, readLog(t, summary.Logs.Crash),
		"EXECUTION FAILED [timeout]: Execution exceeded 200ms during processing of file: query_1")
	assert.Contains(t, readLog(t, summary.Logs.Run), "EXECUTION FAILED [timeout]")
}

func TestWorkflow_Run_DrivesUI(t *testing.T) {
	fx := newRunFixture(t, `<query><drug><dose>400</dose><dose>2.5</dose><unit>mg</unit></drug></query>`, `exit 0`)
	fx.args.Mutators = []string{"zero-numeric"}

	ui := controllermocks.NewMockUI(t)
	ui.EXPECT().Start(mock.Anything, mock.Anything).Return(nil).Once()
	ui.EXPECT().DisplayRunInfo(mock.MatchedBy(func(info controller.RunInfo) bool {
		return info.Input == fx.args.Input && info.Threads == 1 && info.Mutators == 1
	})).Once()
	ui.EXPECT().DisplayUpcomingMutations(2).Once()
	ui.EXPECT().DisplayStartingMutator(1, 1, "zero-numeric").Once()
	ui.EXPECT().DisplayCompletedMutation(mock.MatchedBy(func(r m.Report) bool {
		return r.Outcome == m.Success && r.Attempt.Mutated == "0"
	})).Twice()
	ui.EXPECT().Close().Once()
	ui.EXPECT().DisplaySummary(mock.MatchedBy(func(s m.Summary) bool {
		return s.Total == 2 && s.ByOutcome[m.Success] == 2 && s.Skipped == 1
	})).Return(nil).Once()

	_, err := newTestWorkflow(t, ui).Run(context.Background(), fx.args)
	require.NoError(t, err)
}

func TestWorkflow_Run_PreflightFailures(t *testing.T) {
	dir := t.TempDir()
	args := RunArgs{
		Input:      m.Path(filepath.Join(dir, "missing.tqf")),
		OutDir:     m.Path(filepath.Join(dir, "output")),
		Executable: m.Path(filepath.Join(dir, "missing-cli")),
		DrugDir:    m.Path(filepath.Join(dir, "missing-drugs")),
		Scratch:    m.Path(filepath.Join(dir, "tmptqf")),
	}

	ui := controllermocks.NewMockUI(t)

	_, err := newTestWorkflow(t, ui).Run(context.Background(), args)
	require.Error(t, err)
	require.True(t, IsConfigError(err))

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Len(t, cfgErr.Problems, 3)

	assert.NoDirExists(t, string(args.OutDir))
	assert.NoDirExists(t, string(args.Scratch))
}

func TestWorkflow_Run_MissingExecutableSetting(t *testing.T) {
	fx := newRunFixture(t, `<dose>10</dose>`, `exit 0`)
	fx.args.Executable = ""
	fx.args.DrugDir = ""

	_, err := newTestWorkflow(t, controllermocks.NewMockUI(t)).Run(context.Background(), fx.args)

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, []string{"no target executable configured", "no drug definitions directory configured"}, cfgErr.Problems)
}

func TestWorkflow_Run_StrictRejectsExistingOutDir(t *testing.T) {
	fx := newRunFixture(t, `<dose>10</dose>`, `exit 0`)
	fx.args.Strict = true
	require.NoError(t, os.MkdirAll(string(fx.args.OutDir), 0o750))

	_, err := newTestWorkflow(t, controllermocks.NewMockUI(t)).Run(context.Background(), fx.args)
	require.True(t, IsConfigError(err))
	assert.Contains(t, err.Error(), "output directory already exists")
}

func TestWorkflow_Run_UnknownMutator(t *testing.T) {
	fx := newRunFixture(t, `<dose>10</dose>`, `exit 0`)
	fx.args.Mutators = []string{"flip-bits"}

	_, err := newTestWorkflow(t, controllermocks.NewMockUI(t)).Run(context.Background(), fx.args)
	require.True(t, IsConfigError(err))
	assert.Contains(t, err.Error(), `unknown mutator "flip-bits"`)
}

func TestWorkflow_Run_MalformedInput(t *testing.T) {
	fx := newRunFixture(t, `<query><dose>10</query>`, `exit 0`)

	_, err := newTestWorkflow(t, controllermocks.NewMockUI(t)).Run(context.Background(), fx.args)
	require.True(t, IsConfigError(err))
	assert.NoDirExists(t, string(fx.args.OutDir))
}

func TestWorkflow_Run_LogNamesIncrement(t *testing.T) {
	fx := newRunFixture(t, `<dose>10</dose>`, `exit 0`)
	fx.args.Mutators = []string{"inject-nan"}

	ui, _ := newBufferedUI()
	wf := newTestWorkflow(t, ui)

	first, err := wf.Run(context.Background(), fx.args)
	require.NoError(t, err)

	second, err := wf.Run(context.Background(), fx.args)
	require.NoError(t, err)

	assert.Equal(t, "000_LOG.txt", filepath.Base(string(first.Logs.Run)))
	assert.Equal(t, "001_LOG.txt", filepath.Base(string(second.Logs.Run)))
	assert.Equal(t, "001_ERROR.txt", filepath.Base(string(second.Logs.Error)))
	assert.NotEqual(t, first.RunID, second.RunID)
}

func TestWorkflow_Run_CustomLogName(t *testing.T) {
	fx := newRunFixture(t, `<dose>10</dose>`, `exit 2`)
	fx.args.Mutators = []string{"inject-nan"}
	fx.args.LogFileName = "007_FUZZ.log"

	ui, _ := newBufferedUI()

	summary, err := newTestWorkflow(t, ui).Run(context.Background(), fx.args)
	require.NoError(t, err)

	assert.Equal(t, "007_FUZZ.log", filepath.Base(string(summary.Logs.Run)))
	assert.Equal(t, "EXECUTION FAILED [2]: No request could be fully processed\n", readLog(t, summary.Logs.Error))
	assert.Equal(t, "007_ERROR.log", filepath.Base(string(summary.Logs.Error)))
}

func TestWorkflow_Run_PersistsResults(t *testing.T) {
	fx := newRunFixture(t, treatmentQuery, exitOnNaN)
	fx.args.Mutators = []string{"inject-nan", "swap-unit"}

	ui, _ := newBufferedUI()

	summary, err := newTestWorkflow(t, ui).Run(context.Background(), fx.args)
	require.NoError(t, err)
	assert.Equal(t, 7, summary.Total)

	store, err := adapter.OpenSQLiteReportStore(fx.args.ResultsDB)
	require.NoError(t, err)

	defer func() { _ = store.Close() }()

	runs, err := store.LoadRuns(context.Background())
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, summary.RunID, runs[0].ID)
	assert.Equal(t, 2, runs[0].Mutators)

	reports, err := store.LoadReports(context.Background(), summary.RunID)
	require.NoError(t, err)
	require.Len(t, reports, 7)

	for _, r := range reports[:5] {
		assert.Equal(t, "inject-nan", r.Attempt.Mutator)
		assert.Equal(t, m.QueryLoadFailure, r.Outcome)
	}

	for _, r := range reports[5:] {
		assert.Equal(t, "swap-unit", r.Attempt.Mutator)
		assert.Equal(t, m.Success, r.Outcome)
	}
}

func TestWorkflow_Run_Parallel(t *testing.T) {
	fx := newRunFixture(t, treatmentQuery, `exit 0`)
	fx.args.Threads = 4

	ui := controllermocks.NewMockUI(t)
	ui.EXPECT().Start(mock.Anything, mock.Anything).Return(nil)
	ui.EXPECT().DisplayRunInfo(mock.Anything)
	ui.EXPECT().DisplayUpcomingMutations(mock.Anything)
	ui.EXPECT().DisplayStartingMutator(mock.Anything, mock.Anything, mock.Anything)
	ui.EXPECT().DisplayCompletedMutation(mock.Anything)
	ui.EXPECT().Close()
	ui.EXPECT().DisplaySummary(mock.Anything).Return(nil)

	summary, err := newTestWorkflow(t, ui).Run(context.Background(), fx.args)
	require.NoError(t, err)

	doc := parseQuery(t, treatmentQuery)
	expected := 0
	for _, n := range NewMutagen(nil, nil, &Sequence{}, Layout{}).Estimate(doc, mutagens.Catalog()) {
		expected += n
	}

	assert.Equal(t, expected, summary.Total)
	assert.Equal(t, expected, summary.ByOutcome[m.Success])

	store, err := adapter.OpenSQLiteReportStore(fx.args.ResultsDB)
	require.NoError(t, err)

	defer func() { _ = store.Close() }()

	reports, err := store.LoadReports(context.Background(), summary.RunID)
	require.NoError(t, err)

	seqs := make([]int, 0, len(reports))
	for _, r := range reports {
		seqs = append(seqs, int(r.Attempt.Seq))
	}

	sort.Ints(seqs)

	for i, seq := range seqs {
		assert.Equal(t, i+1, seq)
	}

	original, err := os.ReadFile(string(fx.args.Input))
	require.NoError(t, err)
	assert.Equal(t, treatmentQuery, string(original))
}

func TestWorkflow_Run_Cancelled(t *testing.T) {
	fx := newRunFixture(t, treatmentQuery, `exit 0`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ui, _ := newBufferedUI()

	summary, err := newTestWorkflow(t, ui).Run(ctx, fx.args)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, summary.Total)

	// the run log exists and was closed cleanly
	assert.Equal(t, "", readLog(t, summary.Logs.Run))
}

func TestWorkflow_Run_CancelledMidMutant(t *testing.T) {
	// $6 is the output path; the marker tells the test the target is running.
	fx := newRunFixture(t, treatmentQuery, `touch "$6.started"
sleep 0.5
exit 0`)
	fx.args.Mutators = []string{"inject-nan"}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ui, _ := newBufferedUI()
	wf := newTestWorkflow(t, ui)

	type result struct {
		summary m.Summary
		err     error
	}

	done := make(chan result, 1)

	go func() {
		summary, err := wf.Run(ctx, fx.args)
		done <- result{summary: summary, err: err}
	}()

	marker := filepath.Join(string(fx.args.OutDir), "query_1.xml.started")
	require.Eventually(t, func() bool {
		_, err := os.Stat(marker)
		return err == nil
	}, 10*time.Second, 10*time.Millisecond)

	cancel()

	res := <-done
	require.ErrorIs(t, res.err, context.Canceled)

	assert.Equal(t, 1, res.summary.Total)
	assert.Equal(t, 1, res.summary.ByOutcome[m.Success])

	runLog := readLog(t, res.summary.Logs.Run)
	assert.Contains(t, runLog, "File modified: "+filepath.Join(string(fx.args.Scratch), "query_1.tqf"))
	assert.Contains(t, runLog, "Execution complete!")
	assert.NotContains(t, runLog, "query_2.tqf")

	assert.NoFileExists(t, filepath.Join(string(fx.args.Scratch), "query_2.tqf"))

	store, err := adapter.OpenReportStore(fx.args.ResultsDB)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	reports, err := store.LoadReports(context.Background(), res.summary.RunID)
	require.NoError(t, err)
	assert.Len(t, reports, 1)
}

func TestWorkflow_Run_StartFailureIsFatal(t *testing.T) {
	fx := newRunFixture(t, `<dose>10</dose>`, `exit 0`)
	require.NoError(t, os.Chmod(string(fx.args.Executable), 0o600))

	ui, _ := newBufferedUI()

	summary, err := newTestWorkflow(t, ui).Run(context.Background(), fx.args)
	require.Error(t, err)
	assert.False(t, IsConfigError(err))
	assert.Contains(t, err.Error(), "failed to run mutant 1")
	assert.Equal(t, 0, summary.Total)
}

func TestWorkflow_List(t *testing.T) {
	ui := controllermocks.NewMockUI(t)
	ui.EXPECT().Start(mock.Anything).Return(nil).Once()
	ui.EXPECT().DisplayCatalog(mock.MatchedBy(func(entries []controller.CatalogEntry) bool {
		return len(entries) == len(mutagens.Catalog()) && entries[0].Name == "zero-numeric" && !entries[0].Estimated
	})).Return(nil).Once()
	ui.EXPECT().Close().Once()

	require.NoError(t, newTestWorkflow(t, ui).List(ListArgs{}))
}

func TestWorkflow_List_WithInput(t *testing.T) {
	input := writeFile(t, filepath.Join(t.TempDir(), "query.tqf"), treatmentQuery, 0o600)

	ui := controllermocks.NewMockUI(t)
	ui.EXPECT().Start(mock.Anything).Return(nil).Once()
	ui.EXPECT().DisplayCatalog([]controller.CatalogEntry{
		{Name: "swap-unit", Description: mustMutator(t, "swap-unit").Description, Applicable: 2, Estimated: true},
		{Name: "inject-nan", Description: mustMutator(t, "inject-nan").Description, Applicable: 5, Estimated: true},
	}).Return(nil).Once()
	ui.EXPECT().Close().Once()

	err := newTestWorkflow(t, ui).List(ListArgs{Input: input, Mutators: []string{"inject-nan", "swap-unit"}})
	require.NoError(t, err)
}

func TestWorkflow_List_UnknownMutator(t *testing.T) {
	err := newTestWorkflow(t, controllermocks.NewMockUI(t)).List(ListArgs{Mutators: []string{"nope"}})
	require.True(t, IsConfigError(err))
}

func TestWorkflow_View(t *testing.T) {
	fx := newRunFixture(t, `<dose>10</dose>`, exitOnNaN)
	fx.args.Mutators = []string{"inject-nan", "zero-numeric"}

	bufUI, _ := newBufferedUI()

	summary, err := newTestWorkflow(t, bufUI).Run(context.Background(), fx.args)
	require.NoError(t, err)

	t.Run("lists runs", func(t *testing.T) {
		ui := controllermocks.NewMockUI(t)
		ui.EXPECT().Start(mock.Anything).Return(nil).Once()
		ui.EXPECT().DisplayRuns(mock.MatchedBy(func(runs []m.RunInfo) bool {
			return len(runs) == 1 && runs[0].ID == summary.RunID
		})).Return(nil).Once()
		ui.EXPECT().Close().Once()

		require.NoError(t, newTestWorkflow(t, ui).View(context.Background(), ViewArgs{ResultsDB: fx.args.ResultsDB}))
	})

	t.Run("summarizes one run", func(t *testing.T) {
		ui := controllermocks.NewMockUI(t)
		ui.EXPECT().Start(mock.Anything).Return(nil).Once()
		ui.EXPECT().DisplaySummary(mock.MatchedBy(func(s m.Summary) bool {
			return s.RunID == summary.RunID &&
				s.Total == 2 &&
				s.ByMutator["inject-nan"][m.QueryLoadFailure] == 1 &&
				s.ByMutator["zero-numeric"][m.Success] == 1
		})).Return(nil).Once()
		ui.EXPECT().Close().Once()

		args := ViewArgs{ResultsDB: fx.args.ResultsDB, RunID: summary.RunID}
		require.NoError(t, newTestWorkflow(t, ui).View(context.Background(), args))
	})

	t.Run("unknown run", func(t *testing.T) {
		ui := controllermocks.NewMockUI(t)
		ui.EXPECT().Start(mock.Anything).Return(nil).Once()
		ui.EXPECT().Close().Once()

		args := ViewArgs{ResultsDB: fx.args.ResultsDB, RunID: "missing"}
		err := newTestWorkflow(t, ui).View(context.Background(), args)
		require.Error(t, err)
		assert.False(t, IsConfigError(err))
	})

	t.Run("missing database", func(t *testing.T) {
		args := ViewArgs{ResultsDB: m.Path(filepath.Join(fx.dir, "nope.db"))}
		err := newTestWorkflow(t, controllermocks.NewMockUI(t)).View(context.Background(), args)
		require.True(t, IsConfigError(err))
	})
}

func TestRunArgs_WithDefaults(t *testing.T) {
	args := RunArgs{Input: "cases/imatinib.tqf"}.withDefaults()

	assert.Equal(t, DefaultOutDir, args.OutDir)
	assert.Equal(t, DefaultLogFileName, args.LogFileName)
	assert.Equal(t, DefaultScratch, args.Scratch)
	assert.Equal(t, "imatinib", args.Prefix)
	assert.Equal(t, 1, args.Threads)

	assert.Equal(t, DefaultInput, RunArgs{}.withDefaults().Input)
}
