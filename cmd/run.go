package cmd

import (
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mouse-blink/tqfuzz/internal/domain"
	m "github.com/mouse-blink/tqfuzz/internal/model"
)

const resultsDBName = "results.db"

var runInputFlag string
var runOutDirFlag string
var runLogFileNameFlag string
var runExecutableFlag string
var runDrugDirFlag string
var runStrictFlag bool
var runScratchFlag string
var runPrefixFlag string
var runMutatorFlags []string
var runParallelFlag int
var runTimeoutFlag time.Duration
var runResultsDBFlag string

// runCmd represents the run command.
var runCmd = newRunCmd()

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the mutation sweep against the target executable",
		Long:  runLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			args, err := runArgs(cmd)
			if err != nil {
				return err
			}

			_, err = workflow.Run(ctx, args)

			return err
		},
	}
	cmd.Flags().StringVarP(&runInputFlag, "original-input", "i", string(domain.DefaultInput), "known-good TQF query to mutate")
	cmd.Flags().StringVarP(&runOutDirFlag, "out-dir", "o", string(domain.DefaultOutDir), "directory for target responses and logs")
	cmd.Flags().StringVarP(&runLogFileNameFlag, "logfile-name", "l", domain.DefaultLogFileName, "run log name, NNN_NAME.ext")
	cmd.Flags().StringVarP(&runExecutableFlag, "target-executable", "c", "", "dosing engine CLI under test")
	cmd.Flags().StringVarP(&runDrugDirFlag, "drug-definitions-dir", "d", "", "drug definitions directory passed to the target")
	cmd.Flags().BoolVar(&runStrictFlag, "strict", false, "fail when the output directory already exists")
	cmd.Flags().StringVar(&runScratchFlag, "scratch-dir", string(domain.DefaultScratch), "directory for mutant documents, emptied at start")
	cmd.Flags().StringVar(&runPrefixFlag, "prefix", "", "mutant file name prefix (default input base name)")
	cmd.Flags().StringSliceVarP(&runMutatorFlags, "mutators", "m", nil, "only run these mutators (can be repeated)")
	cmd.Flags().IntVarP(&runParallelFlag, "parallel", "p", 1, "number of mutators swept concurrently")
	cmd.Flags().DurationVar(&runTimeoutFlag, "timeout", 0, "kill the target after this long (0 waits forever)")
	cmd.Flags().StringVar(&runResultsDBFlag, "results-db", "", `results database (default <out-dir>/results.db, "" disables)`)

	return cmd
}

// runArgs merges the flags with the configuration file. A flag set on the
// command line always wins.
func runArgs(cmd *cobra.Command) (domain.RunArgs, error) {
	flags := cmd.Flags()

	pick := func(name, flagValue, configValue string) string {
		if flags.Changed(name) || configValue == "" {
			return flagValue
		}

		return configValue
	}

	args := domain.RunArgs{
		Input:       m.Path(pick("original-input", runInputFlag, cfg.Input)),
		OutDir:      m.Path(pick("out-dir", runOutDirFlag, cfg.OutDir)),
		LogFileName: pick("logfile-name", runLogFileNameFlag, cfg.LogFileName),
		Executable:  m.Path(pick("target-executable", runExecutableFlag, cfg.Executable)),
		DrugDir:     m.Path(pick("drug-definitions-dir", runDrugDirFlag, cfg.DrugDir)),
		Scratch:     m.Path(pick("scratch-dir", runScratchFlag, cfg.Scratch)),
		Prefix:      pick("prefix", runPrefixFlag, cfg.Prefix),
		Strict:      runStrictFlag || (!flags.Changed("strict") && cfg.Strict),
		Mutators:    runMutatorFlags,
		Threads:     runParallelFlag,
		Timeout:     runTimeoutFlag,
		MaxOutput:   cfg.MaxOutputBytes(),
	}

	if !flags.Changed("mutators") && len(cfg.Mutators) > 0 {
		args.Mutators = cfg.Mutators
	}

	if !flags.Changed("parallel") && cfg.Parallel > 0 {
		args.Threads = cfg.Parallel
	}

	if !flags.Changed("timeout") {
		args.Timeout = cfg.Timeout()
	}

	if args.Timeout < 0 {
		return domain.RunArgs{}, &domain.ConfigError{Problems: []string{"invalid timeout " + args.Timeout.String()}}
	}

	switch {
	case flags.Changed("results-db"):
		args.ResultsDB = m.Path(runResultsDBFlag)
	case cfg.ResultsDB != nil:
		args.ResultsDB = m.Path(*cfg.ResultsDB)
	default:
		args.ResultsDB = m.Path(filepath.Join(string(args.OutDir), resultsDBName))
	}

	return args, nil
}

func init() {
	rootCmd.AddCommand(runCmd)
}
