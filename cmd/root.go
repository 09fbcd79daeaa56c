// Package cmd provides the root command and CLI setup for tqfuzz.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mouse-blink/tqfuzz/internal/adapter"
	"github.com/mouse-blink/tqfuzz/internal/config"
	"github.com/mouse-blink/tqfuzz/internal/controller"
	"github.com/mouse-blink/tqfuzz/internal/domain"
	"github.com/mouse-blink/tqfuzz/internal/logging"
)

// Process exit codes.
const (
	exitOK          = 0
	exitRuntimeErr  = 1
	exitConfigError = 2
)

var workflow domain.Workflow
var ui controller.UI
var logger *zap.Logger
var cfg = &config.Config{}

var configFlag string
var verboseFlag bool

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "tqfuzz",
		Short:             "Mutation-based conformance harness for the dosing engine CLI",
		Long:              rootLongDescription,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}
	cmd.PersistentFlags().StringVar(&configFlag, "config", "", "YAML configuration file (default "+config.DefaultFile+" when present)")
	cmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable debug logging on stderr")
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &domain.ConfigError{Problems: []string{err.Error()}}
	})

	return cmd
}

// setup loads the configuration and wires the collaborators that tests have
// not already replaced.
func setup(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load(configFlag)
	if err != nil {
		return &domain.ConfigError{Problems: []string{err.Error()}}
	}

	cfg = loaded

	if logger == nil {
		logger, err = logging.New(logging.Options{Verbose: verboseFlag})
		if err != nil {
			return err
		}
	}

	if ui == nil {
		ui = controller.NewUI(cmd, controller.IsTTY(cmd.OutOrStdout()))
	}

	if workflow == nil {
		workflow = domain.NewWorkflow(
			adapter.NewLocalFSAdapter(),
			adapter.NewLocalDocumentAdapter(),
			adapter.NewLocalProcessRunner(cfg.Timeout(), cfg.MaxOutputBytes()),
			adapter.OpenLogSink,
			adapter.OpenReportStore,
			ui,
			logger,
		)
	}

	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if code := run(rootCmd); code != exitOK {
		os.Exit(code)
	}
}

func run(cmd *cobra.Command) int {
	err := cmd.Execute()
	if err == nil {
		return exitOK
	}

	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)

	if domain.IsConfigError(err) {
		return exitConfigError
	}

	return exitRuntimeErr
}
