package cmd

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mouse-blink/tqfuzz/internal/domain"
	m "github.com/mouse-blink/tqfuzz/internal/model"
)

// viewCmd represents the view command.
var viewCmd = newViewCmd()
var viewResultsDBFlag string
var viewRunFlag string

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "View stored harness results",
		Long:  viewLongDescription,
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return workflow.View(cmd.Context(), domain.ViewArgs{
				ResultsDB: viewResultsDB(cmd),
				RunID:     viewRunFlag,
			})
		},
	}
	cmd.Flags().StringVar(&viewResultsDBFlag, "results-db", "", "results database (default <out-dir>/results.db)")
	cmd.Flags().StringVar(&viewRunFlag, "run", "", "show the outcome table of this run")

	return cmd
}

func viewResultsDB(cmd *cobra.Command) m.Path {
	if cmd.Flags().Changed("results-db") {
		return m.Path(viewResultsDBFlag)
	}

	if cfg.ResultsDB != nil && *cfg.ResultsDB != "" {
		return m.Path(*cfg.ResultsDB)
	}

	outDir := string(domain.DefaultOutDir)
	if cfg.OutDir != "" {
		outDir = cfg.OutDir
	}

	return m.Path(filepath.Join(outDir, resultsDBName))
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
