package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/tqfuzz/internal/domain"
	m "github.com/mouse-blink/tqfuzz/internal/model"
)

// listCmd represents the list command.
var listCmd = newListCmd()
var listInputFlag string
var listMutatorFlags []string

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the mutator catalog",
		Long:  listLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return workflow.List(domain.ListArgs{
				Input:    m.Path(listInputFlag),
				Mutators: listMutatorFlags,
			})
		},
	}
	cmd.Flags().StringVarP(&listInputFlag, "original-input", "i", "", "count applicable fields in this query")
	cmd.Flags().StringSliceVarP(&listMutatorFlags, "mutators", "m", nil, "only list these mutators (can be repeated)")

	return cmd
}

func init() {
	rootCmd.AddCommand(listCmd)
}
