package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"mutapath.dev/pkg/mutapath/internal/domain"
	m "mutapath.dev/pkg/mutapath/internal/model"
)

// mergeCmd represents the merge command.
var mergeCmd = newMergeCmd()

func newMergeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "merge",
		Short: "Merge sharded guide directories into a single guide set",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return workflow.Merge(cmd.Context(), domain.MergeArgs{
				Output: m.Path(viper.GetString(outputFlagName)),
			})
		},
	}
}

func init() {
	rootCmd.AddCommand(mergeCmd)
}
