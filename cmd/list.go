package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"mutapath.dev/pkg/mutapath/internal/domain"
	m "mutapath.dev/pkg/mutapath/internal/model"
)

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [type patterns...]",
		Short: "List registered types and their mutation-path counts",
		Long:  listLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.List(cmd.Context(), domain.ListArgs{
				Patterns:      args,
				Exclude:       viper.GetStringSlice(excludeConfigKey),
				SnapshotFile:  m.Path(viper.GetString(registrySnapshotKey)),
				KnowledgeFile: m.Path(viper.GetString(knowledgeFileKey)),
				MaxDepth:      viper.GetInt(generateMaxDepthKey),
			})
		},
	}
}

func init() {
	rootCmd.AddCommand(listCmd)
}
