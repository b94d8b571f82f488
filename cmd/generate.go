package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"mutapath.dev/pkg/mutapath/internal/domain"
	m "mutapath.dev/pkg/mutapath/internal/model"
)

var generateParallelFlag int
var generateMaxDepthFlag int
var generateKnowledgeFlag string
var generateShardFlag string

// generateCmd represents the generate command.
var generateCmd = newGenerateCmd()

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [type patterns...]",
		Short: "Generate mutation-path guides",
		Long:  generateLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			shardIndex, totalShards := parseShardFlag(generateShardFlag)

			return workflow.Generate(cmd.Context(), domain.GenerateArgs{
				Patterns:        args,
				Exclude:         viper.GetStringSlice(excludeConfigKey),
				Output:          m.Path(viper.GetString(outputFlagName)),
				SnapshotFile:    m.Path(viper.GetString(registrySnapshotKey)),
				KnowledgeFile:   m.Path(viper.GetString(knowledgeFileKey)),
				Threads:         viper.GetInt(generateParallelKey),
				MaxDepth:        viper.GetInt(generateMaxDepthKey),
				ShardIndex:      shardIndex,
				TotalShardCount: totalShards,
			})
		},
	}

	configureGenerateFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(generateCmd)
}

func configureGenerateFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&generateParallelFlag, parallelFlagName, "p", viper.GetInt(generateParallelKey), "number of parallel workers for guide generation")
	bindFlagToConfig(cmd.Flags().Lookup(parallelFlagName), generateParallelKey)

	cmd.Flags().IntVar(&generateMaxDepthFlag, maxDepthFlagName, viper.GetInt(generateMaxDepthKey), "recursion depth cap; deeper subtrees are reported as not mutable")
	bindFlagToConfig(cmd.Flags().Lookup(maxDepthFlagName), generateMaxDepthKey)

	cmd.Flags().StringVarP(&generateKnowledgeFlag, knowledgeFlagName, "k", viper.GetString(knowledgeFileKey), "knowledge base file with curated example overrides")
	bindFlagToConfig(cmd.Flags().Lookup(knowledgeFlagName), knowledgeFileKey)

	cmd.Flags().StringVarP(&generateShardFlag, "shard", "s", "", "shard index and total shard count in the format INDEX/TOTAL (e.g., 0/3)")
}

func parseShardFlag(shard string) (int, int) {
	if shard == "" {
		return 0, 1
	}

	var index, total int

	_, err := fmt.Sscanf(shard, "%d/%d", &index, &total)
	if err != nil || total <= 0 || index < 0 || index >= total {
		return 0, 1
	}

	return index, total
}
