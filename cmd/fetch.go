package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"mutapath.dev/pkg/mutapath/internal/domain"
	m "mutapath.dev/pkg/mutapath/internal/model"
)

// fetchCmd represents the fetch command.
var fetchCmd = newFetchCmd()

func newFetchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fetch",
		Short: "Fetch the registry snapshot and save it for offline runs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			file := viper.GetString(registrySnapshotKey)
			if file == "" {
				file = defaultSnapshotFile
			}

			digest, err := workflow.Fetch(cmd.Context(), domain.FetchArgs{
				SnapshotFile: m.Path(file),
			})
			if err != nil {
				return err
			}

			cmd.Printf("Saved snapshot to %s (digest %s)\n", file, digest)

			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(fetchCmd)
}
