package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// initCmd represents the init command.
var initCmd = newInitCmd()

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a " + configFileName + " config file with the current settings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := filepath.Join(configFolderPath, configFileName)

			if err := viper.SafeWriteConfigAs(path); err != nil {
				return fmt.Errorf("write config file: %w", err)
			}

			cmd.Printf("Wrote %s\n", path)

			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(initCmd)
}
