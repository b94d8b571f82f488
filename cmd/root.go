// Package cmd provides the root command and CLI setup for mutapath.
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"mutapath.dev/pkg/mutapath/internal/adapter"
	"mutapath.dev/pkg/mutapath/internal/controller"
	"mutapath.dev/pkg/mutapath/internal/domain"
)

var registrySource adapter.RegistrySource
var snapshotStore adapter.SnapshotStore
var guideStore adapter.GuideStore
var knowledgeLoader adapter.KnowledgeLoader
var ui controller.UI
var workflow domain.Workflow

// guidesOutputDirFlag is a root-level flag shared by commands that read/write
// guide documents.
var guidesOutputDirFlag string

// excludePatterns is a root-level flag that filters types for applicable
// commands.
var excludePatterns []string

// snapshotFileFlag points commands at a previously fetched snapshot file
// instead of the live registry endpoint.
var snapshotFileFlag string

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	registrySource = adapter.NewRegistryClient(
		viper.GetString(registryURLKey),
		time.Duration(viper.GetInt(registryTimeoutKey))*time.Second,
	)
	snapshotStore = adapter.NewLocalSnapshotStore()
	guideStore = adapter.NewLocalGuideStore()
	knowledgeLoader = adapter.NewLocalKnowledgeLoader()
	workflow = domain.NewWorkflow(
		registrySource,
		snapshotStore,
		guideStore,
		knowledgeLoader,
		ui,
	)
}

const typePatternsHelp = `Type selection supports glob patterns over fully-qualified type names:
  - '*'                 every registered type
  - 'geom::*'           all types in the geom namespace
  - '*::Transform'      Transform in any namespace`

const rootLongDescription = `Mutapath turns a reflected type registry into mutation-path guides:
for every addressable location inside a type it reports an example value,
a mutability classification and, for locations nested in variant types,
the root example needed to reach them.

` + typePatternsHelp

const generateLongDescription = `Generate mutation-path guides for the selected types (default: all).

` + typePatternsHelp

const listLongDescription = `List registered types with their mutation-path counts.

` + typePatternsHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mutapath",
		Short: "Mutation-path guide generator",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&guidesOutputDirFlag, outputFlagName, "o",
			viper.GetString(outputFlagName),
			"output directory for mutation-path guides",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(outputFlagName), outputFlagName)

	cmd.PersistentFlags().StringArrayVarP(&excludePatterns, excludeFlagName, "x", viper.GetStringSlice(excludeConfigKey), "exclude types matching glob pattern (can be repeated)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(excludeFlagName), excludeConfigKey)

	cmd.PersistentFlags().StringVar(&snapshotFileFlag, snapshotFlagName, viper.GetString(registrySnapshotKey), "read the registry from a snapshot file instead of the live endpoint")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(snapshotFlagName), registrySnapshotKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
