package cli

import (
	"github.com/spf13/cobra"

	"github.com/trackprep-io/trackprep/internal/logging"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "trackprep",
	Short: "Idempotent MOT20 training-environment provisioning",
	Long: `Trackprep prepares a machine for MOT20 tracker training.

It installs host dependencies, fetches the dataset archive (resuming
interrupted downloads), places per-sequence detection files and model
weights, and writes the seqmap split manifests. Every step is idempotent:
re-running skips work whose output already exists, so an interrupted run
can always be resumed.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(logLevel)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.AddCommand(setupCmd)
	rootCmd.AddCommand(trainCmd)
	rootCmd.AddCommand(versionCmd)
}
