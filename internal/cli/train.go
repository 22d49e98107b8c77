package cli

import (
	"errors"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/trackprep-io/trackprep/internal/config"
	"github.com/trackprep-io/trackprep/internal/hostenv"
	"github.com/trackprep-io/trackprep/internal/train"
)

var trainConfigPath string

// trainExec runs the trainer subprocess; swapped for a fake in tests.
var trainExec hostenv.CommandRunner = hostenv.NewRunner()

var trainCmd = &cobra.Command{
	Use:   "train [mode] [data-root]",
	Short: "Launch training against a provisioned data root",
	Long: `Launches the external trainer. Mode is "public" or "private"
(default "private") and selects the detection file class and run id.
The trainer's exit status is propagated.`,
	Args: cobra.MaximumNArgs(2),
	RunE: runTrain,
}

func init() {
	trainCmd.Flags().StringVar(&trainConfigPath, "config", "", "Optional YAML tuning file")
}

func runTrain(cmd *cobra.Command, args []string) error {
	mode := train.ModePrivate
	if len(args) > 0 {
		mode = args[0]
	}
	root := config.DefaultDataRoot
	if len(args) > 1 {
		root = args[1]
	}

	// Validate before any side effect; an unknown mode must never reach
	// the trainer.
	params, err := train.Resolve(mode)
	if err != nil {
		return err
	}

	cfg, err := config.Load(trainConfigPath)
	if err != nil {
		return err
	}

	err = train.Invoke(cmd.Context(), trainExec, cfg.Trainer.Command, params, root)
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		os.Exit(exitErr.ExitCode())
	}
	return err
}
