package train

import (
	"context"
	"path/filepath"

	"github.com/trackprep-io/trackprep/internal/hostenv"
	"github.com/trackprep-io/trackprep/internal/logging"
	"github.com/trackprep-io/trackprep/internal/manifest"
)

// Fixed trainer parameters. The architecture and the interpolation and
// pruning options do not vary across modes.
const (
	archName = "lifted_solver"

	// DefaultCommand launches the external trainer.
	DefaultCommand = "python3"
	trainerScript  = "train.py"
)

// Args builds the trainer's full argument list for the given parameters
// and data root.
func Args(p Params, root string) []string {
	return []string{
		trainerScript,
		"--data_root", manifest.MOT20Dir(root),
		"--seqmap_dir", filepath.Join(manifest.MOT20Dir(root), "seqmaps"),
		"--det_file", p.DetFile + ".txt",
		"--run_id", p.RunID,
		"--arch", archName,
		"--interpolation", "linear",
		"--prune_edges",
	}
}

// Invoke runs the external trainer as a single blocking subprocess and
// returns its error verbatim so the caller can propagate the exit status.
func Invoke(ctx context.Context, run hostenv.CommandRunner, command string, p Params, root string) error {
	if command == "" {
		command = DefaultCommand
	}
	args := Args(p, root)
	logging.Info("launching trainer", "command", command, "run_id", p.RunID, "det_file", p.DetFile)
	return run.Run(ctx, command, args...)
}
