package hostenv

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/trackprep-io/trackprep/internal/logging"
)

// requiredTools maps each binary the pipeline shells out to onto the
// package that provides it.
var requiredTools = map[string]string{
	"unzip": "unzip",
}

// Installer installs the external tools the pipeline depends on.
type Installer struct {
	run CommandRunner
}

// NewInstaller returns an Installer using the given runner.
func NewInstaller(run CommandRunner) *Installer {
	return &Installer{run: run}
}

// Installed reports whether every required tool is already on PATH.
func (i *Installer) Installed() bool {
	for bin := range requiredTools {
		if _, err := exec.LookPath(bin); err != nil {
			return false
		}
	}
	return true
}

// Ensure installs any required tool that is missing from PATH. Tools
// already present are left alone, so the call is idempotent.
func (i *Installer) Ensure(ctx context.Context) error {
	var missing []string
	for bin, pkg := range requiredTools {
		if _, err := exec.LookPath(bin); err != nil {
			missing = append(missing, pkg)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	logging.Info("installing packages", "packages", missing)
	args := append([]string{"install", "-y"}, missing...)
	if err := i.run.Run(ctx, "apt-get", args...); err != nil {
		return fmt.Errorf("package install failed: %w", err)
	}
	return nil
}
