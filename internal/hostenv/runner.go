// Package hostenv prepares the host machine itself: external tool
// installation, shell profile entries, and archive extraction. All
// subprocess execution goes through the CommandRunner seam so the
// pipeline's control flow can be tested without touching the host.
package hostenv

import (
	"context"
	"os"
	"os/exec"
)

// CommandRunner runs an external command to completion.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) error
}

type execRunner struct{}

// NewRunner returns a CommandRunner backed by os/exec, with the child's
// output forwarded to this process's streams.
func NewRunner() CommandRunner {
	return execRunner{}
}

func (execRunner) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
