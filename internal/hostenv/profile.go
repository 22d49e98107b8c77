package hostenv

import (
	"fmt"
	"os"

	"github.com/trackprep-io/trackprep/internal/probe"
)

// EnsureProfileLine appends line to the shell profile at path unless an
// identical line is already present. The profile is created if missing.
func EnsureProfileLine(path, line string) error {
	if probe.FileContainsLine(path, line) {
		return nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open shell profile: %w", err)
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "%s\n", line); err != nil {
		return fmt.Errorf("failed to append to shell profile: %w", err)
	}
	return nil
}
