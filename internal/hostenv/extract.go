package hostenv

import (
	"context"
	"fmt"
)

// ExtractionError reports a failed archive unpack. The archive itself is
// left in place so a later run can re-attempt extraction.
type ExtractionError struct {
	Archive string
	Err     error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction of %s failed: %v", e.Archive, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// Extractor unpacks archives by shelling out to unzip.
type Extractor struct {
	run CommandRunner
}

// NewExtractor returns an Extractor using the given runner.
func NewExtractor(run CommandRunner) *Extractor {
	return &Extractor{run: run}
}

// Extract unpacks archive into destDir. -o overwrites entries from a
// previous interrupted extraction instead of prompting.
func (e *Extractor) Extract(ctx context.Context, archive, destDir string) error {
	if err := e.run.Run(ctx, "unzip", "-q", "-o", archive, "-d", destDir); err != nil {
		return &ExtractionError{Archive: archive, Err: err}
	}
	return nil
}
