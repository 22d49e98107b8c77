package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/trackprep-io/trackprep/internal/probe"
)

// seqmapHeader is the literal first line of every seqmap file.
const seqmapHeader = "name"

// WriteSeqmap materializes a seqmap at path: a header line followed by one
// member per line, in the given order. If path already exists the call is
// a no-op, so hand-edited seqmaps are never clobbered. The file is written
// to a temporary sibling and renamed into place, so an interrupted write
// never leaves a non-empty partial file at path.
func WriteSeqmap(path string, members []string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create seqmap directory: %w", err)
	}

	var b strings.Builder
	b.WriteString(seqmapHeader + "\n")
	for _, m := range members {
		b.WriteString(m + "\n")
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".seqmap-*")
	if err != nil {
		return fmt.Errorf("failed to create temp seqmap: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.WriteString(b.String()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write seqmap: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close seqmap: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to rename seqmap into place: %w", err)
	}
	return nil
}

// SeqmapsWritten reports whether every given seqmap already exists.
func SeqmapsWritten(maps []Seqmap) bool {
	for _, m := range maps {
		if !probe.FileNonEmpty(m.Path) {
			return false
		}
	}
	return true
}
