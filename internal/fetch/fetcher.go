// Package fetch retrieves remote artifacts to local destination paths.
// Every variant skips work when the destination already exists non-empty,
// and writes through a temporary file renamed into place so an interrupted
// transfer never masquerades as a completed one.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/trackprep-io/trackprep/internal/logging"
	"github.com/trackprep-io/trackprep/internal/manifest"
	"github.com/trackprep-io/trackprep/internal/probe"
)

// Fetcher retrieves one remote artifact to its destination path.
type Fetcher interface {
	Fetch(ctx context.Context, art manifest.Artifact) error
}

// ObjectStore resolves an opaque object key to a byte stream.
type ObjectStore interface {
	Get(ctx context.Context, key string) (io.ReadCloser, error)
}

// TransferError reports a failed network transfer for one artifact.
type TransferError struct {
	Key  string
	Dest string
	Err  error
}

func (e *TransferError) Error() string {
	return fmt.Sprintf("transfer of %q to %s failed: %v", e.Key, e.Dest, e.Err)
}

func (e *TransferError) Unwrap() error { return e.Err }

// Client implements Fetcher over HTTP and an ObjectStore, dispatching on
// the artifact's source kind.
type Client struct {
	HTTP  *http.Client
	Store ObjectStore
}

// New returns a Client using http.DefaultClient and the given store.
// The store may be nil if no keyed artifacts will be fetched.
func New(store ObjectStore) *Client {
	return &Client{HTTP: http.DefaultClient, Store: store}
}

// Fetch retrieves the artifact unless its destination is already a
// non-empty file.
func (c *Client) Fetch(ctx context.Context, art manifest.Artifact) error {
	if probe.FileNonEmpty(art.Dest) {
		logging.Debug("artifact already present", "key", art.Key, "dest", art.Dest)
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(art.Dest), 0755); err != nil {
		return fmt.Errorf("failed to create destination directory: %w", err)
	}

	var err error
	switch art.Kind {
	case manifest.DirectURL:
		err = c.fetchURL(ctx, art)
	case manifest.ResumableArchive:
		err = c.fetchResumable(ctx, art)
	case manifest.KeyedID:
		err = c.fetchKeyed(ctx, art)
	default:
		return fmt.Errorf("unknown artifact kind %q for %s", art.Kind, art.Key)
	}
	if err != nil {
		return &TransferError{Key: art.Key, Dest: art.Dest, Err: err}
	}

	logging.Info("fetched artifact", "key", art.Key, "dest", art.Dest)
	return nil
}

// writeAtomic streams r to dest via a temporary sibling file and rename.
func writeAtomic(dest string, r io.Reader) error {
	tmp, err := os.CreateTemp(filepath.Dir(dest), ".fetch-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write destination: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close destination: %w", err)
	}
	if err := os.Rename(tmpName, dest); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to rename into place: %w", err)
	}
	return nil
}
