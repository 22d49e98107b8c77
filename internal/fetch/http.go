package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/trackprep-io/trackprep/internal/logging"
	"github.com/trackprep-io/trackprep/internal/manifest"
)

// fetchURL performs a one-shot HTTP GET of the artifact.
func (c *Client) fetchURL(ctx context.Context, art manifest.Artifact) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, art.Ref, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	return writeAtomic(art.Dest, resp.Body)
}

// fetchResumable continues a partial download of the artifact from the
// current length of its ".part" sibling, using an HTTP Range request.
// The partial file is renamed to the destination only once the whole body
// has been received, so the destination path never holds a truncated file.
func (c *Client) fetchResumable(ctx context.Context, art manifest.Artifact) error {
	part := art.Dest + ".part"

	var offset int64
	if info, err := os.Stat(part); err == nil {
		offset = info.Size()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, art.Ref, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if offset > 0 {
		req.Header.Set("Range", fmt.Sprintf("bytes=%d-", offset))
		logging.Info("resuming download", "key", art.Key, "offset", offset)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusPartialContent:
		// Server honored the range; append to the partial file.
	case http.StatusOK:
		// Server ignored the range (or none was sent); restart from zero.
		offset = 0
	case http.StatusRequestedRangeNotSatisfiable:
		// Partial file already covers the whole object.
		return os.Rename(part, art.Dest)
	default:
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	flags := os.O_CREATE | os.O_WRONLY
	if offset > 0 {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}
	f, err := os.OpenFile(part, flags, 0644)
	if err != nil {
		return fmt.Errorf("failed to open partial file: %w", err)
	}

	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		// Keep the partial file so the next run resumes from here.
		return fmt.Errorf("transfer interrupted: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close partial file: %w", err)
	}

	return os.Rename(part, art.Dest)
}
