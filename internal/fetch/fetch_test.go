package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trackprep-io/trackprep/internal/manifest"
)

// fakeStore resolves keys from an in-memory map.
type fakeStore struct {
	objects map[string]string
	gets    int
}

func (s *fakeStore) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	s.gets++
	content, ok := s.objects[key]
	if !ok {
		return nil, fmt.Errorf("object %q not found", key)
	}
	return io.NopCloser(strings.NewReader(content)), nil
}

func TestFetch_DirectURL(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		fmt.Fprint(w, "detection data")
	}))
	defer srv.Close()

	tmpDir := t.TempDir()
	dest := filepath.Join(tmpDir, "det", "byte065.txt")

	c := New(nil)
	err := c.Fetch(context.Background(), manifest.Artifact{
		Key: "seq/byte065", Dest: dest, Kind: manifest.DirectURL, Ref: srv.URL,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, hits)

	content, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "detection data", string(content))
}

func TestFetch_SkipsExistingDestination(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))
	defer srv.Close()

	tmpDir := t.TempDir()
	dest := filepath.Join(tmpDir, "weights.pth")
	require.NoError(t, os.WriteFile(dest, []byte("already here"), 0644))

	c := New(nil)
	err := c.Fetch(context.Background(), manifest.Artifact{
		Key: "weights", Dest: dest, Kind: manifest.DirectURL, Ref: srv.URL,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, hits, "non-empty destination must suppress the transfer")

	content, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "already here", string(content))
}

func TestFetch_DirectURL_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	tmpDir := t.TempDir()
	dest := filepath.Join(tmpDir, "det.txt")

	c := New(nil)
	err := c.Fetch(context.Background(), manifest.Artifact{
		Key: "det", Dest: dest, Kind: manifest.DirectURL, Ref: srv.URL,
	})
	require.Error(t, err)

	var terr *TransferError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, "det", terr.Key)

	// A failed transfer must not leave a destination the probe would
	// mistake for a completed one.
	_, statErr := os.Stat(dest)
	assert.True(t, os.IsNotExist(statErr))
}

func TestFetch_ResumableArchive_FreshDownload(t *testing.T) {
	const body = "full archive content"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Range"))
		fmt.Fprint(w, body)
	}))
	defer srv.Close()

	tmpDir := t.TempDir()
	dest := filepath.Join(tmpDir, "MOT20.zip")

	c := New(nil)
	err := c.Fetch(context.Background(), manifest.Artifact{
		Key: "MOT20.zip", Dest: dest, Kind: manifest.ResumableArchive, Ref: srv.URL,
	})
	require.NoError(t, err)

	content, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, body, string(content))

	_, statErr := os.Stat(dest + ".part")
	assert.True(t, os.IsNotExist(statErr), "partial file must be renamed away on completion")
}

func TestFetch_ResumableArchive_ContinuesPartial(t *testing.T) {
	const full = "0123456789"
	var gotRange string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRange = r.Header.Get("Range")
		w.WriteHeader(http.StatusPartialContent)
		fmt.Fprint(w, full[4:])
	}))
	defer srv.Close()

	tmpDir := t.TempDir()
	dest := filepath.Join(tmpDir, "MOT20.zip")
	require.NoError(t, os.WriteFile(dest+".part", []byte(full[:4]), 0644))

	c := New(nil)
	err := c.Fetch(context.Background(), manifest.Artifact{
		Key: "MOT20.zip", Dest: dest, Kind: manifest.ResumableArchive, Ref: srv.URL,
	})
	require.NoError(t, err)
	assert.Equal(t, "bytes=4-", gotRange)

	content, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, full, string(content))
}

func TestFetch_ResumableArchive_RangeIgnored(t *testing.T) {
	// A server that ignores Range restarts the transfer; the stale
	// partial content must not survive.
	const full = "fresh bytes"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, full)
	}))
	defer srv.Close()

	tmpDir := t.TempDir()
	dest := filepath.Join(tmpDir, "MOT20.zip")
	require.NoError(t, os.WriteFile(dest+".part", []byte("stale partial"), 0644))

	c := New(nil)
	err := c.Fetch(context.Background(), manifest.Artifact{
		Key: "MOT20.zip", Dest: dest, Kind: manifest.ResumableArchive, Ref: srv.URL,
	})
	require.NoError(t, err)

	content, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, full, string(content))
}

func TestFetch_ResumableArchive_AlreadyComplete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusRequestedRangeNotSatisfiable)
	}))
	defer srv.Close()

	tmpDir := t.TempDir()
	dest := filepath.Join(tmpDir, "MOT20.zip")
	require.NoError(t, os.WriteFile(dest+".part", []byte("whole archive"), 0644))

	c := New(nil)
	err := c.Fetch(context.Background(), manifest.Artifact{
		Key: "MOT20.zip", Dest: dest, Kind: manifest.ResumableArchive, Ref: srv.URL,
	})
	require.NoError(t, err)

	content, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "whole archive", string(content))
}

func TestFetch_KeyedID(t *testing.T) {
	store := &fakeStore{objects: map[string]string{
		"models/resnet50_reid.pth": "weights bytes",
	}}

	tmpDir := t.TempDir()
	dest := filepath.Join(tmpDir, "models", "resnet50_reid.pth")

	c := New(store)
	err := c.Fetch(context.Background(), manifest.Artifact{
		Key: "reid-weights", Dest: dest, Kind: manifest.KeyedID, Ref: "models/resnet50_reid.pth",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, store.gets)

	content, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "weights bytes", string(content))
}

func TestFetch_KeyedID_Missing(t *testing.T) {
	store := &fakeStore{objects: map[string]string{}}

	tmpDir := t.TempDir()
	dest := filepath.Join(tmpDir, "missing.pth")

	c := New(store)
	err := c.Fetch(context.Background(), manifest.Artifact{
		Key: "missing", Dest: dest, Kind: manifest.KeyedID, Ref: "nope",
	})
	require.Error(t, err)

	var terr *TransferError
	assert.ErrorAs(t, err, &terr)
}

func TestFetch_KeyedID_NoStore(t *testing.T) {
	tmpDir := t.TempDir()

	c := New(nil)
	err := c.Fetch(context.Background(), manifest.Artifact{
		Key: "reid", Dest: filepath.Join(tmpDir, "reid.pth"), Kind: manifest.KeyedID, Ref: "k",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no object store")
}
