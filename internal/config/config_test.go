package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DefaultDataRoot, cfg.DataRoot)
	assert.Equal(t, 4, cfg.Parallelism)
	assert.NotEmpty(t, cfg.Profile)
	assert.NotEmpty(t, cfg.S3.Bucket)
}

func TestLoad_Overrides(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "trackprep.yaml")
	content := `
data_root: /mnt/fast/data
parallelism: 8
retry:
  max_retries: 5
  base_delay: 2s
s3:
  bucket: my-artifacts
  region: eu-west-1
trainer:
  command: python3.12
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/mnt/fast/data", cfg.DataRoot)
	assert.Equal(t, 8, cfg.Parallelism)
	assert.Equal(t, 5, cfg.Retry.MaxRetries)
	assert.Equal(t, "2s", cfg.Retry.BaseDelay)
	assert.Equal(t, "my-artifacts", cfg.S3.Bucket)
	assert.Equal(t, "eu-west-1", cfg.S3.Region)
	assert.Equal(t, "python3.12", cfg.Trainer.Command)

	// Untouched fields keep their defaults.
	assert.NotEmpty(t, cfg.Profile)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("data_root: [unclosed"), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse")
}
