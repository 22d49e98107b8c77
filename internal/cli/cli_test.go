package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trackprep-io/trackprep/internal/config"
	"github.com/trackprep-io/trackprep/internal/provision"
)

type recordingRunner struct {
	calls int
}

func (r *recordingRunner) Run(ctx context.Context, name string, args ...string) error {
	r.calls++
	return nil
}

func TestRunTrain_InvalidMode(t *testing.T) {
	rec := &recordingRunner{}
	orig := trainExec
	trainExec = rec
	defer func() { trainExec = orig }()

	err := runTrain(trainCmd, []string{"foo"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"foo"`)
	assert.Equal(t, 0, rec.calls, "trainer must not launch on invalid mode")
}

func TestRunTrain_ValidMode(t *testing.T) {
	rec := &recordingRunner{}
	orig := trainExec
	trainExec = rec
	defer func() { trainExec = orig }()

	trainCmd.SetContext(context.Background())
	err := runTrain(trainCmd, []string{"public", t.TempDir()})
	require.NoError(t, err)
	assert.Equal(t, 1, rec.calls)
}

func TestRetryPolicy(t *testing.T) {
	cfg := config.Default()
	policy := retryPolicy(cfg)
	assert.Equal(t, provision.DefaultRetryPolicy().MaxRetries, policy.MaxRetries)

	cfg.Retry.MaxRetries = 7
	policy = retryPolicy(cfg)
	assert.Equal(t, 7, policy.MaxRetries)
	assert.Equal(t, provision.DefaultRetryPolicy().BaseDelay, policy.BaseDelay)
}
