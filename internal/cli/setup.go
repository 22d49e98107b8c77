package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/trackprep-io/trackprep/internal/config"
	"github.com/trackprep-io/trackprep/internal/fetch"
	"github.com/trackprep-io/trackprep/internal/hostenv"
	"github.com/trackprep-io/trackprep/internal/pipeline"
	"github.com/trackprep-io/trackprep/internal/provision"
)

var (
	setupConfigPath  string
	setupParallelism int
)

var setupCmd = &cobra.Command{
	Use:   "setup [data-root]",
	Short: "Provision the MOT20 training environment",
	Long: `Runs the provisioning pipeline against the given data root
(default ` + config.DefaultDataRoot + `). Steps whose output already
exists are skipped, so setup is safe to re-run after an interruption.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSetup,
}

func init() {
	setupCmd.Flags().StringVar(&setupConfigPath, "config", "", "Optional YAML tuning file")
	setupCmd.Flags().IntVar(&setupParallelism, "parallelism", 0, "Concurrent artifact fetches (default 4)")
}

func runSetup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(setupConfigPath)
	if err != nil {
		return err
	}
	if len(args) > 0 {
		cfg.DataRoot = args[0]
	}
	if setupParallelism > 0 {
		cfg.Parallelism = setupParallelism
	}

	ctx := cmd.Context()

	store, err := fetch.NewS3Store(ctx, cfg.S3.Bucket, cfg.S3.Region, cfg.S3.Profile)
	if err != nil {
		return fmt.Errorf("failed to initialize artifact store: %w", err)
	}

	runner := hostenv.NewRunner()
	steps := pipeline.Steps(pipeline.Options{
		Root:        cfg.DataRoot,
		Profile:     cfg.Profile,
		Parallelism: cfg.Parallelism,
		Retry:       retryPolicy(cfg),
	}, fetch.New(store), hostenv.NewInstaller(runner), hostenv.NewExtractor(runner))

	fmt.Printf("Provisioning %s (%d steps)...\n", cfg.DataRoot, len(steps))

	r := &provision.Runner{Callback: renderStepEvent}
	if err := r.Run(ctx, steps); err != nil {
		return err
	}

	fmt.Println("\nSetup complete. The environment is ready for training.")
	return nil
}

// retryPolicy maps config overrides onto the default policy. Malformed
// duration strings are ignored in favor of the defaults.
func retryPolicy(cfg *config.Config) *provision.RetryPolicy {
	policy := provision.DefaultRetryPolicy()
	if cfg.Retry.MaxRetries > 0 {
		policy.MaxRetries = cfg.Retry.MaxRetries
	}
	if d, err := time.ParseDuration(cfg.Retry.BaseDelay); err == nil && d > 0 {
		policy.BaseDelay = d
	}
	if d, err := time.ParseDuration(cfg.Retry.MaxDelay); err == nil && d > 0 {
		policy.MaxDelay = d
	}
	return policy
}

func renderStepEvent(e provision.Event) {
	switch e.Status {
	case "skipped":
		fmt.Printf("  - %s (already complete)\n", e.Step)
	case "started":
		fmt.Printf("  > %s\n", e.Step)
	case "completed":
		fmt.Printf("    done in %s\n", e.Duration.Round(time.Millisecond))
	case "failed":
		fmt.Printf("    FAILED after %s: %v\n", e.Duration.Round(time.Millisecond), e.Err)
	}
}
