package main

import (
	"context"
	"path/filepath"
	"testing"
)

// Smoke test to ensure main honors SKIP_SERVER_RUN and does not block test runs.
func TestMainSkipsWhenEnvSet(t *testing.T) {
	t.Setenv("SKIP_SERVER_RUN", "1")
	main()
}

func TestRunReportsConfigErrors(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := run(ctx, cancel, nil); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}

func TestRunReportsInvalidSchedule(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("WARM_SCHEDULE", "every now and then")
	t.Setenv("METRICS_ENABLED", "false")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := run(ctx, cancel, nil); err == nil {
		t.Fatalf("expected error for invalid warm schedule")
	}
}
