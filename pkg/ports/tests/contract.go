package tests

import (
	"context"
	"testing"

	"github.com/aretw0/cadence/pkg/ports"
)

// StepLoaderContractTest is a reusable test suite that verifies if an adapter
// complies with ports.StepLoader. want lists the expected labels in order.
func StepLoaderContractTest(t *testing.T, loader ports.StepLoader, want []string) {
	t.Helper()

	t.Run("Steps_Order", func(t *testing.T) {
		defs, err := loader.Steps(context.Background())
		if err != nil {
			t.Fatalf("unexpected error loading steps: %v", err)
		}
		if len(defs) != len(want) {
			t.Fatalf("expected %d steps, got %d", len(want), len(defs))
		}
		for i, def := range defs {
			if def.Label != want[i] {
				t.Errorf("step %d: got label %q, want %q", i, def.Label, want[i])
			}
		}
	})

	t.Run("Steps_UniqueIDs", func(t *testing.T) {
		defs, err := loader.Steps(context.Background())
		if err != nil {
			t.Fatalf("unexpected error loading steps: %v", err)
		}
		seen := make(map[string]bool)
		for _, def := range defs {
			if def.ID == "" {
				t.Errorf("step %q has no ID", def.Label)
			}
			if seen[def.ID] {
				t.Errorf("duplicate step ID %q", def.ID)
			}
			seen[def.ID] = true
		}
	})
}
