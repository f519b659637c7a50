package cadence

import (
	"context"
	"fmt"
	"path/filepath"

	loamAdapter "github.com/aretw0/cadence/pkg/adapters/loam"
	"github.com/aretw0/cadence/pkg/adapters/memory"
	"github.com/aretw0/cadence/pkg/domain"
	"github.com/aretw0/cadence/pkg/ports"
	"github.com/aretw0/cadence/pkg/schedule"
	"github.com/aretw0/cadence/pkg/wizard"
	"github.com/aretw0/loam"
)

// NewCatalog returns the step catalog stored in dir. An empty dir yields the
// built-in schedule creator steps.
func NewCatalog(dir string) (ports.StepLoader, error) {
	if dir == "" {
		return memory.NewLoader(schedule.Definitions(schedule.DefaultLabels())...), nil
	}

	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	// Strict mode keeps numbers as json.Number across formats; the catalog is
	// never written, so the repository is opened read-only.
	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}

	return loamAdapter.New(loam.NewTypedRepository[loamAdapter.StepMetadata](repo)), nil
}

// NewSequence builds a sequence from every step in the catalog.
func NewSequence(ctx context.Context, catalog ports.StepLoader, hooks domain.LifecycleHooks) (*wizard.Sequence, error) {
	defs, err := catalog.Steps(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load steps: %w", err)
	}
	return wizard.New().AddDefinitions(defs...).Hooks(hooks).Build()
}
