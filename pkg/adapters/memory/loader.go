package memory

import (
	"context"
	"fmt"

	"github.com/aretw0/cadence/pkg/domain"
)

// Loader implements ports.StepLoader over a fixed list of definitions.
type Loader struct {
	defs []domain.StepDefinition
}

// NewLoader creates a loader returning defs in the given order.
// Definitions without an ID get a positional one.
func NewLoader(defs ...domain.StepDefinition) *Loader {
	out := make([]domain.StepDefinition, len(defs))
	for i, d := range defs {
		if d.ID == "" {
			d.ID = fmt.Sprintf("step-%d", i)
		}
		out[i] = d
	}
	return &Loader{defs: out}
}

// Steps returns a copy of the definitions.
func (l *Loader) Steps(ctx context.Context) ([]domain.StepDefinition, error) {
	out := make([]domain.StepDefinition, len(l.defs))
	copy(out, l.defs)
	return out, nil
}
