package wizard

import (
	"fmt"

	"github.com/aretw0/cadence/pkg/domain"
)

// Builder collects steps during construction.
type Builder struct {
	steps  []domain.Step
	hooks  domain.LifecycleHooks
	sealed bool
}

// New creates a new sequence builder.
func New() *Builder {
	return &Builder{}
}

// AddStep appends a step whose index is the current number of steps.
func (b *Builder) AddStep(label string, nav domain.Navigation) *Builder {
	if b.sealed {
		return b
	}
	b.steps = append(b.steps, domain.Step{
		Index: len(b.steps),
		Label: label,
		Nav:   nav,
	})
	return b
}

// AddDefinitions appends catalog definitions in order.
func (b *Builder) AddDefinitions(defs ...domain.StepDefinition) *Builder {
	for _, def := range defs {
		b.AddStep(def.Label, def.Nav)
	}
	return b
}

// Hooks registers lifecycle hooks on the resulting sequence.
func (b *Builder) Hooks(hooks domain.LifecycleHooks) *Builder {
	b.hooks = hooks
	return b
}

// Build finalizes the builder into a Sequence positioned on the first step.
// The builder cannot be used afterwards.
func (b *Builder) Build() (*Sequence, error) {
	if b.sealed {
		return nil, domain.ErrBuilderSealed
	}
	if len(b.steps) == 0 {
		return nil, fmt.Errorf("failed to build sequence: %w", domain.ErrEmptySequence)
	}
	b.sealed = true

	steps := make([]domain.Step, len(b.steps))
	copy(steps, b.steps)
	b.steps = nil

	return &Sequence{
		steps: steps,
		hooks: b.hooks,
	}, nil
}
