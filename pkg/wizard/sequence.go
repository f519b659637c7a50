package wizard

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aretw0/cadence/pkg/domain"
)

// Action is a cursor movement.
type Action string

const (
	ActionNext    Action = "next"
	ActionBack    Action = "back"
	ActionRestart Action = "restart"
)

// ParseAction converts user input into an Action.
func ParseAction(s string) (Action, error) {
	switch Action(strings.ToLower(strings.TrimSpace(s))) {
	case ActionNext, "n":
		return ActionNext, nil
	case ActionBack, "b":
		return ActionBack, nil
	case ActionRestart, "r":
		return ActionRestart, nil
	}
	return "", fmt.Errorf("unknown wizard action %q", s)
}

// Apply is the transition function of every sequence: given the current index,
// the sequence length and an action, it returns the next index. Moves past
// either end are clamped.
func Apply(index, length int, action Action) int {
	if length <= 0 {
		return 0
	}
	index = clamp(index, length)
	switch action {
	case ActionNext:
		if index < length-1 {
			return index + 1
		}
	case ActionBack:
		if index > 0 {
			return index - 1
		}
	case ActionRestart:
		return 0
	}
	return index
}

func clamp(index, length int) int {
	if index < 0 {
		return 0
	}
	if index > length-1 {
		return length - 1
	}
	return index
}

// Sequence is an ordered, non-empty list of steps with a cursor.
// Only the cursor changes after Build. Not safe for concurrent use.
type Sequence struct {
	steps   []domain.Step
	current int
	hooks   domain.LifecycleHooks
}

// Next moves to the following step unless already on the last one.
func (s *Sequence) Next() {
	s.Step(context.Background(), ActionNext)
}

// Back moves to the previous step unless already on the first one.
func (s *Sequence) Back() {
	s.Step(context.Background(), ActionBack)
}

// Restart moves back to the first step.
func (s *Sequence) Restart() {
	s.Step(context.Background(), ActionRestart)
}

// Step applies an action and reports whether the cursor moved.
// Lifecycle hooks only fire on an actual move.
func (s *Sequence) Step(ctx context.Context, action Action) bool {
	next := Apply(s.current, len(s.steps), action)
	if next == s.current {
		return false
	}

	s.emit(ctx, s.hooks.OnStepLeave, domain.EventStepLeave, s.steps[s.current], action)
	s.current = next
	s.emit(ctx, s.hooks.OnStepEnter, domain.EventStepEnter, s.steps[s.current], action)
	return true
}

func (s *Sequence) emit(ctx context.Context, hook func(context.Context, *domain.StepEvent), typ domain.EventType, step domain.Step, action Action) {
	if hook == nil {
		return
	}
	hook(ctx, &domain.StepEvent{
		EventBase: domain.EventBase{
			Timestamp: time.Now(),
			Type:      typ,
		},
		StepIndex: step.Index,
		Label:     step.Label,
		Action:    string(action),
	})
}

// Current returns the step under the cursor.
func (s *Sequence) Current() domain.Step {
	return s.steps[s.current]
}

// All returns a copy of every step, for step indicators.
func (s *Sequence) All() []domain.Step {
	out := make([]domain.Step, len(s.steps))
	copy(out, s.steps)
	return out
}

// Index returns the cursor position.
func (s *Sequence) Index() int {
	return s.current
}

// Len returns the number of steps.
func (s *Sequence) Len() int {
	return len(s.steps)
}

// IsFirst reports whether the cursor is on the first step.
func (s *Sequence) IsFirst() bool {
	return s.current == 0
}

// IsLast reports whether the cursor is on the last step.
func (s *Sequence) IsLast() bool {
	return s.current == len(s.steps)-1
}

// Seek places the cursor on a persisted index, clamped into range.
// No hooks fire.
func (s *Sequence) Seek(index int) {
	s.current = clamp(index, len(s.steps))
}
