package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventStepEnter EventType = "step_enter"
	EventStepLeave EventType = "step_leave"
	EventAggregate EventType = "aggregate"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// StepEvent represents entry into or exit from a wizard step.
type StepEvent struct {
	EventBase
	StepIndex int    `json:"step_index"`
	Label     string `json:"label"`
	Action    string `json:"action"`
}

// AggregateEvent summarises one aggregation run.
type AggregateEvent struct {
	EventBase
	Buckets int   `json:"buckets"`
	Records int   `json:"records"`
	Skipped int   `json:"skipped"`
	Err     error `json:"-"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnStepEnter func(context.Context, *StepEvent)
	OnStepLeave func(context.Context, *StepEvent)
	OnAggregate func(context.Context, *AggregateEvent)
}
