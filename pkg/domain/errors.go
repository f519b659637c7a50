package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotConfigured is returned when records are processed before the
// aggregator received its relationship configuration.
var ErrNotConfigured = errors.New("aggregator not configured")

// ErrMissingRelation is returned when a record lacks an expected nested relationship.
var ErrMissingRelation = errors.New("missing relation")

// ErrNotReady is returned by the readiness gate until both metadata sources resolved.
var ErrNotReady = errors.New("metadata not ready")

// ErrMetadataNotFound is returned when an object or field descriptor is unknown.
var ErrMetadataNotFound = errors.New("metadata not found")

// ErrSessionNotFound is returned when a wizard session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrEmptySequence is returned when a wizard is built without steps.
var ErrEmptySequence = errors.New("step sequence is empty")

// ErrBuilderSealed is returned when a builder is reused after Build.
var ErrBuilderSealed = errors.New("builder already built")

// ErrValidation is returned when a wizard step refuses to advance.
var ErrValidation = errors.New("step validation failed")

// ConfigurationError reports an aggregator that cannot resolve relationships.
type ConfigurationError struct {
	// Missing lists the configuration keys that are absent.
	Missing []string
}

func (e *ConfigurationError) Error() string {
	if len(e.Missing) == 0 {
		return ErrNotConfigured.Error()
	}
	return fmt.Sprintf("%s: missing %s", ErrNotConfigured, strings.Join(e.Missing, ", "))
}

// Unwrap allows errors.Is(err, ErrNotConfigured).
func (e *ConfigurationError) Unwrap() error {
	return ErrNotConfigured
}

// MissingRelationError is scoped to a single record of a bucket.
type MissingRelationError struct {
	BucketKey    string
	Index        int
	Relationship string
}

func (e *MissingRelationError) Error() string {
	return fmt.Sprintf("%s: record %d of bucket %q has no %q", ErrMissingRelation, e.Index, e.BucketKey, e.Relationship)
}

// Unwrap allows errors.Is(err, ErrMissingRelation).
func (e *MissingRelationError) Unwrap() error {
	return ErrMissingRelation
}

// ValidationError explains why a wizard step did not advance.
type ValidationError struct {
	StepIndex int
	Reason    string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("step %d: %s", e.StepIndex, e.Reason)
}

// Unwrap allows errors.Is(err, ErrValidation).
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
