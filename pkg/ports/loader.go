package ports

import (
	"context"

	"github.com/aretw0/cadence/pkg/domain"
)

// StepLoader reads step definitions from a catalog (files, memory).
// Definitions are returned in wizard order.
type StepLoader interface {
	Steps(ctx context.Context) ([]domain.StepDefinition, error)
}
