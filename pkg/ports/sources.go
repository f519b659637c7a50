package ports

import (
	"context"

	"github.com/aretw0/cadence/pkg/domain"
)

// MetadataSource resolves object metadata descriptors by API name.
type MetadataSource interface {
	// ObjectInfo returns domain.ErrMetadataNotFound for unknown objects.
	ObjectInfo(ctx context.Context, apiName string) (domain.ObjectInfo, error)
}

// RecordSource fetches session records grouped by start date.
type RecordSource interface {
	// Sessions returns the records matching a relative date literal
	// such as domain.DateLiteralThisWeek, in delivery order.
	Sessions(ctx context.Context, dateLiteral string) (domain.Snapshot, error)
}

// ModelSource provides the initial schedule creator model.
type ModelSource interface {
	ScheduleModel(ctx context.Context) (domain.ScheduleModel, error)
}

// SchedulePersister saves a completed schedule model.
type SchedulePersister interface {
	Persist(ctx context.Context, model domain.ScheduleModel) error
}
