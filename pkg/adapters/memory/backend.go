package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/aretw0/cadence/pkg/domain"
	"github.com/mohae/deepcopy"
)

// Backend is an in-memory stand-in for the remote backend. It implements
// ports.MetadataSource, ports.RecordSource, ports.ModelSource and
// ports.SchedulePersister. Everything it hands out is a deep copy.
type Backend struct {
	mu        sync.RWMutex
	objects   map[string]domain.ObjectInfo
	sessions  map[string]domain.Snapshot
	model     domain.ScheduleModel
	persisted []domain.ScheduleModel
}

// NewBackend creates an empty backend.
func NewBackend() *Backend {
	return &Backend{
		objects:  make(map[string]domain.ObjectInfo),
		sessions: make(map[string]domain.Snapshot),
	}
}

// PutObject registers an object descriptor.
func (b *Backend) PutObject(info domain.ObjectInfo) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.objects[info.APIName] = info
}

// PutSessions registers the snapshot served for a date literal.
func (b *Backend) PutSessions(dateLiteral string, snap domain.Snapshot) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sessions[dateLiteral] = deepcopy.Copy(snap).(domain.Snapshot)
}

// PutModel sets the schedule model served to the wizard.
func (b *Backend) PutModel(model domain.ScheduleModel) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.model = model
}

// ObjectInfo implements ports.MetadataSource.
func (b *Backend) ObjectInfo(ctx context.Context, apiName string) (domain.ObjectInfo, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	info, ok := b.objects[apiName]
	if !ok {
		return domain.ObjectInfo{}, fmt.Errorf("%w: object %q", domain.ErrMetadataNotFound, apiName)
	}
	return deepcopy.Copy(info).(domain.ObjectInfo), nil
}

// Sessions implements ports.RecordSource. Unknown literals yield an empty snapshot.
func (b *Backend) Sessions(ctx context.Context, dateLiteral string) (domain.Snapshot, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	snap, ok := b.sessions[dateLiteral]
	if !ok {
		return domain.Snapshot{}, nil
	}
	return deepcopy.Copy(snap).(domain.Snapshot), nil
}

// ScheduleModel implements ports.ModelSource.
func (b *Backend) ScheduleModel(ctx context.Context) (domain.ScheduleModel, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return deepcopy.Copy(b.model).(domain.ScheduleModel), nil
}

// Persist implements ports.SchedulePersister.
func (b *Backend) Persist(ctx context.Context, model domain.ScheduleModel) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.persisted = append(b.persisted, deepcopy.Copy(model).(domain.ScheduleModel))
	return nil
}

// Persisted returns the models saved so far, oldest first.
func (b *Backend) Persisted() []domain.ScheduleModel {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return deepcopy.Copy(b.persisted).([]domain.ScheduleModel)
}
