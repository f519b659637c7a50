package ports_test

import (
	"context"
	"testing"

	"github.com/aretw0/cadence/pkg/domain"
	"github.com/aretw0/cadence/pkg/ports"
)

// MockStore is an in-memory implementation of CursorStore for testing purposes.
type MockStore struct {
	data map[string]domain.WizardState
}

func NewMockStore() *MockStore {
	return &MockStore{
		data: make(map[string]domain.WizardState),
	}
}

func (m *MockStore) Save(ctx context.Context, sessionID string, state *domain.WizardState) error {
	m.data[sessionID] = *state
	return nil
}

func (m *MockStore) Load(ctx context.Context, sessionID string) (*domain.WizardState, error) {
	state, ok := m.data[sessionID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return &state, nil
}

func (m *MockStore) Delete(ctx context.Context, sessionID string) error {
	delete(m.data, sessionID)
	return nil
}

func (m *MockStore) List(ctx context.Context) ([]string, error) {
	ids := make([]string, 0, len(m.data))
	for id := range m.data {
		ids = append(ids, id)
	}
	return ids, nil
}

func TestCursorStore_Contract(t *testing.T) {
	ports.RunCursorStoreContract(t, NewMockStore())
}
