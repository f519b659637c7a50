package middleware_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/cadence/pkg/adapters/memory"
	"github.com/aretw0/cadence/pkg/domain"
	"github.com/aretw0/cadence/pkg/persistence/middleware"
	"github.com/aretw0/cadence/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPIIMiddleware_Masking(t *testing.T) {
	backend := memory.NewBackend()
	mw, err := middleware.NewPIIMiddleware([]string{"(?i)email", "^Phone$"})
	require.NoError(t, err)
	persister := mw(backend)

	model := domain.ScheduleModel{
		Schedule: domain.Record{
			"Name":          "Morning Group",
			"OwnerEmail__c": "owner@example.com",
		},
		SelectedParticipants: []domain.Record{
			{
				"Name":  "Ada",
				"Phone": "555-0100",
				"Contact__r": domain.Record{
					"Email": "ada@example.com",
				},
			},
		},
	}

	require.NoError(t, persister.Persist(context.Background(), model))

	assert.Equal(t, "owner@example.com", model.Schedule["OwnerEmail__c"], "caller's model is untouched")
	assert.Equal(t, "555-0100", model.SelectedParticipants[0]["Phone"])

	saved := backend.Persisted()
	require.Len(t, saved, 1)
	assert.Equal(t, "Morning Group", saved[0].Schedule["Name"])
	assert.Equal(t, middleware.Mask, saved[0].Schedule["OwnerEmail__c"])
	assert.Equal(t, "Ada", saved[0].SelectedParticipants[0]["Name"])
	assert.Equal(t, middleware.Mask, saved[0].SelectedParticipants[0]["Phone"])
	assert.Equal(t, middleware.Mask, saved[0].SelectedParticipants[0]["Contact__r"].(domain.Record)["Email"])
}

func TestPIIMiddleware_InvalidPattern(t *testing.T) {
	_, err := middleware.NewPIIMiddleware([]string{"("})
	assert.ErrorContains(t, err, "invalid mask pattern")
}

type persisterFunc func(context.Context, domain.ScheduleModel) error

func (f persisterFunc) Persist(ctx context.Context, m domain.ScheduleModel) error { return f(ctx, m) }

func TestChain_Order(t *testing.T) {
	var order []string
	tag := func(name string) middleware.Middleware {
		return func(next ports.SchedulePersister) ports.SchedulePersister {
			return persisterFunc(func(ctx context.Context, m domain.ScheduleModel) error {
				order = append(order, name)
				return next.Persist(ctx, m)
			})
		}
	}
	sentinel := errors.New("stored")
	sink := persisterFunc(func(context.Context, domain.ScheduleModel) error {
		order = append(order, "sink")
		return sentinel
	})

	err := middleware.Chain(sink, tag("first"), tag("second")).Persist(context.Background(), domain.ScheduleModel{})

	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, []string{"first", "second", "sink"}, order)
}
