package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aretw0/cadence/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// Schedules implements ports.SchedulePersister by appending saved models to a Redis list.
type Schedules struct {
	client backend.UniversalClient
	key    string
}

// NewSchedules creates a persister writing to "<prefix>schedules".
func NewSchedules(client backend.UniversalClient, prefix string) *Schedules {
	if prefix == "" {
		prefix = "cadence:"
	}
	return &Schedules{
		client: client,
		key:    prefix + "schedules",
	}
}

// Persist appends the model as JSON.
func (s *Schedules) Persist(ctx context.Context, model domain.ScheduleModel) error {
	data, err := json.Marshal(model)
	if err != nil {
		return fmt.Errorf("failed to marshal schedule: %w", err)
	}
	if err := s.client.RPush(ctx, s.key, data).Err(); err != nil {
		return fmt.Errorf("failed to persist schedule: %w", err)
	}
	return nil
}

// All returns every persisted model, oldest first.
func (s *Schedules) All(ctx context.Context) ([]domain.ScheduleModel, error) {
	raw, err := s.client.LRange(ctx, s.key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read schedules: %w", err)
	}

	out := make([]domain.ScheduleModel, 0, len(raw))
	for i, item := range raw {
		var m domain.ScheduleModel
		if err := json.Unmarshal([]byte(item), &m); err != nil {
			return nil, fmt.Errorf("failed to decode schedule %d: %w", i, err)
		}
		out = append(out, m)
	}
	return out, nil
}
