package middleware

import (
	"context"
	"fmt"
	"regexp"

	"github.com/aretw0/cadence/pkg/domain"
	"github.com/aretw0/cadence/pkg/ports"
	"github.com/mohae/deepcopy"
)

// Mask replaces masked values in saved schedules.
const Mask = "***"

type piiMiddleware struct {
	next     ports.SchedulePersister
	patterns []*regexp.Regexp
}

// NewPIIMiddleware creates a middleware that masks the values of fields whose
// API name matches any of the patterns, in the schedule record and in every
// selected participant, before the model is persisted.
func NewPIIMiddleware(patternStrings []string) (Middleware, error) {
	patterns := make([]*regexp.Regexp, len(patternStrings))
	for i, p := range patternStrings {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid mask pattern %q: %w", p, err)
		}
		patterns[i] = re
	}
	return func(next ports.SchedulePersister) ports.SchedulePersister {
		return &piiMiddleware{next: next, patterns: patterns}
	}, nil
}

func (m *piiMiddleware) Persist(ctx context.Context, model domain.ScheduleModel) error {
	// The caller keeps using its model after the save.
	cloned := deepcopy.Copy(model).(domain.ScheduleModel)

	maskRecord(cloned.Schedule, m.patterns)
	for _, p := range cloned.SelectedParticipants {
		maskRecord(p, m.patterns)
	}

	return m.next.Persist(ctx, cloned)
}

func maskRecord(r map[string]any, patterns []*regexp.Regexp) {
	for k, v := range r {
		for _, p := range patterns {
			if p.MatchString(k) {
				r[k] = Mask
				break
			}
		}

		// Relationship fields hold nested records.
		switch sub := v.(type) {
		case domain.Record:
			maskRecord(sub, patterns)
		case map[string]any:
			maskRecord(sub, patterns)
		}
	}
}
