package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/aretw0/cadence/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestTypedErrors_Unwrap(t *testing.T) {
	cfgErr := fmt.Errorf("process: %w", &domain.ConfigurationError{Missing: []string{"schedule relationship"}})
	assert.True(t, errors.Is(cfgErr, domain.ErrNotConfigured))
	assert.Contains(t, cfgErr.Error(), "schedule relationship")

	relErr := &domain.MissingRelationError{BucketKey: "2024-01-01", Index: 2, Relationship: "Service__r"}
	assert.True(t, errors.Is(relErr, domain.ErrMissingRelation))
	assert.Contains(t, relErr.Error(), `"Service__r"`)

	var target *domain.MissingRelationError
	assert.True(t, errors.As(fmt.Errorf("wrap: %w", relErr), &target))
	assert.Equal(t, 2, target.Index)

	valErr := &domain.ValidationError{StepIndex: 1, Reason: "no participants"}
	assert.True(t, errors.Is(valErr, domain.ErrValidation))
}

func TestObjectInfo_RelationshipName(t *testing.T) {
	info := domain.ObjectInfo{
		APIName: domain.ObjectServiceSession,
		Fields: map[string]domain.FieldInfo{
			domain.FieldServiceSchedule: {RelationshipName: "ServiceSchedule__r"},
			domain.FieldStatus:          {},
		},
	}

	name, err := info.RelationshipName(domain.FieldServiceSchedule)
	assert.NoError(t, err)
	assert.Equal(t, "ServiceSchedule__r", name)

	_, err = info.RelationshipName(domain.FieldStatus)
	assert.ErrorIs(t, err, domain.ErrMetadataNotFound)

	_, err = info.RelationshipName("Unknown__c")
	assert.ErrorIs(t, err, domain.ErrMetadataNotFound)
}

func TestScheduleModel_CloneIsolation(t *testing.T) {
	orig := domain.ScheduleModel{
		Schedule:             domain.Record{"Name": "Tutoring"},
		SelectedParticipants: []domain.Record{{"Id": "p1"}},
		Labels:               map[string]string{"save": "Save"},
	}

	clone := orig.Clone()
	clone.Schedule["Name"] = "Changed"
	clone.SelectedParticipants = append(clone.SelectedParticipants, domain.Record{"Id": "p2"})
	clone.Labels["save"] = "Keep"

	assert.Equal(t, "Tutoring", orig.Schedule["Name"])
	assert.Len(t, orig.SelectedParticipants, 1)
	assert.Equal(t, "Save", orig.Labels["save"])
}
