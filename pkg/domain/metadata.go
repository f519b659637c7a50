package domain

import "fmt"

// FieldInfo describes a single field of an object.
type FieldInfo struct {
	APIName          string `json:"apiName,omitempty" mapstructure:"apiName"`
	RelationshipName string `json:"relationshipName,omitempty" mapstructure:"relationshipName"`
}

// ObjectInfo is the object metadata descriptor delivered by the metadata source.
type ObjectInfo struct {
	APIName     string               `json:"apiName" mapstructure:"apiName"`
	Label       string               `json:"label" mapstructure:"label"`
	LabelPlural string               `json:"labelPlural" mapstructure:"labelPlural"`
	Fields      map[string]FieldInfo `json:"fields" mapstructure:"fields"`
}

// RelationshipName returns the relationship name of a lookup field.
func (o ObjectInfo) RelationshipName(field string) (string, error) {
	f, ok := o.Fields[field]
	if !ok {
		return "", fmt.Errorf("%w: field %q on %q", ErrMetadataNotFound, field, o.APIName)
	}
	if f.RelationshipName == "" {
		return "", fmt.Errorf("%w: field %q on %q has no relationship", ErrMetadataNotFound, field, o.APIName)
	}
	return f.RelationshipName, nil
}

// FieldKeys maps the logical fields the aggregator reads to record keys.
type FieldKeys struct {
	Status          string `json:"status" mapstructure:"status"`
	PrimaryProvider string `json:"primary_provider" mapstructure:"primary_provider"`
	StartDate       string `json:"start_date" mapstructure:"start_date"`
}

// DefaultFieldKeys returns the service-session field names.
func DefaultFieldKeys() FieldKeys {
	return FieldKeys{
		Status:          FieldStatus,
		PrimaryProvider: FieldPrimaryServiceProvider,
		StartDate:       FieldSessionStart,
	}
}

// AggregatorConfig is everything the aggregator needs before processing records.
type AggregatorConfig struct {
	// ScheduleRelationship is the first hop, read on the session record.
	ScheduleRelationship string
	// ServiceRelationship is the second hop, read on the schedule record.
	ServiceRelationship string

	Fields      FieldKeys
	Label       string
	LabelPlural string
}
