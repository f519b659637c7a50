package domain

// Record is a flat record keyed by field API name. Relationship fields hold
// nested records.
type Record map[string]any

// EnrichedRecord is a deep copy of a Record plus the display flags derived from it.
// The record fields encode under "fields", apart from the flags, so a field may
// share a flag's name.
type EnrichedRecord struct {
	Fields Record `json:"fields"`

	// Complete is true when the status field equals StatusComplete.
	Complete bool `json:"complete"`

	// HasPrimaryProvider is true when the primary provider field is set.
	HasPrimaryProvider bool `json:"has_primary_provider"`

	// SessionStart mirrors the start-date field.
	SessionStart any `json:"session_start"`

	// ServiceName is the Name found two relationship hops away.
	ServiceName string `json:"service_name"`
}

// Bucket is one render-ready group of records sharing a date key.
type Bucket struct {
	Key        string           `json:"key"`
	Records    []EnrichedRecord `json:"records"`
	Open       bool             `json:"open"`
	TotalLabel string           `json:"total_label"`
}
