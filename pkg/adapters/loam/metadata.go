package loam

// StepMetadata is the frontmatter of a step document.
//
//	---
//	id: review-schedule
//	label: Review Schedule
//	nav:
//	  has_next: true
//	  next_label: Save & New
//	  next_variant: neutral
//	  has_back: true
//	  has_finish: true
//	  finish_label: Save
//	---
type StepMetadata struct {
	ID    string `json:"id" mapstructure:"id"`
	Label string `json:"label" mapstructure:"label"`

	// Nav is decoded into domain.Navigation with mapstructure so that
	// unknown keys are reported instead of silently dropped.
	Nav map[string]any `json:"nav" mapstructure:"nav"`
}
