package domain

// Button variants understood by the wizard controls.
const (
	VariantBrand   = "brand"
	VariantNeutral = "neutral"
)

// Navigation is the per-step configuration of the wizard controls.
// It carries no behavior.
type Navigation struct {
	HasNext     bool   `json:"has_next" yaml:"has_next" mapstructure:"has_next"`
	NextLabel   string `json:"next_label,omitempty" yaml:"next_label,omitempty" mapstructure:"next_label"`
	NextVariant string `json:"next_variant,omitempty" yaml:"next_variant,omitempty" mapstructure:"next_variant"`
	HasBack     bool   `json:"has_back" yaml:"has_back" mapstructure:"has_back"`
	HasFinish   bool   `json:"has_finish" yaml:"has_finish" mapstructure:"has_finish"`
	FinishLabel string `json:"finish_label,omitempty" yaml:"finish_label,omitempty" mapstructure:"finish_label"`
}

// Step is one position of a wizard. Index is 0-based and matches its
// position in the sequence.
type Step struct {
	Index int        `json:"index"`
	Label string     `json:"label"`
	Nav   Navigation `json:"navigation"`
}

// StepDefinition is a step as described by a catalog, before it is
// placed in a sequence.
type StepDefinition struct {
	ID    string     `json:"id"`
	Label string     `json:"label"`
	Nav   Navigation `json:"navigation"`
}
