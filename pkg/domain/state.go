package domain

import "time"

// WizardState is the persisted cursor of one wizard session.
type WizardState struct {
	// SessionID identifies the wizard session.
	SessionID string `json:"session_id"`

	// StepIndex is the current position in the sequence.
	StepIndex int `json:"step_index"`

	// UpdatedAt is set by the session manager whenever the cursor moves.
	UpdatedAt time.Time `json:"updated_at"`
}

// NewWizardState creates a state positioned on the first step.
func NewWizardState(sessionID string) *WizardState {
	return &WizardState{
		SessionID: sessionID,
		StepIndex: 0,
	}
}
