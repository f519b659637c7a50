package schedule

import (
	"github.com/aretw0/cadence/pkg/domain"
	"github.com/aretw0/cadence/pkg/wizard"
)

// Label keys understood by the creator. Models may override any of them and
// add their own.
const (
	LabelNewSchedule     = "newSchedule"
	LabelReviewSessions  = "reviewSessions"
	LabelAddParticipants = "addParticipants"
	LabelReviewSchedule  = "reviewSchedule"
	LabelSave            = "save"
	LabelSaveNew         = "saveNew"
	LabelSuccess         = "success"
)

// DefaultLabels returns the built-in label set.
func DefaultLabels() map[string]string {
	return map[string]string{
		LabelNewSchedule:     "New Schedule",
		LabelReviewSessions:  "Review Sessions",
		LabelAddParticipants: "Add Participants",
		LabelReviewSchedule:  "Review Schedule",
		LabelSave:            "Save",
		LabelSaveNew:         "Save & New",
		LabelSuccess:         "Success",
	}
}

// mergeLabels copies every entry of src over dst.
func mergeLabels(dst, src map[string]string) {
	for k, v := range src {
		dst[k] = v
	}
}

// Definitions returns the four creator steps labelled from labels.
func Definitions(labels map[string]string) []domain.StepDefinition {
	return []domain.StepDefinition{
		{ID: "new-schedule", Label: labels[LabelNewSchedule], Nav: wizard.Nav().Next().Build()},
		{ID: "review-sessions", Label: labels[LabelReviewSessions], Nav: wizard.Nav().Next().Back().Build()},
		{ID: "add-participants", Label: labels[LabelAddParticipants], Nav: wizard.Nav().Next().Back().Build()},
		{ID: "review-schedule", Label: labels[LabelReviewSchedule], Nav: wizard.Nav().
			Next(labels[LabelSaveNew], domain.VariantNeutral).
			Back().
			Finish(labels[LabelSave]).
			Build()},
	}
}
