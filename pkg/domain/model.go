package domain

// ScheduleModel is the working data of the schedule creator wizard.
type ScheduleModel struct {
	Schedule             Record            `json:"serviceSchedule"`
	SelectedParticipants []Record          `json:"selectedParticipants"`
	Labels               map[string]string `json:"labels,omitempty"`
}

// Clone copies the model so that edits to the schedule and the participant
// list never reach the original. Record values themselves are shared.
func (m ScheduleModel) Clone() ScheduleModel {
	out := ScheduleModel{}
	if m.Schedule != nil {
		out.Schedule = make(Record, len(m.Schedule))
		for k, v := range m.Schedule {
			out.Schedule[k] = v
		}
	}
	if m.SelectedParticipants != nil {
		out.SelectedParticipants = append([]Record(nil), m.SelectedParticipants...)
	}
	if m.Labels != nil {
		out.Labels = make(map[string]string, len(m.Labels))
		for k, v := range m.Labels {
			out.Labels[k] = v
		}
	}
	return out
}
