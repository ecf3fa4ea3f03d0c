package domain

// CanSubmit reports whether a timesheet for t may be submitted: hours must
// have been logged and the timesheet must still be a draft.
func CanSubmit(t *PlanTask) bool {
	return t.UsedHours > 0 && effectiveState(t) == TimesheetDraft
}

// CanResubmit reports whether an already submitted timesheet may be sent again.
func CanResubmit(t *PlanTask) bool {
	return t.UsedHours > 0 && effectiveState(t) != TimesheetDraft
}

func effectiveState(t *PlanTask) TimesheetState {
	if t.TimesheetState == "" {
		return TimesheetDraft
	}
	return t.TimesheetState
}
