package reminder

// Reasons reported when a run ends without a notification.
const (
	ReasonNoGroupConfigured = "no group configured"
	ReasonNoPhaseMatched    = "no phase matched"
	ReasonManualOnly        = "manual only"
	ReasonRemindersDisabled = "reminders disabled"
	ReasonDispatchFailed    = "dispatch failed"
)

// Result is the outcome of one reminder invocation. It is handed back to the caller and never stored.
type Result struct {
	Success           bool              `json:"success"`
	Notified          bool              `json:"notified"`
	Phase             *int              `json:"phase,omitempty"`
	Type              PhaseType         `json:"type,omitempty"`
	Stats             *SubmissionStats  `json:"stats,omitempty"`
	Reason            string            `json:"reason,omitempty"`
	SkippedPhase      *int              `json:"skippedPhase,omitempty"`
	DeadlineSettings  *DeadlineSettings `json:"deadlineSettings,omitempty"`
	DaysUntilDeadline *int              `json:"daysUntilDeadline,omitempty"`
	TargetYear        int               `json:"targetYear"`
	TargetMonth       int               `json:"targetMonth"`
}

// NotNotified builds a successful result that carries only a reason.
func NotNotified(year, month int, reason string) *Result {
	return &Result{
		Success:     true,
		Notified:    false,
		Reason:      reason,
		TargetYear:  year,
		TargetMonth: month,
	}
}

// Outcome is a short label of the result, used for logs and metrics.
func (r *Result) Outcome() string {
	switch {
	case r == nil:
		return "error"
	case r.Notified:
		return "notified"
	case r.Reason != "":
		return r.Reason
	default:
		return "not_notified"
	}
}
