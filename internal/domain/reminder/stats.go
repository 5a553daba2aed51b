package reminder

// SubmissionStats summarises shift submissions of active hourly staff for one target month.
type SubmissionStats struct {
	TotalCount       int      `json:"totalCount"`
	SubmittedCount   int      `json:"submittedCount"`
	UnsubmittedCount int      `json:"unsubmittedCount"`
	UnsubmittedNames []string `json:"unsubmittedNames,omitempty"`
}

// NewSubmissionStats derives the unsubmitted count. It never goes below zero, even if the
// submitted count races ahead of the roster count between the two queries.
func NewSubmissionStats(total, submitted int) SubmissionStats {
	unsubmitted := total - submitted
	if unsubmitted < 0 {
		unsubmitted = 0
	}
	return SubmissionStats{
		TotalCount:       total,
		SubmittedCount:   submitted,
		UnsubmittedCount: unsubmitted,
	}
}
