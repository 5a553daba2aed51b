package line

// LIFF builds links into the shift submission LIFF app.
type LIFF struct {
	ID string
}

// SubmissionURL is the deep link staff open to submit their shifts.
func (l LIFF) SubmissionURL() string {
	return "https://liff.line.me/" + l.ID
}
