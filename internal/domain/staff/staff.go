package staff

// Staff is an active hourly staff member linked to a chat account.
type Staff struct {
	StaffID        int64
	Name           string
	EmploymentType string
	StoreName      string
	LineUserID     string
}
