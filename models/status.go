package models

// UncheckedID is an identifier that points at a record owned by another
// service (undertrial prisoners, bail applications). It is stored and
// returned verbatim; nothing verifies the referenced record exists.
type UncheckedID string

// Status values for bail decisions and submitted applications
const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)

// Task statuses for the system admin service
const (
	TaskStatusPending    = "Pending"
	TaskStatusInProgress = "In Progress"
	TaskStatusCompleted  = "Completed"
)

// Task types for the system admin service
const (
	TaskTypeDatabase = "Database"
	TaskTypeSecurity = "Security"
	TaskTypeUIUX     = "UI/UX"
	TaskTypeSupport  = "Support"
)

// Resolution statuses for technical issues
const (
	IssueUnresolved = "Unresolved"
	IssueResolved   = "Resolved"
)

func oneOf(value string, allowed ...string) bool {
	for _, a := range allowed {
		if value == a {
			return true
		}
	}
	return false
}
