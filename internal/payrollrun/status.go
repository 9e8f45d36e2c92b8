package payrollrun

// Payroll run statuses. The source of truth for the cycle:
// Draft -> Final -> Approve, or Draft -> Failed.
const (
	StatusDraft   = "Draft"
	StatusFinal   = "Final"
	StatusApprove = "Approve"
	StatusFailed  = "Failed"
)

func ValidStatus(s string) bool {
	switch s {
	case StatusDraft, StatusFinal, StatusApprove, StatusFailed:
		return true
	default:
		return false
	}
}

// CanTransition reports whether a run may move from one status to another.
// Writing the same status back is a no-op and always allowed.
func CanTransition(from, to string) bool {
	if from == to {
		return true
	}
	switch from {
	case StatusDraft:
		return to == StatusFinal || to == StatusFailed
	case StatusFinal:
		return to == StatusApprove
	default:
		// Approve and Failed are terminal.
		return false
	}
}
