package leave

const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)

const (
	TypeSick      = "Sick"
	TypeCasual    = "Casual"
	TypeMaternity = "Maternity"
	TypePaternity = "Paternity"
	TypeAnnual    = "Annual"
)

// transitions lists every permitted status change. Approved and Rejected are
// terminal; there are no self-transitions.
var transitions = map[string]map[string]bool{
	StatusPending: {
		StatusApproved: true,
		StatusRejected: true,
	},
}

func CanTransition(from, to string) bool {
	return transitions[from][to]
}

func IsValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

func IsValidType(leaveType string) bool {
	switch leaveType {
	case TypeSick, TypeCasual, TypeMaternity, TypePaternity, TypeAnnual:
		return true
	}
	return false
}
