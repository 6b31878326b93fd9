package model

// Urgency classifies how soon an unpaid bill is due, or marks it paid.
type Urgency int

const (
	UrgencyNormal Urgency = iota
	UrgencySoon
	UrgencyUrgent
	UrgencyCritical
	UrgencyOverdue
	UrgencyPaid
)

func (u Urgency) String() string {
	switch u {
	case UrgencySoon:
		return "soon"
	case UrgencyUrgent:
		return "urgent"
	case UrgencyCritical:
		return "critical"
	case UrgencyOverdue:
		return "overdue"
	case UrgencyPaid:
		return "paid"
	default:
		return "normal"
	}
}

// Color returns the display tag for u.
func (u Urgency) Color() string {
	switch u {
	case UrgencySoon:
		return "yellow"
	case UrgencyUrgent:
		return "orange"
	case UrgencyCritical:
		return "red"
	case UrgencyOverdue:
		return "black"
	case UrgencyPaid:
		return "green"
	default:
		return "gray"
	}
}
