package domain

// State tags the wizard's current step.
type State int

const (
	StateTitle State = iota
	StateDate
	StateTime
	StateTarget
	StateConfirm
	StateDone
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateTitle:
		return "title"
	case StateDate:
		return "date"
	case StateTime:
		return "time"
	case StateTarget:
		return "target"
	case StateConfirm:
		return "confirm"
	case StateDone:
		return "done"
	case StateCancelled:
		return "cancelled"
	}
	return "unknown"
}

// Session holds the fields collected so far in one user's wizard dialogue.
// Sessions are transient: they live in memory only and are discarded on
// confirm or cancel. Date and Time stay as validated strings until confirm
// combines them into the event's scheduled instant.
type Session struct {
	UserID   int64
	State    State
	Title    string
	Date     string // normalized YYYY-MM-DD
	Time     string // normalized HH:MM, 24-hour
	Audience Audience
}
