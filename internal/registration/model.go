package registration

import (
	"time"

	"fitclub/internal/interval"
)

// Registration is a member's spot in a class schedule. A nil WaitlistPosition
// means the spot is confirmed; otherwise the member is queued at that position.
type Registration struct {
	ID               int       `db:"id" json:"id"`
	MemberID         int       `db:"member_id" json:"member_id"`
	ScheduleID       int       `db:"schedule_id" json:"schedule_id"`
	WaitlistPosition *int      `db:"waitlist_position" json:"waitlist_position,omitempty"`
	RegisteredAt     time.Time `db:"registered_at" json:"registered_at"`
}

// RegistrationWithDetails is the member-facing list view with the class and
// schedule joined in.
type RegistrationWithDetails struct {
	Registration
	ClassName     string         `db:"class_name" json:"class_name"`
	ClassType     string         `db:"class_type" json:"class_type"`
	ScheduledDate interval.Date  `db:"scheduled_date" json:"scheduled_date"`
	StartTime     interval.Clock `db:"start_minute" json:"start_time"`
	EndTime       interval.Clock `db:"end_minute" json:"end_time"`
	Status        string         `db:"status" json:"status"`
}

// Promotion reports the waitlisted member who took over a freed confirmed
// spot, with enough schedule detail to notify them.
type Promotion struct {
	MemberID  int
	ClassName string
	Date      interval.Date
	Start     interval.Clock
	End       interval.Clock
}
