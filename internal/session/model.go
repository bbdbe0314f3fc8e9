package session

import (
	"time"

	"fitclub/internal/interval"
)

const (
	StatusScheduled = "scheduled"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Session is a personal training booking tying a member, a trainer and
// optionally a room to one dated time window.
type Session struct {
	ID                 int            `db:"id" json:"id"`
	MemberID           int            `db:"member_id" json:"member_id"`
	TrainerID          int            `db:"trainer_id" json:"trainer_id"`
	RoomID             *int           `db:"room_id" json:"room_id,omitempty"`
	ScheduledDate      interval.Date  `db:"scheduled_date" json:"scheduled_date"`
	StartTime          interval.Clock `db:"start_minute" json:"start_time"`
	EndTime            interval.Clock `db:"end_minute" json:"end_time"`
	Status             string         `db:"status" json:"status"`
	CancelledAt        *time.Time     `db:"cancelled_at" json:"cancelled_at,omitempty"`
	CancellationReason *string        `db:"cancellation_reason" json:"cancellation_reason,omitempty"`
	CreatedAt          time.Time      `db:"created_at" json:"created_at"`
}

type BookRequest struct {
	TrainerID int    `json:"trainer_id" binding:"required"`
	RoomID    *int   `json:"room_id"`
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

type CancelRequest struct {
	Reason string `json:"reason"`
}

// BookParams is the validated form of a booking request handed to the
// repository, which performs the conflict checks and insert atomically.
type BookParams struct {
	MemberID  int
	TrainerID int
	RoomID    *int
	Date      interval.Date
	Slot      interval.Interval
}
