package class

import (
	"time"

	"fitclub/internal/interval"
)

const (
	ScheduleStatusScheduled  = "scheduled"
	ScheduleStatusInProgress = "in_progress"
	ScheduleStatusCompleted  = "completed"
	ScheduleStatusCancelled  = "cancelled"
)

// GroupClass is the reusable class template; Schedule is one dated occurrence
// of it in a room with a trainer.
type GroupClass struct {
	ID              int       `db:"id" json:"id"`
	ClassName       string    `db:"class_name" json:"class_name"`
	ClassType       string    `db:"class_type" json:"class_type"`
	Description     *string   `db:"description" json:"description,omitempty"`
	DurationMinutes int       `db:"duration_minutes" json:"duration_minutes"`
	MaxCapacity     int       `db:"max_capacity" json:"max_capacity"`
	IsActive        bool      `db:"is_active" json:"is_active"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}

type Schedule struct {
	ID                 int            `db:"id" json:"id"`
	ClassID            int            `db:"class_id" json:"class_id"`
	TrainerID          int            `db:"trainer_id" json:"trainer_id"`
	RoomID             int            `db:"room_id" json:"room_id"`
	ScheduledDate      interval.Date  `db:"scheduled_date" json:"scheduled_date"`
	StartTime          interval.Clock `db:"start_minute" json:"start_time"`
	EndTime            interval.Clock `db:"end_minute" json:"end_time"`
	CurrentCapacity    int            `db:"current_capacity" json:"current_capacity"`
	Status             string         `db:"status" json:"status"`
	Notes              *string        `db:"notes" json:"notes,omitempty"`
	CancellationReason *string        `db:"cancellation_reason" json:"cancellation_reason,omitempty"`
	CreatedAt          time.Time      `db:"created_at" json:"created_at"`
}

// UpcomingSchedule is the member-facing view of a schedule with its class
// details and remaining spots.
type UpcomingSchedule struct {
	Schedule
	ClassName      string `db:"class_name" json:"class_name"`
	ClassType      string `db:"class_type" json:"class_type"`
	MaxCapacity    int    `db:"max_capacity" json:"max_capacity"`
	AvailableSpots int    `db:"available_spots" json:"available_spots"`
	IsRegistered   bool   `db:"is_registered" json:"is_registered"`
}

// Registrant is a registered member's contact details, used for
// cancellation notices.
type Registrant struct {
	Email string `db:"email" json:"email"`
	Name  string `db:"name" json:"name"`
}

type CreateClassRequest struct {
	ClassName       string `json:"class_name" binding:"required"`
	ClassType       string `json:"class_type" binding:"required"`
	Description     string `json:"description"`
	DurationMinutes int    `json:"duration_minutes" binding:"required,min=1"`
	MaxCapacity     int    `json:"max_capacity" binding:"required,min=1"`
}

type UpdateClassRequest struct {
	ClassName       *string `json:"class_name"`
	ClassType       *string `json:"class_type"`
	Description     *string `json:"description"`
	DurationMinutes *int    `json:"duration_minutes"`
	MaxCapacity     *int    `json:"max_capacity"`
	IsActive        *bool   `json:"is_active"`
}

type CreateScheduleRequest struct {
	ClassID   int    `json:"class_id" binding:"required"`
	TrainerID int    `json:"trainer_id" binding:"required"`
	RoomID    int    `json:"room_id" binding:"required"`
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
	Notes     string `json:"notes"`
}

type CancelScheduleRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// ScheduleParams is the validated form handed to the repository.
type ScheduleParams struct {
	ClassID   int
	TrainerID int
	RoomID    int
	Date      interval.Date
	Slot      interval.Interval
	Notes     string
}
