package availability

import (
	"time"

	"fitclub/internal/interval"
)

// Slot is one weekly availability window owned by a trainer. Slots are never
// mutated in place; changing one means deleting it and creating a replacement.
type Slot struct {
	ID            int                `db:"id" json:"id"`
	TrainerID     int                `db:"trainer_id" json:"trainer_id"`
	DayOfWeek     interval.DayOfWeek `db:"day_of_week" json:"day_of_week"`
	StartTime     interval.Clock     `db:"start_minute" json:"start_time"`
	EndTime       interval.Clock     `db:"end_minute" json:"end_time"`
	IsRecurring   bool               `db:"is_recurring" json:"is_recurring"`
	EffectiveDate interval.Date      `db:"effective_date" json:"effective_date"`
	EndDate       *interval.Date     `db:"end_date" json:"end_date,omitempty"`
	CreatedAt     time.Time          `db:"created_at" json:"created_at"`
}

func (s Slot) Interval() interval.Interval {
	return interval.Interval{Start: s.StartTime, End: s.EndTime}
}

type AddSlotRequest struct {
	DayOfWeek     string `json:"day_of_week" binding:"required"`
	StartTime     string `json:"start_time" binding:"required"`
	EndTime       string `json:"end_time" binding:"required"`
	IsRecurring   *bool  `json:"is_recurring"`
	EffectiveDate string `json:"effective_date"`
	EndDate       string `json:"end_date"`
}
