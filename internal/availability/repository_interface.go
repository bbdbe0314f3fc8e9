package availability

import (
	"context"

	"fitclub/internal/interval"
)

type Repository interface {
	CreateSlot(ctx context.Context, slot Slot) (*Slot, error)
	ListActiveSlots(ctx context.Context, trainerID int, today interval.Date) ([]Slot, error)
	ListSlotsInWindow(ctx context.Context, trainerID int, day interval.DayOfWeek, recurring bool, from interval.Date, until *interval.Date) ([]Slot, error)
	DeleteSlot(ctx context.Context, id, trainerID int) error
}
