package availability

import (
	"context"
	"errors"
	"time"

	"fitclub/internal/interval"
)

var ErrSlotOverlap = errors.New("availability slot overlaps with existing schedule")

type Service interface {
	AddSlot(ctx context.Context, trainerID int, req AddSlotRequest) (*Slot, error)
	ListSlots(ctx context.Context, trainerID int) ([]Slot, error)
	DeleteSlot(ctx context.Context, slotID, trainerID int) error
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

func (s *service) AddSlot(ctx context.Context, trainerID int, req AddSlotRequest) (*Slot, error) {
	day, err := interval.ParseDayOfWeek(req.DayOfWeek)
	if err != nil {
		return nil, err
	}

	iv, err := interval.Parse(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	recurring := true
	if req.IsRecurring != nil {
		recurring = *req.IsRecurring
	}

	effective := interval.DateOf(s.now())
	if req.EffectiveDate != "" {
		effective, err = interval.ParseDate(req.EffectiveDate)
		if err != nil {
			return nil, err
		}
	}

	var endDate *interval.Date
	if req.EndDate != "" {
		parsed, err := interval.ParseDate(req.EndDate)
		if err != nil {
			return nil, err
		}
		endDate = &parsed
	}

	existing, err := s.repo.ListSlotsInWindow(ctx, trainerID, day, recurring, effective, endDate)
	if err != nil {
		return nil, err
	}

	for _, slot := range existing {
		// An identical slot counts as an overlap too: resubmitting the same
		// window is rejected rather than silently accepted as a duplicate.
		if iv.Overlaps(slot.Interval()) || (iv.Start == slot.StartTime && iv.End == slot.EndTime) {
			return nil, ErrSlotOverlap
		}
	}

	return s.repo.CreateSlot(ctx, Slot{
		TrainerID:     trainerID,
		DayOfWeek:     day,
		StartTime:     iv.Start,
		EndTime:       iv.End,
		IsRecurring:   recurring,
		EffectiveDate: effective,
		EndDate:       endDate,
	})
}

func (s *service) ListSlots(ctx context.Context, trainerID int) ([]Slot, error) {
	return s.repo.ListActiveSlots(ctx, trainerID, interval.DateOf(s.now()))
}

func (s *service) DeleteSlot(ctx context.Context, slotID, trainerID int) error {
	return s.repo.DeleteSlot(ctx, slotID, trainerID)
}
