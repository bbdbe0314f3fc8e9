package trainer

import (
	"context"
	"time"

	"fitclub/internal/class"
	"fitclub/internal/interval"
	"fitclub/internal/session"
)

// ScheduleView is everything a trainer is committed to in a date window,
// PT sessions and group classes side by side.
type ScheduleView struct {
	From       interval.Date    `json:"from"`
	Until      interval.Date    `json:"until"`
	PTSessions []session.Session `json:"pt_sessions"`
	Classes    []class.Schedule  `json:"classes"`
}

type Service interface {
	Schedule(ctx context.Context, trainerID int, fromRaw, untilRaw string) (*ScheduleView, error)
}

type service struct {
	sessionRepo session.Repository
	classRepo   class.Repository
	now         func() time.Time
}

func NewService(sessionRepo session.Repository, classRepo class.Repository) Service {
	return &service{
		sessionRepo: sessionRepo,
		classRepo:   classRepo,
		now:         time.Now,
	}
}

// Schedule defaults to the 30 days starting today when no window is given.
func (s *service) Schedule(ctx context.Context, trainerID int, fromRaw, untilRaw string) (*ScheduleView, error) {
	from := interval.DateOf(s.now())
	until := interval.DateOf(s.now().AddDate(0, 0, 30))

	if fromRaw != "" {
		parsed, err := interval.ParseDate(fromRaw)
		if err != nil {
			return nil, err
		}
		from = parsed
	}
	if untilRaw != "" {
		parsed, err := interval.ParseDate(untilRaw)
		if err != nil {
			return nil, err
		}
		until = parsed
	}
	if until.Before(from) {
		return nil, interval.ErrInvalidRange
	}

	sessions, err := s.sessionRepo.ListForTrainer(ctx, trainerID, from, until)
	if err != nil {
		return nil, err
	}

	classes, err := s.classRepo.ListForTrainer(ctx, trainerID, from, until)
	if err != nil {
		return nil, err
	}

	return &ScheduleView{
		From:       from,
		Until:      until,
		PTSessions: sessions,
		Classes:    classes,
	}, nil
}
