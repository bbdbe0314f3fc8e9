package class

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fitclub/internal/email"
	"fitclub/internal/interval"
	"fitclub/internal/metrics"
	"fitclub/internal/user"
)

var ErrTrainerNotFound = errors.New("trainer not found")

type Service interface {
	CreateClass(ctx context.Context, req CreateClassRequest) (*GroupClass, error)
	GetClass(ctx context.Context, id int) (*GroupClass, error)
	ListClasses(ctx context.Context) ([]GroupClass, error)
	UpdateClass(ctx context.Context, id int, req UpdateClassRequest) (*GroupClass, error)

	CreateSchedule(ctx context.Context, req CreateScheduleRequest) (*Schedule, error)
	DeleteSchedule(ctx context.Context, id int) error
	CancelSchedule(ctx context.Context, id int, reason string) (*Schedule, error)
	ListUpcoming(ctx context.Context, memberID int) ([]UpcomingSchedule, error)
}

type service struct {
	repo         Repository
	userRepo     user.Repository
	emailService *email.Service
	now          func() time.Time
}

func NewService(repo Repository, userRepo user.Repository, emailService *email.Service) Service {
	return &service{
		repo:         repo,
		userRepo:     userRepo,
		emailService: emailService,
		now:          time.Now,
	}
}

func (s *service) CreateClass(ctx context.Context, req CreateClassRequest) (*GroupClass, error) {
	return s.repo.CreateClass(ctx, req)
}

func (s *service) GetClass(ctx context.Context, id int) (*GroupClass, error) {
	return s.repo.GetClass(ctx, id)
}

func (s *service) ListClasses(ctx context.Context) ([]GroupClass, error) {
	return s.repo.ListClasses(ctx)
}

func (s *service) UpdateClass(ctx context.Context, id int, req UpdateClassRequest) (*GroupClass, error) {
	return s.repo.UpdateClass(ctx, id, req)
}

func (s *service) CreateSchedule(ctx context.Context, req CreateScheduleRequest) (*Schedule, error) {
	date, err := interval.ParseDate(req.Date)
	if err != nil {
		return nil, err
	}

	slot, err := interval.Parse(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.GetClass(ctx, req.ClassID); err != nil {
		return nil, err
	}

	trainer, err := s.userRepo.FindByID(ctx, req.TrainerID)
	if err != nil || trainer.Role != user.RoleTrainer {
		return nil, ErrTrainerNotFound
	}

	schedule, err := s.repo.CreateSchedule(ctx, ScheduleParams{
		ClassID:   req.ClassID,
		TrainerID: req.TrainerID,
		RoomID:    req.RoomID,
		Date:      date,
		Slot:      slot,
		Notes:     req.Notes,
	})
	if err != nil {
		if errors.Is(err, ErrRoomUnavailable) {
			metrics.RecordBookingConflict("room")
		}
		return nil, err
	}

	return schedule, nil
}

func (s *service) DeleteSchedule(ctx context.Context, id int) error {
	return s.repo.DeleteSchedule(ctx, id)
}

func (s *service) CancelSchedule(ctx context.Context, id int, reason string) (*Schedule, error) {
	if _, err := s.repo.GetSchedule(ctx, id); err != nil {
		return nil, err
	}

	cancelled, err := s.repo.CancelSchedule(ctx, id, reason)
	if err != nil {
		return nil, err
	}

	registrants, err := s.repo.ListRegistrants(ctx, id)
	if err == nil && len(registrants) > 0 {
		className := ""
		if class, err := s.repo.GetClass(ctx, cancelled.ClassID); err == nil {
			className = class.ClassName
		}
		detail := fmt.Sprintf("%s on %s %s-%s", className, cancelled.ScheduledDate, cancelled.StartTime, cancelled.EndTime)
		for _, registrant := range registrants {
			s.emailService.SendScheduleCancellation(ctx, registrant.Email, registrant.Name, detail)
		}
	}

	return cancelled, nil
}

func (s *service) ListUpcoming(ctx context.Context, memberID int) ([]UpcomingSchedule, error) {
	return s.repo.ListUpcomingForMember(ctx, memberID, interval.DateOf(s.now()))
}
