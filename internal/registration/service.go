package registration

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

var ErrNotRegistrationOwner = errors.New("members can only cancel their own registrations")

type Service interface {
	Register(ctx context.Context, memberID, scheduleID int) (*Registration, error)
	Cancel(ctx context.Context, registrationID, memberID int) error
	ListMine(ctx context.Context, memberID int) ([]RegistrationWithDetails, error)
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

func (s *service) Register(ctx context.Context, memberID, scheduleID int) (*Registration, error) {
	registration, err := s.repo.Register(ctx, memberID, scheduleID)
	if err != nil {
		return nil, err
	}

	if registration.WaitlistPosition != nil {
		metrics.RecordRegistration("waitlisted")
	} else {
		metrics.RecordRegistration("confirmed")
	}

	return registration, nil
}

func (s *service) Cancel(ctx context.Context, registrationID, memberID int) error {
	registration, err := s.repo.GetRegistration(ctx, registrationID)
	if err != nil {
		return err
	}

	if registration.MemberID != memberID {
		return ErrNotRegistrationOwner
	}

	promotion, err := s.repo.CancelRegistration(ctx, registrationID)
	if err != nil {
		return err
	}

	if promotion != nil {
		metrics.RecordWaitlistPromotion()

		promoted, _ := s.userRepo.FindByID(ctx, promotion.MemberID)
		if promoted != nil {
			detail := fmt.Sprintf("%s on %s %s-%s", promotion.ClassName, promotion.Date, promotion.Start, promotion.End)
			s.emailService.SendWaitlistPromotion(ctx, promoted.Email, promoted.Name, detail)
		}
	}

	return nil
}

func (s *service) ListMine(ctx context.Context, memberID int) ([]RegistrationWithDetails, error) {
	return s.repo.ListMine(ctx, memberID, interval.DateOf(s.now()))
}
