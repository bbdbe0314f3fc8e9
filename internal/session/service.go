package session

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

var (
	ErrTrainerNotFound = errors.New("trainer not found")
	ErrNotSessionOwner = errors.New("members can only cancel their own sessions")
)

const defaultCancelReason = "Cancelled by member"

type Service interface {
	BookSession(ctx context.Context, memberID int, req BookRequest) (*Session, error)
	CancelSession(ctx context.Context, sessionID, memberID int, reason string) (*Session, error)
	ListUpcoming(ctx context.Context, memberID int) ([]Session, error)
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

func (s *service) BookSession(ctx context.Context, memberID int, req BookRequest) (*Session, error) {
	date, err := interval.ParseDate(req.Date)
	if err != nil {
		return nil, err
	}

	slot, err := interval.Parse(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	trainer, err := s.userRepo.FindByID(ctx, req.TrainerID)
	if err != nil || trainer.Role != user.RoleTrainer {
		return nil, ErrTrainerNotFound
	}

	session, err := s.repo.BookSession(ctx, BookParams{
		MemberID:  memberID,
		TrainerID: req.TrainerID,
		RoomID:    req.RoomID,
		Date:      date,
		Slot:      slot,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrMemberDoubleBooked):
			metrics.RecordBookingConflict("member")
		case errors.Is(err, ErrTrainerUnavailable):
			metrics.RecordBookingConflict("trainer")
		case errors.Is(err, ErrRoomUnavailable):
			metrics.RecordBookingConflict("room")
		}
		return nil, err
	}

	metrics.RecordSessionBooked()

	member, _ := s.userRepo.FindByID(ctx, memberID)
	if member != nil {
		window := fmt.Sprintf("%s %s-%s with %s", date, slot.Start, slot.End, trainer.Name)
		s.emailService.SendSessionConfirmation(ctx, member.Email, member.Name, window)
	}

	return session, nil
}

func (s *service) CancelSession(ctx context.Context, sessionID, memberID int, reason string) (*Session, error) {
	session, err := s.repo.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if session.MemberID != memberID {
		return nil, ErrNotSessionOwner
	}

	if session.Status != StatusScheduled {
		return nil, ErrNotCancellable
	}

	if reason == "" {
		reason = defaultCancelReason
	}

	cancelled, err := s.repo.CancelSession(ctx, sessionID, reason)
	if err != nil {
		return nil, err
	}

	metrics.RecordSessionCancelled()
	return cancelled, nil
}

func (s *service) ListUpcoming(ctx context.Context, memberID int) ([]Session, error) {
	now := s.now()
	return s.repo.ListUpcoming(ctx, memberID, interval.DateOf(now), interval.ClockOf(now))
}
