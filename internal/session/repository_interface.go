package session

import (
	"context"

	"fitclub/internal/interval"
)

type Repository interface {
	BookSession(ctx context.Context, p BookParams) (*Session, error)
	GetSession(ctx context.Context, id int) (*Session, error)
	CancelSession(ctx context.Context, id int, reason string) (*Session, error)
	ListUpcoming(ctx context.Context, memberID int, today interval.Date, now interval.Clock) ([]Session, error)
	ListForTrainer(ctx context.Context, trainerID int, from, until interval.Date) ([]Session, error)
}
