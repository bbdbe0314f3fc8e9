package registration

import (
	"context"

	"fitclub/internal/interval"
)

type Repository interface {
	Register(ctx context.Context, memberID, scheduleID int) (*Registration, error)
	GetRegistration(ctx context.Context, id int) (*Registration, error)
	CancelRegistration(ctx context.Context, id int) (*Promotion, error)
	ListMine(ctx context.Context, memberID int, today interval.Date) ([]RegistrationWithDetails, error)
}
