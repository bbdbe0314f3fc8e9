package class

import (
	"context"

	"fitclub/internal/interval"
)

type Repository interface {
	CreateClass(ctx context.Context, req CreateClassRequest) (*GroupClass, error)
	GetClass(ctx context.Context, id int) (*GroupClass, error)
	ListClasses(ctx context.Context) ([]GroupClass, error)
	UpdateClass(ctx context.Context, id int, req UpdateClassRequest) (*GroupClass, error)

	CreateSchedule(ctx context.Context, p ScheduleParams) (*Schedule, error)
	GetSchedule(ctx context.Context, id int) (*Schedule, error)
	DeleteSchedule(ctx context.Context, id int) error
	CancelSchedule(ctx context.Context, id int, reason string) (*Schedule, error)
	ListRegistrants(ctx context.Context, scheduleID int) ([]Registrant, error)
	ListUpcomingForMember(ctx context.Context, memberID int, today interval.Date) ([]UpcomingSchedule, error)
	ListForTrainer(ctx context.Context, trainerID int, from, until interval.Date) ([]Schedule, error)
}
