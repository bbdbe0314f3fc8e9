package availability

import (
	"context"
	"errors"

	"fitclub/internal/interval"

	"github.com/jmoiron/sqlx"
)

var ErrSlotNotFound = errors.New("availability slot not found")

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateSlot(ctx context.Context, slot Slot) (*Slot, error) {
	query := `
		INSERT INTO trainer_availability (trainer_id, day_of_week, start_minute, end_minute, is_recurring, effective_date, end_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, trainer_id, day_of_week, start_minute, end_minute, is_recurring, effective_date, end_date, created_at
	`

	var endDate interface{}
	if slot.EndDate != nil {
		endDate = *slot.EndDate
	}

	var created Slot
	err := r.db.GetContext(ctx, &created, query,
		slot.TrainerID, slot.DayOfWeek, slot.StartTime, slot.EndTime,
		slot.IsRecurring, slot.EffectiveDate, endDate)
	if err != nil {
		return nil, err
	}

	return &created, nil
}

func (r *repository) ListActiveSlots(ctx context.Context, trainerID int, today interval.Date) ([]Slot, error) {
	query := `
		SELECT id, trainer_id, day_of_week, start_minute, end_minute, is_recurring, effective_date, end_date, created_at
		FROM trainer_availability
		WHERE trainer_id = $1
		  AND (end_date IS NULL OR end_date >= $2)
		ORDER BY day_of_week, start_minute
	`

	var slots []Slot
	err := r.db.SelectContext(ctx, &slots, query, trainerID, today)
	if err != nil {
		return nil, err
	}

	return slots, nil
}

func (r *repository) ListSlotsInWindow(ctx context.Context, trainerID int, day interval.DayOfWeek, recurring bool, from interval.Date, until *interval.Date) ([]Slot, error) {
	// A missing end date means the window runs forever, so it intersects
	// every candidate window that starts before the far future.
	query := `
		SELECT id, trainer_id, day_of_week, start_minute, end_minute, is_recurring, effective_date, end_date, created_at
		FROM trainer_availability
		WHERE trainer_id = $1
		  AND day_of_week = $2
		  AND is_recurring = $3
		  AND effective_date <= COALESCE($4, DATE '2099-12-31')
		  AND (end_date IS NULL OR end_date >= $5)
	`

	var untilArg interface{}
	if until != nil {
		untilArg = *until
	}

	var slots []Slot
	err := r.db.SelectContext(ctx, &slots, query, trainerID, day, recurring, untilArg, from)
	if err != nil {
		return nil, err
	}

	return slots, nil
}

func (r *repository) DeleteSlot(ctx context.Context, id, trainerID int) error {
	query := `DELETE FROM trainer_availability WHERE id = $1 AND trainer_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, trainerID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}
