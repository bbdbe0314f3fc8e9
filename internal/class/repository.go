package class

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"fitclub/internal/conflict"
	"fitclub/internal/db"
	"fitclub/internal/interval"

	"github.com/jmoiron/sqlx"
)

var (
	ErrClassNotFound    = errors.New("class not found")
	ErrScheduleNotFound = errors.New("class schedule not found")
	ErrRoomUnavailable  = errors.New("room is already booked for this time slot")
	ErrHasRegistrations = errors.New("schedule has registrations and cannot be deleted")
	ErrNotCancellable   = errors.New("only scheduled classes can be cancelled")
)

const classColumns = `id, class_name, class_type, description, duration_minutes, max_capacity, is_active, created_at`

const scheduleColumns = `id, class_id, trainer_id, room_id, scheduled_date, start_minute, end_minute, current_capacity, status, notes, cancellation_reason, created_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(database *sqlx.DB) Repository {
	return &repository{db: database}
}

func (r *repository) CreateClass(ctx context.Context, req CreateClassRequest) (*GroupClass, error) {
	query := `
		INSERT INTO group_classes (class_name, class_type, description, duration_minutes, max_capacity)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5)
		RETURNING ` + classColumns

	var class GroupClass
	err := r.db.GetContext(ctx, &class, query,
		req.ClassName, req.ClassType, req.Description, req.DurationMinutes, req.MaxCapacity)
	if err != nil {
		return nil, err
	}

	return &class, nil
}

func (r *repository) GetClass(ctx context.Context, id int) (*GroupClass, error) {
	query := `SELECT ` + classColumns + ` FROM group_classes WHERE id = $1`

	var class GroupClass
	if err := r.db.GetContext(ctx, &class, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrClassNotFound
		}
		return nil, err
	}

	return &class, nil
}

func (r *repository) ListClasses(ctx context.Context) ([]GroupClass, error) {
	query := `SELECT ` + classColumns + ` FROM group_classes ORDER BY class_name`

	var classes []GroupClass
	if err := r.db.SelectContext(ctx, &classes, query); err != nil {
		return nil, err
	}

	return classes, nil
}

func (r *repository) UpdateClass(ctx context.Context, id int, req UpdateClassRequest) (*GroupClass, error) {
	query := `
		UPDATE group_classes
		SET class_name = COALESCE($2, class_name),
		    class_type = COALESCE($3, class_type),
		    description = COALESCE($4, description),
		    duration_minutes = COALESCE($5, duration_minutes),
		    max_capacity = COALESCE($6, max_capacity),
		    is_active = COALESCE($7, is_active)
		WHERE id = $1
		RETURNING ` + classColumns

	var class GroupClass
	err := r.db.GetContext(ctx, &class, query, id,
		req.ClassName, req.ClassType, req.Description, req.DurationMinutes, req.MaxCapacity, req.IsActive)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrClassNotFound
		}
		return nil, err
	}

	return &class, nil
}

// CreateSchedule checks the room against both class schedules and PT sessions
// inside the same serializable transaction as the insert.
func (r *repository) CreateSchedule(ctx context.Context, p ScheduleParams) (*Schedule, error) {
	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return nil, fmt.Errorf("begin schedule transaction: %w", err)
	}
	defer tx.Rollback()

	busy, err := conflict.HasConflict(ctx, tx, conflict.KindRoom, p.RoomID, p.Date, p.Slot, conflict.Exclude{})
	if err != nil {
		return nil, err
	}
	if busy {
		return nil, ErrRoomUnavailable
	}

	query := `
		INSERT INTO class_schedules (class_id, trainer_id, room_id, scheduled_date, start_minute, end_minute, current_capacity, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, 0, 'scheduled', NULLIF($7, ''))
		RETURNING ` + scheduleColumns

	var schedule Schedule
	err = tx.GetContext(ctx, &schedule, query,
		p.ClassID, p.TrainerID, p.RoomID, p.Date, p.Slot.Start, p.Slot.End, p.Notes)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		if db.IsSerializationFailure(err) {
			return nil, ErrRoomUnavailable
		}
		return nil, err
	}

	return &schedule, nil
}

func (r *repository) GetSchedule(ctx context.Context, id int) (*Schedule, error) {
	query := `SELECT ` + scheduleColumns + ` FROM class_schedules WHERE id = $1`

	var schedule Schedule
	if err := r.db.GetContext(ctx, &schedule, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrScheduleNotFound
		}
		return nil, err
	}

	return &schedule, nil
}

func (r *repository) DeleteSchedule(ctx context.Context, id int) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete transaction: %w", err)
	}
	defer tx.Rollback()

	var registrations int
	countQuery := `SELECT COUNT(*) FROM class_registrations WHERE schedule_id = $1`
	if err := tx.GetContext(ctx, &registrations, countQuery, id); err != nil {
		return err
	}
	if registrations > 0 {
		return ErrHasRegistrations
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM class_schedules WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrScheduleNotFound
	}

	return tx.Commit()
}

func (r *repository) CancelSchedule(ctx context.Context, id int, reason string) (*Schedule, error) {
	query := `
		UPDATE class_schedules
		SET status = 'cancelled', cancellation_reason = $2
		WHERE id = $1 AND status = 'scheduled'
		RETURNING ` + scheduleColumns

	var schedule Schedule
	if err := r.db.GetContext(ctx, &schedule, query, id, reason); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotCancellable
		}
		return nil, err
	}

	return &schedule, nil
}

// ListRegistrants returns contact details for everyone on a schedule,
// waitlisted members included.
func (r *repository) ListRegistrants(ctx context.Context, scheduleID int) ([]Registrant, error) {
	query := `
		SELECT u.email, u.name
		FROM class_registrations cr
		JOIN users u ON cr.member_id = u.id
		WHERE cr.schedule_id = $1
		ORDER BY cr.registered_at
	`

	var registrants []Registrant
	if err := r.db.SelectContext(ctx, &registrants, query, scheduleID); err != nil {
		return nil, err
	}

	return registrants, nil
}

func (r *repository) ListUpcomingForMember(ctx context.Context, memberID int, today interval.Date) ([]UpcomingSchedule, error) {
	query := `
		SELECT
			cs.id, cs.class_id, cs.trainer_id, cs.room_id, cs.scheduled_date,
			cs.start_minute, cs.end_minute, cs.current_capacity, cs.status,
			cs.notes, cs.cancellation_reason, cs.created_at,
			gc.class_name, gc.class_type, gc.max_capacity,
			gc.max_capacity - cs.current_capacity AS available_spots,
			EXISTS(
				SELECT 1 FROM class_registrations cr
				WHERE cr.schedule_id = cs.id AND cr.member_id = $1
			) AS is_registered
		FROM class_schedules cs
		JOIN group_classes gc ON cs.class_id = gc.id
		WHERE cs.status = 'scheduled'
		  AND gc.is_active
		  AND cs.scheduled_date >= $2
		ORDER BY cs.scheduled_date, cs.start_minute
	`

	var schedules []UpcomingSchedule
	if err := r.db.SelectContext(ctx, &schedules, query, memberID, today); err != nil {
		return nil, err
	}

	return schedules, nil
}

func (r *repository) ListForTrainer(ctx context.Context, trainerID int, from, until interval.Date) ([]Schedule, error) {
	query := `
		SELECT ` + scheduleColumns + `
		FROM class_schedules
		WHERE trainer_id = $1
		  AND status = 'scheduled'
		  AND scheduled_date BETWEEN $2 AND $3
		ORDER BY scheduled_date, start_minute
	`

	var schedules []Schedule
	if err := r.db.SelectContext(ctx, &schedules, query, trainerID, from, until); err != nil {
		return nil, err
	}

	return schedules, nil
}
