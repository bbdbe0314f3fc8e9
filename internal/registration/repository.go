package registration

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"fitclub/internal/db"
	"fitclub/internal/interval"

	"github.com/jmoiron/sqlx"
)

var (
	ErrScheduleNotFound     = errors.New("class schedule not found")
	ErrScheduleNotOpen      = errors.New("class is not open for registration")
	ErrAlreadyRegistered    = errors.New("member is already registered for this class")
	ErrRegistrationNotFound = errors.New("registration not found")
)

const registrationColumns = `id, member_id, schedule_id, waitlist_position, registered_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(database *sqlx.DB) Repository {
	return &repository{db: database}
}

// Register takes a confirmed spot while capacity remains, otherwise appends
// the member to the waitlist. The schedule row is locked for the duration of
// the transaction so concurrent registrations see a consistent capacity.
func (r *repository) Register(ctx context.Context, memberID, scheduleID int) (*Registration, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin registration transaction: %w", err)
	}
	defer tx.Rollback()

	var schedule struct {
		Status          string `db:"status"`
		CurrentCapacity int    `db:"current_capacity"`
		MaxCapacity     int    `db:"max_capacity"`
	}
	lockQuery := `
		SELECT cs.status, cs.current_capacity, gc.max_capacity
		FROM class_schedules cs
		JOIN group_classes gc ON cs.class_id = gc.id
		WHERE cs.id = $1
		FOR UPDATE OF cs
	`
	if err := tx.GetContext(ctx, &schedule, lockQuery, scheduleID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrScheduleNotFound
		}
		return nil, err
	}
	// Duplicate registration wins over schedule state: a member who is
	// already on a since-cancelled schedule is told so, not "not open".
	var registered bool
	existsQuery := `SELECT EXISTS(SELECT 1 FROM class_registrations WHERE member_id = $1 AND schedule_id = $2)`
	if err := tx.GetContext(ctx, &registered, existsQuery, memberID, scheduleID); err != nil {
		return nil, err
	}
	if registered {
		return nil, ErrAlreadyRegistered
	}

	if schedule.Status != "scheduled" {
		return nil, ErrScheduleNotOpen
	}

	var registration Registration
	if schedule.CurrentCapacity < schedule.MaxCapacity {
		insertQuery := `
			INSERT INTO class_registrations (member_id, schedule_id)
			VALUES ($1, $2)
			RETURNING ` + registrationColumns
		if err := tx.GetContext(ctx, &registration, insertQuery, memberID, scheduleID); err != nil {
			if db.IsUniqueViolation(err) {
				return nil, ErrAlreadyRegistered
			}
			return nil, err
		}

		capacityQuery := `UPDATE class_schedules SET current_capacity = current_capacity + 1 WHERE id = $1`
		if _, err := tx.ExecContext(ctx, capacityQuery, scheduleID); err != nil {
			return nil, err
		}
	} else {
		var position int
		positionQuery := `SELECT COUNT(*) + 1 FROM class_registrations WHERE schedule_id = $1 AND waitlist_position IS NOT NULL`
		if err := tx.GetContext(ctx, &position, positionQuery, scheduleID); err != nil {
			return nil, err
		}

		insertQuery := `
			INSERT INTO class_registrations (member_id, schedule_id, waitlist_position)
			VALUES ($1, $2, $3)
			RETURNING ` + registrationColumns
		if err := tx.GetContext(ctx, &registration, insertQuery, memberID, scheduleID, position); err != nil {
			if db.IsUniqueViolation(err) {
				return nil, ErrAlreadyRegistered
			}
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &registration, nil
}

func (r *repository) GetRegistration(ctx context.Context, id int) (*Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM class_registrations WHERE id = $1`

	var registration Registration
	if err := r.db.GetContext(ctx, &registration, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRegistrationNotFound
		}
		return nil, err
	}

	return &registration, nil
}

// CancelRegistration removes the registration and rebalances the schedule.
// Dropping a confirmed spot promotes the head of the waitlist when one
// exists, so the confirmed headcount only shrinks when the waitlist is empty.
// Positions behind any removed or promoted entry shift down by one.
func (r *repository) CancelRegistration(ctx context.Context, id int) (*Promotion, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin cancellation transaction: %w", err)
	}
	defer tx.Rollback()

	var registration Registration
	getQuery := `SELECT ` + registrationColumns + ` FROM class_registrations WHERE id = $1`
	if err := tx.GetContext(ctx, &registration, getQuery, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRegistrationNotFound
		}
		return nil, err
	}

	var scheduleID int
	lockQuery := `SELECT id FROM class_schedules WHERE id = $1 FOR UPDATE`
	if err := tx.GetContext(ctx, &scheduleID, lockQuery, registration.ScheduleID); err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM class_registrations WHERE id = $1`, id); err != nil {
		return nil, err
	}

	var promotion *Promotion
	if registration.WaitlistPosition != nil {
		resequenceQuery := `
			UPDATE class_registrations
			SET waitlist_position = waitlist_position - 1
			WHERE schedule_id = $1 AND waitlist_position > $2
		`
		if _, err := tx.ExecContext(ctx, resequenceQuery, scheduleID, *registration.WaitlistPosition); err != nil {
			return nil, err
		}
	} else {
		var head struct {
			ID        int            `db:"id"`
			MemberID  int            `db:"member_id"`
			Position  int            `db:"waitlist_position"`
			ClassName string         `db:"class_name"`
			Date      interval.Date  `db:"scheduled_date"`
			Start     interval.Clock `db:"start_minute"`
			End       interval.Clock `db:"end_minute"`
		}
		headQuery := `
			SELECT cr.id, cr.member_id, cr.waitlist_position,
			       gc.class_name, cs.scheduled_date, cs.start_minute, cs.end_minute
			FROM class_registrations cr
			JOIN class_schedules cs ON cr.schedule_id = cs.id
			JOIN group_classes gc ON cs.class_id = gc.id
			WHERE cr.schedule_id = $1 AND cr.waitlist_position IS NOT NULL
			ORDER BY cr.waitlist_position
			LIMIT 1
			FOR UPDATE OF cr
		`
		err := tx.GetContext(ctx, &head, headQuery, scheduleID)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			// No one to promote; the confirmed headcount shrinks.
			capacityQuery := `UPDATE class_schedules SET current_capacity = current_capacity - 1 WHERE id = $1`
			if _, err := tx.ExecContext(ctx, capacityQuery, scheduleID); err != nil {
				return nil, err
			}
		case err != nil:
			return nil, err
		default:
			promoteQuery := `UPDATE class_registrations SET waitlist_position = NULL WHERE id = $1`
			if _, err := tx.ExecContext(ctx, promoteQuery, head.ID); err != nil {
				return nil, err
			}

			resequenceQuery := `
				UPDATE class_registrations
				SET waitlist_position = waitlist_position - 1
				WHERE schedule_id = $1 AND waitlist_position > $2
			`
			if _, err := tx.ExecContext(ctx, resequenceQuery, scheduleID, head.Position); err != nil {
				return nil, err
			}

			promotion = &Promotion{
				MemberID:  head.MemberID,
				ClassName: head.ClassName,
				Date:      head.Date,
				Start:     head.Start,
				End:       head.End,
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return promotion, nil
}

func (r *repository) ListMine(ctx context.Context, memberID int, today interval.Date) ([]RegistrationWithDetails, error) {
	query := `
		SELECT cr.id, cr.member_id, cr.schedule_id, cr.waitlist_position, cr.registered_at,
		       gc.class_name, gc.class_type,
		       cs.scheduled_date, cs.start_minute, cs.end_minute, cs.status
		FROM class_registrations cr
		JOIN class_schedules cs ON cr.schedule_id = cs.id
		JOIN group_classes gc ON cs.class_id = gc.id
		WHERE cr.member_id = $1 AND cs.scheduled_date >= $2
		ORDER BY cs.scheduled_date, cs.start_minute
	`

	var registrations []RegistrationWithDetails
	if err := r.db.SelectContext(ctx, &registrations, query, memberID, today); err != nil {
		return nil, err
	}

	return registrations, nil
}
