package session

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
	ErrMemberDoubleBooked = errors.New("member already has a booking at this time")
	ErrTrainerUnavailable = errors.New("trainer is already booked at this time")
	ErrRoomUnavailable    = errors.New("room is already booked at this time")
	ErrSessionNotFound    = errors.New("session not found")
	ErrNotCancellable     = errors.New("only scheduled sessions can be cancelled")
)

const sessionColumns = `id, member_id, trainer_id, room_id, scheduled_date, start_minute, end_minute, status, cancelled_at, cancellation_reason, created_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(database *sqlx.DB) Repository {
	return &repository{db: database}
}

// BookSession runs the conflict scans and the insert as one serializable
// transaction, so two concurrent bookings for the same resource cannot both
// pass the read phase and commit.
func (r *repository) BookSession(ctx context.Context, p BookParams) (*Session, error) {
	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return nil, fmt.Errorf("begin booking transaction: %w", err)
	}
	defer tx.Rollback()

	busy, err := conflict.HasConflict(ctx, tx, conflict.KindMember, p.MemberID, p.Date, p.Slot, conflict.Exclude{})
	if err != nil {
		return nil, err
	}
	if busy {
		return nil, ErrMemberDoubleBooked
	}

	busy, err = conflict.HasConflict(ctx, tx, conflict.KindTrainer, p.TrainerID, p.Date, p.Slot, conflict.Exclude{})
	if err != nil {
		return nil, err
	}
	if busy {
		return nil, ErrTrainerUnavailable
	}

	if p.RoomID != nil {
		busy, err = conflict.HasConflict(ctx, tx, conflict.KindRoom, *p.RoomID, p.Date, p.Slot, conflict.Exclude{})
		if err != nil {
			return nil, err
		}
		if busy {
			return nil, ErrRoomUnavailable
		}
	}

	query := `
		INSERT INTO pt_sessions (member_id, trainer_id, room_id, scheduled_date, start_minute, end_minute, status)
		VALUES ($1, $2, $3, $4, $5, $6, 'scheduled')
		RETURNING ` + sessionColumns

	var roomID interface{}
	if p.RoomID != nil {
		roomID = *p.RoomID
	}

	var session Session
	if err := tx.GetContext(ctx, &session, query, p.MemberID, p.TrainerID, roomID, p.Date, p.Slot.Start, p.Slot.End); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		// A concurrent booking that won the race surfaces here as a
		// serialization failure; report it like any other conflict.
		if db.IsSerializationFailure(err) {
			return nil, ErrTrainerUnavailable
		}
		return nil, err
	}

	return &session, nil
}

func (r *repository) GetSession(ctx context.Context, id int) (*Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM pt_sessions WHERE id = $1`

	var session Session
	if err := r.db.GetContext(ctx, &session, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	return &session, nil
}

func (r *repository) CancelSession(ctx context.Context, id int, reason string) (*Session, error) {
	query := `
		UPDATE pt_sessions
		SET status = 'cancelled', cancelled_at = NOW(), cancellation_reason = $2
		WHERE id = $1 AND status = 'scheduled'
		RETURNING ` + sessionColumns

	var session Session
	if err := r.db.GetContext(ctx, &session, query, id, reason); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotCancellable
		}
		return nil, err
	}

	return &session, nil
}

func (r *repository) ListUpcoming(ctx context.Context, memberID int, today interval.Date, now interval.Clock) ([]Session, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM pt_sessions
		WHERE member_id = $1
		  AND status = 'scheduled'
		  AND (scheduled_date > $2 OR (scheduled_date = $2 AND start_minute > $3))
		ORDER BY scheduled_date, start_minute
	`

	var sessions []Session
	if err := r.db.SelectContext(ctx, &sessions, query, memberID, today, now); err != nil {
		return nil, err
	}

	return sessions, nil
}

func (r *repository) ListForTrainer(ctx context.Context, trainerID int, from, until interval.Date) ([]Session, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM pt_sessions
		WHERE trainer_id = $1
		  AND status = 'scheduled'
		  AND scheduled_date BETWEEN $2 AND $3
		ORDER BY scheduled_date, start_minute
	`

	var sessions []Session
	if err := r.db.SelectContext(ctx, &sessions, query, trainerID, from, until); err != nil {
		return nil, err
	}

	return sessions, nil
}
