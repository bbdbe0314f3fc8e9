package conflict

import (
	"context"
	"fmt"

	"fitclub/internal/interval"

	"github.com/jmoiron/sqlx"
)

// ResourceKind identifies one of the three contended booking resources.
type ResourceKind string

const (
	KindMember  ResourceKind = "member"
	KindTrainer ResourceKind = "trainer"
	KindRoom    ResourceKind = "room"
)

// Exclude names a booking row to skip during the scan, so a booking being
// rescheduled does not conflict with itself. Zero values exclude nothing.
type Exclude struct {
	SessionID  int
	ScheduleID int
}

var sessionColumns = map[ResourceKind]string{
	KindMember:  "member_id",
	KindTrainer: "trainer_id",
	KindRoom:    "room_id",
}

var scheduleColumns = map[ResourceKind]string{
	KindTrainer: "trainer_id",
	KindRoom:    "room_id",
}

// The SQL predicate mirrors interval.Overlaps: half-open windows overlap
// iff start < other.end AND end > other.start.
const sessionConflictQuery = `
	SELECT EXISTS(
		SELECT 1 FROM pt_sessions
		WHERE %s = $1
		  AND scheduled_date = $2
		  AND status = 'scheduled'
		  AND start_minute < $3
		  AND end_minute > $4
		  AND ($5 = 0 OR id <> $5)
	)
`

const scheduleConflictQuery = `
	SELECT EXISTS(
		SELECT 1 FROM class_schedules
		WHERE %s = $1
		  AND scheduled_date = $2
		  AND status = 'scheduled'
		  AND start_minute < $3
		  AND end_minute > $4
		  AND ($5 = 0 OR id <> $5)
	)
`

// HasConflict reports whether any active booking of the given resource
// overlaps the candidate interval on the given date. Trainer and room
// resources contend across both PT sessions and class schedules; a member
// only ever appears on PT sessions.
//
// The queryer may be a *sqlx.DB or an open *sqlx.Tx, so callers can run the
// scan inside the same transaction as the write it guards.
func HasConflict(ctx context.Context, q sqlx.QueryerContext, kind ResourceKind, resourceID int, date interval.Date, iv interval.Interval, excl Exclude) (bool, error) {
	col, ok := sessionColumns[kind]
	if !ok {
		return false, fmt.Errorf("unknown resource kind %q", kind)
	}

	var busy bool
	query := fmt.Sprintf(sessionConflictQuery, col)
	if err := sqlx.GetContext(ctx, q, &busy, query, resourceID, date, iv.End, iv.Start, excl.SessionID); err != nil {
		return false, fmt.Errorf("session conflict scan: %w", err)
	}
	if busy {
		return true, nil
	}

	col, ok = scheduleColumns[kind]
	if !ok {
		return false, nil
	}

	query = fmt.Sprintf(scheduleConflictQuery, col)
	if err := sqlx.GetContext(ctx, q, &busy, query, resourceID, date, iv.End, iv.Start, excl.ScheduleID); err != nil {
		return false, fmt.Errorf("schedule conflict scan: %w", err)
	}

	return busy, nil
}

// Detector is the database-bound form of HasConflict for callers that do not
// manage their own transaction.
type Detector struct {
	db *sqlx.DB
}

func NewDetector(db *sqlx.DB) *Detector {
	return &Detector{db: db}
}

func (d *Detector) HasConflict(ctx context.Context, kind ResourceKind, resourceID int, date interval.Date, iv interval.Interval, excl Exclude) (bool, error) {
	return HasConflict(ctx, d.db, kind, resourceID, date, iv, excl)
}
