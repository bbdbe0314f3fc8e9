package session

import (
	"context"
	"regexp"
	"testing"
	"time"

	"fitclub/internal/interval"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func setupMock(t *testing.T) (Repository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(sqlxDB)

	return repo, mock, func() { sqlxDB.Close() }
}

func sessionRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "member_id", "trainer_id", "room_id", "scheduled_date",
		"start_minute", "end_minute", "status", "cancelled_at", "cancellation_reason", "created_at",
	})
}

func noConflict() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"exists"}).AddRow(false)
}

func hasConflict() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"exists"}).AddRow(true)
}

func testDate(t *testing.T) interval.Date {
	t.Helper()
	d, err := interval.ParseDate("2025-06-15")
	require.NoError(t, err)
	return d
}

func TestBookSession_Success(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	date := testDate(t)
	roomID := 3
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FROM pt_sessions WHERE member_id = $1")).
		WithArgs(1, date.Time, int64(600), int64(540), int64(0)).
		WillReturnRows(noConflict())
	mock.ExpectQuery(regexp.QuoteMeta("FROM pt_sessions WHERE trainer_id = $1")).
		WithArgs(2, date.Time, int64(600), int64(540), int64(0)).
		WillReturnRows(noConflict())
	mock.ExpectQuery(regexp.QuoteMeta("FROM class_schedules WHERE trainer_id = $1")).
		WithArgs(2, date.Time, int64(600), int64(540), int64(0)).
		WillReturnRows(noConflict())
	mock.ExpectQuery(regexp.QuoteMeta("FROM pt_sessions WHERE room_id = $1")).
		WithArgs(3, date.Time, int64(600), int64(540), int64(0)).
		WillReturnRows(noConflict())
	mock.ExpectQuery(regexp.QuoteMeta("FROM class_schedules WHERE room_id = $1")).
		WithArgs(3, date.Time, int64(600), int64(540), int64(0)).
		WillReturnRows(noConflict())
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO pt_sessions")).
		WithArgs(1, 2, 3, date.Time, int64(540), int64(600)).
		WillReturnRows(sessionRows().AddRow(7, 1, 2, 3, date.Time, 540, 600, "scheduled", nil, nil, now))
	mock.ExpectCommit()

	session, err := repo.BookSession(context.Background(), BookParams{
		MemberID:  1,
		TrainerID: 2,
		RoomID:    &roomID,
		Date:      date,
		Slot:      interval.Interval{Start: 540, End: 600},
	})

	require.NoError(t, err)
	require.Equal(t, 7, session.ID)
	require.Equal(t, StatusScheduled, session.Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBookSession_MemberConflictRollsBack(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	date := testDate(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FROM pt_sessions WHERE member_id = $1")).
		WithArgs(1, date.Time, int64(600), int64(540), int64(0)).
		WillReturnRows(hasConflict())
	mock.ExpectRollback()

	_, err := repo.BookSession(context.Background(), BookParams{
		MemberID:  1,
		TrainerID: 2,
		Date:      date,
		Slot:      interval.Interval{Start: 540, End: 600},
	})

	require.ErrorIs(t, err, ErrMemberDoubleBooked)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBookSession_NoRoomSkipsRoomScan(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	date := testDate(t)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FROM pt_sessions WHERE member_id = $1")).
		WillReturnRows(noConflict())
	mock.ExpectQuery(regexp.QuoteMeta("FROM pt_sessions WHERE trainer_id = $1")).
		WillReturnRows(noConflict())
	mock.ExpectQuery(regexp.QuoteMeta("FROM class_schedules WHERE trainer_id = $1")).
		WillReturnRows(noConflict())
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO pt_sessions")).
		WithArgs(1, 2, nil, date.Time, int64(540), int64(600)).
		WillReturnRows(sessionRows().AddRow(8, 1, 2, nil, date.Time, 540, 600, "scheduled", nil, nil, now))
	mock.ExpectCommit()

	session, err := repo.BookSession(context.Background(), BookParams{
		MemberID:  1,
		TrainerID: 2,
		Date:      date,
		Slot:      interval.Interval{Start: 540, End: 600},
	})

	require.NoError(t, err)
	require.Nil(t, session.RoomID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelSession(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	date := testDate(t)
	now := time.Now()
	reason := "Cancelled by member"

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE pt_sessions SET status = 'cancelled'")).
		WithArgs(7, reason).
		WillReturnRows(sessionRows().AddRow(7, 1, 2, nil, date.Time, 540, 600, "cancelled", now, reason, now))

	session, err := repo.CancelSession(context.Background(), 7, reason)
	require.NoError(t, err)
	require.Equal(t, StatusCancelled, session.Status)
	require.NotNil(t, session.CancellationReason)

	// Already-cancelled session matches no row.
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE pt_sessions SET status = 'cancelled'")).
		WithArgs(7, reason).
		WillReturnRows(sessionRows())

	_, err = repo.CancelSession(context.Background(), 7, reason)
	require.ErrorIs(t, err, ErrNotCancellable)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListUpcoming(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	date := testDate(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("AND (scheduled_date > $2 OR (scheduled_date = $2 AND start_minute > $3)) ORDER BY scheduled_date, start_minute")).
		WithArgs(1, date.Time, int64(600)).
		WillReturnRows(sessionRows().
			AddRow(7, 1, 2, nil, date.Time, 840, 900, "scheduled", nil, nil, now).
			AddRow(8, 1, 2, nil, date.Time, 960, 1020, "scheduled", nil, nil, now))

	sessions, err := repo.ListUpcoming(context.Background(), 1, date, 600)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	require.Equal(t, "14:00", sessions[0].StartTime.String())
	require.NoError(t, mock.ExpectationsWereMet())
}
