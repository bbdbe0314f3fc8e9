package registration

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

func registrationRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "member_id", "schedule_id", "waitlist_position", "registered_at"})
}

func scheduleLockRows(status string, current, max int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"status", "current_capacity", "max_capacity"}).
		AddRow(status, current, max)
}

func TestRegister_ConfirmedWhileCapacityRemains(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE OF cs")).
		WithArgs(10).
		WillReturnRows(scheduleLockRows("scheduled", 19, 20))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM class_registrations WHERE member_id = $1 AND schedule_id = $2)")).
		WithArgs(1, 10).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO class_registrations (member_id, schedule_id) VALUES ($1, $2)")).
		WithArgs(1, 10).
		WillReturnRows(registrationRows().AddRow(3, 1, 10, nil, now))
	mock.ExpectExec(regexp.QuoteMeta("SET current_capacity = current_capacity + 1")).
		WithArgs(10).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	registration, err := repo.Register(context.Background(), 1, 10)

	require.NoError(t, err)
	require.Nil(t, registration.WaitlistPosition)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegister_FullClassJoinsWaitlist(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE OF cs")).
		WithArgs(10).
		WillReturnRows(scheduleLockRows("scheduled", 20, 20))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
		WithArgs(1, 10).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) + 1 FROM class_registrations WHERE schedule_id = $1 AND waitlist_position IS NOT NULL")).
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO class_registrations (member_id, schedule_id, waitlist_position)")).
		WithArgs(1, 10, 3).
		WillReturnRows(registrationRows().AddRow(4, 1, 10, 3, now))
	mock.ExpectCommit()

	registration, err := repo.Register(context.Background(), 1, 10)

	require.NoError(t, err)
	require.NotNil(t, registration.WaitlistPosition)
	require.Equal(t, 3, *registration.WaitlistPosition)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegister_Rejections(t *testing.T) {
	t.Run("schedule missing", func(t *testing.T) {
		repo, mock, close := setupMock(t)
		defer close()

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE OF cs")).
			WithArgs(10).
			WillReturnRows(sqlmock.NewRows([]string{"status", "current_capacity", "max_capacity"}))
		mock.ExpectRollback()

		_, err := repo.Register(context.Background(), 1, 10)
		require.ErrorIs(t, err, ErrScheduleNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("cancelled schedule", func(t *testing.T) {
		repo, mock, close := setupMock(t)
		defer close()

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE OF cs")).
			WithArgs(10).
			WillReturnRows(scheduleLockRows("cancelled", 5, 20))
		mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
			WithArgs(1, 10).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectRollback()

		_, err := repo.Register(context.Background(), 1, 10)
		require.ErrorIs(t, err, ErrScheduleNotOpen)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("already registered", func(t *testing.T) {
		repo, mock, close := setupMock(t)
		defer close()

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE OF cs")).
			WithArgs(10).
			WillReturnRows(scheduleLockRows("scheduled", 5, 20))
		mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
			WithArgs(1, 10).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
		mock.ExpectRollback()

		_, err := repo.Register(context.Background(), 1, 10)
		require.ErrorIs(t, err, ErrAlreadyRegistered)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	// Уже зарегистрированный участник получает AlreadyRegistered даже
	// после отмены занятия, а не NotOpen.
	t.Run("already registered on cancelled schedule", func(t *testing.T) {
		repo, mock, close := setupMock(t)
		defer close()

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE OF cs")).
			WithArgs(10).
			WillReturnRows(scheduleLockRows("cancelled", 5, 20))
		mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
			WithArgs(1, 10).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
		mock.ExpectRollback()

		_, err := repo.Register(context.Background(), 1, 10)
		require.ErrorIs(t, err, ErrAlreadyRegistered)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCancelRegistration_PromotesWaitlistHead(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	now := time.Now()
	date, err := interval.ParseDate("2025-06-15")
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FROM class_registrations WHERE id = $1")).
		WithArgs(1).
		WillReturnRows(registrationRows().AddRow(1, 1, 10, nil, now))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM class_schedules WHERE id = $1 FOR UPDATE")).
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM class_registrations WHERE id = $1")).
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY cr.waitlist_position LIMIT 1 FOR UPDATE OF cr")).
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "member_id", "waitlist_position", "class_name", "scheduled_date", "start_minute", "end_minute",
		}).AddRow(5, 7, 1, "Morning Yoga", date.Time, 540, 600))
	mock.ExpectExec(regexp.QuoteMeta("SET waitlist_position = NULL WHERE id = $1")).
		WithArgs(5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("SET waitlist_position = waitlist_position - 1")).
		WithArgs(10, 1).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	promotion, err := repo.CancelRegistration(context.Background(), 1)

	require.NoError(t, err)
	require.NotNil(t, promotion)
	require.Equal(t, 7, promotion.MemberID)
	require.Equal(t, "Morning Yoga", promotion.ClassName)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelRegistration_EmptyWaitlistFreesSpot(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FROM class_registrations WHERE id = $1")).
		WithArgs(1).
		WillReturnRows(registrationRows().AddRow(1, 1, 10, nil, now))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM class_schedules WHERE id = $1 FOR UPDATE")).
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM class_registrations WHERE id = $1")).
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY cr.waitlist_position LIMIT 1 FOR UPDATE OF cr")).
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "member_id", "waitlist_position", "class_name", "scheduled_date", "start_minute", "end_minute",
		}))
	mock.ExpectExec(regexp.QuoteMeta("SET current_capacity = current_capacity - 1")).
		WithArgs(10).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	promotion, err := repo.CancelRegistration(context.Background(), 1)

	require.NoError(t, err)
	require.Nil(t, promotion)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelRegistration_WaitlistedResequencesBehind(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FROM class_registrations WHERE id = $1")).
		WithArgs(2).
		WillReturnRows(registrationRows().AddRow(2, 1, 10, 2, now))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM class_schedules WHERE id = $1 FOR UPDATE")).
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM class_registrations WHERE id = $1")).
		WithArgs(2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("SET waitlist_position = waitlist_position - 1")).
		WithArgs(10, 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	promotion, err := repo.CancelRegistration(context.Background(), 2)

	require.NoError(t, err)
	require.Nil(t, promotion)
	require.NoError(t, mock.ExpectationsWereMet())
}
