package booking

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/Clinic-QueueService/internal/domain"
	"github.com/m04kA/Clinic-QueueService/pkg/dbmetrics"
	"github.com/m04kA/Clinic-QueueService/pkg/ptr"
)

var (
	testDate = time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)
	testSlot = "10:30 AM - 11:30 AM"
)

func newMock(t *testing.T) (*Repository, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	return NewRepository(db), mock, func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	}
}

func bookingRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "patient_id", "full_name", "phone", "booking_date", "slot_label",
		"admission_sequence", "status", "is_emergency", "delay_minutes", "reminder_sent",
		"created_at", "updated_at",
	})
}

func TestCreate(t *testing.T) {
	repo, mock, done := newMock(t)
	defer done()

	now := time.Now()
	mock.ExpectQuery("INSERT INTO bookings").
		WithArgs(nil, "Rahul Mehta", "+91 98765 43210", testDate, testSlot, 3,
			string(domain.StatusUpcoming), false, 0, false).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(42, now, now))

	created, err := repo.Create(context.Background(), &domain.Booking{
		FullName:          "Rahul Mehta",
		Phone:             "+91 98765 43210",
		Date:              testDate,
		SlotLabel:         testSlot,
		AdmissionSequence: 3,
		Status:            domain.StatusUpcoming,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(42), created.ID)
	assert.Equal(t, 3, created.AdmissionSequence)
}

func TestGetByID(t *testing.T) {
	repo, mock, done := newMock(t)
	defer done()

	now := time.Now()
	mock.ExpectQuery("SELECT .+ FROM bookings").
		WithArgs(int64(42)).
		WillReturnRows(bookingRows().AddRow(
			42, nil, "Rahul Mehta", "+91 98765 43210", testDate, testSlot,
			3, string(domain.StatusUpcoming), false, 0, false, now, now,
		))

	b, err := repo.GetByID(context.Background(), 42)
	require.NoError(t, err)

	assert.Equal(t, int64(42), b.ID)
	assert.Equal(t, testSlot, b.SlotLabel)
	assert.Equal(t, domain.StatusUpcoming, b.Status)
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, done := newMock(t)
	defer done()

	mock.ExpectQuery("SELECT .+ FROM bookings").
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetByDay_ExcludesCancelledByDefault(t *testing.T) {
	repo, mock, done := newMock(t)
	defer done()

	now := time.Now()
	mock.ExpectQuery("SELECT .+ FROM bookings WHERE booking_date = .+ AND status <> .+ ORDER BY slot_label ASC, admission_sequence ASC").
		WithArgs(testDate, string(domain.StatusCancelled)).
		WillReturnRows(bookingRows().AddRow(
			1, nil, "Rahul Mehta", "+91 98765 43210", testDate, testSlot,
			1, string(domain.StatusUpcoming), false, 0, false, now, now,
		))

	bookings, err := repo.GetByDay(context.Background(), domain.DayBookingsFilter{Date: testDate})
	require.NoError(t, err)
	assert.Len(t, bookings, 1)
}

func TestGetByDay_LocksSlotRowsInTransaction(t *testing.T) {
	repo, _, done := newMock(t)
	defer done()

	db, txMock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	txMock.ExpectBegin()
	txMock.ExpectQuery("SELECT .+ FROM bookings .+ ORDER BY admission_sequence ASC FOR UPDATE").
		WithArgs(testDate, testSlot, string(domain.StatusCancelled)).
		WillReturnRows(bookingRows())

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)

	ctx := dbmetrics.WithExecutor(context.Background(), tx)
	bookings, err := repo.GetByDay(ctx, domain.DayBookingsFilter{
		Date:      testDate,
		SlotLabel: ptr.Ptr(testSlot),
	})
	require.NoError(t, err)
	assert.Empty(t, bookings)
	assert.NoError(t, txMock.ExpectationsWereMet())
}

func TestMaxSequence_IncludesCancelled(t *testing.T) {
	repo, mock, done := newMock(t)
	defer done()

	// Запрос без фильтра по статусу - отмененные записи учитываются
	mock.ExpectQuery(`SELECT COALESCE\(MAX\(admission_sequence\), 0\) FROM bookings WHERE booking_date = \$1 AND slot_label = \$2`).
		WithArgs(testDate, testSlot).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(5))

	maxSeq, err := repo.MaxSequence(context.Background(), testDate, testSlot)
	require.NoError(t, err)
	assert.Equal(t, 5, maxSeq)
}

func TestHasActiveOnDate(t *testing.T) {
	repo, mock, done := newMock(t)
	defer done()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bookings`).
		WithArgs(testDate, "+91 98765 43210", string(domain.StatusCancelled)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	exists, err := repo.HasActiveOnDate(context.Background(), "+91 98765 43210", testDate)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestUpdateStatus(t *testing.T) {
	repo, mock, done := newMock(t)
	defer done()

	mock.ExpectExec("UPDATE bookings SET status = .+").
		WithArgs(string(domain.StatusSeen), int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateStatus(context.Background(), 42, domain.StatusSeen)
	assert.NoError(t, err)
}

func TestUpdateStatus_NotFound(t *testing.T) {
	repo, mock, done := newMock(t)
	defer done()

	mock.ExpectExec("UPDATE bookings SET status = .+").
		WithArgs(string(domain.StatusSeen), int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(context.Background(), 99, domain.StatusSeen)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestAddDelay(t *testing.T) {
	repo, mock, done := newMock(t)
	defer done()

	mock.ExpectExec(`UPDATE bookings SET delay_minutes = delay_minutes \+ .+`).
		WithArgs(20, int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.AddDelay(context.Background(), 42, 20)
	assert.NoError(t, err)
}

func TestMarkReminderSent(t *testing.T) {
	repo, mock, done := newMock(t)
	defer done()

	mock.ExpectExec("UPDATE bookings SET reminder_sent = .+").
		WithArgs(true, int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.MarkReminderSent(context.Background(), 42)
	assert.NoError(t, err)
}
