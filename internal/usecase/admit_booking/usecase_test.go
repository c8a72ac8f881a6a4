package admit_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/Clinic-QueueService/internal/domain"
	"github.com/m04kA/Clinic-QueueService/internal/infra/storage/block"
)

// Фейки зависимостей

type fakeBookingRepo struct {
	peers     []*domain.Booking
	maxSeq    int
	hasActive bool

	created   *domain.Booking
	createErr error
}

func (f *fakeBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	b.ID = 42
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	f.created = b
	f.peers = append(f.peers, b)
	return b, nil
}

func (f *fakeBookingRepo) GetByDay(_ context.Context, _ domain.DayBookingsFilter) ([]*domain.Booking, error) {
	return f.peers, nil
}

func (f *fakeBookingRepo) MaxSequence(_ context.Context, _ time.Time, _ string) (int, error) {
	return f.maxSeq, nil
}

func (f *fakeBookingRepo) HasActiveOnDate(_ context.Context, _ string, _ time.Time) (bool, error) {
	return f.hasActive, nil
}

type fakeBlockRepo struct {
	dayBlock    *domain.BlockedDay
	slotBlocked bool
}

func (f *fakeBlockRepo) GetDayBlock(_ context.Context, _ time.Time) (*domain.BlockedDay, error) {
	if f.dayBlock == nil {
		return nil, block.ErrBlockNotFound
	}
	return f.dayBlock, nil
}

func (f *fakeBlockRepo) IsSlotBlocked(_ context.Context, _ time.Time, _ string) (bool, error) {
	return f.slotBlocked, nil
}

type fakeNotifier struct {
	calls []domain.NotificationKind
	err   error
}

func (f *fakeNotifier) Notify(_ context.Context, kind domain.NotificationKind, _ string, _ map[string]string) error {
	f.calls = append(f.calls, kind)
	return f.err
}

type fakeTxManager struct{}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct {
	now time.Time
}

func (f *fixedTime) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// Сборка usecase

func testCatalog(t *testing.T) *domain.SlotCatalog {
	t.Helper()
	catalog, err := domain.NewSlotCatalog([]domain.SlotDefinition{
		{Label: "10:30 AM - 11:30 AM", StartMinute: 630, EndMinute: 690, Capacity: 4, DurationMinutes: 60},
		{Label: "06:00 PM - 07:00 PM", StartMinute: 1080, EndMinute: 1140, Capacity: 4, DurationMinutes: 60},
	})
	require.NoError(t, err)
	return catalog
}

type fixture struct {
	uc       *UseCase
	bookings *fakeBookingRepo
	blocks   *fakeBlockRepo
	notifier *fakeNotifier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	bookings := &fakeBookingRepo{}
	blocks := &fakeBlockRepo{}
	notifier := &fakeNotifier{}
	sunday := time.Sunday

	uc := NewUseCase(bookings, blocks, notifier, &fakeTxManager{}, testCatalog(t), &sunday, 120, nopLogger{})
	// Записи создаются на понедельник 2025-10-13, сейчас утро предыдущего дня
	uc.timeProvider = &fixedTime{now: time.Date(2025, 10, 12, 9, 0, 0, 0, time.UTC)}

	return &fixture{uc: uc, bookings: bookings, blocks: blocks, notifier: notifier}
}

func validRequest() Request {
	return Request{
		Date:      time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC),
		SlotLabel: "10:30 AM - 11:30 AM",
		FullName:  "Rahul Mehta",
		Phone:     "+91 98765 43210",
	}
}

// Тесты

func TestExecute_Success(t *testing.T) {
	f := newFixture(t)
	f.bookings.maxSeq = 2

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, 3, resp.AdmissionSequence)
	assert.Equal(t, string(domain.StatusUpcoming), resp.Status)
	assert.Equal(t, []domain.NotificationKind{domain.NotificationConfirmation}, f.notifier.calls)
}

func TestExecute_EstimatedTimeFromPosition(t *testing.T) {
	f := newFixture(t)
	f.bookings.peers = []*domain.Booking{
		{ID: 1, SlotLabel: "10:30 AM - 11:30 AM", AdmissionSequence: 1, Status: domain.StatusUpcoming},
		{ID: 2, SlotLabel: "10:30 AM - 11:30 AM", AdmissionSequence: 2, Status: domain.StatusUpcoming},
	}
	f.bookings.maxSeq = 2

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// Третья запись: позиция 2, шаг 15 минут от 10:30
	assert.Equal(t, 2, resp.Position)
	assert.Equal(t, "11:00 AM", resp.EstimatedTime)
}

func TestExecute_SlotFull(t *testing.T) {
	f := newFixture(t)
	for i := 1; i <= 4; i++ {
		f.bookings.peers = append(f.bookings.peers, &domain.Booking{
			ID:                int64(i),
			SlotLabel:         "10:30 AM - 11:30 AM",
			AdmissionSequence: i,
			Status:            domain.StatusUpcoming,
		})
	}
	f.bookings.maxSeq = 4

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotFull)
	assert.Nil(t, f.bookings.created)
	assert.Empty(t, f.notifier.calls)
}

func TestExecute_CancelledFreesCapacity(t *testing.T) {
	f := newFixture(t)
	for i := 1; i <= 4; i++ {
		status := domain.StatusUpcoming
		if i == 2 {
			status = domain.StatusCancelled
		}
		f.bookings.peers = append(f.bookings.peers, &domain.Booking{
			ID:                int64(i),
			SlotLabel:         "10:30 AM - 11:30 AM",
			AdmissionSequence: i,
			Status:            status,
		})
	}
	f.bookings.maxSeq = 4

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// Sequence отмененной записи не переиспользуется
	assert.Equal(t, 5, resp.AdmissionSequence)
}

func TestExecute_EmergencyBypassesCapacity(t *testing.T) {
	f := newFixture(t)
	for i := 1; i <= 4; i++ {
		f.bookings.peers = append(f.bookings.peers, &domain.Booking{
			ID:                int64(i),
			SlotLabel:         "10:30 AM - 11:30 AM",
			AdmissionSequence: i,
			Status:            domain.StatusUpcoming,
		})
	}
	f.bookings.maxSeq = 4

	req := validRequest()
	req.IsEmergency = true

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 5, resp.AdmissionSequence)
	assert.True(t, resp.IsEmergency)
	// Подтверждение экстренной записи не отправляется
	assert.Empty(t, f.notifier.calls)
}

func TestExecute_EmergencyBypassesLeadTimeAndBlocks(t *testing.T) {
	f := newFixture(t)
	// Сейчас позже начала слота, день заблокирован
	f.uc.timeProvider = &fixedTime{now: time.Date(2025, 10, 13, 11, 0, 0, 0, time.UTC)}
	f.blocks.dayBlock = &domain.BlockedDay{Date: validRequest().Date, Reason: "Holiday"}
	f.bookings.hasActive = true

	req := validRequest()
	req.IsEmergency = true

	_, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
}

func TestExecute_TooLateToBook(t *testing.T) {
	f := newFixture(t)
	// Слот начинается в 10:30, сейчас 09:00 того же дня - меньше 2 часов
	f.uc.timeProvider = &fixedTime{now: time.Date(2025, 10, 13, 9, 0, 0, 0, time.UTC)}

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrTooLateToBook)
}

func TestExecute_LeadTimeBoundary(t *testing.T) {
	f := newFixture(t)
	// Ровно за 2 часа до начала - запись еще возможна
	f.uc.timeProvider = &fixedTime{now: time.Date(2025, 10, 13, 8, 30, 0, 0, time.UTC)}

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.NoError(t, err)
}

func TestExecute_ClinicClosedWeekday(t *testing.T) {
	f := newFixture(t)

	req := validRequest()
	req.Date = time.Date(2025, 10, 12, 0, 0, 0, 0, time.UTC) // воскресенье
	f.uc.timeProvider = &fixedTime{now: time.Date(2025, 10, 11, 9, 0, 0, 0, time.UTC)}

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrClinicClosed)
}

func TestExecute_DayBlocked(t *testing.T) {
	f := newFixture(t)
	f.blocks.dayBlock = &domain.BlockedDay{Date: validRequest().Date, Reason: "Holiday"}

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrDayBlocked)
}

func TestExecute_SlotBlocked(t *testing.T) {
	f := newFixture(t)
	f.blocks.slotBlocked = true

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotBlocked)
}

func TestExecute_DuplicateBooking(t *testing.T) {
	f := newFixture(t)
	f.bookings.hasActive = true

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrDuplicateBooking)
}

func TestExecute_UnknownSlotLabel(t *testing.T) {
	f := newFixture(t)

	req := validRequest()
	req.SlotLabel = "03:00 PM - 04:00 PM"

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestExecute_ValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"missing date", func(r *Request) { r.Date = time.Time{} }},
		{"missing slot", func(r *Request) { r.SlotLabel = "" }},
		{"missing name", func(r *Request) { r.FullName = "  " }},
		{"missing phone", func(r *Request) { r.Phone = "" }},
		{"phone with letters", func(r *Request) { r.Phone = "not-a-phone" }},
		{"phone too short", func(r *Request) { r.Phone = "+1234" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			req := validRequest()
			tt.mutate(&req)

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_NotificationFailureDoesNotFailBooking(t *testing.T) {
	f := newFixture(t)
	f.notifier.err = errors.New("gateway unavailable")

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.NotNil(t, resp)
}
