package get_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/Clinic-QueueService/internal/domain"
	"github.com/m04kA/Clinic-QueueService/internal/infra/storage/block"
)

type fakeBookingRepo struct {
	bookings []*domain.Booking
}

func (f *fakeBookingRepo) GetByDay(_ context.Context, _ domain.DayBookingsFilter) ([]*domain.Booking, error) {
	return f.bookings, nil
}

type fakeBlockRepo struct {
	dayBlock   *domain.BlockedDay
	slotBlocks []*domain.BlockedSlot
}

func (f *fakeBlockRepo) GetDayBlock(_ context.Context, _ time.Time) (*domain.BlockedDay, error) {
	if f.dayBlock == nil {
		return nil, block.ErrBlockNotFound
	}
	return f.dayBlock, nil
}

func (f *fakeBlockRepo) ListSlotBlocks(_ context.Context, _ time.Time) ([]*domain.BlockedSlot, error) {
	return f.slotBlocks, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testCatalog(t *testing.T) *domain.SlotCatalog {
	t.Helper()
	catalog, err := domain.NewSlotCatalog([]domain.SlotDefinition{
		{Label: "10:30 AM - 11:30 AM", StartMinute: 630, EndMinute: 690, Capacity: 4, DurationMinutes: 60},
		{Label: "06:00 PM - 07:00 PM", StartMinute: 1080, EndMinute: 1140, Capacity: 4, DurationMinutes: 60},
	})
	require.NoError(t, err)
	return catalog
}

func newUseCase(t *testing.T, bookings *fakeBookingRepo, blocks *fakeBlockRepo) *UseCase {
	t.Helper()
	sunday := time.Sunday
	return NewUseCase(bookings, blocks, testCatalog(t), &sunday, nopLogger{})
}

var monday = time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)

func TestExecute_AllSlotsOpen(t *testing.T) {
	uc := newUseCase(t, &fakeBookingRepo{}, &fakeBlockRepo{})

	resp, err := uc.Execute(context.Background(), Request{Date: monday})
	require.NoError(t, err)

	assert.True(t, resp.Available)
	require.Len(t, resp.Slots, 2)
	assert.Equal(t, "10:30 AM - 11:30 AM", resp.Slots[0].Label)
	assert.Equal(t, SlotStatusAvailable, resp.Slots[0].Status)
	assert.Equal(t, 4, resp.Slots[0].Available)
}

func TestExecute_ClosedWeekday(t *testing.T) {
	uc := newUseCase(t, &fakeBookingRepo{}, &fakeBlockRepo{})

	sunday := time.Date(2025, 10, 12, 0, 0, 0, 0, time.UTC)
	resp, err := uc.Execute(context.Background(), Request{Date: sunday})
	require.NoError(t, err)

	assert.False(t, resp.Available)
	assert.Equal(t, "closed", resp.Reason)
	assert.Empty(t, resp.Slots)
}

func TestExecute_BlockedDayReturnsReason(t *testing.T) {
	blocks := &fakeBlockRepo{dayBlock: &domain.BlockedDay{Date: monday, Reason: "Holiday"}}
	uc := newUseCase(t, &fakeBookingRepo{}, blocks)

	resp, err := uc.Execute(context.Background(), Request{Date: monday})
	require.NoError(t, err)

	assert.False(t, resp.Available)
	assert.Equal(t, "Holiday", resp.Reason)
	assert.Empty(t, resp.Slots)
}

func TestExecute_FullSlot(t *testing.T) {
	bookings := &fakeBookingRepo{}
	for i := 1; i <= 4; i++ {
		bookings.bookings = append(bookings.bookings, &domain.Booking{
			ID:                int64(i),
			SlotLabel:         "10:30 AM - 11:30 AM",
			AdmissionSequence: i,
			Status:            domain.StatusUpcoming,
		})
	}
	uc := newUseCase(t, bookings, &fakeBlockRepo{})

	resp, err := uc.Execute(context.Background(), Request{Date: monday})
	require.NoError(t, err)

	assert.Equal(t, SlotStatusFull, resp.Slots[0].Status)
	assert.Equal(t, 0, resp.Slots[0].Available)
	assert.Equal(t, 4, resp.Slots[0].Booked)
	// Второй слот не затронут
	assert.Equal(t, SlotStatusAvailable, resp.Slots[1].Status)
}

func TestExecute_EmergencyDoesNotReduceAvailability(t *testing.T) {
	bookings := &fakeBookingRepo{
		bookings: []*domain.Booking{
			{ID: 1, SlotLabel: "10:30 AM - 11:30 AM", AdmissionSequence: 1, Status: domain.StatusUpcoming},
			{ID: 2, SlotLabel: "10:30 AM - 11:30 AM", AdmissionSequence: 2, Status: domain.StatusUpcoming, IsEmergency: true},
		},
	}
	uc := newUseCase(t, bookings, &fakeBlockRepo{})

	resp, err := uc.Execute(context.Background(), Request{Date: monday})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Slots[0].Booked)
	assert.Equal(t, 3, resp.Slots[0].Available)
}

func TestExecute_BlockedSlot(t *testing.T) {
	blocks := &fakeBlockRepo{
		slotBlocks: []*domain.BlockedSlot{
			{Date: monday, SlotLabel: "06:00 PM - 07:00 PM", Reason: "Doctor unavailable"},
		},
	}
	uc := newUseCase(t, &fakeBookingRepo{}, blocks)

	resp, err := uc.Execute(context.Background(), Request{Date: monday})
	require.NoError(t, err)

	assert.Equal(t, SlotStatusAvailable, resp.Slots[0].Status)
	assert.Equal(t, SlotStatusBlocked, resp.Slots[1].Status)
	assert.Equal(t, 0, resp.Slots[1].Available)
}

func TestExecute_MissingDate(t *testing.T) {
	uc := newUseCase(t, &fakeBookingRepo{}, &fakeBlockRepo{})

	_, err := uc.Execute(context.Background(), Request{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
