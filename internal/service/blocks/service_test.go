package blocks

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/Clinic-QueueService/internal/domain"
	blockRepo "github.com/m04kA/Clinic-QueueService/internal/infra/storage/block"
	"github.com/m04kA/Clinic-QueueService/internal/service/blocks/models"
)

type fakeBlockRepo struct {
	dayBlocks  map[string]*domain.BlockedDay
	slotBlocks map[string]*domain.BlockedSlot
}

func newFakeBlockRepo() *fakeBlockRepo {
	return &fakeBlockRepo{
		dayBlocks:  make(map[string]*domain.BlockedDay),
		slotBlocks: make(map[string]*domain.BlockedSlot),
	}
}

func (f *fakeBlockRepo) CreateDayBlock(_ context.Context, b *domain.BlockedDay) (*domain.BlockedDay, error) {
	key := b.Date.Format(domain.DateFormat)
	if _, exists := f.dayBlocks[key]; exists {
		return nil, blockRepo.ErrDuplicateBlock
	}
	b.ID = int64(len(f.dayBlocks) + 1)
	b.CreatedAt = time.Now()
	f.dayBlocks[key] = b
	return b, nil
}

func (f *fakeBlockRepo) CreateSlotBlock(_ context.Context, b *domain.BlockedSlot) (*domain.BlockedSlot, error) {
	key := b.Date.Format(domain.DateFormat) + "/" + b.SlotLabel
	if _, exists := f.slotBlocks[key]; exists {
		return nil, blockRepo.ErrDuplicateBlock
	}
	b.ID = int64(len(f.slotBlocks) + 1)
	b.CreatedAt = time.Now()
	f.slotBlocks[key] = b
	return b, nil
}

func (f *fakeBlockRepo) GetDayBlock(_ context.Context, date time.Time) (*domain.BlockedDay, error) {
	b, ok := f.dayBlocks[date.Format(domain.DateFormat)]
	if !ok {
		return nil, blockRepo.ErrBlockNotFound
	}
	return b, nil
}

func (f *fakeBlockRepo) ListSlotBlocks(_ context.Context, date time.Time) ([]*domain.BlockedSlot, error) {
	var out []*domain.BlockedSlot
	for _, b := range f.slotBlocks {
		if b.Date.Equal(date) {
			out = append(out, b)
		}
	}
	return out, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testCatalog(t *testing.T) *domain.SlotCatalog {
	t.Helper()
	catalog, err := domain.NewSlotCatalog([]domain.SlotDefinition{
		{Label: "10:30 AM - 11:30 AM", StartMinute: 630, EndMinute: 690, Capacity: 4, DurationMinutes: 60},
	})
	require.NoError(t, err)
	return catalog
}

var monday = time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)

func TestBlockDay(t *testing.T) {
	svc := NewService(newFakeBlockRepo(), testCatalog(t), nopLogger{})

	resp, err := svc.BlockDay(context.Background(), &models.BlockDayRequest{
		Date:      monday,
		Reason:    "Holiday",
		CreatedBy: "reception-1",
	})
	require.NoError(t, err)

	assert.Equal(t, "2025-10-13", resp.Date)
	assert.Equal(t, "Holiday", resp.Reason)
	assert.Equal(t, "reception-1", resp.CreatedBy)
}

func TestBlockDay_Duplicate(t *testing.T) {
	svc := NewService(newFakeBlockRepo(), testCatalog(t), nopLogger{})

	req := &models.BlockDayRequest{Date: monday, Reason: "Holiday", CreatedBy: "reception-1"}
	_, err := svc.BlockDay(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.BlockDay(context.Background(), req)
	assert.ErrorIs(t, err, ErrDuplicateBlock)
}

func TestBlockDay_Validation(t *testing.T) {
	svc := NewService(newFakeBlockRepo(), testCatalog(t), nopLogger{})

	_, err := svc.BlockDay(context.Background(), &models.BlockDayRequest{Reason: "Holiday"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.BlockDay(context.Background(), &models.BlockDayRequest{Date: monday, Reason: "  "})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestBlockSlot(t *testing.T) {
	svc := NewService(newFakeBlockRepo(), testCatalog(t), nopLogger{})

	resp, err := svc.BlockSlot(context.Background(), &models.BlockSlotRequest{
		Date:      monday,
		SlotLabel: "10:30 AM - 11:30 AM",
		Reason:    "Doctor unavailable",
		CreatedBy: "reception-1",
	})
	require.NoError(t, err)

	assert.Equal(t, "10:30 AM - 11:30 AM", resp.SlotLabel)
	assert.Equal(t, "Doctor unavailable", resp.Reason)
}

func TestBlockSlot_UnknownLabel(t *testing.T) {
	svc := NewService(newFakeBlockRepo(), testCatalog(t), nopLogger{})

	_, err := svc.BlockSlot(context.Background(), &models.BlockSlotRequest{
		Date:      monday,
		SlotLabel: "03:00 PM - 04:00 PM",
		Reason:    "Doctor unavailable",
		CreatedBy: "reception-1",
	})
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestBlockSlot_Duplicate(t *testing.T) {
	svc := NewService(newFakeBlockRepo(), testCatalog(t), nopLogger{})

	req := &models.BlockSlotRequest{
		Date:      monday,
		SlotLabel: "10:30 AM - 11:30 AM",
		Reason:    "Doctor unavailable",
		CreatedBy: "reception-1",
	}
	_, err := svc.BlockSlot(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.BlockSlot(context.Background(), req)
	assert.ErrorIs(t, err, ErrDuplicateBlock)
}
