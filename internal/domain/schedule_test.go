package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func morningSlot() *SlotDefinition {
	return &SlotDefinition{
		Label:           "10:30 AM - 11:30 AM",
		StartMinute:     630,
		EndMinute:       690,
		Capacity:        4,
		DurationMinutes: 60,
	}
}

func TestQueuePosition(t *testing.T) {
	peers := []*Booking{
		{ID: 1, AdmissionSequence: 1, Status: StatusUpcoming},
		{ID: 2, AdmissionSequence: 2, Status: StatusUpcoming},
		{ID: 3, AdmissionSequence: 3, Status: StatusUpcoming},
	}

	assert.Equal(t, 0, QueuePosition(peers[0], peers))
	assert.Equal(t, 1, QueuePosition(peers[1], peers))
	assert.Equal(t, 2, QueuePosition(peers[2], peers))
}

func TestQueuePosition_CancelShiftsFollowers(t *testing.T) {
	peers := []*Booking{
		{ID: 1, AdmissionSequence: 1, Status: StatusUpcoming},
		{ID: 2, AdmissionSequence: 2, Status: StatusCancelled},
		{ID: 3, AdmissionSequence: 3, Status: StatusUpcoming},
	}

	// Отмена второй записи сдвигает третью с позиции 2 на позицию 1
	assert.Equal(t, 1, QueuePosition(peers[2], peers))
	// Sequence при этом не меняется
	assert.Equal(t, 3, peers[2].AdmissionSequence)
}

func TestQueuePosition_EmergencyCountsInQueue(t *testing.T) {
	peers := []*Booking{
		{ID: 1, AdmissionSequence: 1, Status: StatusUpcoming, IsEmergency: true},
		{ID: 2, AdmissionSequence: 2, Status: StatusUpcoming},
	}

	// Экстренная запись не занимает место в слоте, но стоит в очереди
	assert.Equal(t, 1, QueuePosition(peers[1], peers))
}

func TestEstimateMinute_CatalogSlot(t *testing.T) {
	// Слот 10:30, вместимость 4, длительность 60 - шаг 15 минут
	minute, err := EstimateMinute(morningSlot(), "10:30 AM - 11:30 AM", 2, 0)
	require.NoError(t, err)
	assert.Equal(t, 660, minute) // 11:00 AM

	minute, err = EstimateMinute(morningSlot(), "10:30 AM - 11:30 AM", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 630, minute) // 10:30 AM
}

func TestEstimateMinute_WithDelay(t *testing.T) {
	minute, err := EstimateMinute(morningSlot(), "10:30 AM - 11:30 AM", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, 665, minute) // 10:45 + 20 минут задержки
}

func TestEstimateMinute_UnknownSlotFallsBackToLabel(t *testing.T) {
	// Слот отсутствует в каталоге: начало из метки, шаг 15 минут
	minute, err := EstimateMinute(nil, "03:00 PM - 04:00 PM", 2, 0)
	require.NoError(t, err)
	assert.Equal(t, 930, minute) // 15:00 + 2*15
}

func TestEstimateMinute_UnparsableLabel(t *testing.T) {
	_, err := EstimateMinute(nil, "evening shift", 0, 0)
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestParseSlotLabelStart(t *testing.T) {
	minute, err := ParseSlotLabelStart("10:30 AM - 11:30 AM")
	require.NoError(t, err)
	assert.Equal(t, 630, minute)

	minute, err = ParseSlotLabelStart("7:00 PM - 8:00 PM")
	require.NoError(t, err)
	assert.Equal(t, 1140, minute)
}
