package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSlots() []SlotDefinition {
	return []SlotDefinition{
		{Label: "06:00 PM - 07:00 PM", StartMinute: 1080, EndMinute: 1140, Capacity: 4, DurationMinutes: 60},
		{Label: "10:30 AM - 11:30 AM", StartMinute: 630, EndMinute: 690, Capacity: 4, DurationMinutes: 60},
	}
}

func TestNewSlotCatalog_SortsChronologically(t *testing.T) {
	catalog, err := NewSlotCatalog(testSlots())
	require.NoError(t, err)

	all := catalog.All()
	require.Len(t, all, 2)
	assert.Equal(t, "10:30 AM - 11:30 AM", all[0].Label)
	assert.Equal(t, "06:00 PM - 07:00 PM", all[1].Label)
}

func TestNewSlotCatalog_Validation(t *testing.T) {
	tests := []struct {
		name string
		defs []SlotDefinition
	}{
		{"empty catalog", nil},
		{"empty label", []SlotDefinition{{StartMinute: 0, EndMinute: 60, Capacity: 1, DurationMinutes: 60}}},
		{"start after end", []SlotDefinition{{Label: "x", StartMinute: 60, EndMinute: 30, Capacity: 1, DurationMinutes: 60}}},
		{"zero capacity", []SlotDefinition{{Label: "x", StartMinute: 0, EndMinute: 60, Capacity: 0, DurationMinutes: 60}}},
		{"duplicate labels", []SlotDefinition{
			{Label: "x", StartMinute: 0, EndMinute: 60, Capacity: 1, DurationMinutes: 60},
			{Label: "x", StartMinute: 60, EndMinute: 120, Capacity: 1, DurationMinutes: 60},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSlotCatalog(tt.defs)
			assert.ErrorIs(t, err, ErrInvalidSlotDefinition)
		})
	}
}

func TestSlotCatalog_Resolve(t *testing.T) {
	catalog, err := NewSlotCatalog(testSlots())
	require.NoError(t, err)

	slot, err := catalog.Resolve("10:30 AM - 11:30 AM")
	require.NoError(t, err)
	assert.Equal(t, 630, slot.StartMinute)

	_, err = catalog.Resolve("03:00 PM - 04:00 PM")
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestSlotDefinition_GapMinutes(t *testing.T) {
	slot := SlotDefinition{Label: "x", StartMinute: 630, EndMinute: 690, Capacity: 4, DurationMinutes: 60}
	assert.Equal(t, 15, slot.GapMinutes())

	slot.Capacity = 3
	assert.Equal(t, 20, slot.GapMinutes())
}
