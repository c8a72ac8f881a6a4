package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeString_Validate(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"valid morning", "10:30", false},
		{"valid midnight", "00:00", false},
		{"valid end of day", "23:59", false},
		{"missing colon", "1030", true},
		{"hours out of range", "24:00", true},
		{"minutes out of range", "10:60", true},
		{"not a number", "ab:cd", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := TimeString(tt.value).Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTimeString_MinuteOfDay(t *testing.T) {
	minute, err := TimeString("10:30").MinuteOfDay()
	require.NoError(t, err)
	assert.Equal(t, 630, minute)

	minute, err = TimeString("18:00").MinuteOfDay()
	require.NoError(t, err)
	assert.Equal(t, 1080, minute)
}

func TestTimeString_AddMinutes(t *testing.T) {
	ts, err := TimeString("23:50").AddMinutes(20)
	require.NoError(t, err)
	assert.Equal(t, TimeString("00:10"), ts)
}

func TestFormatClock12(t *testing.T) {
	tests := []struct {
		name   string
		minute int
		want   string
	}{
		{"morning", 630, "10:30 AM"},
		{"noon", 720, "12:00 PM"},
		{"midnight", 0, "12:00 AM"},
		{"evening", 1080, "6:00 PM"},
		{"after evening gap", 1110, "6:30 PM"},
		{"wraps past midnight", 1470, "12:30 AM"},
		{"negative wraps back", -30, "11:30 PM"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatClock12(tt.minute))
		})
	}
}

func TestTimeString_Clock12(t *testing.T) {
	assert.Equal(t, "10:30 AM", TimeString("10:30").Clock12())
	assert.Equal(t, "7:00 PM", TimeString("19:00").Clock12())
}
