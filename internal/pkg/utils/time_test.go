package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		value   string
		minutes int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"10:00", 600, false},
		{"12:30", 750, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"9:00", 0, true},
		{"10:60", 0, true},
		{"", 0, true},
		{"ab:cd", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			minutes, err := ParseClock(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.minutes, minutes)
		})
	}
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "00:00", FormatClock(0))
	assert.Equal(t, "09:05", FormatClock(545))
	assert.Equal(t, "11:06", FormatClock(666))
}

func TestFormatAppointmentDate(t *testing.T) {
	date := time.Date(2024, time.March, 7, 15, 0, 0, 0, time.UTC)
	assert.Equal(t, "07/03/2024", FormatAppointmentDate(date))
}
