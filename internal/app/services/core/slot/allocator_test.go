package slot

import (
	"testing"

	"doctor-appointment-service/internal/app/models"
	"doctor-appointment-service/internal/pkg/exceptions"
	"doctor-appointment-service/internal/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func placeSlot(start, end string, maxPatients int) models.PlaceSlot {
	return models.PlaceSlot{
		Place:        "Clinic A",
		TimeInterval: models.TimeInterval{Start: start, End: end},
		MaxPatients:  maxPatients,
	}
}

func TestAssign_MondayClinicQueue(t *testing.T) {
	slot := placeSlot("10:00", "12:00", 4)
	expectedStarts := []string{"10:00", "10:30", "11:00", "11:30"}

	for count, expected := range expectedStarts {
		interval, err := Assign(slot, count)
		require.NoError(t, err)
		assert.Equal(t, expected, interval.Start)
		assert.Equal(t, "12:00", interval.End)
	}

	_, err := Assign(slot, 4)
	assert.ErrorIs(t, err, exceptions.KindSlotFull)
}

func TestAssign_TruncatesUnevenWindow(t *testing.T) {
	slot := placeSlot("09:00", "10:40", 3)

	starts := make([]string, 0, 3)
	for count := 0; count < 3; count++ {
		interval, err := Assign(slot, count)
		require.NoError(t, err)
		starts = append(starts, interval.Start)
	}
	assert.Equal(t, []string{"09:00", "09:33", "10:06"}, starts)
}

func TestAssign_OffsetsFollowFloorDivision(t *testing.T) {
	slots := []models.PlaceSlot{
		placeSlot("08:00", "09:00", 1),
		placeSlot("08:00", "09:00", 7),
		placeSlot("13:15", "17:45", 5),
		placeSlot("00:00", "23:59", 13),
	}

	for _, slot := range slots {
		t.Run(Describe(slot), func(t *testing.T) {
			start, _ := utils.ParseClock(slot.TimeInterval.Start)
			end, _ := utils.ParseClock(slot.TimeInterval.End)
			perPatient := (end - start) / slot.MaxPatients

			for k := 0; k < slot.MaxPatients; k++ {
				interval, err := Assign(slot, k)
				require.NoError(t, err)
				assert.Equal(t, utils.FormatClock(start+perPatient*k), interval.Start)
				assert.Equal(t, slot.TimeInterval.End, interval.End)
			}
		})
	}
}

func TestAssign_FullAtAndBeyondCapacity(t *testing.T) {
	slot := placeSlot("10:00", "12:00", 2)
	for _, count := range []int{2, 3, 10} {
		_, err := Assign(slot, count)
		assert.ErrorIs(t, err, exceptions.KindSlotFull)
	}
}

func TestAssign_InvalidSlots(t *testing.T) {
	tests := []struct {
		name string
		slot models.PlaceSlot
	}{
		{"zero capacity", placeSlot("10:00", "12:00", 0)},
		{"malformed start", placeSlot("10am", "12:00", 2)},
		{"malformed end", placeSlot("10:00", "25:00", 2)},
		{"empty window", placeSlot("12:00", "12:00", 2)},
		{"inverted window", placeSlot("12:00", "10:00", 2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Assign(tt.slot, 0)
			assert.ErrorIs(t, err, exceptions.KindValidation)
		})
	}
}

func TestLockKey(t *testing.T) {
	key := LockKey("d1", "Monday", placeSlot("10:00", "12:00", 4))
	assert.Equal(t, "booking:lock:d1:Monday:Clinic A:10:00-12:00", key)
}
