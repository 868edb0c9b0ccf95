package utils

import (
	"testing"

	"doctor-appointment-service/internal/app/models"
	"doctor-appointment-service/internal/pkg/dto/requests"
	"doctor-appointment-service/internal/pkg/exceptions"

	"github.com/stretchr/testify/assert"
)

func slot(place, start, end string, maxPatients int) models.PlaceSlot {
	return models.PlaceSlot{
		Place:        place,
		TimeInterval: models.TimeInterval{Start: start, End: end},
		MaxPatients:  maxPatients,
	}
}

func TestValidateStruct_Booking(t *testing.T) {
	valid := requests.BookAppointment{
		DoctorID:     "665f1c2e9a1b2c3d4e5f6a7b",
		Day:          "Monday",
		Place:        "Clinic A",
		TimeInterval: models.TimeInterval{Start: "10:00", End: "12:00"},
	}
	assert.NoError(t, ValidateStruct(valid))

	badDay := valid
	badDay.Day = "Someday"
	assert.Error(t, ValidateStruct(badDay))

	badClock := valid
	badClock.TimeInterval.Start = "7pm"
	assert.Error(t, ValidateStruct(badClock))
}

func TestValidateStruct_CreateDoctor(t *testing.T) {
	request := requests.CreateDoctor{
		Name:       "Dr. Rahman",
		Specialist: "Cardiology",
		Fees:       -10,
		Gender:     "Male",
	}
	err := ValidateStruct(request)
	assert.Error(t, err)
	assert.Equal(t, "fees must be greater than or equal to 0", exceptions.FormatFirstValidationError(err))

	request.Fees = 500
	request.Schedule = []models.DaySchedule{{Day: "Monday", Places: []models.PlaceSlot{slot("Clinic A", "10:00", "12:00", 0)}}}
	assert.Error(t, ValidateStruct(request))

	request.Schedule[0].Places[0].MaxPatients = 4
	assert.NoError(t, ValidateStruct(request))
}

func TestValidateSchedule(t *testing.T) {
	tests := []struct {
		name     string
		schedule []models.DaySchedule
		wantErr  bool
	}{
		{
			name: "valid",
			schedule: []models.DaySchedule{
				{Day: "Monday", Places: []models.PlaceSlot{slot("Clinic A", "10:00", "12:00", 4), slot("Clinic A", "14:00", "16:00", 4)}},
				{Day: "Tuesday", Places: []models.PlaceSlot{slot("Clinic A", "10:00", "12:00", 4)}},
			},
		},
		{
			name: "duplicate place slot in one day",
			schedule: []models.DaySchedule{
				{Day: "Monday", Places: []models.PlaceSlot{slot("Clinic A", "10:00", "12:00", 4), slot("Clinic A", "10:00", "12:00", 2)}},
			},
			wantErr: true,
		},
		{
			name: "same day listed twice",
			schedule: []models.DaySchedule{
				{Day: "Monday", Places: []models.PlaceSlot{slot("Clinic A", "10:00", "12:00", 4)}},
				{Day: "Monday", Places: []models.PlaceSlot{slot("Clinic B", "14:00", "16:00", 2)}},
			},
			wantErr: true,
		},
		{
			name: "start after end",
			schedule: []models.DaySchedule{
				{Day: "Monday", Places: []models.PlaceSlot{slot("Clinic A", "12:00", "10:00", 4)}},
			},
			wantErr: true,
		},
		{
			name: "zero capacity",
			schedule: []models.DaySchedule{
				{Day: "Monday", Places: []models.PlaceSlot{slot("Clinic A", "10:00", "12:00", 0)}},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSchedule(tt.schedule)
			if tt.wantErr {
				assert.ErrorIs(t, err, exceptions.KindValidation)
				return
			}
			assert.NoError(t, err)
		})
	}
}
