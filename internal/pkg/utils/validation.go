package utils

import (
	"doctor-appointment-service/internal/app/models"
	"doctor-appointment-service/internal/pkg/constvars"
	"doctor-appointment-service/internal/pkg/exceptions"
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	validate    *validator.Validate
	clockRegexp = regexp.MustCompile(constvars.RegexClock)
)

func init() {
	validate = validator.New()
	validate.RegisterValidation("clock", validateClock)
	validate.RegisterValidation("weekday", validateWeekday)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateClock(fl validator.FieldLevel) bool {
	return clockRegexp.MatchString(fl.Field().String())
}

func validateWeekday(fl validator.FieldLevel) bool {
	return IsWeekday(fl.Field().String())
}

func IsWeekday(day string) bool {
	for _, weekday := range constvars.Weekdays {
		if day == weekday {
			return true
		}
	}
	return false
}

// ValidateSchedule checks the rules a struct tag cannot express: each day
// appears once, every interval starts before it ends and a (place, start, end)
// triple appears once per day.
func ValidateSchedule(schedule []models.DaySchedule) error {
	days := make(map[string]struct{}, len(schedule))
	for _, daySchedule := range schedule {
		if _, duplicate := days[daySchedule.Day]; duplicate {
			message := fmt.Sprintf(constvars.ErrDevDuplicateScheduleDay, daySchedule.Day)
			return exceptions.ErrInvalidSchedule(nil, message)
		}
		days[daySchedule.Day] = struct{}{}

		seen := make(map[string]struct{}, len(daySchedule.Places))
		for _, slot := range daySchedule.Places {
			start, err := ParseClock(slot.TimeInterval.Start)
			if err != nil {
				return exceptions.ErrInvalidClock(err, slot.TimeInterval.Start)
			}
			end, err := ParseClock(slot.TimeInterval.End)
			if err != nil {
				return exceptions.ErrInvalidClock(err, slot.TimeInterval.End)
			}
			if start >= end {
				message := fmt.Sprintf(constvars.ErrDevInvalidTimeInterval, slot.TimeInterval.Start, slot.TimeInterval.End)
				return exceptions.ErrInvalidSchedule(nil, message)
			}
			if slot.MaxPatients <= 0 {
				return exceptions.ErrInvalidMaxPatients(nil, slot.MaxPatients)
			}

			naturalKey := slot.Place + "|" + slot.TimeInterval.Start + "|" + slot.TimeInterval.End
			if _, duplicate := seen[naturalKey]; duplicate {
				message := fmt.Sprintf(constvars.ErrDevDuplicatePlaceSlot, slot.Place, slot.TimeInterval.Start, slot.TimeInterval.End, daySchedule.Day)
				return exceptions.ErrInvalidSchedule(nil, message)
			}
			seen[naturalKey] = struct{}{}
		}
	}
	return nil
}
