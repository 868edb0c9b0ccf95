package utils

import (
	"doctor-appointment-service/internal/pkg/constvars"
	"fmt"
	"strconv"
	"time"
)

// ParseClock turns a 24-hour "HH:MM" value into minutes since midnight.
func ParseClock(value string) (int, error) {
	if !clockRegexp.MatchString(value) {
		return 0, fmt.Errorf(constvars.ErrDevInvalidClock, value)
	}
	hours, _ := strconv.Atoi(value[:2])
	minutes, _ := strconv.Atoi(value[3:])
	return hours*60 + minutes, nil
}

func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

func FormatAppointmentDate(t time.Time) string {
	return t.Format(constvars.AppointmentDateLayout)
}
