package slot

import (
	"doctor-appointment-service/internal/app/models"
	"doctor-appointment-service/internal/pkg/constvars"
	"doctor-appointment-service/internal/pkg/exceptions"
	"doctor-appointment-service/internal/pkg/utils"
	"fmt"
	"strings"
)

// Assign computes the interval of the patient holding booking number
// existingConfirmedCount+1 inside a published slot.
//
// The window is split into maxPatients equal parts using floor division and
// the patient starts at the beginning of their part. The end is the slot's own
// published end for every patient; the start is the queue position. Minutes
// left over by the division are never assigned.
//
// Assign fails with a slot full error once existingConfirmedCount reaches
// maxPatients, so callers may rely on it as the last capacity guard.
func Assign(slot models.PlaceSlot, existingConfirmedCount int) (models.TimeInterval, error) {
	if slot.MaxPatients <= 0 {
		return models.TimeInterval{}, exceptions.ErrInvalidMaxPatients(nil, slot.MaxPatients)
	}
	if existingConfirmedCount < 0 {
		existingConfirmedCount = 0
	}
	if existingConfirmedCount >= slot.MaxPatients {
		return models.TimeInterval{}, exceptions.ErrSlotFullyBooked(nil, Describe(slot), existingConfirmedCount, slot.MaxPatients)
	}

	w, err := parseWindow(slot.TimeInterval)
	if err != nil {
		return models.TimeInterval{}, err
	}
	if w.totalMinutes() <= 0 {
		message := fmt.Sprintf(constvars.ErrDevInvalidTimeInterval, slot.TimeInterval.Start, slot.TimeInterval.End)
		return models.TimeInterval{}, exceptions.ErrInvalidSchedule(nil, message)
	}

	perPatientMinutes := w.totalMinutes() / slot.MaxPatients
	bookingNumber := existingConfirmedCount + 1
	offsetMinutes := (bookingNumber - 1) * perPatientMinutes

	return models.TimeInterval{
		Start: utils.FormatClock(w.Start + offsetMinutes),
		End:   slot.TimeInterval.End,
	}, nil
}

// Describe renders a slot as "place start-end" for logs and error messages.
func Describe(slot models.PlaceSlot) string {
	return fmt.Sprintf("%s %s-%s", slot.Place, slot.TimeInterval.Start, slot.TimeInterval.End)
}

// LockKey names the lock that serializes bookings against one published slot.
func LockKey(doctorID, day string, slot models.PlaceSlot) string {
	return strings.Join([]string{
		constvars.LockKeyBookingSlotPrefix,
		doctorID,
		day,
		slot.Place,
		slot.TimeInterval.Start + "-" + slot.TimeInterval.End,
	}, ":")
}
