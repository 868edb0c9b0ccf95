package slot

import (
	"doctor-appointment-service/internal/app/models"
	"doctor-appointment-service/internal/pkg/exceptions"
	"doctor-appointment-service/internal/pkg/utils"
)

// window is a published slot converted to minutes since midnight.
type window struct {
	Start int
	End   int
}

func (w window) totalMinutes() int {
	return w.End - w.Start
}

func parseWindow(interval models.TimeInterval) (window, error) {
	start, err := utils.ParseClock(interval.Start)
	if err != nil {
		return window{}, exceptions.ErrInvalidClock(err, interval.Start)
	}
	end, err := utils.ParseClock(interval.End)
	if err != nil {
		return window{}, exceptions.ErrInvalidClock(err, interval.End)
	}
	return window{Start: start, End: end}, nil
}
