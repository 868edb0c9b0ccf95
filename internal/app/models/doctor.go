package models

type Doctor struct {
	ID              string        `json:"_id" bson:"_id,omitempty"`
	Owner           string        `json:"user" bson:"user"`
	Name            string        `json:"name" bson:"name"`
	ContactNumber   string        `json:"contactNumber" bson:"contactNumber"`
	ExperienceYears int           `json:"experienceYears" bson:"experienceYears"`
	Specialist      string        `json:"specialist" bson:"specialist"`
	Education       string        `json:"education" bson:"education"`
	RegistrationNo  string        `json:"registrationNo" bson:"registrationNo"`
	Language        string        `json:"language" bson:"language"`
	Fees            float64       `json:"fees" bson:"fees"`
	About           string        `json:"about" bson:"about"`
	Picture         string        `json:"picture,omitempty" bson:"picture,omitempty"`
	Schedule        []DaySchedule `json:"schedule" bson:"schedule"`
	Qualification   string        `json:"qualification" bson:"qualification"`
	Gender          string        `json:"gender" bson:"gender"`
	Location        string        `json:"location" bson:"location"`
	Achievement     string        `json:"achievement" bson:"achievement"`
	TimeModel       `bson:",inline"`
}

// DoctorPartial is the projection served by list views.
type DoctorPartial struct {
	ID              string  `json:"_id" bson:"_id,omitempty"`
	Name            string  `json:"name" bson:"name"`
	ExperienceYears int     `json:"experienceYears" bson:"experienceYears"`
	Specialist      string  `json:"specialist" bson:"specialist"`
	Fees            float64 `json:"fees" bson:"fees"`
	Picture         string  `json:"picture,omitempty" bson:"picture,omitempty"`
}

type DaySchedule struct {
	Day    string      `json:"day" bson:"day" validate:"required,weekday"`
	Places []PlaceSlot `json:"places" bson:"places" validate:"required,min=1,dive"`
}

type PlaceSlot struct {
	Place        string       `json:"place" bson:"place" validate:"required"`
	TimeInterval TimeInterval `json:"timeInterval" bson:"timeInterval" validate:"required"`
	MaxPatients  int          `json:"maxPatients" bson:"maxPatients" validate:"required,gt=0"`
}

type TimeInterval struct {
	Start string `json:"start" bson:"start" validate:"required,clock"`
	End   string `json:"end" bson:"end" validate:"required,clock"`
}

func (d *Doctor) Partial() DoctorPartial {
	return DoctorPartial{
		ID:              d.ID,
		Name:            d.Name,
		ExperienceYears: d.ExperienceYears,
		Specialist:      d.Specialist,
		Fees:            d.Fees,
		Picture:         d.Picture,
	}
}

func (d *Doctor) IsOwnedBy(accountID string) bool {
	return d.Owner != "" && d.Owner == accountID
}

func (d *Doctor) FindDay(day string) (DaySchedule, bool) {
	for _, daySchedule := range d.Schedule {
		if daySchedule.Day == day {
			return daySchedule, true
		}
	}
	return DaySchedule{}, false
}

// FindPlace matches a slot by its natural key within the day.
func (s DaySchedule) FindPlace(place string, interval TimeInterval) (PlaceSlot, bool) {
	for _, slot := range s.Places {
		if slot.Place == place && slot.TimeInterval == interval {
			return slot, true
		}
	}
	return PlaceSlot{}, false
}
