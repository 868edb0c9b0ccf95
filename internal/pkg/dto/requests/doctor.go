package requests

import "doctor-appointment-service/internal/app/models"

type CreateDoctor struct {
	Name            string               `json:"name" validate:"required"`
	ContactNumber   string               `json:"contactNumber"`
	ExperienceYears int                  `json:"experienceYears" validate:"gte=0"`
	Specialist      string               `json:"specialist" validate:"required"`
	Education       string               `json:"education"`
	RegistrationNo  string               `json:"registrationNo"`
	Language        string               `json:"language"`
	Fees            float64              `json:"fees" validate:"gte=0"`
	About           string               `json:"about"`
	Picture         string               `json:"picture"`
	Schedule        []models.DaySchedule `json:"schedule" validate:"dive"`
	Qualification   string               `json:"qualification"`
	Gender          string               `json:"gender" validate:"omitempty,oneof=Male Female Other"`
	Location        string               `json:"location"`
	Achievement     string               `json:"achievement"`

	PictureFile     []byte `json:"-"`
	PictureFileName string `json:"-"`
}

// UpdateDoctor is a partial patch, nil fields are left untouched.
type UpdateDoctor struct {
	Name               *string               `json:"name" validate:"omitempty,min=1"`
	ContactNumber      *string               `json:"contactNumber"`
	ExperienceYears    *int                  `json:"experienceYears" validate:"omitempty,gte=0"`
	Specialist         *string               `json:"specialist" validate:"omitempty,min=1"`
	Education          *string               `json:"education"`
	RegistrationNo     *string               `json:"registrationNo"`
	Language           *string               `json:"language"`
	Fees               *float64              `json:"fees" validate:"omitempty,gte=0"`
	About              *string               `json:"about"`
	Picture            *string               `json:"picture"`
	ExistingPictureUrl *string               `json:"existingPictureUrl"`
	Schedule           *[]models.DaySchedule `json:"schedule" validate:"omitempty,dive"`
	Qualification      *string               `json:"qualification"`
	Gender             *string               `json:"gender" validate:"omitempty,oneof=Male Female Other"`
	Location           *string               `json:"location"`
	Achievement        *string               `json:"achievement"`

	PictureFile     []byte `json:"-"`
	PictureFileName string `json:"-"`
}
