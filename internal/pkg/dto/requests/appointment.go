package requests

import "doctor-appointment-service/internal/app/models"

type BookAppointment struct {
	DoctorID     string              `json:"doctorId" validate:"required"`
	Day          string              `json:"day" validate:"required,weekday"`
	Place        string              `json:"place" validate:"required"`
	TimeInterval models.TimeInterval `json:"timeInterval" validate:"required"`
}
