package responses

import (
	"doctor-appointment-service/internal/app/models"
	"time"
)

type AppointmentUser struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type AppointmentDoctor struct {
	ID         string `json:"_id"`
	Name       string `json:"name"`
	Specialist string `json:"specialist"`
}

// Appointment carries the referenced user or doctor summary when it could be resolved.
type Appointment struct {
	ID           string              `json:"_id"`
	UserID       string              `json:"userId"`
	DoctorID     string              `json:"doctorId"`
	User         *AppointmentUser    `json:"user,omitempty"`
	Doctor       *AppointmentDoctor  `json:"doctor,omitempty"`
	Day          string              `json:"day"`
	Date         string              `json:"date"`
	Place        string              `json:"place"`
	TimeInterval models.TimeInterval `json:"timeInterval"`
	BookedAt     time.Time           `json:"bookedAt"`
	Status       string              `json:"status"`
}
