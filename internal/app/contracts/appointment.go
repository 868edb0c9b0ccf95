package contracts

import (
	"context"
	"doctor-appointment-service/internal/app/models"
	"doctor-appointment-service/internal/pkg/dto/requests"
	"doctor-appointment-service/internal/pkg/dto/responses"
)

type AppointmentRepository interface {
	CountByFilter(ctx context.Context, filter models.AppointmentSlotFilter) (int, error)
	Create(ctx context.Context, appointment *models.Appointment) (string, error)
	FindByDoctor(ctx context.Context, doctorID, status string) ([]models.Appointment, error)
	FindByUser(ctx context.Context, userID string) ([]models.Appointment, error)
	FindAllByDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error)
}

type BookingUsecase interface {
	Book(ctx context.Context, request *requests.BookAppointment, principal models.Principal) (*models.Appointment, error)
	ListByDoctor(ctx context.Context, doctorID string) ([]responses.Appointment, error)
	ListByUser(ctx context.Context, userID string) ([]responses.Appointment, error)
	ListForDoctorProfile(ctx context.Context, doctorID string) ([]responses.Appointment, error)
}
