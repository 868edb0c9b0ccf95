package contracts

import (
	"context"
	"doctor-appointment-service/internal/app/models"
	"doctor-appointment-service/internal/pkg/dto/requests"
)

// DoctorRepository returns nil, nil when a lookup matches no document.
type DoctorRepository interface {
	FindByID(ctx context.Context, doctorID string) (*models.Doctor, error)
	FindByIDs(ctx context.Context, doctorIDs []string) ([]models.Doctor, error)
	FindByOwner(ctx context.Context, ownerID string) (*models.Doctor, error)
	FindAllPartial(ctx context.Context) ([]models.DoctorPartial, error)
	Create(ctx context.Context, doctor *models.Doctor) (string, error)
	Save(ctx context.Context, doctor *models.Doctor) error
	DeleteByID(ctx context.Context, doctorID string) error
}

type DoctorUsecase interface {
	GetByID(ctx context.Context, doctorID string) (*models.Doctor, error)
	GetByOwner(ctx context.Context, ownerID string) (*models.Doctor, error)
	ListAll(ctx context.Context) ([]models.DoctorPartial, error)
	Create(ctx context.Context, request *requests.CreateDoctor, requesterID string) (*models.Doctor, error)
	Update(ctx context.Context, doctorID string, request *requests.UpdateDoctor, requesterID string) (*models.Doctor, error)
	Delete(ctx context.Context, doctorID, requesterID string) error
	RefreshList(ctx context.Context) (int, error)
}
