package contracts

import (
	"context"
	"doctor-appointment-service/internal/app/models"
)

type UserRepository interface {
	FindByID(ctx context.Context, userID string) (*models.User, error)
	FindByIDs(ctx context.Context, userIDs []string) ([]models.User, error)
}
