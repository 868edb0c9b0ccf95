package contracts

import (
	"context"
	"doctor-appointment-service/internal/app/models"
)

type PrincipalResolver interface {
	Resolve(ctx context.Context, credential string) (models.Principal, error)
}
