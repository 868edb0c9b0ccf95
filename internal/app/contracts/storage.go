package contracts

import (
	"context"
	"doctor-appointment-service/internal/pkg/dto/requests"
)

type PictureStorage interface {
	UploadPicture(ctx context.Context, file *requests.UploadFile) (string, error)
}
