package storage

import (
	"bytes"
	"context"
	"doctor-appointment-service/internal/app/contracts"
	"doctor-appointment-service/internal/pkg/constvars"
	"doctor-appointment-service/internal/pkg/dto/requests"
	"doctor-appointment-service/internal/pkg/exceptions"
	"doctor-appointment-service/internal/pkg/utils"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

type objectPutter interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

type minioPictureStorage struct {
	Client        objectPutter
	BucketName    string
	PublicBaseURL string
	Log           *zap.Logger
}

func NewMinioPictureStorage(client *minio.Client, bucketName, publicBaseURL string, logger *zap.Logger) contracts.PictureStorage {
	return &minioPictureStorage{
		Client:        client,
		BucketName:    bucketName,
		PublicBaseURL: publicBaseURL,
		Log:           logger,
	}
}

// UploadPicture stores the file under <prefix>/<owner>/<generated name> and
// returns the public URL of the object.
func (m *minioPictureStorage) UploadPicture(ctx context.Context, file *requests.UploadFile) (string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	m.Log.Info("minioPictureStorage.UploadPicture called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, file.OwnerID),
	)

	extension := strings.ToLower(filepath.Ext(file.FileName))
	contentType := file.ContentType
	if contentType == "" {
		contentType = mime.TypeByExtension(extension)
	}
	if !strings.HasPrefix(contentType, "image/") {
		return "", exceptions.ErrImageValidation(fmt.Errorf("unsupported content type %q", contentType))
	}

	objectName := strings.Join([]string{file.Prefix, file.OwnerID, utils.GenerateFileName(file.Prefix, file.OwnerID, extension)}, "/")
	_, err := m.Client.PutObject(
		ctx,
		m.BucketName,
		objectName,
		bytes.NewReader(file.Data),
		int64(len(file.Data)),
		minio.PutObjectOptions{ContentType: contentType},
	)
	if err != nil {
		m.Log.Error("minioPictureStorage.UploadPicture error calling PutObject",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return "", exceptions.ErrMinioCreateObject(err, m.BucketName)
	}

	return strings.TrimRight(m.PublicBaseURL, "/") + "/" + m.BucketName + "/" + objectName, nil
}
