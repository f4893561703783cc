package storage

import (
	"context"
	"doctor-appointment-service/internal/app/contracts"
	"doctor-appointment-service/internal/pkg/constvars"
	"doctor-appointment-service/internal/pkg/exceptions"
	"io"
	"mime/multipart"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

type minioStorage struct {
	MinioClient   *minio.Client
	PublicBaseUrl string
	Log           *zap.Logger
}

func NewMinioStorage(minioClient *minio.Client, publicBaseUrl string, logger *zap.Logger) contracts.Storage {
	return &minioStorage{
		MinioClient:   minioClient,
		PublicBaseUrl: publicBaseUrl,
		Log:           logger,
	}
}

func (m *minioStorage) UploadFile(ctx context.Context, file io.Reader, fileHeader *multipart.FileHeader, bucketName, objectName string) (string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	_, err := m.MinioClient.PutObject(ctx, bucketName, objectName, file, fileHeader.Size, minio.PutObjectOptions{
		ContentType: fileHeader.Header.Get(constvars.HeaderContentType),
	})
	if err != nil {
		m.Log.Error("minioStorage.UploadFile error putting object",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingBucketKey, bucketName),
			zap.String(constvars.LoggingObjectKey, objectName),
			zap.Error(err),
		)
		return "", exceptions.ErrMinioCreateObject(err, bucketName)
	}

	m.Log.Info("minioStorage.UploadFile succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBucketKey, bucketName),
		zap.String(constvars.LoggingObjectKey, objectName),
	)
	return PublicObjectURL(m.PublicBaseUrl, bucketName, objectName), nil
}

func PublicObjectURL(baseUrl, bucketName, objectName string) string {
	escaped, err := url.JoinPath(strings.TrimSuffix(baseUrl, "/"), bucketName, objectName)
	if err != nil {
		return strings.TrimSuffix(baseUrl, "/") + "/" + bucketName + "/" + objectName
	}
	return escaped
}
