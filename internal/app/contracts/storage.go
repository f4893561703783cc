package contracts

import (
	"context"
	"io"
	"mime/multipart"
)

// ImageUpload is an image part taken from a multipart form.
type ImageUpload struct {
	File   io.Reader
	Header *multipart.FileHeader
}

type Storage interface {
	// UploadFile stores file under objectName and returns its public URL.
	UploadFile(ctx context.Context, file io.Reader, fileHeader *multipart.FileHeader, bucketName, objectName string) (string, error)
}
