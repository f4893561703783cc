package utils

import (
	"doctor-appointment-service/internal/pkg/constvars"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

func GenerateRequestID() string {
	return constvars.RequestIDPrefix + strings.ReplaceAll(uuid.NewString(), "-", "")
}

func GenerateSessionID() string {
	return uuid.NewString()
}

func GenerateUserImageObjectKey(fileExtension string) string {
	return fmt.Sprintf(constvars.MinioUserImageObjectKeyFormat, uuid.NewString(), strings.ToLower(fileExtension))
}

func GenerateDoctorImageObjectKey(fileExtension string) string {
	return fmt.Sprintf(constvars.MinioDoctorImageObjectKeyFormat, uuid.NewString(), strings.ToLower(fileExtension))
}
