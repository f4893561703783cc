package contracts

import (
	"context"
	"doctor-appointment-service/internal/app/models"
	"doctor-appointment-service/internal/pkg/dto/requests"
	"doctor-appointment-service/internal/pkg/dto/responses"
)

type DoctorRepository interface {
	CreateDoctor(ctx context.Context, doctor *models.Doctor) (doctorID string, err error)
	FindByID(ctx context.Context, doctorID string) (*models.Doctor, error)
	FindByEmail(ctx context.Context, email string) (*models.Doctor, error)
	FindAll(ctx context.Context) ([]models.Doctor, error)
	UpdateProfile(ctx context.Context, doctor *models.Doctor) error
	SetAvailability(ctx context.Context, doctorID string, available bool) error
}

type DoctorUsecase interface {
	FindAll(ctx context.Context) ([]responses.Doctor, error)
	FindByID(ctx context.Context, doctorID string) (*responses.Doctor, error)
	CreateDoctor(ctx context.Context, request *requests.CreateDoctor, image *ImageUpload) (*responses.CreateDoctor, error)
	ChangeAvailability(ctx context.Context, sessionData, doctorID string, request *requests.ChangeAvailability) (*responses.Doctor, error)
	GetProfileBySession(ctx context.Context, sessionData string) (*responses.DoctorProfile, error)
	UpdateProfileBySession(ctx context.Context, sessionData string, request *requests.UpdateDoctorProfile) (*responses.DoctorProfile, error)
}
