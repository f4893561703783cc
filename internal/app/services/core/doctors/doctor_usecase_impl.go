package doctors

import (
	"context"
	"doctor-appointment-service/internal/app/config"
	"doctor-appointment-service/internal/app/contracts"
	"doctor-appointment-service/internal/app/models"
	"doctor-appointment-service/internal/pkg/constvars"
	"doctor-appointment-service/internal/pkg/dto/requests"
	"doctor-appointment-service/internal/pkg/dto/responses"
	"doctor-appointment-service/internal/pkg/exceptions"
	"doctor-appointment-service/internal/pkg/utils"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

type doctorUsecase struct {
	DoctorRepository contracts.DoctorRepository
	SessionService   contracts.SessionService
	MinioStorage     contracts.Storage
	SlotCache        contracts.SlotCache
	InternalConfig   *config.InternalConfig
	Log              *zap.Logger
	Clock            func() time.Time
}

var (
	doctorUsecaseInstance contracts.DoctorUsecase
	onceDoctorUsecase     sync.Once
)

func NewDoctorUsecase(
	doctorRepository contracts.DoctorRepository,
	sessionService contracts.SessionService,
	minioStorage contracts.Storage,
	slotCache contracts.SlotCache,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.DoctorUsecase {
	onceDoctorUsecase.Do(func() {
		instance := &doctorUsecase{
			DoctorRepository: doctorRepository,
			SessionService:   sessionService,
			MinioStorage:     minioStorage,
			SlotCache:        slotCache,
			InternalConfig:   internalConfig,
			Log:              logger,
			Clock:            time.Now,
		}
		doctorUsecaseInstance = instance
	})
	return doctorUsecaseInstance
}

func (uc *doctorUsecase) FindAll(ctx context.Context) ([]responses.Doctor, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("doctorUsecase.FindAll called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	doctors, err := uc.DoctorRepository.FindAll(ctx)
	if err != nil {
		uc.Log.Error("doctorUsecase.FindAll error fetching doctors",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	response := make([]responses.Doctor, 0, len(doctors))
	for i := range doctors {
		response = append(response, doctors[i].ToResponse())
	}

	uc.Log.Info("doctorUsecase.FindAll succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingCountKey, len(response)),
	)
	return response, nil
}

func (uc *doctorUsecase) FindByID(ctx context.Context, doctorID string) (*responses.Doctor, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("doctorUsecase.FindByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
	)

	doctor, err := uc.findDoctor(ctx, doctorID)
	if err != nil {
		uc.Log.Error("doctorUsecase.FindByID error fetching doctor",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	response := doctor.ToResponse()
	uc.Log.Info("doctorUsecase.FindByID succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	return &response, nil
}

func (uc *doctorUsecase) CreateDoctor(ctx context.Context, request *requests.CreateDoctor, image *contracts.ImageUpload) (*responses.CreateDoctor, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("doctorUsecase.CreateDoctor called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	email := strings.ToLower(strings.TrimSpace(request.Email))
	existing, err := uc.DoctorRepository.FindByEmail(ctx, email)
	if err != nil {
		uc.Log.Error("doctorUsecase.CreateDoctor error checking existing email",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if existing != nil {
		return nil, exceptions.ErrEmailAlreadyExist(nil)
	}

	if image == nil || image.Header == nil {
		return nil, exceptions.ErrImageValidation(errors.New("doctor image is required"))
	}
	if !utils.IsAllowedImageContentType(image.Header.Header.Get(constvars.HeaderContentType)) {
		return nil, exceptions.ErrImageValidation(nil)
	}
	maxSize := uc.InternalConfig.Minio.ImageMaxUploadSizeInMB << 20
	if image.Header.Size > maxSize {
		return nil, exceptions.ErrImageTooLarge(nil, image.Header.Size, maxSize)
	}

	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		return nil, exceptions.ErrHashPassword(err)
	}

	objectName := utils.GenerateDoctorImageObjectKey(filepath.Ext(image.Header.Filename))
	imageURL, err := uc.MinioStorage.UploadFile(ctx, image.File, image.Header, uc.InternalConfig.Minio.BucketName, objectName)
	if err != nil {
		uc.Log.Error("doctorUsecase.CreateDoctor error uploading image",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	doctor := &models.Doctor{
		Name:        strings.TrimSpace(request.Name),
		Email:       email,
		Password:    hashedPassword,
		Image:       imageURL,
		Speciality:  request.Speciality,
		Degree:      request.Degree,
		Experience:  request.Experience,
		About:       request.About,
		Fees:        request.Fees,
		Available:   true,
		Address:     models.Address{Line1: request.Address.Line1, Line2: request.Address.Line2},
		SlotsBooked: models.BookedSlots{},
	}
	doctor.SetCreatedAtUpdatedAt(uc.Clock())

	doctorID, err := uc.DoctorRepository.CreateDoctor(ctx, doctor)
	if err != nil {
		uc.Log.Error("doctorUsecase.CreateDoctor error inserting doctor",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("doctorUsecase.CreateDoctor succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
	)
	return &responses.CreateDoctor{DoctorID: doctorID}, nil
}

// ChangeAvailability flips the flag unless an explicit value is requested.
// Admins may change any doctor, doctors only themselves.
func (uc *doctorUsecase) ChangeAvailability(ctx context.Context, sessionData, doctorID string, request *requests.ChangeAvailability) (*responses.Doctor, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("doctorUsecase.ChangeAvailability called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
	)

	session, err := uc.SessionService.ParseSessionData(ctx, sessionData)
	if err != nil {
		uc.Log.Error("doctorUsecase.ChangeAvailability error parsing session data",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	doctor, err := uc.findDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	if !session.IsAdmin() && !(session.IsDoctor() && session.UserID == doctor.ID) {
		return nil, exceptions.ErrNotDoctorOwner(nil, session.UserID, session.Role, doctorID)
	}

	available := !doctor.Available
	if request != nil && request.Available != nil {
		available = *request.Available
	}

	err = uc.DoctorRepository.SetAvailability(ctx, doctor.ID, available)
	if err != nil {
		uc.Log.Error("doctorUsecase.ChangeAvailability error updating doctor",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	uc.SlotCache.Invalidate(doctor.ID)

	doctor.Available = available
	response := doctor.ToResponse()

	uc.Log.Info("doctorUsecase.ChangeAvailability succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
		zap.Bool("available", available),
	)
	return &response, nil
}

func (uc *doctorUsecase) GetProfileBySession(ctx context.Context, sessionData string) (*responses.DoctorProfile, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("doctorUsecase.GetProfileBySession called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	doctor, err := uc.sessionDoctor(ctx, sessionData)
	if err != nil {
		uc.Log.Error("doctorUsecase.GetProfileBySession error resolving doctor",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	response := doctor.ToProfileResponse()
	uc.Log.Info("doctorUsecase.GetProfileBySession succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	return &response, nil
}

func (uc *doctorUsecase) UpdateProfileBySession(ctx context.Context, sessionData string, request *requests.UpdateDoctorProfile) (*responses.DoctorProfile, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("doctorUsecase.UpdateProfileBySession called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	doctor, err := uc.sessionDoctor(ctx, sessionData)
	if err != nil {
		uc.Log.Error("doctorUsecase.UpdateProfileBySession error resolving doctor",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	if request.Fees != nil {
		doctor.Fees = *request.Fees
	}
	if request.About != nil {
		doctor.About = *request.About
	}
	if request.Address != nil {
		doctor.Address = models.Address{Line1: request.Address.Line1, Line2: request.Address.Line2}
	}
	if request.Available != nil {
		doctor.Available = *request.Available
	}
	doctor.SetUpdatedAt(uc.Clock())

	err = uc.DoctorRepository.UpdateProfile(ctx, doctor)
	if err != nil {
		uc.Log.Error("doctorUsecase.UpdateProfileBySession error updating doctor",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	uc.SlotCache.Invalidate(doctor.ID)

	response := doctor.ToProfileResponse()
	uc.Log.Info("doctorUsecase.UpdateProfileBySession succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctor.ID),
	)
	return &response, nil
}

func (uc *doctorUsecase) sessionDoctor(ctx context.Context, sessionData string) (*models.Doctor, error) {
	session, err := uc.SessionService.ParseSessionData(ctx, sessionData)
	if err != nil {
		return nil, err
	}
	if !session.IsDoctor() {
		return nil, exceptions.ErrNotDoctorOwner(nil, session.UserID, session.Role, session.UserID)
	}
	return uc.findDoctor(ctx, session.UserID)
}

func (uc *doctorUsecase) findDoctor(ctx context.Context, doctorID string) (*models.Doctor, error) {
	doctor, err := uc.DoctorRepository.FindByID(ctx, doctorID)
	if err != nil {
		if exceptions.IsKind(err, exceptions.KindNotFound) {
			return nil, exceptions.ErrDoctorNotFound(err, doctorID)
		}
		return nil, err
	}
	if doctor == nil {
		return nil, exceptions.ErrDoctorNotFound(nil, doctorID)
	}
	return doctor, nil
}
