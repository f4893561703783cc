package users

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
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

type userUsecase struct {
	UserRepository contracts.UserRepository
	SessionService contracts.SessionService
	MinioStorage   contracts.Storage
	InternalConfig *config.InternalConfig
	Log            *zap.Logger
	Clock          func() time.Time
}

var (
	userUsecaseInstance contracts.UserUsecase
	onceUserUsecase     sync.Once
)

func NewUserUsecase(
	userMongoRepository contracts.UserRepository,
	sessionService contracts.SessionService,
	minioStorage contracts.Storage,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.UserUsecase {
	onceUserUsecase.Do(func() {
		instance := &userUsecase{
			UserRepository: userMongoRepository,
			SessionService: sessionService,
			MinioStorage:   minioStorage,
			InternalConfig: internalConfig,
			Log:            logger,
			Clock:          time.Now,
		}
		userUsecaseInstance = instance
	})
	return userUsecaseInstance
}

func (uc *userUsecase) GetUserProfileBySession(ctx context.Context, sessionData string) (*responses.UserProfile, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("userUsecase.GetUserProfileBySession called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	user, err := uc.sessionUser(ctx, sessionData)
	if err != nil {
		uc.Log.Error("userUsecase.GetUserProfileBySession error resolving user",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	response := user.ToProfileResponse()
	uc.Log.Info("userUsecase.GetUserProfileBySession succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, user.ID),
	)
	return &response, nil
}

func (uc *userUsecase) UpdateUserProfileBySession(ctx context.Context, sessionData string, request *requests.UpdateUserProfile, image *contracts.ImageUpload) (*responses.UserProfile, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("userUsecase.UpdateUserProfileBySession called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	user, err := uc.sessionUser(ctx, sessionData)
	if err != nil {
		uc.Log.Error("userUsecase.UpdateUserProfileBySession error resolving user",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	if image != nil {
		imageURL, err := uc.uploadImage(ctx, user.ID, image)
		if err != nil {
			uc.Log.Error("userUsecase.UpdateUserProfileBySession error uploading image",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			return nil, err
		}
		user.Image = imageURL
	}

	user.Name = strings.TrimSpace(request.Name)
	user.Phone = strings.TrimSpace(request.Phone)
	user.Address = models.Address{Line1: request.Address.Line1, Line2: request.Address.Line2}
	user.Dob = request.Dob
	user.Gender = request.Gender
	if user.Gender == "" {
		user.Gender = models.GenderNotSelected
	}
	user.SetUpdatedAt(uc.Clock())

	err = uc.UserRepository.UpdateProfile(ctx, user)
	if err != nil {
		uc.Log.Error("userUsecase.UpdateUserProfileBySession error updating user",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	response := user.ToProfileResponse()
	uc.Log.Info("userUsecase.UpdateUserProfileBySession succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, user.ID),
	)
	return &response, nil
}

func (uc *userUsecase) uploadImage(ctx context.Context, userID string, image *contracts.ImageUpload) (string, error) {
	if image.Header == nil || !utils.IsAllowedImageContentType(image.Header.Header.Get(constvars.HeaderContentType)) {
		return "", exceptions.ErrImageValidation(nil)
	}
	maxSize := uc.InternalConfig.Minio.ImageMaxUploadSizeInMB << 20
	if image.Header.Size > maxSize {
		return "", exceptions.ErrImageTooLarge(nil, image.Header.Size, maxSize)
	}

	objectName := utils.GenerateUserImageObjectKey(filepath.Ext(image.Header.Filename))
	imageURL, err := uc.MinioStorage.UploadFile(ctx, image.File, image.Header, uc.InternalConfig.Minio.BucketName, objectName)
	if err != nil {
		return "", err
	}

	uc.Log.Info("userUsecase uploaded profile image",
		zap.String(constvars.LoggingUserIDKey, userID),
		zap.String(constvars.LoggingObjectKey, objectName),
	)
	return imageURL, nil
}

func (uc *userUsecase) sessionUser(ctx context.Context, sessionData string) (*models.User, error) {
	session, err := uc.SessionService.ParseSessionData(ctx, sessionData)
	if err != nil {
		return nil, err
	}
	if !session.IsPatient() {
		return nil, exceptions.ErrRoleNotPermitted(nil, session.Role, "profile", constvars.ResourceUsers)
	}

	user, err := uc.UserRepository.FindByID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, exceptions.ErrUserNotFound(nil, session.UserID)
	}
	return user, nil
}
