package auth

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
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

type authUsecase struct {
	UserRepository   contracts.UserRepository
	DoctorRepository contracts.DoctorRepository
	SessionService   contracts.SessionService
	InternalConfig   *config.InternalConfig
	Log              *zap.Logger
	Clock            func() time.Time
}

var (
	authUsecaseInstance contracts.AuthUsecase
	onceAuthUsecase     sync.Once
)

func NewAuthUsecase(
	userRepository contracts.UserRepository,
	doctorRepository contracts.DoctorRepository,
	sessionService contracts.SessionService,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.AuthUsecase {
	onceAuthUsecase.Do(func() {
		instance := &authUsecase{
			UserRepository:   userRepository,
			DoctorRepository: doctorRepository,
			SessionService:   sessionService,
			InternalConfig:   internalConfig,
			Log:              logger,
			Clock:            time.Now,
		}
		authUsecaseInstance = instance
	})
	return authUsecaseInstance
}

func (uc *authUsecase) RegisterPatient(ctx context.Context, request *requests.RegisterPatient) (*responses.RegisterPatient, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("authUsecase.RegisterPatient called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	email := normalizeEmail(request.Email)
	existingUser, err := uc.UserRepository.FindByEmail(ctx, email)
	if err != nil {
		uc.Log.Error("authUsecase.RegisterPatient error checking existing email",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if existingUser != nil {
		return nil, exceptions.ErrEmailAlreadyExist(nil)
	}

	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		return nil, exceptions.ErrHashPassword(err)
	}

	user := &models.User{
		Name:     strings.TrimSpace(request.Name),
		Email:    email,
		Password: hashedPassword,
		Gender:   models.GenderNotSelected,
	}
	user.SetCreatedAtUpdatedAt(uc.Clock())

	userID, err := uc.UserRepository.CreateUser(ctx, user)
	if err != nil {
		uc.Log.Error("authUsecase.RegisterPatient error creating user",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	login, err := uc.openSession(ctx, userID, constvars.RolePatient, user.Email, user.Name)
	if err != nil {
		uc.Log.Error("authUsecase.RegisterPatient error creating session",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("authUsecase.RegisterPatient succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, userID),
	)
	return &responses.RegisterPatient{UserID: userID, Login: *login}, nil
}

func (uc *authUsecase) LoginPatient(ctx context.Context, request *requests.Login) (*responses.Login, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("authUsecase.LoginPatient called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	user, err := uc.UserRepository.FindByEmail(ctx, normalizeEmail(request.Email))
	if err != nil {
		return nil, err
	}
	if user == nil || !utils.CheckPasswordHash(request.Password, user.Password) {
		uc.Log.Info("authUsecase.LoginPatient rejected credentials",
			zap.String(constvars.LoggingRequestIDKey, requestID),
		)
		return nil, exceptions.ErrInvalidEmailOrPassword(nil)
	}

	response, err := uc.openSession(ctx, user.ID, constvars.RolePatient, user.Email, user.Name)
	if err != nil {
		return nil, err
	}

	uc.Log.Info("authUsecase.LoginPatient succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, user.ID),
	)
	return response, nil
}

func (uc *authUsecase) LoginDoctor(ctx context.Context, request *requests.Login) (*responses.Login, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("authUsecase.LoginDoctor called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	doctor, err := uc.DoctorRepository.FindByEmail(ctx, normalizeEmail(request.Email))
	if err != nil {
		return nil, err
	}
	if doctor == nil || !utils.CheckPasswordHash(request.Password, doctor.Password) {
		uc.Log.Info("authUsecase.LoginDoctor rejected credentials",
			zap.String(constvars.LoggingRequestIDKey, requestID),
		)
		return nil, exceptions.ErrInvalidEmailOrPassword(nil)
	}

	response, err := uc.openSession(ctx, doctor.ID, constvars.RoleDoctor, doctor.Email, doctor.Name)
	if err != nil {
		return nil, err
	}

	uc.Log.Info("authUsecase.LoginDoctor succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctor.ID),
	)
	return response, nil
}

// LoginAdmin checks the configured back-office credentials; there is no admin collection.
func (uc *authUsecase) LoginAdmin(ctx context.Context, request *requests.Login) (*responses.Login, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("authUsecase.LoginAdmin called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	admin := uc.InternalConfig.Admin
	if admin.Email == "" || admin.Password == "" ||
		normalizeEmail(request.Email) != normalizeEmail(admin.Email) ||
		request.Password != admin.Password {
		uc.Log.Info("authUsecase.LoginAdmin rejected credentials",
			zap.String(constvars.LoggingRequestIDKey, requestID),
		)
		return nil, exceptions.ErrInvalidEmailOrPassword(nil)
	}

	response, err := uc.openSession(ctx, constvars.AdminSubjectID, constvars.RoleAdmin, normalizeEmail(admin.Email), constvars.RoleAdmin)
	if err != nil {
		return nil, err
	}

	uc.Log.Info("authUsecase.LoginAdmin succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	return response, nil
}

func (uc *authUsecase) Logout(ctx context.Context, sessionData string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("authUsecase.Logout called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	session, err := uc.SessionService.ParseSessionData(ctx, sessionData)
	if err != nil {
		uc.Log.Error("authUsecase.Logout error parsing session data",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}

	err = uc.SessionService.DeleteSession(ctx, session.SessionID)
	if err != nil {
		uc.Log.Error("authUsecase.Logout error deleting session",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}

	uc.Log.Info("authUsecase.Logout succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, session.UserID),
	)
	return nil
}

// openSession stores the session in redis and signs a token carrying only its id.
func (uc *authUsecase) openSession(ctx context.Context, userID, role, email, name string) (*responses.Login, error) {
	ttl := time.Duration(uc.InternalConfig.JWT.ExpTimeInHour) * time.Hour
	session := &models.Session{
		SessionID: utils.GenerateSessionID(),
		UserID:    userID,
		Role:      role,
		Email:     email,
		Name:      name,
		ExpiresAt: uc.Clock().Add(ttl),
	}

	err := uc.SessionService.CreateSession(ctx, session)
	if err != nil {
		return nil, err
	}

	token, err := utils.GenerateSessionJWT(session.SessionID, uc.InternalConfig.JWT.Secret, ttl)
	if err != nil {
		return nil, exceptions.ErrTokenGenerate(err)
	}

	return &responses.Login{
		Token:     token,
		Role:      role,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
