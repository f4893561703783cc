package controllers

import (
	"context"
	"doctor-appointment-service/internal/app/contracts"
	"doctor-appointment-service/internal/pkg/constvars"
	"doctor-appointment-service/internal/pkg/dto/requests"
	"doctor-appointment-service/internal/pkg/dto/responses"
	"doctor-appointment-service/internal/pkg/exceptions"
	"doctor-appointment-service/internal/pkg/utils"
	"net/http"

	"go.uber.org/zap"
)

type AuthController struct {
	Log         *zap.Logger
	AuthUsecase contracts.AuthUsecase
}

func NewAuthController(logger *zap.Logger, authUsecase contracts.AuthUsecase) *AuthController {
	return &AuthController{
		Log:         logger,
		AuthUsecase: authUsecase,
	}
}

func (ctrl *AuthController) RegisterPatient(w http.ResponseWriter, r *http.Request) {
	requestID := requestIDFromContext(r)

	request := new(requests.RegisterPatient)
	if err := decodeJSON(r, request, false); err != nil {
		ctrl.Log.Error("AuthController.RegisterPatient invalid request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	response, err := ctrl.AuthUsecase.RegisterPatient(ctx, request)
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.RegisterSuccess, response)
}

func (ctrl *AuthController) LoginPatient(w http.ResponseWriter, r *http.Request) {
	ctrl.login(w, r, ctrl.AuthUsecase.LoginPatient)
}

func (ctrl *AuthController) LoginDoctor(w http.ResponseWriter, r *http.Request) {
	ctrl.login(w, r, ctrl.AuthUsecase.LoginDoctor)
}

func (ctrl *AuthController) LoginAdmin(w http.ResponseWriter, r *http.Request) {
	ctrl.login(w, r, ctrl.AuthUsecase.LoginAdmin)
}

func (ctrl *AuthController) login(w http.ResponseWriter, r *http.Request, loginFn func(context.Context, *requests.Login) (*responses.Login, error)) {
	requestID := requestIDFromContext(r)

	request := new(requests.Login)
	if err := decodeJSON(r, request, false); err != nil {
		ctrl.Log.Error("AuthController.login invalid request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	response, err := loginFn(ctx, request)
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.LoginSuccess, response)
}

func (ctrl *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	sessionData, ok := sessionDataFromContext(r)
	if !ok {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingSessionData(nil))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	if err := ctrl.AuthUsecase.Logout(ctx, sessionData); err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.LogoutSuccess, nil)
}
