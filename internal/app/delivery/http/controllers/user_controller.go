package controllers

import (
	"context"
	"doctor-appointment-service/internal/app/contracts"
	"doctor-appointment-service/internal/pkg/constvars"
	"doctor-appointment-service/internal/pkg/dto/requests"
	"doctor-appointment-service/internal/pkg/exceptions"
	"doctor-appointment-service/internal/pkg/utils"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

type UserController struct {
	Log         *zap.Logger
	UserUsecase contracts.UserUsecase
}

func NewUserController(logger *zap.Logger, userUsecase contracts.UserUsecase) *UserController {
	return &UserController{
		Log:         logger,
		UserUsecase: userUsecase,
	}
}

func (ctrl *UserController) GetUserProfileBySession(w http.ResponseWriter, r *http.Request) {
	requestID := requestIDFromContext(r)
	sessionData, ok := sessionDataFromContext(r)
	if !ok {
		ctrl.Log.Error("UserController.GetUserProfileBySession sessionData not found in context",
			zap.String(constvars.LoggingRequestIDKey, requestID))
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingSessionData(nil))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	response, err := ctrl.UserUsecase.GetUserProfileBySession(ctx, sessionData)
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ProfileGetSuccess, response)
}

func (ctrl *UserController) UpdateUserProfileBySession(w http.ResponseWriter, r *http.Request) {
	requestID := requestIDFromContext(r)
	sessionData, ok := sessionDataFromContext(r)
	if !ok {
		ctrl.Log.Error("UserController.UpdateUserProfileBySession sessionData not found in context",
			zap.String(constvars.LoggingRequestIDKey, requestID))
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingSessionData(nil))
		return
	}

	request := new(requests.UpdateUserProfile)
	var image *contracts.ImageUpload
	if isMultipart(r) {
		if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
			ctrl.Log.Error("UserController.UpdateUserProfileBySession failed to parse multipart form",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err))
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseMultipartForm(err))
			return
		}
		defer r.MultipartForm.RemoveAll()

		formRequest, err := userProfileRequestFromForm(r)
		if err != nil {
			utils.BuildErrorResponse(ctrl.Log, w, err)
			return
		}
		request = formRequest

		formFile, closeImage, err := formImage(r)
		if err != nil {
			utils.BuildErrorResponse(ctrl.Log, w, err)
			return
		}
		defer closeImage()
		image = formFile
	} else if err := decodeJSON(r, request, false); err != nil {
		ctrl.Log.Error("UserController.UpdateUserProfileBySession invalid request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	response, err := ctrl.UserUsecase.UpdateUserProfileBySession(ctx, sessionData, request, image)
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ProfileUpdateSuccess, response)
}

func userProfileRequestFromForm(r *http.Request) (*requests.UpdateUserProfile, error) {
	request := &requests.UpdateUserProfile{
		Name:   strings.TrimSpace(r.FormValue("name")),
		Phone:  strings.TrimSpace(r.FormValue("phone")),
		Gender: strings.TrimSpace(r.FormValue("gender")),
		Dob:    strings.TrimSpace(r.FormValue("dob")),
	}
	if err := formAddress(r, &request.Address); err != nil {
		return nil, err
	}
	if err := utils.ValidateStruct(request); err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}
	return request, nil
}
