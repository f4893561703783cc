package controllers

import (
	"context"
	"doctor-appointment-service/internal/app/contracts"
	"doctor-appointment-service/internal/pkg/constvars"
	"doctor-appointment-service/internal/pkg/dto/requests"
	"doctor-appointment-service/internal/pkg/exceptions"
	"doctor-appointment-service/internal/pkg/utils"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type DoctorController struct {
	Log           *zap.Logger
	DoctorUsecase contracts.DoctorUsecase
	SlotUsecase   contracts.SlotUsecase
}

func NewDoctorController(logger *zap.Logger, doctorUsecase contracts.DoctorUsecase, slotUsecase contracts.SlotUsecase) *DoctorController {
	return &DoctorController{
		Log:           logger,
		DoctorUsecase: doctorUsecase,
		SlotUsecase:   slotUsecase,
	}
}

func (ctrl *DoctorController) FindAll(w http.ResponseWriter, r *http.Request) {
	requestID := requestIDFromContext(r)

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	response, err := ctrl.DoctorUsecase.FindAll(ctx)
	if err != nil {
		ctrl.Log.Error("DoctorController.FindAll DoctorUsecase.FindAll error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DoctorListSuccess, response)
}

func (ctrl *DoctorController) FindByID(w http.ResponseWriter, r *http.Request) {
	doctorID := chi.URLParam(r, "doctorID")

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	response, err := ctrl.DoctorUsecase.FindByID(ctx, doctorID)
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DoctorGetSuccess, response)
}

func (ctrl *DoctorController) GetAvailableSlots(w http.ResponseWriter, r *http.Request) {
	doctorID := chi.URLParam(r, "doctorID")

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	response, err := ctrl.SlotUsecase.GetAvailableSlots(ctx, doctorID)
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.AvailableSlotsGetSuccess, response)
}

func (ctrl *DoctorController) CreateDoctor(w http.ResponseWriter, r *http.Request) {
	requestID := requestIDFromContext(r)

	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
		ctrl.Log.Error("DoctorController.CreateDoctor failed to parse multipart form",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseMultipartForm(err))
		return
	}
	defer r.MultipartForm.RemoveAll()

	request, err := doctorRequestFromForm(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	if err := utils.ValidateStruct(request); err != nil {
		ctrl.Log.Error("DoctorController.CreateDoctor validation error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	image, closeImage, err := formImage(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	defer closeImage()

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	response, err := ctrl.DoctorUsecase.CreateDoctor(ctx, request, image)
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("DoctorController.CreateDoctor succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, response.DoctorID))
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.DoctorCreatedSuccess, response)
}

func doctorRequestFromForm(r *http.Request) (*requests.CreateDoctor, error) {
	request := &requests.CreateDoctor{
		Name:       strings.TrimSpace(r.FormValue("name")),
		Email:      strings.TrimSpace(r.FormValue("email")),
		Password:   r.FormValue("password"),
		Speciality: strings.TrimSpace(r.FormValue("speciality")),
		Degree:     strings.TrimSpace(r.FormValue("degree")),
		Experience: strings.TrimSpace(r.FormValue("experience")),
		About:      strings.TrimSpace(r.FormValue("about")),
	}

	if raw := r.FormValue("fees"); raw != "" {
		fees, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, exceptions.ErrInputValidation(err)
		}
		if math.IsInf(fees, 0) || math.IsNaN(fees) {
			return nil, exceptions.ErrInputValidation(fmt.Errorf("fees %q is not a finite number", raw))
		}
		request.Fees = fees
	}

	if err := formAddress(r, &request.Address); err != nil {
		return nil, err
	}
	return request, nil
}

func (ctrl *DoctorController) ChangeAvailability(w http.ResponseWriter, r *http.Request) {
	sessionData, ok := sessionDataFromContext(r)
	if !ok {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingSessionData(nil))
		return
	}

	request := new(requests.ChangeAvailability)
	if err := decodeJSON(r, request, true); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	response, err := ctrl.DoctorUsecase.ChangeAvailability(ctx, sessionData, chi.URLParam(r, "doctorID"), request)
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DoctorAvailabilitySuccess, response)
}

func (ctrl *DoctorController) GetProfile(w http.ResponseWriter, r *http.Request) {
	sessionData, ok := sessionDataFromContext(r)
	if !ok {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingSessionData(nil))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	response, err := ctrl.DoctorUsecase.GetProfileBySession(ctx, sessionData)
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ProfileGetSuccess, response)
}

func (ctrl *DoctorController) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	sessionData, ok := sessionDataFromContext(r)
	if !ok {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingSessionData(nil))
		return
	}

	request := new(requests.UpdateDoctorProfile)
	if err := decodeJSON(r, request, false); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	response, err := ctrl.DoctorUsecase.UpdateProfileBySession(ctx, sessionData, request)
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ProfileUpdateSuccess, response)
}
