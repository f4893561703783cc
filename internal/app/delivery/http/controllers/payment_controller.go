package controllers

import (
	"context"
	"doctor-appointment-service/internal/app/contracts"
	"doctor-appointment-service/internal/pkg/constvars"
	"doctor-appointment-service/internal/pkg/dto/requests"
	"doctor-appointment-service/internal/pkg/exceptions"
	"doctor-appointment-service/internal/pkg/utils"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type PaymentController struct {
	Log            *zap.Logger
	PaymentUsecase contracts.PaymentUsecase
}

func NewPaymentController(logger *zap.Logger, paymentUsecase contracts.PaymentUsecase) *PaymentController {
	return &PaymentController{
		Log:            logger,
		PaymentUsecase: paymentUsecase,
	}
}

func (ctrl *PaymentController) CreateOrder(w http.ResponseWriter, r *http.Request) {
	requestID := requestIDFromContext(r)
	sessionData, ok := sessionDataFromContext(r)
	if !ok {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingSessionData(nil))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	response, err := ctrl.PaymentUsecase.CreateOrder(ctx, sessionData, chi.URLParam(r, "appointmentID"))
	if err != nil {
		ctrl.Log.Error("PaymentController.CreateOrder PaymentUsecase.CreateOrder error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.PaymentOrderCreatedSuccess, response)
}

func (ctrl *PaymentController) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	sessionData, ok := sessionDataFromContext(r)
	if !ok {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingSessionData(nil))
		return
	}

	request := new(requests.VerifyPayment)
	if err := decodeJSON(r, request, false); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	response, err := ctrl.PaymentUsecase.VerifyPayment(ctx, sessionData, request)
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.PaymentConfirmedSuccess, response)
}

// HandleWebhook needs the raw body because the signature covers its exact bytes.
func (ctrl *PaymentController) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	requestID := requestIDFromContext(r)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	defer r.Body.Close()

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	err = ctrl.PaymentUsecase.HandleWebhook(ctx, body, r.Header.Get(constvars.HeaderXRazorpaySignature))
	if err != nil {
		ctrl.Log.Error("PaymentController.HandleWebhook PaymentUsecase.HandleWebhook error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.PaymentWebhookAccepted, nil)
}
