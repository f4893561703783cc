package exceptions

import (
	"doctor-appointment-service/internal/pkg/constvars"
	"fmt"
)

var (
	ErrURLParamIDValidation = func(err error, paramName string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, fmt.Sprintf(constvars.ErrDevURLParamIDValidation, paramName))
	}
	ErrImageValidation = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientInvalidImageFormat, constvars.ErrDevImageValidationFailed)
	}
	ErrImageTooLarge = func(err error, size, limit int64) *CustomError {
		return BuildKindError(err, KindInvalidInput, constvars.ErrClientImageTooLarge, fmt.Sprintf(constvars.ErrDevImageTooLarge, size, limit))
	}
	ErrInputValidation = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, FormatFirstValidationError(err), constvars.ErrDevValidationFailed)
	}
	ErrCannotParseJSON = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, constvars.ErrDevCannotParseJSON)
	}
	ErrCannotParseMultipartForm = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, constvars.ErrDevCannotParseMultipartForm)
	}
	ErrCannotMarshalJSON = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevCannotMarshalJSON)
	}
	ErrServerDeadlineExceeded = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusGatewayTimeout, constvars.ErrClientServerLongRespond, constvars.ErrDevServerDeadlineExceeded)
	}
	ErrServerProcess = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientCannotProcessRequest, constvars.ErrDevServerProcess)
	}
	ErrMissingRequestID = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevMissingRequestID)
	}
	ErrMissingSessionData = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusUnauthorized, constvars.ErrClientNotLoggedIn, constvars.ErrDevMissingSessionData)
	}

	// Auth
	ErrHashPassword = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevFailedToHashPassword)
	}
	ErrInvalidEmailOrPassword = func(err error) *CustomError {
		return BuildKindError(err, KindUnauthenticated, constvars.ErrClientInvalidEmailOrPassword, constvars.ErrDevInvalidCredentials)
	}
	ErrEmailAlreadyExist = func(err error) *CustomError {
		return BuildKindError(err, KindInvalidInput, constvars.ErrClientEmailAlreadyExists, constvars.ErrDevEmailAlreadyExists)
	}
	ErrTokenMissing = func(err error) *CustomError {
		return BuildKindError(err, KindUnauthenticated, constvars.ErrClientNotAuthorized, constvars.ErrDevAuthTokenMissing)
	}
	ErrTokenGenerate = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevAuthGenerateToken)
	}
	ErrTokenInvalidOrExpired = func(err error) *CustomError {
		return BuildKindError(err, KindUnauthenticated, constvars.ErrClientNotLoggedIn, constvars.ErrDevAuthTokenInvalidOrExpired)
	}
	ErrInvalidSession = func(err error) *CustomError {
		return BuildKindError(err, KindUnauthenticated, constvars.ErrClientNotLoggedIn, constvars.ErrDevAuthInvalidSession)
	}
	ErrRoleNotPermitted = func(err error, role, method, path string) *CustomError {
		return BuildKindError(err, KindForbidden, constvars.ErrClientNotAuthorized, fmt.Sprintf(constvars.ErrDevRoleNotPermitted, role, method, path))
	}
	ErrRBACEnforce = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRBACEnforce)
	}

	// Domain lookups
	ErrDoctorNotFound = func(err error, doctorID string) *CustomError {
		return BuildKindError(err, KindNotFound, constvars.ErrClientDoctorNotFound, fmt.Sprintf(constvars.ErrDevDoctorNotFound, doctorID))
	}
	ErrUserNotFound = func(err error, userID string) *CustomError {
		return BuildKindError(err, KindNotFound, constvars.ErrClientUserNotFound, fmt.Sprintf(constvars.ErrDevUserNotFound, userID))
	}
	ErrAppointmentNotFound = func(err error, appointmentID string) *CustomError {
		return BuildKindError(err, KindNotFound, constvars.ErrClientAppointmentNotFound, fmt.Sprintf(constvars.ErrDevAppointmentNotFound, appointmentID))
	}

	// Booking
	ErrDoctorUnavailable = func(err error, doctorID string) *CustomError {
		return BuildKindError(err, KindUnavailable, constvars.ErrClientDoctorNotAvailable, fmt.Sprintf(constvars.ErrDevDoctorUnavailable, doctorID))
	}
	ErrInvalidDateKey = func(err error, dateKey string) *CustomError {
		return BuildKindError(err, KindInvalidInput, constvars.ErrClientInvalidSlot, fmt.Sprintf(constvars.ErrDevInvalidDateKey, dateKey))
	}
	ErrInvalidSlotTime = func(err error, slotTime string) *CustomError {
		return BuildKindError(err, KindInvalidInput, constvars.ErrClientInvalidSlot, fmt.Sprintf(constvars.ErrDevInvalidSlotTime, slotTime))
	}
	ErrSlotOutsideWindow = func(err error, slotTime string) *CustomError {
		return BuildKindError(err, KindInvalidInput, constvars.ErrClientInvalidSlot, fmt.Sprintf(constvars.ErrDevSlotOutsideWindow, slotTime))
	}
	ErrSlotInPast = func(err error, dateKey, slotTime string) *CustomError {
		return BuildKindError(err, KindInvalidInput, constvars.ErrClientSlotInPast, fmt.Sprintf(constvars.ErrDevSlotInPast, dateKey, slotTime))
	}
	ErrSlotConflict = func(err error, doctorID, dateKey, slotTime string) *CustomError {
		return BuildKindError(err, KindSlotConflict, constvars.ErrClientSlotAlreadyBooked, fmt.Sprintf(constvars.ErrDevSlotConflict, dateKey, slotTime, doctorID))
	}
	ErrDoctorLockNotAcquired = func(err error, lockKey string) *CustomError {
		return BuildKindError(err, KindDependencyFailure, constvars.ErrClientTemporarilyUnavailable, fmt.Sprintf(constvars.ErrDevDoctorLockNotAcquired, lockKey))
	}
	ErrSlotCompensationFailed = func(err error) *CustomError {
		return BuildKindError(err, KindDependencyFailure, constvars.ErrClientTemporarilyUnavailable, constvars.ErrDevSlotCompensationFailed)
	}

	// Lifecycle
	ErrNotAppointmentOwner = func(err error, callerID, role, appointmentID string) *CustomError {
		return BuildKindError(err, KindForbidden, constvars.ErrClientNotAppointmentOwner, fmt.Sprintf(constvars.ErrDevNotAppointmentOwner, callerID, role, appointmentID))
	}
	ErrNotDoctorOwner = func(err error, callerID, role, doctorID string) *CustomError {
		return BuildKindError(err, KindForbidden, constvars.ErrClientNotDoctorOwner, fmt.Sprintf(constvars.ErrDevNotDoctorOwner, callerID, role, doctorID))
	}
	ErrAppointmentAlreadyCancelled = func(err error, appointmentID string) *CustomError {
		return BuildKindError(err, KindAlreadyCancelled, constvars.ErrClientAlreadyCancelled, fmt.Sprintf(constvars.ErrDevAppointmentCancelled, appointmentID))
	}
	ErrCancelCompletedAppointment = func(err error, appointmentID string) *CustomError {
		return BuildKindError(err, KindInvalidState, constvars.ErrClientCannotCancelDone, fmt.Sprintf(constvars.ErrDevAppointmentCompleted, appointmentID))
	}
	ErrCompleteCancelledAppointment = func(err error, appointmentID string) *CustomError {
		return BuildKindError(err, KindInvalidState, constvars.ErrClientCannotCompleteCancel, fmt.Sprintf(constvars.ErrDevAppointmentCancelled, appointmentID))
	}
	ErrPayCancelledAppointment = func(err error, appointmentID string) *CustomError {
		return BuildKindError(err, KindInvalidState, constvars.ErrClientCannotPayCancelled, fmt.Sprintf(constvars.ErrDevAppointmentCancelled, appointmentID))
	}
	ErrAppointmentAlreadyPaid = func(err error, appointmentID string) *CustomError {
		return BuildKindError(err, KindInvalidState, constvars.ErrClientAlreadyPaid, fmt.Sprintf(constvars.ErrDevAppointmentAlreadyPaid, appointmentID))
	}
	ErrAppointmentStateChanged = func(err error, appointmentID string) *CustomError {
		return BuildKindError(err, KindDependencyFailure, constvars.ErrClientTemporarilyUnavailable, fmt.Sprintf(constvars.ErrDevAppointmentNotActive, appointmentID))
	}
	ErrPaymentNotSettled = func(err error, orderID string) *CustomError {
		return BuildKindError(err, KindInvalidState, constvars.ErrClientPaymentNotCompleted, fmt.Sprintf(constvars.ErrDevPaymentNotSettled, orderID))
	}
	ErrWebhookSignatureInvalid = func(err error) *CustomError {
		return BuildKindError(err, KindUnauthenticated, constvars.ErrClientInvalidWebhook, constvars.ErrDevWebhookSignatureInvalid)
	}

	// Mongo DB
	ErrMongoDBFindDocument = func(err error) *CustomError {
		return BuildKindError(err, KindDependencyFailure, constvars.ErrClientTemporarilyUnavailable, constvars.ErrDevDBFailedToFindDocument)
	}
	ErrMongoDBIterateDocuments = func(err error) *CustomError {
		return BuildKindError(err, KindDependencyFailure, constvars.ErrClientTemporarilyUnavailable, constvars.ErrDevDBFailedToIterateDocuments)
	}
	ErrMongoDBNotObjectID = func(err error) *CustomError {
		return BuildKindError(err, KindNotFound, constvars.ErrClientCannotProcessRequest, constvars.ErrDevDBStringNotObjectID)
	}
	ErrMongoDBUpdateDocument = func(err error) *CustomError {
		return BuildKindError(err, KindDependencyFailure, constvars.ErrClientTemporarilyUnavailable, constvars.ErrDevDBFailedToUpdateDocument)
	}
	ErrMongoDBInsertDocument = func(err error) *CustomError {
		return BuildKindError(err, KindDependencyFailure, constvars.ErrClientTemporarilyUnavailable, constvars.ErrDevDBFailedToInsertDocument)
	}

	// Redis
	ErrRedisGetNoData = func(err error, redisKey string) *CustomError {
		return BuildKindError(err, KindDependencyFailure, constvars.ErrClientTemporarilyUnavailable, fmt.Sprintf(constvars.ErrDevRedisGetNoData, redisKey))
	}
	ErrRedisDelete = func(err error) *CustomError {
		return BuildKindError(err, KindDependencyFailure, constvars.ErrClientTemporarilyUnavailable, constvars.ErrDevRedisDeleteData)
	}
	ErrRedisSet = func(err error) *CustomError {
		return BuildKindError(err, KindDependencyFailure, constvars.ErrClientTemporarilyUnavailable, constvars.ErrDevRedisSetData)
	}
	ErrRedisExpire = func(err error) *CustomError {
		return BuildKindError(err, KindDependencyFailure, constvars.ErrClientTemporarilyUnavailable, constvars.ErrDevRedisExpire)
	}
	ErrRedisUnlock = func(err error) *CustomError {
		return BuildKindError(err, KindDependencyFailure, constvars.ErrClientTemporarilyUnavailable, constvars.ErrDevRedisUnlock)
	}

	// Minio
	ErrMinioCreateObject = func(err error, bucketName string) *CustomError {
		return BuildKindError(err, KindDependencyFailure, constvars.ErrClientTemporarilyUnavailable, fmt.Sprintf(constvars.ErrDevMinioFailedToCreateObject, bucketName))
	}

	// RabbitMQ
	ErrRabbitMQPublishMessage = func(err error, queueName string) *CustomError {
		return BuildKindError(err, KindDependencyFailure, constvars.ErrClientTemporarilyUnavailable, fmt.Sprintf(constvars.ErrDevRabbitMQPublishMessage, queueName))
	}

	// Payment gateway
	ErrPaymentGatewayCreateOrder = func(err error) *CustomError {
		return BuildKindError(err, KindDependencyFailure, constvars.ErrClientTemporarilyUnavailable, constvars.ErrDevPaymentGatewayCreateOrder)
	}
	ErrPaymentGatewayFetchOrder = func(err error, orderID string) *CustomError {
		return BuildKindError(err, KindDependencyFailure, constvars.ErrClientTemporarilyUnavailable, fmt.Sprintf(constvars.ErrDevPaymentGatewayFetchOrder, orderID))
	}
)
