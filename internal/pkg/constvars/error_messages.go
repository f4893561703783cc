package constvars

// Validation messages for users, map it with respective tag field
var CustomValidationErrorMessages = map[string]string{
	"required": "is required",
	"email":    "must be a valid email",
	"min":      "must be at least %s characters long",
	"max":      "maximum at %s characters long",
	"gt":       "must be greater than %s",
	"lte":      "must be at most %s",
	"oneof":    "must be one of %s",
	"password": "must be at least 8 characters long, contain at least one special character, and one uppercase letter",
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientNotAuthorized                 = "you can't access this feature"
	ErrClientNotLoggedIn                   = "your session ended, please login again"
	ErrClientInvalidEmailOrPassword        = "invalid email or password"
	ErrClientEmailAlreadyExists            = "email already used"
	ErrClientInvalidImageFormat            = "invalid image format"
	ErrClientTemporarilyUnavailable        = "service temporarily unavailable, please retry"

	ErrClientDoctorNotFound       = "doctor not found"
	ErrClientUserNotFound         = "user not found"
	ErrClientAppointmentNotFound  = "appointment not found"
	ErrClientDoctorNotAvailable   = "doctor is not available for booking"
	ErrClientInvalidSlot          = "requested slot date or time is invalid"
	ErrClientSlotInPast           = "requested slot is already in the past"
	ErrClientSlotAlreadyBooked    = "slot is already booked"
	ErrClientAlreadyCancelled     = "appointment already cancelled"
	ErrClientCannotCancelDone     = "completed appointment cannot be cancelled"
	ErrClientCannotCompleteCancel = "cancelled appointment cannot be completed"
	ErrClientCannotPayCancelled   = "cancelled appointment cannot be paid"
	ErrClientAlreadyPaid          = "appointment is already paid"
	ErrClientPaymentNotCompleted  = "payment not completed"
	ErrClientNotAppointmentOwner  = "appointment does not belong to you"
	ErrClientNotDoctorOwner       = "you can only manage your own doctor profile"
	ErrClientImageTooLarge        = "image exceeds the maximum upload size"
	ErrClientInvalidWebhook       = "invalid webhook signature"
)

// Error messages for developers
const (
	ErrDevInvalidInput              = "invalid input"
	ErrDevCannotParseJSON           = "cannot parse JSON"
	ErrDevCannotParseMultipartForm  = "cannot parse multipart form"
	ErrDevImageValidationFailed     = "image validation failed"
	ErrDevURLParamIDValidation      = "url param %s failed validation"
	ErrDevValidationFailed          = "validation failed"
	ErrDevFailedToHashPassword      = "failed to hash password"
	ErrDevInvalidCredentials        = "invalid credentials"
	ErrDevEmailAlreadyExists        = "email already exists"
	ErrDevCannotMarshalJSON         = "cannot marshal JSON"
	ErrDevServerDeadlineExceeded    = "deadline exceeded"
	ErrDevServerProcess             = "server failed to process request"
	ErrDevMissingRequestID          = "request id missing from context"
	ErrDevMissingSessionData        = "session data missing from context"
	ErrDevRoleNotPermitted          = "role %s is not permitted on %s %s"
	ErrDevRBACEnforce               = "rbac enforcer failed"
	ErrDevAuthSigningMethod         = "unexpected signing method"
	ErrDevAuthTokenInvalid          = "invalid token"
	ErrDevAuthTokenMissing          = "token missing"
	ErrDevAuthTokenInvalidOrExpired = "token invalid or expired"
	ErrDevAuthGenerateToken         = "failed to generate token"
	ErrDevAuthInvalidSession        = "invalid session"

	ErrDevDoctorNotFound          = "doctor %s not found"
	ErrDevUserNotFound            = "user %s not found"
	ErrDevAppointmentNotFound     = "appointment %s not found"
	ErrDevDoctorUnavailable       = "doctor %s has availability disabled"
	ErrDevInvalidDateKey          = "invalid date key %q"
	ErrDevInvalidSlotTime         = "invalid slot time %q"
	ErrDevSlotOutsideWindow       = "slot time %q outside working window or off grid"
	ErrDevSlotInPast              = "slot %s %s is in the past"
	ErrDevSlotConflict            = "slot %s %s already reserved for doctor %s"
	ErrDevAppointmentCancelled    = "appointment %s already cancelled"
	ErrDevAppointmentCompleted    = "appointment %s already completed"
	ErrDevAppointmentNotActive    = "appointment %s is not active"
	ErrDevAppointmentAlreadyPaid  = "appointment %s already paid"
	ErrDevPaymentNotSettled       = "order %s not settled"
	ErrDevNotAppointmentOwner     = "caller %s (%s) does not own appointment %s"
	ErrDevNotDoctorOwner          = "caller %s (%s) cannot manage doctor %s"
	ErrDevImageTooLarge           = "image of %d bytes exceeds limit of %d bytes"
	ErrDevDoctorLockNotAcquired   = "could not acquire booking lock %s"
	ErrDevSlotCompensationFailed  = "compensating slot release failed"
	ErrDevWebhookSignatureInvalid = "razorpay webhook signature mismatch"

	// Database messages
	ErrDevDBFailedToInsertDocument   = "failed to insert document into database"
	ErrDevDBFailedToUpdateDocument   = "failed to update document into database"
	ErrDevDBFailedToFindDocument     = "failed when do find document on database"
	ErrDevDBFailedToIterateDocuments = "failed to iterate documents"
	ErrDevDBStringNotObjectID        = "given ID is not valid object ID"

	// Redis messages
	ErrDevRedisGetNoData  = "no data found in redis for key %s"
	ErrDevRedisSetData    = "failed to set data in redis"
	ErrDevRedisGetData    = "failed to get data from redis"
	ErrDevRedisDeleteData = "failed to delete data from redis"
	ErrDevRedisExpire     = "failed to set redis key expiration"
	ErrDevRedisUnlock     = "failed to release redis lock"

	// Integrations
	ErrDevMinioFailedToCreateObject = "failed to create object in bucket %s"
	ErrDevRabbitMQPublishMessage    = "failed to publish message to queue %s"
	ErrDevPaymentGatewayCreateOrder = "payment gateway failed to create order"
	ErrDevPaymentGatewayFetchOrder  = "payment gateway failed to fetch order %s"
)

// Validation tags whose message embeds the tag parameter
var TagsWithParams = map[string]bool{
	"min":   true,
	"max":   true,
	"gt":    true,
	"lte":   true,
	"oneof": true,
}
