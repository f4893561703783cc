package constvars

const (
	LoggingRequestIDKey      = "request_id"
	LoggingDataKey           = "data"
	LoggingSessionDataKey    = "session_data"
	LoggingRequestKey        = "request"
	LoggingResponseKey       = "response"
	LoggingResponseLengthKey = "response_length"
	LoggingErrorKindKey      = "error_kind"
	LoggingServiceKey        = "service"
	LoggingServiceVersionKey = "service_version"
	LoggingEnvironmentKey    = "env"

	LoggingMethodKey     = "method"
	LoggingEndpointKey   = "endpoint"
	LoggingRemoteAddrKey = "remote_addr"
	LoggingUserAgentKey  = "user_agent"
	LoggingQueryKey      = "query"
	LoggingStatusCodeKey = "status_code"
	LoggingDurationKey   = "duration"
	LoggingSuccessKey    = "success"

	LoggingUserIDKey        = "user_id"
	LoggingDoctorIDKey      = "doctor_id"
	LoggingRoleKey          = "role"
	LoggingAppointmentIDKey = "appointment_id"
	LoggingSlotDateKey      = "slot_date"
	LoggingSlotTimeKey      = "slot_time"
	LoggingAmountKey        = "amount"
	LoggingOrderIDKey       = "order_id"
	LoggingEventTypeKey     = "event_type"
	LoggingQueueKey         = "queue"
	LoggingObjectKey        = "object_key"
	LoggingBucketKey        = "bucket"
	LoggingCountKey         = "count"

	LoggingRedisKey              = "redis_key"
	LoggingLockExpirationTimeKey = "lock_expiration"
	LoggingLockValueKey          = "lock_value"
	LoggingLockStoredValueKey    = "lock_stored_value"
	LoggingLockExpectedValueKey  = "lock_expected_value"
	LoggingLockAttemptKey        = "lock_attempt"
)
