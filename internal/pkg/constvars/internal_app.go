package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_SESSION_DATA_KEY         ContextKey = "session_data"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
)

const (
	ServiceName     = "doctor-appointment-service"
	RequestIDPrefix = "DOCAPT_SVC_"
)

const (
	RolePatient = "patient"
	RoleDoctor  = "doctor"
	RoleAdmin   = "admin"

	// RoleAnonymous is the casbin subject of requests without a session.
	RoleAnonymous = "anonymous"
)

const (
	ResourceAuth         = "auth"
	ResourceUsers        = "users"
	ResourceDoctors      = "doctors"
	ResourceAdmin        = "admin"
	ResourceAppointments = "appointments"
	ResourcePayments     = "payments"
)

const (
	// AdminSubjectID identifies the configured administrator inside sessions.
	AdminSubjectID = "admin"
)

const (
	RedisSessionKeyFormat           = "session:%s"
	RedisDoctorLockKeyFormat        = "appointment:lock:doctor:%s"
	RedisReconcilerLeaderLockKey    = "appointment:reconciler:leader"
	MinioDoctorImageObjectKeyFormat = "doctors/%s%s"
	MinioUserImageObjectKeyFormat   = "users/%s%s"
)

const (
	AppointmentEventBooked    = "appointment.booked"
	AppointmentEventCancelled = "appointment.cancelled"
	AppointmentEventCompleted = "appointment.completed"
	AppointmentEventPaid      = "appointment.paid"
)

const (
	RazorpayOrderStatusPaid = "paid"
	RazorpayEventOrderPaid  = "order.paid"
)
