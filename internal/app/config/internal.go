package config

import "time"

type InternalConfig struct {
	App            App
	JWT            AppJWT
	Admin          AppAdmin
	Minio          AppMinio
	RabbitMQ       AppRabbitMQ
	PaymentGateway AppPaymentGateway
	Booking        AppBooking
	Cache          AppCache
	Reconciler     AppReconciler
	RBAC           AppRBAC
}

type App struct {
	Env                        string
	Port                       string
	Version                    string
	Address                    string
	Timezone                   string
	EndpointPrefix             string
	MaxRequests                int
	ShutdownTimeoutInSeconds   int
	RequestBodyLimitInMegabyte int
	RequestTimeoutInSeconds    int
}

type AppJWT struct {
	Secret        string
	ExpTimeInHour int
}

// AppAdmin holds the single back-office account; it has no database row.
type AppAdmin struct {
	Email    string
	Password string
}

type AppMinio struct {
	BucketName             string
	PublicBaseUrl          string
	ImageMaxUploadSizeInMB int64
}

type AppRabbitMQ struct {
	AppointmentEventsQueue string
}

type AppPaymentGateway struct {
	KeyID             string
	KeySecret         string
	WebhookSecret     string
	Currency          string
	RequestsPerSecond float64
	Burst             int
}

type AppBooking struct {
	LockTTL           time.Duration
	LockRetryAttempts int
	LockRetryStep     time.Duration
}

type AppCache struct {
	SlotRegistrySize int
	SlotRegistryTTL  time.Duration
}

type AppReconciler struct {
	// CronSpec disables the worker when empty.
	CronSpec      string
	LeaderLockTTL time.Duration
}

type AppRBAC struct {
	ModelPath  string
	PolicyPath string
}
