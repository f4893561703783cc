package config

import (
	"doctor-appointment-service/internal/pkg/utils"
	"time"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		MongoDB: MongoDB{
			Port:     utils.GetEnvString("MONGODB_PORT", "27017"),
			Host:     utils.GetEnvString("MONGODB_HOST", "localhost"),
			DbName:   utils.GetEnvString("MONGODB_DB_NAME", "prescripto"),
			Username: utils.GetEnvString("MONGODB_USERNAME", ""),
			Password: utils.GetEnvString("MONGODB_PASSWORD", ""),
		},
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
		RabbitMQ: RabbitMQ{
			Port:               utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Host:               utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Username:           utils.GetEnvString("RABBITMQ_USERNAME", "guest"),
			Password:           utils.GetEnvString("RABBITMQ_PASSWORD", "guest"),
			Vhost:              utils.GetEnvString("RABBITMQ_VHOST", "/"),
			HeartbeatInSeconds: utils.GetEnvInt("RABBITMQ_HEARTBEAT_IN_SECONDS", 10),
		},
		Minio: Minio{
			Port:     utils.GetEnvString("MINIO_PORT", "9000"),
			Host:     utils.GetEnvString("MINIO_HOST", "localhost"),
			Username: utils.GetEnvString("MINIO_USERNAME", "minioadmin"),
			Password: utils.GetEnvString("MINIO_PASSWORD", "minioadmin"),
			UseSSL:   utils.GetEnvBool("MINIO_USE_SSL", false),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                        utils.GetEnvString("APP_ENV", "local"),
			Port:                       utils.GetEnvString("APP_PORT", "8080"),
			Version:                    utils.GetEnvString("APP_VERSION", "v1"),
			Address:                    utils.GetEnvString("APP_ADDRESS", "localhost"),
			Timezone:                   utils.GetEnvString("APP_TIMEZONE", "Asia/Kolkata"),
			EndpointPrefix:             utils.GetEnvString("APP_ENDPOINT_PREFIX", "api"),
			MaxRequests:                utils.GetEnvInt("APP_MAX_REQUEST", 20),
			ShutdownTimeoutInSeconds:   utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT", 10),
			RequestBodyLimitInMegabyte: utils.GetEnvInt("APP_REQUEST_BODY_LIMIT_IN_MEGABYTE", 6),
			RequestTimeoutInSeconds:    utils.GetEnvInt("APP_REQUEST_TIMEOUT_IN_SECONDS", 10),
		},
		JWT: AppJWT{
			Secret:        utils.GetEnvString("JWT_SECRET", "anyjwt"),
			ExpTimeInHour: utils.GetEnvInt("JWT_EXP_TIME_IN_HOUR", 24),
		},
		Admin: AppAdmin{
			Email:    utils.GetEnvString("ADMIN_EMAIL", ""),
			Password: utils.GetEnvString("ADMIN_PASSWORD", ""),
		},
		Minio: AppMinio{
			BucketName:             utils.GetEnvString("MINIO_BUCKET_NAME", "profile-images"),
			PublicBaseUrl:          utils.GetEnvString("MINIO_PUBLIC_BASE_URL", "http://localhost:9000"),
			ImageMaxUploadSizeInMB: utils.GetEnvInt64("APP_MINIO_IMAGE_UPLOAD_MAX_SIZE_IN_MB", 2),
		},
		RabbitMQ: AppRabbitMQ{
			AppointmentEventsQueue: utils.GetEnvString("APP_RABBITMQ_APPOINTMENT_EVENTS_QUEUE", "appointment_events"),
		},
		PaymentGateway: AppPaymentGateway{
			KeyID:             utils.GetEnvString("RAZORPAY_KEY_ID", ""),
			KeySecret:         utils.GetEnvString("RAZORPAY_KEY_SECRET", ""),
			WebhookSecret:     utils.GetEnvString("RAZORPAY_WEBHOOK_SECRET", ""),
			Currency:          utils.GetEnvString("PAYMENT_CURRENCY", "INR"),
			RequestsPerSecond: utils.GetEnvFloat("PAYMENT_GATEWAY_REQUESTS_PER_SECOND", 5),
			Burst:             utils.GetEnvInt("PAYMENT_GATEWAY_BURST", 5),
		},
		Booking: AppBooking{
			LockTTL:           utils.GetEnvDuration("BOOKING_LOCK_TTL", 10*time.Second),
			LockRetryAttempts: utils.GetEnvInt("BOOKING_LOCK_RETRY_ATTEMPTS", 10),
			LockRetryStep:     utils.GetEnvDuration("BOOKING_LOCK_RETRY_STEP", 50*time.Millisecond),
		},
		Cache: AppCache{
			SlotRegistrySize: utils.GetEnvInt("SLOT_CACHE_SIZE", 512),
			SlotRegistryTTL:  utils.GetEnvDuration("SLOT_CACHE_TTL", 30*time.Second),
		},
		Reconciler: AppReconciler{
			CronSpec:      utils.GetEnvString("RECONCILER_CRON_SPEC", "@every 15m"),
			LeaderLockTTL: utils.GetEnvDuration("RECONCILER_LEADER_LOCK_TTL", 2*time.Minute),
		},
		RBAC: AppRBAC{
			ModelPath:  utils.GetEnvString("RBAC_MODEL_PATH", "resources/rbac_model.conf"),
			PolicyPath: utils.GetEnvString("RBAC_POLICY_PATH", "resources/rbac_policy.csv"),
		},
	}
}

// Location resolves the canonical timezone used for date keys and slot math.
func (c *InternalConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
