package config

import (
	"gandall-service/internal/pkg/utils"

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
			Username: utils.GetEnvString("MONGODB_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("MONGODB_PASSWORD", "defaultPassword"),
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
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Host:     utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "defaultPassword"),
		},
		Minio: Minio{
			Port:     utils.GetEnvString("MINIO_PORT", "9000"),
			Host:     utils.GetEnvString("MINIO_HOST", "localhost"),
			Username: utils.GetEnvString("MINIO_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("MINIO_PASSWORD", "defaultPassword"),
			UseSSL:   utils.GetEnvBool("MINIO_USE_SSL", false),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                        utils.GetEnvString("APP_ENV", "development"),
			Port:                       utils.GetEnvString("APP_PORT", ":8080"),
			Version:                    utils.GetEnvString("APP_VERSION", "v1.0"),
			Address:                    utils.GetEnvString("APP_ADDRESS", "localhost"),
			Timezone:                   utils.GetEnvString("APP_TIMEZONE", "Asia/Jakarta"),
			EndpointPrefix:             utils.GetEnvString("APP_ENDPOINT_PREFIX", "/gandall/api/v1"),
			AdminAPIKey:                utils.GetEnvString("APP_ADMIN_API_KEY", ""),
			MaxRequests:                utils.GetEnvInt("APP_MAX_REQUEST", 10),
			ShutdownTimeoutInSeconds:   utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT_IN_SECONDS", 10),
			MaxTimeRequestsPerSeconds:  utils.GetEnvInt("APP_MAX_TIME_REQUESTS_PER_SECONDS", 10),
			RequestBodyLimitInMegabyte: utils.GetEnvInt("APP_REQUEST_BODY_LIMIT_IN_MEGABYTE", 6),
		},
		FHIR: AppFHIR{
			BaseUrl:                   utils.GetEnvString("FHIR_BASE_URL", "http://localhost:5555/fhir"),
			JWTSecret:                 utils.GetEnvString("FHIR_JWT_SECRET", ""),
			JWTExpiredTimeInMinutes:   utils.GetEnvInt("FHIR_JWT_EXPIRED_TIME_IN_MINUTES", 5),
			MaxRequestsPerSecond:      utils.GetEnvInt("FHIR_MAX_REQUESTS_PER_SECOND", 10),
			CacheExpiredTimeInMinutes: utils.GetEnvInt("FHIR_CACHE_EXPIRED_TIME_IN_MINUTES", 5),
		},
		MongoDB: AppMongoDB{
			GandallDbName: utils.GetEnvString("MONGODB_GANDALL_DB_NAME", "gandall"),
		},
		Minio: AppMinio{
			BucketName:                          utils.GetEnvString("MINIO_BUCKET_NAME", "gandall"),
			PhotoMaxUploadSizeInMB:              utils.GetEnvInt64("APP_MINIO_PHOTO_UPLOAD_MAX_SIZE_IN_MB", 2),
			PreSignedUrlObjectExpiryTimeInHours: utils.GetEnvInt("APP_MINIO_PRE_SIGNED_URL_OBJECT_EXPIRY_TIME_IN_HOURS", 24),
		},
		RabbitMQ: AppRabbitMQ{
			AuditPrefetchCount:           utils.GetEnvInt("APP_RABBITMQ_AUDIT_PREFETCH_COUNT", 10),
			AuditWorkerMaxQueue:          utils.GetEnvInt("APP_RABBITMQ_AUDIT_WORKER_MAX_QUEUE", 10),
			AuditWorkerIntervalInSeconds: utils.GetEnvInt("APP_RABBITMQ_AUDIT_WORKER_INTERVAL_IN_SECONDS", 5),
			AuditWorkerRetryThreshold:    utils.GetEnvInt("APP_RABBITMQ_AUDIT_WORKER_RETRY_THRESHOLD", 5),
		},
	}
}
