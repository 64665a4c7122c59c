package config

type InternalConfig struct {
	App      App
	FHIR     AppFHIR
	MongoDB  AppMongoDB
	Minio    AppMinio
	RabbitMQ AppRabbitMQ
}

type App struct {
	Env                        string
	Port                       string
	Version                    string
	Address                    string
	Timezone                   string
	EndpointPrefix             string
	AdminAPIKey                string
	MaxRequests                int
	ShutdownTimeoutInSeconds   int
	MaxTimeRequestsPerSeconds  int
	RequestBodyLimitInMegabyte int
}

type AppFHIR struct {
	BaseUrl                   string
	JWTSecret                 string
	JWTExpiredTimeInMinutes   int
	MaxRequestsPerSecond      int
	CacheExpiredTimeInMinutes int
}

type AppMongoDB struct {
	GandallDbName string
}

type AppMinio struct {
	BucketName                          string
	PhotoMaxUploadSizeInMB              int64
	PreSignedUrlObjectExpiryTimeInHours int
}

type AppRabbitMQ struct {
	AuditPrefetchCount           int
	AuditWorkerMaxQueue          int
	AuditWorkerIntervalInSeconds int
	AuditWorkerRetryThreshold    int
}
