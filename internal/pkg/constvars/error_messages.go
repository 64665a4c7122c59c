package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required":    "is required",
	"email":       "must be a valid email",
	"alphanum":    "must contain only alphanumeric characters",
	"min":         "must be at least %s characters long",
	"max":         "maximum at %s characters long",
	"numeric":     "must be a number",
	"len":         "must be %s characters long",
	"oneof":       "must be one of [%s]",
	"gt":          "must be greater than %s",
	"gte":         "must be greater than or equal to %s",
	"lt":          "must be less than %s",
	"lte":         "must be less than or equal to %s",
	"url":         "must be a valid URL",
	"uuid":        "must be a valid UUID",
	"base64":      "must be a valid base64 string",
	"fhir_date":   "must be a valid date in YYYY-MM-DD format",
	"fhir_gender": "must be one of [male, female, other, unknown]",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"min":   true,
	"max":   true,
	"len":   true,
	"gt":    true,
	"gte":   true,
	"lt":    true,
	"lte":   true,
	"oneof": true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientNotAuthorized                 = "you can't access this feature"
	ErrClientInvalidImageFormat            = "the image you uploaded does not meet the specified standards"
	ErrClientImageTooLarge                 = "the image you uploaded exceeds the maximum allowed size"
	ErrClientFormInvalid                   = "the submitted form contains invalid fields"
	ErrClientResourceNotFound              = "the requested record could not be found"
)

// Error messages for developers
const (
	ErrDevValidationFailed           = "Request validation failed"
	ErrDevURLParamIDValidationFailed = "URL parameter validation failed: %s"
	ErrDevImageValidationFailed      = "Image validation failed"
	ErrDevCannotParseJSON            = "Failed to parse JSON request body"
	ErrDevCannotMarshalJSON          = "Failed to marshal payload to JSON"
	ErrDevCannotParseMultipartForm   = "Failed to parse multipart form data"
	ErrDevServerDeadlineExceeded     = "Request deadline exceeded"
	ErrDevBuildRequest               = "Failed to build outbound request"
	ErrDevSendRequest                = "Failed to send outbound request"
	ErrDevMissingRequestID           = "Request ID not found in request context"

	ErrDevFormValidationFailed = "Form values failed adapter validation"

	ErrDevFhirCreateResource         = "Failed to create FHIR resource: %s"
	ErrDevFhirGetResource            = "Failed to get FHIR resource: %s"
	ErrDevFhirUpdateResource         = "Failed to update FHIR resource: %s"
	ErrDevFhirSearchResource         = "Failed to search FHIR resource: %s"
	ErrDevFhirDecodeResourceResponse = "Failed to decode FHIR resource response: %s"
	ErrDevFhirResourceNotFound       = "FHIR resource not found: %s"
	ErrDevFhirSignToken              = "Failed to sign FHIR server access token"

	ErrDevMongoDBFindDocument     = "Failed to find document(s) in MongoDB"
	ErrDevMongoDBInsertDocument   = "Failed to insert document into MongoDB"
	ErrDevMongoDBIterateDocuments = "Failed to iterate MongoDB documents"

	ErrDevRedisGetData    = "Failed to get data from Redis"
	ErrDevRedisSetData    = "Failed to set data in Redis"
	ErrDevRedisDeleteData = "Failed to delete data from Redis"

	ErrDevRabbitMQPublishMessage = "Failed to publish message to RabbitMQ"
	ErrDevRabbitMQConsumeQueue   = "Failed to consume RabbitMQ queue"
	ErrDevRabbitMQDeclareQueue   = "Failed to declare RabbitMQ queue"

	ErrDevMinioFailedToCreateObject          = "Failed to create object in bucket: %s"
	ErrDevMinioFailedToGetObjectPresignedURL = "Failed to get presigned object URL from bucket: %s"
)
