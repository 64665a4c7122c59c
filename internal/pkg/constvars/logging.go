package constvars

const (
	LoggingRequestIDKey      = "request_id"
	LoggingDataKey           = "data"
	LoggingQueryParamsKey    = "query_params"
	LoggingResponseKey       = "response"
	LoggingRequestKey        = "request"
	LoggingResponseLengthKey = "response_length"
	LoggingMethodKey         = "method"
	LoggingEndpointKey       = "endpoint"
	LoggingRemoteAddrKey     = "remote_addr"
	LoggingUserAgentKey      = "user_agent"
	LoggingQueryKey          = "query"
	LoggingStatusCodeKey     = "status_code"
	LoggingDurationKey       = "duration"
	LoggingSuccessKey        = "success"
	LoggingOperationKey      = "operation"
	LoggingErrorCodeKey      = "error_code"
	LoggingErrorMessageKey   = "error_message"
	LoggingEventKey          = "event"
	LoggingResourceTypeKey   = "resource_type"
	LoggingResourceIDKey     = "resource_id"
	LoggingPatientIDKey      = "patient_id"
	LoggingPractitionerIDKey = "practitioner_id"
	LoggingOrganizationIDKey = "organization_id"
	LoggingAuditEventIDKey   = "audit_event_id"
	LoggingEntryCountKey     = "entry_count"
	LoggingCacheKeyKey       = "cache_key"
	LoggingObjectNameKey     = "object_name"
	LoggingQueueKey          = "queue"
	LoggingFhirUrlKey        = "fhir_url"
)
