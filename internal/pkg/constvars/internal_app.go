package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
	CONTEXT_API_KEY_AUTH_KEY         ContextKey = "api_key_auth"
)

const (
	REQUEST_ID_PREFIX = "GNDL_SVC_"
)

const (
	AppPaginationUrlFormat = "%s?page=%d&page_size=%d"
)

// Redis key layout for cached FHIR resources: fhir:<ResourceType>:<id>.
const (
	CacheKeyFhirResourceFormat = "fhir:%s:%s"
)

const (
	MongoCollectionResourceAudits = "resource_audits"
)

const (
	AuditActionCreate = "create"
	AuditActionUpdate = "update"
)

// Object name prefix for uploaded resource photos kept in object storage.
const (
	StoragePhotoObjectPrefix = "resource-photos"
)
