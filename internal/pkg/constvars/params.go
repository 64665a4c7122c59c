package constvars

const (
	URLParamPatientID      = "patient_id"
	URLParamPractitionerID = "practitioner_id"
	URLParamOrganizationID = "organization_id"
)

const (
	URLQueryParamName         = "name"
	URLQueryParamPage         = "page"
	URLQueryParamPageSize     = "page_size"
	URLQueryParamResourceType = "resourceType"
	URLQueryParamResourceID   = "resourceID"
)
