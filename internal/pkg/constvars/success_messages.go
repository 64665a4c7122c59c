package constvars

const (
	// Generic messages
	ResponseUnknown = "unknown"
	ResponseSuccess = "success"
	ResponseError   = "error"

	// Form flows
	PatientFormGetSuccess      = "get patient form successfully"
	PatientCreatedSuccess      = "patient created successfully"
	PatientUpdatedSuccess      = "patient updated successfully"
	PractitionerFormGetSuccess = "get practitioner form successfully"
	PractitionerCreatedSuccess = "practitioner created successfully"
	PractitionerUpdatedSuccess = "practitioner updated successfully"
	OrganizationFormGetSuccess = "get organization form successfully"
	OrganizationCreatedSuccess = "organization created successfully"
	OrganizationUpdatedSuccess = "organization updated successfully"
	FormValidationSuccess      = "form validated successfully"

	// Search
	SearchPatientsSuccess      = "search patients successfully"
	SearchPractitionersSuccess = "search practitioners successfully"
	SearchOrganizationsSuccess = "search organizations successfully"

	// Attachments
	PhotoUploadedSuccess = "photo uploaded successfully"

	// Reference data
	GetLanguagesSuccessMessage = "get supported languages successfully"
	GetCountriesSuccessMessage = "get countries successfully"

	// Audits
	GetAuditsSuccessMessage = "get resource audits successfully"
)
