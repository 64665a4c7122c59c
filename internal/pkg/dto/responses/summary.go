package responses

// PatientSummary is one row of a patient search result, enough for
// listing and picker screens without hydrating the whole form.
type PatientSummary struct {
	PatientID string `json:"patient_id"`
	Name      string `json:"name"`
	Gender    string `json:"gender,omitempty"`
	BirthDate string `json:"birth_date,omitempty"`
}

// PractitionerSummary is one row of a practitioner search result.
type PractitionerSummary struct {
	PractitionerID string `json:"practitioner_id"`
	Name           string `json:"name"`
}

// OrganizationSummary is one row of an organization search result. The
// managing-organization picker binds OrganizationID to the patient form.
type OrganizationSummary struct {
	OrganizationID string `json:"organization_id"`
	Name           string `json:"name"`
}
