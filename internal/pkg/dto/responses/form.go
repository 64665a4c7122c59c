package responses

import "gandall-service/internal/pkg/dto/forms"

// PatientForm pairs form values with the id of the resource they were
// hydrated from. The id is empty for create-flow default forms.
type PatientForm struct {
	PatientID string                   `json:"patient_id,omitempty"`
	Form      *forms.PatientFormValues `json:"form"`
}

type PractitionerForm struct {
	PractitionerID string                        `json:"practitioner_id,omitempty"`
	Form           *forms.PractitionerFormValues `json:"form"`
}

type OrganizationForm struct {
	OrganizationID string                        `json:"organization_id,omitempty"`
	Form           *forms.OrganizationFormValues `json:"form"`
}

// FormValidation is the dry-run validation verdict returned to the UI
// for live feedback.
type FormValidation struct {
	Valid  bool              `json:"valid"`
	Errors map[string]string `json:"errors,omitempty"`
}
