package forms

// PractitionerFormValues is the flat, UI-editable representation of a
// FHIR Practitioner.
type PractitionerFormValues struct {
	FirstName     string                  `json:"first_name"`
	LastName      string                  `json:"last_name"`
	Gender        string                  `json:"gender" validate:"omitempty,fhir_gender"`
	BirthDate     string                  `json:"birth_date" validate:"omitempty,fhir_date"`
	Active        bool                    `json:"active"`
	Telecom       []TelecomFormData       `json:"telecom"`
	Address       []AddressFormData       `json:"address"`
	Photo         []PhotoFormData         `json:"photo" validate:"dive"`
	Communication []CommunicationFormData `json:"communication"`
	Qualification []QualificationFormData `json:"qualification" validate:"dive"`
}
