package forms

// PatientFormValues is the flat, UI-editable representation of a FHIR
// Patient. A fresh instance is produced per form mount, either from the
// patient adapter's DefaultFormValues for create flows or from
// ToFormValues for edit flows, and is never persisted on its own.
type PatientFormValues struct {
	FirstName              string                  `json:"first_name"`
	LastName               string                  `json:"last_name"`
	Gender                 string                  `json:"gender" validate:"omitempty,fhir_gender"`
	BirthDate              string                  `json:"birth_date" validate:"omitempty,fhir_date"`
	Active                 bool                    `json:"active"`
	ManagingOrganizationID string                  `json:"managing_organization_id"`
	Telecom                []TelecomFormData       `json:"telecom"`
	Address                []AddressFormData       `json:"address"`
	Photo                  []PhotoFormData         `json:"photo" validate:"dive"`
	Communication          []CommunicationFormData `json:"communication"`
}
