package forms

// OrganizationFormValues is the flat, UI-editable representation of a
// FHIR Organization.
type OrganizationFormValues struct {
	Name        string            `json:"name"`
	Active      bool              `json:"active"`
	TypeCode    string            `json:"type_code"`
	TypeDisplay string            `json:"type_display"`
	PartOfID    string            `json:"part_of_id"`
	Telecom     []TelecomFormData `json:"telecom"`
	Address     []AddressFormData `json:"address"`
}
