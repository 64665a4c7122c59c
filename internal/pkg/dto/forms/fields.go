package forms

// TelecomFormData is one editable contact-point row. System and Use are
// always members of their allowed value sets after conversion.
type TelecomFormData struct {
	System string `json:"system"`
	Value  string `json:"value"`
	Use    string `json:"use"`
}

// AddressFormData is one editable address row.
type AddressFormData struct {
	Use        string   `json:"use"`
	Type       string   `json:"type"`
	Line       []string `json:"line"`
	City       string   `json:"city"`
	State      string   `json:"state"`
	PostalCode string   `json:"postal_code"`
	Country    string   `json:"country"`
}

// PhotoFormData is one editable attachment row. An entry must carry
// either inline base64 data or a URL to survive conversion back to the
// resource.
type PhotoFormData struct {
	ContentType string `json:"content_type"`
	Data        string `json:"data" validate:"omitempty,base64"`
	Url         string `json:"url" validate:"omitempty,url"`
	Title       string `json:"title"`
}

// CommunicationFormData is one language-preference row. Language holds
// the BCP 47 code, Text the human-readable label shown in the UI.
type CommunicationFormData struct {
	Language  string `json:"language"`
	Text      string `json:"text"`
	Preferred bool   `json:"preferred"`
}

// QualificationFormData is one editable practitioner qualification row.
type QualificationFormData struct {
	Code      string `json:"code"`
	Display   string `json:"display"`
	Issuer    string `json:"issuer"`
	StartDate string `json:"start_date" validate:"omitempty,fhir_date"`
	EndDate   string `json:"end_date" validate:"omitempty,fhir_date"`
}
