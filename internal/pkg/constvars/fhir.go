package constvars

type ResourceType string

const (
	ResourcePatient      = "Patient"
	ResourcePractitioner = "Practitioner"
	ResourceOrganization = "Organization"
	ResourceBundle       = "Bundle"
)

// Coding systems embedded by the form adapters: BCP 47 for language
// codes, the HL7 v2-0360 table for practitioner qualifications and the
// organization-type value set for organization categories.
const (
	FhirLanguageCodingSystem         = "urn:ietf:bcp:47"
	FhirQualificationCodingSystem    = "http://terminology.hl7.org/CodeSystem/v2-0360"
	FhirOrganizationTypeCodingSystem = "http://terminology.hl7.org/CodeSystem/organization-type"
)

const (
	FhirTelecomSystemPhone = "phone"
	FhirTelecomSystemFax   = "fax"
	FhirTelecomSystemEmail = "email"
	FhirTelecomSystemPager = "pager"
	FhirTelecomSystemURL   = "url"
	FhirTelecomSystemSMS   = "sms"
	FhirTelecomSystemOther = "other"
)

const (
	FhirTelecomUseHome   = "home"
	FhirTelecomUseWork   = "work"
	FhirTelecomUseTemp   = "temp"
	FhirTelecomUseOld    = "old"
	FhirTelecomUseMobile = "mobile"
)

const (
	FhirAddressUseHome    = "home"
	FhirAddressUseWork    = "work"
	FhirAddressUseTemp    = "temp"
	FhirAddressUseOld     = "old"
	FhirAddressUseBilling = "billing"
)

const (
	FhirAddressTypePostal   = "postal"
	FhirAddressTypePhysical = "physical"
	FhirAddressTypeBoth     = "both"
)

const (
	FhirGenderMale    = "male"
	FhirGenderFemale  = "female"
	FhirGenderOther   = "other"
	FhirGenderUnknown = "unknown"
)

const (
	FhirNameUseOfficial = "official"
)

const (
	FhirBundleTypeSearchset = "searchset"
)

// Resource id grammar from the FHIR specification.
const (
	RegexFhirResourceID = `^[A-Za-z0-9\-\.]{1,64}$`
)
