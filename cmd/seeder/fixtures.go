package main

import (
	"gandall-service/internal/pkg/dto/forms"
)

// seedFile is the root of the YAML fixture format. Entries are written
// in the same flat shape the registration forms use; organization
// references are by name and resolved to FHIR ids while seeding.
type seedFile struct {
	Organizations []organizationSeed `yaml:"organizations"`
	Practitioners []practitionerSeed `yaml:"practitioners"`
	Patients      []patientSeed      `yaml:"patients"`
}

type organizationSeed struct {
	Name        string        `yaml:"name"`
	Active      bool          `yaml:"active"`
	TypeCode    string        `yaml:"type_code"`
	TypeDisplay string        `yaml:"type_display"`
	PartOf      string        `yaml:"part_of"`
	Telecom     []telecomSeed `yaml:"telecom"`
	Address     []addressSeed `yaml:"address"`
}

type practitionerSeed struct {
	FirstName     string              `yaml:"first_name"`
	LastName      string              `yaml:"last_name"`
	Gender        string              `yaml:"gender"`
	BirthDate     string              `yaml:"birth_date"`
	Active        bool                `yaml:"active"`
	Telecom       []telecomSeed       `yaml:"telecom"`
	Address       []addressSeed       `yaml:"address"`
	Communication []communicationSeed `yaml:"communication"`
	Qualification []qualificationSeed `yaml:"qualification"`
}

type patientSeed struct {
	FirstName            string              `yaml:"first_name"`
	LastName             string              `yaml:"last_name"`
	Gender               string              `yaml:"gender"`
	BirthDate            string              `yaml:"birth_date"`
	Active               bool                `yaml:"active"`
	ManagingOrganization string              `yaml:"managing_organization"`
	Telecom              []telecomSeed       `yaml:"telecom"`
	Address              []addressSeed       `yaml:"address"`
	Communication        []communicationSeed `yaml:"communication"`
}

type telecomSeed struct {
	System string `yaml:"system"`
	Value  string `yaml:"value"`
	Use    string `yaml:"use"`
}

type addressSeed struct {
	Use        string   `yaml:"use"`
	Type       string   `yaml:"type"`
	Line       []string `yaml:"line"`
	City       string   `yaml:"city"`
	State      string   `yaml:"state"`
	PostalCode string   `yaml:"postal_code"`
	Country    string   `yaml:"country"`
}

type communicationSeed struct {
	Language  string `yaml:"language"`
	Text      string `yaml:"text"`
	Preferred bool   `yaml:"preferred"`
}

type qualificationSeed struct {
	Code      string `yaml:"code"`
	Display   string `yaml:"display"`
	Issuer    string `yaml:"issuer"`
	StartDate string `yaml:"start_date"`
	EndDate   string `yaml:"end_date"`
}

func (seed organizationSeed) toForm() *forms.OrganizationFormValues {
	return &forms.OrganizationFormValues{
		Name:        seed.Name,
		Active:      seed.Active,
		TypeCode:    seed.TypeCode,
		TypeDisplay: seed.TypeDisplay,
		Telecom:     telecomForms(seed.Telecom),
		Address:     addressForms(seed.Address),
	}
}

func (seed practitionerSeed) toForm() *forms.PractitionerFormValues {
	return &forms.PractitionerFormValues{
		FirstName:     seed.FirstName,
		LastName:      seed.LastName,
		Gender:        seed.Gender,
		BirthDate:     seed.BirthDate,
		Active:        seed.Active,
		Telecom:       telecomForms(seed.Telecom),
		Address:       addressForms(seed.Address),
		Communication: communicationForms(seed.Communication),
		Qualification: qualificationForms(seed.Qualification),
	}
}

func (seed patientSeed) toForm() *forms.PatientFormValues {
	return &forms.PatientFormValues{
		FirstName:     seed.FirstName,
		LastName:      seed.LastName,
		Gender:        seed.Gender,
		BirthDate:     seed.BirthDate,
		Active:        seed.Active,
		Telecom:       telecomForms(seed.Telecom),
		Address:       addressForms(seed.Address),
		Communication: communicationForms(seed.Communication),
	}
}

func telecomForms(seeds []telecomSeed) []forms.TelecomFormData {
	out := make([]forms.TelecomFormData, 0, len(seeds))
	for _, seed := range seeds {
		out = append(out, forms.TelecomFormData{
			System: seed.System,
			Value:  seed.Value,
			Use:    seed.Use,
		})
	}
	return out
}

func addressForms(seeds []addressSeed) []forms.AddressFormData {
	out := make([]forms.AddressFormData, 0, len(seeds))
	for _, seed := range seeds {
		out = append(out, forms.AddressFormData{
			Use:        seed.Use,
			Type:       seed.Type,
			Line:       seed.Line,
			City:       seed.City,
			State:      seed.State,
			PostalCode: seed.PostalCode,
			Country:    seed.Country,
		})
	}
	return out
}

func communicationForms(seeds []communicationSeed) []forms.CommunicationFormData {
	out := make([]forms.CommunicationFormData, 0, len(seeds))
	for _, seed := range seeds {
		out = append(out, forms.CommunicationFormData{
			Language:  seed.Language,
			Text:      seed.Text,
			Preferred: seed.Preferred,
		})
	}
	return out
}

func qualificationForms(seeds []qualificationSeed) []forms.QualificationFormData {
	out := make([]forms.QualificationFormData, 0, len(seeds))
	for _, seed := range seeds {
		out = append(out, forms.QualificationFormData{
			Code:      seed.Code,
			Display:   seed.Display,
			Issuer:    seed.Issuer,
			StartDate: seed.StartDate,
			EndDate:   seed.EndDate,
		})
	}
	return out
}
