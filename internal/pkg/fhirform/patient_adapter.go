package fhirform

import (
	"fmt"
	"gandall-service/internal/pkg/constvars"
	"gandall-service/internal/pkg/dto/forms"
	"gandall-service/internal/pkg/fhir_dto"
	"time"
)

// PatientAdapter maps between fhir_dto.Patient and the patient form
// values edited by the platform's create/edit pages.
type PatientAdapter struct{}

var _ Adapter[fhir_dto.Patient, forms.PatientFormValues] = (*PatientAdapter)(nil)

func NewPatientAdapter() *PatientAdapter {
	return &PatientAdapter{}
}

func (a *PatientAdapter) ToFormValues(patient *fhir_dto.Patient) *forms.PatientFormValues {
	form := a.DefaultFormValues()
	if patient == nil {
		return form
	}

	form.FirstName, form.LastName = nameToFormFields(patient.Name)
	form.Gender = patient.Gender
	form.BirthDate = patient.BirthDate
	form.Active = patient.Active
	if patient.ManagingOrganization != nil {
		form.ManagingOrganizationID = ReferenceID(patient.ManagingOrganization.Reference)
	}
	form.Telecom = TelecomToFormData(patient.Telecom)
	form.Address = AddressToFormData(patient.Address)
	form.Photo = PhotoToFormData(patient.Photo)
	form.Communication = CommunicationToFormData(patient.Communication)
	return form
}

func (a *PatientAdapter) ToResource(form *forms.PatientFormValues, existingID string) *fhir_dto.Patient {
	if form == nil {
		form = a.DefaultFormValues()
	}

	patient := &fhir_dto.Patient{
		ResourceType:  constvars.ResourcePatient,
		Active:        form.Active,
		Name:          nameToFHIR(form.FirstName, form.LastName),
		Gender:        form.Gender,
		BirthDate:     form.BirthDate,
		Telecom:       TelecomToFHIR(form.Telecom),
		Address:       AddressToFHIR(form.Address),
		Photo:         PhotoToFHIR(form.Photo),
		Communication: CommunicationToFHIR(form.Communication),
	}
	if existingID != "" {
		patient.ID = existingID
	}
	if form.ManagingOrganizationID != "" {
		patient.ManagingOrganization = &fhir_dto.Reference{
			Reference: fmt.Sprintf("%s/%s", constvars.ResourceOrganization, form.ManagingOrganizationID),
		}
	}
	return patient
}

func (a *PatientAdapter) DefaultFormValues() *forms.PatientFormValues {
	return &forms.PatientFormValues{
		Active:        true,
		Telecom:       []forms.TelecomFormData{},
		Address:       []forms.AddressFormData{},
		Photo:         []forms.PhotoFormData{},
		Communication: []forms.CommunicationFormData{},
	}
}

func (a *PatientAdapter) ValidateFormValues(form *forms.PatientFormValues) bool {
	return len(a.ValidationErrors(form)) == 0
}

func (a *PatientAdapter) ValidationErrors(form *forms.PatientFormValues) map[string]string {
	if form == nil {
		form = a.DefaultFormValues()
	}

	errors := make(map[string]string)
	if form.FirstName == "" {
		errors["first_name"] = "first name is required"
	}
	if form.LastName == "" {
		errors["last_name"] = "last name is required"
	}
	validateGenderField(errors, form.Gender)
	validateBirthDateField(errors, form.BirthDate)
	validateTelecomRows(errors, form.Telecom)
	validateCommunicationRows(errors, form.Communication)
	return errors
}

// nameToFormFields flattens the first resource name entry into the
// first/last form fields.
func nameToFormFields(names []fhir_dto.HumanName) (firstName, lastName string) {
	if len(names) == 0 {
		return "", ""
	}
	name := names[0]
	if len(name.Given) > 0 {
		firstName = name.Given[0]
	}
	return firstName, name.Family
}

// nameToFHIR builds the official resource name from the form fields.
// Both fields empty means no name entry at all, not an empty one.
func nameToFHIR(firstName, lastName string) []fhir_dto.HumanName {
	if firstName == "" && lastName == "" {
		return nil
	}
	name := fhir_dto.HumanName{
		Use:    constvars.FhirNameUseOfficial,
		Family: lastName,
		Text:   fullNameText(firstName, lastName),
	}
	if firstName != "" {
		name.Given = []string{firstName}
	}
	return []fhir_dto.HumanName{name}
}

func fullNameText(firstName, lastName string) string {
	switch {
	case firstName == "":
		return lastName
	case lastName == "":
		return firstName
	default:
		return firstName + " " + lastName
	}
}

var genderSet = map[string]bool{
	constvars.FhirGenderMale:    true,
	constvars.FhirGenderFemale:  true,
	constvars.FhirGenderOther:   true,
	constvars.FhirGenderUnknown: true,
}

func validateGenderField(errors map[string]string, gender string) {
	if gender == "" {
		errors["gender"] = "gender is required"
		return
	}
	if !genderSet[gender] {
		errors["gender"] = "gender must be one of male, female, other, unknown"
	}
}

func validateBirthDateField(errors map[string]string, birthDate string) {
	if birthDate == "" {
		errors["birth_date"] = "birth date is required"
		return
	}
	parsed, err := time.Parse("2006-01-02", birthDate)
	if err != nil {
		errors["birth_date"] = "birth date must be a valid date in YYYY-MM-DD format"
		return
	}
	if parsed.After(time.Now()) {
		errors["birth_date"] = "birth date cannot be in the future"
	}
}

func validateTelecomRows(errors map[string]string, telecom []forms.TelecomFormData) {
	for i, entry := range telecom {
		if entry.Value == "" {
			errors[fmt.Sprintf("telecom[%d].value", i)] = "contact value is required"
		}
	}
}

func validateCommunicationRows(errors map[string]string, communications []forms.CommunicationFormData) {
	for i, entry := range communications {
		if entry.Language == "" {
			errors[fmt.Sprintf("communication[%d].language", i)] = "language is required"
		}
	}
}
