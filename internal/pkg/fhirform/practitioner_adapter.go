package fhirform

import (
	"fmt"
	"gandall-service/internal/pkg/constvars"
	"gandall-service/internal/pkg/dto/forms"
	"gandall-service/internal/pkg/fhir_dto"
	"time"
)

// PractitionerAdapter maps between fhir_dto.Practitioner and the
// practitioner form values. On top of the shared field groups it owns
// the qualification rows (code, issuer, validity period).
type PractitionerAdapter struct{}

var _ Adapter[fhir_dto.Practitioner, forms.PractitionerFormValues] = (*PractitionerAdapter)(nil)

func NewPractitionerAdapter() *PractitionerAdapter {
	return &PractitionerAdapter{}
}

func (a *PractitionerAdapter) ToFormValues(practitioner *fhir_dto.Practitioner) *forms.PractitionerFormValues {
	form := a.DefaultFormValues()
	if practitioner == nil {
		return form
	}

	form.FirstName, form.LastName = nameToFormFields(practitioner.Name)
	form.Gender = practitioner.Gender
	form.BirthDate = practitioner.BirthDate
	form.Active = practitioner.Active
	form.Telecom = TelecomToFormData(practitioner.Telecom)
	form.Address = AddressToFormData(practitioner.Address)
	form.Photo = PhotoToFormData(practitioner.Photo)
	form.Communication = CommunicationToFormData(practitioner.Communication)
	form.Qualification = qualificationToFormData(practitioner.Qualification)
	return form
}

func (a *PractitionerAdapter) ToResource(form *forms.PractitionerFormValues, existingID string) *fhir_dto.Practitioner {
	if form == nil {
		form = a.DefaultFormValues()
	}

	practitioner := &fhir_dto.Practitioner{
		ResourceType:  constvars.ResourcePractitioner,
		Active:        form.Active,
		Name:          nameToFHIR(form.FirstName, form.LastName),
		Gender:        form.Gender,
		BirthDate:     form.BirthDate,
		Telecom:       TelecomToFHIR(form.Telecom),
		Address:       AddressToFHIR(form.Address),
		Photo:         PhotoToFHIR(form.Photo),
		Communication: CommunicationToFHIR(form.Communication),
		Qualification: qualificationToFHIR(form.Qualification),
	}
	if existingID != "" {
		practitioner.ID = existingID
	}
	return practitioner
}

func (a *PractitionerAdapter) DefaultFormValues() *forms.PractitionerFormValues {
	return &forms.PractitionerFormValues{
		Active:        true,
		Telecom:       []forms.TelecomFormData{},
		Address:       []forms.AddressFormData{},
		Photo:         []forms.PhotoFormData{},
		Communication: []forms.CommunicationFormData{},
		Qualification: []forms.QualificationFormData{},
	}
}

func (a *PractitionerAdapter) ValidateFormValues(form *forms.PractitionerFormValues) bool {
	return len(a.ValidationErrors(form)) == 0
}

func (a *PractitionerAdapter) ValidationErrors(form *forms.PractitionerFormValues) map[string]string {
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
	validateQualificationRows(errors, form.Qualification)
	return errors
}

func qualificationToFormData(qualifications []fhir_dto.Qualification) []forms.QualificationFormData {
	formData := make([]forms.QualificationFormData, 0, len(qualifications))
	for _, entry := range qualifications {
		var code, display string
		if len(entry.Code.Coding) > 0 {
			code = entry.Code.Coding[0].Code
			display = entry.Code.Coding[0].Display
		}
		if display == "" {
			display = entry.Code.Text
		}
		row := forms.QualificationFormData{
			Code:    code,
			Display: display,
		}
		if entry.Issuer != nil {
			row.Issuer = entry.Issuer.Display
		}
		if entry.Period != nil {
			row.StartDate = entry.Period.Start
			row.EndDate = entry.Period.End
		}
		formData = append(formData, row)
	}
	return formData
}

func qualificationToFHIR(formData []forms.QualificationFormData) []fhir_dto.Qualification {
	qualifications := make([]fhir_dto.Qualification, 0, len(formData))
	for _, entry := range formData {
		qualification := fhir_dto.Qualification{
			Code: fhir_dto.CodeableConcept{
				Coding: []fhir_dto.Coding{
					{
						System:  constvars.FhirQualificationCodingSystem,
						Code:    entry.Code,
						Display: entry.Display,
					},
				},
				Text: entry.Display,
			},
		}
		if entry.Issuer != "" {
			qualification.Issuer = &fhir_dto.Reference{Display: entry.Issuer}
		}
		if entry.StartDate != "" || entry.EndDate != "" {
			qualification.Period = &fhir_dto.Period{
				Start: entry.StartDate,
				End:   entry.EndDate,
			}
		}
		qualifications = append(qualifications, qualification)
	}
	return qualifications
}

func validateQualificationRows(errors map[string]string, qualifications []forms.QualificationFormData) {
	for i, entry := range qualifications {
		if entry.Code == "" {
			errors[fmt.Sprintf("qualification[%d].code", i)] = "qualification code is required"
		}
		start, startErr := parseOptionalDate(entry.StartDate)
		if startErr != nil {
			errors[fmt.Sprintf("qualification[%d].start_date", i)] = "start date must be a valid date in YYYY-MM-DD format"
		}
		end, endErr := parseOptionalDate(entry.EndDate)
		if endErr != nil {
			errors[fmt.Sprintf("qualification[%d].end_date", i)] = "end date must be a valid date in YYYY-MM-DD format"
		}
		if startErr == nil && endErr == nil && !start.IsZero() && !end.IsZero() && end.Before(start) {
			errors[fmt.Sprintf("qualification[%d].end_date", i)] = "end date must not be before start date"
		}
	}
}

func parseOptionalDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", value)
}
