package fhirform

import (
	"fmt"
	"gandall-service/internal/pkg/constvars"
	"gandall-service/internal/pkg/dto/forms"
	"gandall-service/internal/pkg/fhir_dto"
)

// OrganizationAdapter maps between fhir_dto.Organization and the
// organization form values. Organizations carry only the telecom and
// address shared groups plus their own name, type and parent linkage.
type OrganizationAdapter struct{}

var _ Adapter[fhir_dto.Organization, forms.OrganizationFormValues] = (*OrganizationAdapter)(nil)

func NewOrganizationAdapter() *OrganizationAdapter {
	return &OrganizationAdapter{}
}

func (a *OrganizationAdapter) ToFormValues(organization *fhir_dto.Organization) *forms.OrganizationFormValues {
	form := a.DefaultFormValues()
	if organization == nil {
		return form
	}

	form.Name = organization.Name
	form.Active = organization.Active
	if len(organization.Type) > 0 {
		concept := organization.Type[0]
		if len(concept.Coding) > 0 {
			form.TypeCode = concept.Coding[0].Code
			form.TypeDisplay = concept.Coding[0].Display
		}
		if form.TypeDisplay == "" {
			form.TypeDisplay = concept.Text
		}
	}
	if organization.PartOf != nil {
		form.PartOfID = ReferenceID(organization.PartOf.Reference)
	}
	form.Telecom = TelecomToFormData(organization.Telecom)
	form.Address = AddressToFormData(organization.Address)
	return form
}

func (a *OrganizationAdapter) ToResource(form *forms.OrganizationFormValues, existingID string) *fhir_dto.Organization {
	if form == nil {
		form = a.DefaultFormValues()
	}

	organization := &fhir_dto.Organization{
		ResourceType: constvars.ResourceOrganization,
		Active:       form.Active,
		Name:         form.Name,
		Telecom:      TelecomToFHIR(form.Telecom),
		Address:      AddressToFHIR(form.Address),
	}
	if existingID != "" {
		organization.ID = existingID
	}
	if form.TypeCode != "" || form.TypeDisplay != "" {
		organization.Type = []fhir_dto.CodeableConcept{
			{
				Coding: []fhir_dto.Coding{
					{
						System:  constvars.FhirOrganizationTypeCodingSystem,
						Code:    form.TypeCode,
						Display: form.TypeDisplay,
					},
				},
				Text: form.TypeDisplay,
			},
		}
	}
	if form.PartOfID != "" {
		organization.PartOf = &fhir_dto.Reference{
			Reference: fmt.Sprintf("%s/%s", constvars.ResourceOrganization, form.PartOfID),
		}
	}
	return organization
}

func (a *OrganizationAdapter) DefaultFormValues() *forms.OrganizationFormValues {
	return &forms.OrganizationFormValues{
		Active:  true,
		Telecom: []forms.TelecomFormData{},
		Address: []forms.AddressFormData{},
	}
}

func (a *OrganizationAdapter) ValidateFormValues(form *forms.OrganizationFormValues) bool {
	return len(a.ValidationErrors(form)) == 0
}

func (a *OrganizationAdapter) ValidationErrors(form *forms.OrganizationFormValues) map[string]string {
	if form == nil {
		form = a.DefaultFormValues()
	}

	errors := make(map[string]string)
	if form.Name == "" {
		errors["name"] = "organization name is required"
	}
	validateTelecomRows(errors, form.Telecom)
	return errors
}
