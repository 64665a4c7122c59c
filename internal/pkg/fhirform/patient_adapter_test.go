package fhirform

import (
	"testing"

	"gandall-service/internal/pkg/constvars"
	"gandall-service/internal/pkg/dto/forms"
	"gandall-service/internal/pkg/fhir_dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wellFormedPatient() *fhir_dto.Patient {
	return &fhir_dto.Patient{
		ResourceType: constvars.ResourcePatient,
		ID:           "patient-42",
		Active:       true,
		Name: []fhir_dto.HumanName{
			{Use: "official", Family: "Curría", Given: []string{"Marie"}, Text: "Marie Curría"},
		},
		Gender:    "female",
		BirthDate: "1988-11-07",
		Telecom: []fhir_dto.ContactPoint{
			{System: "phone", Value: "555-0134", Use: "mobile"},
			{System: "email", Value: "marie@example.org", Use: "home"},
		},
		Address: []fhir_dto.Address{
			{Use: "home", Type: "physical", Line: []string{"1 Rue Cuvier"}, City: "Paris", PostalCode: "75005", Country: "FR"},
		},
		Photo: []fhir_dto.Attachment{
			{ContentType: "image/jpeg", Url: "https://cdn.example.org/photos/p42.jpg", Title: "portrait"},
		},
		Communication: []fhir_dto.Communication{
			{
				Language: fhir_dto.CodeableConcept{
					Coding: []fhir_dto.Coding{{System: constvars.FhirLanguageCodingSystem, Code: "fr", Display: "French"}},
					Text:   "French",
				},
				Preferred: true,
			},
		},
		ManagingOrganization: &fhir_dto.Reference{Reference: "Organization/org-7"},
	}
}

func TestPatientAdapterToFormValues(t *testing.T) {
	adapter := NewPatientAdapter()

	t.Run("Nil resource yields defaults without panicking", func(t *testing.T) {
		form := adapter.ToFormValues(nil)
		require.NotNil(t, form)
		assert.True(t, form.Active)
		assert.NotNil(t, form.Telecom)
		assert.NotNil(t, form.Address)
		assert.NotNil(t, form.Photo)
		assert.NotNil(t, form.Communication)
	})

	t.Run("Every supported field group is flattened", func(t *testing.T) {
		form := adapter.ToFormValues(wellFormedPatient())

		assert.Equal(t, "Marie", form.FirstName)
		assert.Equal(t, "Curría", form.LastName)
		assert.Equal(t, "female", form.Gender)
		assert.Equal(t, "1988-11-07", form.BirthDate)
		assert.True(t, form.Active)
		assert.Equal(t, "org-7", form.ManagingOrganizationID)
		require.Len(t, form.Telecom, 2)
		require.Len(t, form.Address, 1)
		require.Len(t, form.Photo, 1)
		require.Len(t, form.Communication, 1)
		assert.Equal(t, "fr", form.Communication[0].Language)
		assert.Equal(t, "French", form.Communication[0].Text)
	})

	t.Run("Sparse resource leaves no nil collections", func(t *testing.T) {
		form := adapter.ToFormValues(&fhir_dto.Patient{ResourceType: constvars.ResourcePatient, ID: "p1"})
		require.NotNil(t, form.Telecom, "missing optional arrays must become empty collections")
		require.NotNil(t, form.Address)
		require.NotNil(t, form.Photo)
		require.NotNil(t, form.Communication)
		assert.Empty(t, form.FirstName)
	})

	t.Run("Malformed enums are coerced during flattening", func(t *testing.T) {
		form := adapter.ToFormValues(&fhir_dto.Patient{
			Telecom: []fhir_dto.ContactPoint{{System: "smoke-signal", Value: "x", Use: "ceremonial"}},
			Address: []fhir_dto.Address{{Use: "hideout", Type: "imaginary"}},
		})
		require.Len(t, form.Telecom, 1)
		assert.Equal(t, "phone", form.Telecom[0].System)
		assert.Equal(t, "home", form.Telecom[0].Use)
		require.Len(t, form.Address, 1)
		assert.Equal(t, "home", form.Address[0].Use)
		assert.Equal(t, "physical", form.Address[0].Type)
	})
}

func TestPatientAdapterToResource(t *testing.T) {
	adapter := NewPatientAdapter()

	t.Run("Round trip preserves id and populated groups", func(t *testing.T) {
		original := wellFormedPatient()
		form := adapter.ToFormValues(original)
		rebuilt := adapter.ToResource(form, original.ID)

		assert.Equal(t, original.ID, rebuilt.ID)
		assert.Equal(t, constvars.ResourcePatient, rebuilt.ResourceType)
		assert.Equal(t, original.Telecom, rebuilt.Telecom)
		assert.Equal(t, original.Address, rebuilt.Address)
		assert.Equal(t, original.Communication, rebuilt.Communication)
		assert.Equal(t, original.Photo, rebuilt.Photo)
		assert.Equal(t, original.Gender, rebuilt.Gender)
		assert.Equal(t, original.BirthDate, rebuilt.BirthDate)
		require.NotNil(t, rebuilt.ManagingOrganization)
		assert.Equal(t, "Organization/org-7", rebuilt.ManagingOrganization.Reference)
		require.Len(t, rebuilt.Name, 1)
		assert.Equal(t, "Curría", rebuilt.Name[0].Family)
		assert.Equal(t, []string{"Marie"}, rebuilt.Name[0].Given)
	})

	t.Run("Create flow never synthesizes an id", func(t *testing.T) {
		form := adapter.DefaultFormValues()
		form.FirstName = "Ada"
		form.LastName = "Lovelace"

		patient := adapter.ToResource(form, "")
		assert.Empty(t, patient.ID, "id must be present only when editing an existing resource")
		assert.Equal(t, constvars.ResourcePatient, patient.ResourceType)
	})

	t.Run("Degenerate photo rows are filtered", func(t *testing.T) {
		form := adapter.DefaultFormValues()
		form.Photo = []forms.PhotoFormData{{Title: "no content"}}

		patient := adapter.ToResource(form, "p9")
		assert.Len(t, patient.Photo, 0)
	})

	t.Run("Empty name fields produce no name entry", func(t *testing.T) {
		patient := adapter.ToResource(adapter.DefaultFormValues(), "")
		assert.Nil(t, patient.Name)
	})

	t.Run("Nil form is treated as defaults", func(t *testing.T) {
		patient := adapter.ToResource(nil, "p1")
		assert.Equal(t, "p1", patient.ID)
		assert.Equal(t, constvars.ResourcePatient, patient.ResourceType)
	})
}

func TestPatientAdapterValidation(t *testing.T) {
	adapter := NewPatientAdapter()

	t.Run("Defaults report exactly the missing required fields", func(t *testing.T) {
		form := adapter.DefaultFormValues()
		assert.False(t, adapter.ValidateFormValues(form))

		validationErrors := adapter.ValidationErrors(form)
		assert.Len(t, validationErrors, 4)
		assert.Contains(t, validationErrors, "first_name")
		assert.Contains(t, validationErrors, "last_name")
		assert.Contains(t, validationErrors, "gender")
		assert.Contains(t, validationErrors, "birth_date")
	})

	t.Run("Complete form passes", func(t *testing.T) {
		form := adapter.ToFormValues(wellFormedPatient())
		assert.True(t, adapter.ValidateFormValues(form))
		assert.Empty(t, adapter.ValidationErrors(form))
	})

	t.Run("Invalid birth date is reported", func(t *testing.T) {
		form := adapter.ToFormValues(wellFormedPatient())
		form.BirthDate = "07/11/1988"

		validationErrors := adapter.ValidationErrors(form)
		assert.Contains(t, validationErrors, "birth_date")
		assert.False(t, adapter.ValidateFormValues(form))
	})

	t.Run("Future birth date is rejected", func(t *testing.T) {
		form := adapter.ToFormValues(wellFormedPatient())
		form.BirthDate = "2999-01-01"
		assert.Contains(t, adapter.ValidationErrors(form), "birth_date")
	})

	t.Run("Out-of-set gender is rejected at validation time", func(t *testing.T) {
		form := adapter.ToFormValues(wellFormedPatient())
		form.Gender = "robot"
		assert.Contains(t, adapter.ValidationErrors(form), "gender")
	})

	t.Run("Telecom row without a value is keyed by row", func(t *testing.T) {
		form := adapter.ToFormValues(wellFormedPatient())
		form.Telecom = append(form.Telecom, forms.TelecomFormData{System: "phone", Use: "home"})

		validationErrors := adapter.ValidationErrors(form)
		assert.Contains(t, validationErrors, "telecom[2].value")
	})

	t.Run("Communication row without a language is keyed by row", func(t *testing.T) {
		form := adapter.ToFormValues(wellFormedPatient())
		form.Communication = append(form.Communication, forms.CommunicationFormData{Text: "???"})

		validationErrors := adapter.ValidationErrors(form)
		assert.Contains(t, validationErrors, "communication[1].language")
	})

	t.Run("Nil form is validated as defaults", func(t *testing.T) {
		assert.False(t, adapter.ValidateFormValues(nil))
		assert.Len(t, adapter.ValidationErrors(nil), 4)
	})
}
