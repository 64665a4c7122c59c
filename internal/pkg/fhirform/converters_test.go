package fhirform

import (
	"testing"

	"gandall-service/internal/pkg/constvars"
	"gandall-service/internal/pkg/dto/forms"
	"gandall-service/internal/pkg/fhir_dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnumValidators(t *testing.T) {
	t.Run("In-set values pass through unchanged", func(t *testing.T) {
		assert.Equal(t, "email", ValidateTelecomSystem("email"))
		assert.Equal(t, "sms", ValidateTelecomSystem("sms"))
		assert.Equal(t, "mobile", ValidateTelecomUse("mobile"))
		assert.Equal(t, "billing", ValidateAddressUse("billing"))
		assert.Equal(t, "postal", ValidateAddressType("postal"))
		assert.Equal(t, "both", ValidateAddressType("both"))
	})

	t.Run("Out-of-set values coerce to the documented fallback", func(t *testing.T) {
		assert.Equal(t, "phone", ValidateTelecomSystem("carrier-pigeon"), "unknown telecom system should fall back to phone")
		assert.Equal(t, "home", ValidateTelecomUse("vacation"), "unknown telecom use should fall back to home")
		assert.Equal(t, "home", ValidateAddressUse("secret"), "unknown address use should fall back to home")
		assert.Equal(t, "physical", ValidateAddressType("astral"), "unknown address type should fall back to physical")
	})

	t.Run("Empty string coerces too", func(t *testing.T) {
		assert.Equal(t, "phone", ValidateTelecomSystem(""))
		assert.Equal(t, "home", ValidateTelecomUse(""))
		assert.Equal(t, "home", ValidateAddressUse(""))
		assert.Equal(t, "physical", ValidateAddressType(""))
	})
}

func TestTelecomConversion(t *testing.T) {
	t.Run("Nil input yields an empty slice", func(t *testing.T) {
		formData := TelecomToFormData(nil)
		require.NotNil(t, formData, "absent telecom must become an empty slice, never nil")
		assert.Len(t, formData, 0)
	})

	t.Run("Malformed enums come back as members of their sets", func(t *testing.T) {
		formData := TelecomToFormData([]fhir_dto.ContactPoint{
			{System: "telegraph", Value: "555-0134", Use: "castle"},
		})
		require.Len(t, formData, 1)
		assert.Equal(t, "phone", formData[0].System)
		assert.Equal(t, "home", formData[0].Use)
		assert.Equal(t, "555-0134", formData[0].Value)
	})

	t.Run("Round trip preserves well-formed entries", func(t *testing.T) {
		original := []fhir_dto.ContactPoint{
			{System: "email", Value: "ada@example.org", Use: "work"},
			{System: "phone", Value: "555-0199", Use: "mobile"},
		}
		roundTripped := TelecomToFHIR(TelecomToFormData(original))
		assert.Equal(t, original, roundTripped)
	})
}

func TestAddressConversion(t *testing.T) {
	t.Run("Nil input yields an empty slice", func(t *testing.T) {
		formData := AddressToFormData(nil)
		require.NotNil(t, formData)
		assert.Len(t, formData, 0)
	})

	t.Run("Missing line array becomes an empty slice", func(t *testing.T) {
		formData := AddressToFormData([]fhir_dto.Address{{City: "Oslo", Country: "NO"}})
		require.Len(t, formData, 1)
		require.NotNil(t, formData[0].Line, "line must be an empty slice, never nil")
		assert.Len(t, formData[0].Line, 0)
	})

	t.Run("Round trip preserves well-formed entries", func(t *testing.T) {
		original := []fhir_dto.Address{
			{
				Use:        "work",
				Type:       "both",
				Line:       []string{"12 Harbour Street", "Suite 4"},
				City:       "Wellington",
				State:      "WGN",
				PostalCode: "6011",
				Country:    "NZ",
			},
		}
		roundTripped := AddressToFHIR(AddressToFormData(original))
		assert.Equal(t, original, roundTripped)
	})
}

func TestPhotoConversion(t *testing.T) {
	t.Run("Entry with only title is dropped on the way back", func(t *testing.T) {
		photos := PhotoToFHIR([]forms.PhotoFormData{{Title: "profile"}})
		require.NotNil(t, photos)
		assert.Len(t, photos, 0, "an attachment without data or url has no retrievable representation")
	})

	t.Run("Entries with data or url survive", func(t *testing.T) {
		photos := PhotoToFHIR([]forms.PhotoFormData{
			{ContentType: "image/png", Data: "aGVsbG8=", Title: "inline"},
			{ContentType: "image/jpeg", Url: "https://cdn.example.org/p/1.jpg", Title: "linked"},
			{Title: "empty"},
		})
		require.Len(t, photos, 2)
		assert.Equal(t, "aGVsbG8=", photos[0].Data)
		assert.Equal(t, "https://cdn.example.org/p/1.jpg", photos[1].Url)
	})

	t.Run("Nil input yields an empty slice", func(t *testing.T) {
		formData := PhotoToFormData(nil)
		require.NotNil(t, formData)
		assert.Len(t, formData, 0)
	})
}

func TestCommunicationConversion(t *testing.T) {
	t.Run("Form row becomes a BCP 47 coding with duplicated label", func(t *testing.T) {
		communications := CommunicationToFHIR([]forms.CommunicationFormData{
			{Language: "fr", Text: "French"},
		})
		require.Len(t, communications, 1)

		language := communications[0].Language
		require.Len(t, language.Coding, 1)
		assert.Equal(t, constvars.FhirLanguageCodingSystem, language.Coding[0].System)
		assert.Equal(t, "fr", language.Coding[0].Code)
		assert.Equal(t, "French", language.Coding[0].Display)
		assert.Equal(t, "French", language.Text, "label must be duplicated into the concept text")
	})

	t.Run("Missing label is filled from the supported-language table", func(t *testing.T) {
		communications := CommunicationToFHIR([]forms.CommunicationFormData{
			{Language: "de"},
		})
		require.Len(t, communications, 1)
		assert.Equal(t, "German", communications[0].Language.Text)
		assert.Equal(t, "German", communications[0].Language.Coding[0].Display)
	})

	t.Run("Preferred flag is carried through both directions", func(t *testing.T) {
		original := []fhir_dto.Communication{
			{
				Language: fhir_dto.CodeableConcept{
					Coding: []fhir_dto.Coding{{System: constvars.FhirLanguageCodingSystem, Code: "es", Display: "Spanish"}},
					Text:   "Spanish",
				},
				Preferred: true,
			},
		}
		formData := CommunicationToFormData(original)
		require.Len(t, formData, 1)
		assert.True(t, formData[0].Preferred)

		roundTripped := CommunicationToFHIR(formData)
		assert.Equal(t, original, roundTripped)
	})

	t.Run("Label falls back from text to display to table", func(t *testing.T) {
		formData := CommunicationToFormData([]fhir_dto.Communication{
			{Language: fhir_dto.CodeableConcept{
				Coding: []fhir_dto.Coding{{Code: "ja", Display: "Japanese (display)"}},
			}},
			{Language: fhir_dto.CodeableConcept{
				Coding: []fhir_dto.Coding{{Code: "ko"}},
			}},
		})
		require.Len(t, formData, 2)
		assert.Equal(t, "Japanese (display)", formData[0].Text)
		assert.Equal(t, "Korean", formData[1].Text, "label should come from the reference table when the resource has none")
	})
}

func TestReferenceID(t *testing.T) {
	assert.Equal(t, "123", ReferenceID("Organization/123"))
	assert.Equal(t, "abc-9", ReferenceID("https://fhir.example.org/base/Organization/abc-9"))
	assert.Equal(t, "plain-id", ReferenceID("plain-id"))
	assert.Equal(t, "", ReferenceID(""))
}

func TestReferenceData(t *testing.T) {
	t.Run("Supported languages expose code and display", func(t *testing.T) {
		languages := SupportedLanguages()
		require.NotEmpty(t, languages)

		found := false
		for _, language := range languages {
			assert.NotEmpty(t, language.Code)
			assert.NotEmpty(t, language.Display)
			if language.Code == "fr" {
				found = true
				assert.Equal(t, "French", language.Display)
			}
		}
		assert.True(t, found, "French must be in the supported set")
	})

	t.Run("Returned slices are copies", func(t *testing.T) {
		languages := SupportedLanguages()
		languages[0].Display = "mutated"
		assert.NotEqual(t, "mutated", SupportedLanguages()[0].Display, "callers must not be able to mutate package data")

		countryList := Countries()
		countryList[0].Name = "mutated"
		assert.NotEqual(t, "mutated", Countries()[0].Name)
	})

	t.Run("Unknown language code has no display", func(t *testing.T) {
		assert.Equal(t, "", LanguageDisplay("zz"))
	})
}
