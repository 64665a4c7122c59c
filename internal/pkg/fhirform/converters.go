package fhirform

import (
	"gandall-service/internal/pkg/constvars"
	"gandall-service/internal/pkg/dto/forms"
	"gandall-service/internal/pkg/fhir_dto"
	"strings"
)

var telecomSystemSet = map[string]bool{
	constvars.FhirTelecomSystemPhone: true,
	constvars.FhirTelecomSystemFax:   true,
	constvars.FhirTelecomSystemEmail: true,
	constvars.FhirTelecomSystemPager: true,
	constvars.FhirTelecomSystemURL:   true,
	constvars.FhirTelecomSystemSMS:   true,
	constvars.FhirTelecomSystemOther: true,
}

var telecomUseSet = map[string]bool{
	constvars.FhirTelecomUseHome:   true,
	constvars.FhirTelecomUseWork:   true,
	constvars.FhirTelecomUseTemp:   true,
	constvars.FhirTelecomUseOld:    true,
	constvars.FhirTelecomUseMobile: true,
}

var addressUseSet = map[string]bool{
	constvars.FhirAddressUseHome:    true,
	constvars.FhirAddressUseWork:    true,
	constvars.FhirAddressUseTemp:    true,
	constvars.FhirAddressUseOld:     true,
	constvars.FhirAddressUseBilling: true,
}

var addressTypeSet = map[string]bool{
	constvars.FhirAddressTypePostal:   true,
	constvars.FhirAddressTypePhysical: true,
	constvars.FhirAddressTypeBoth:     true,
}

// ValidateTelecomSystem returns the input when it is a member of the
// FHIR contact-point system value set, otherwise the "phone" fallback.
// Out-of-set upstream data degrades to the fallback instead of failing
// the conversion.
func ValidateTelecomSystem(system string) string {
	if telecomSystemSet[system] {
		return system
	}
	return constvars.FhirTelecomSystemPhone
}

// ValidateTelecomUse returns the input when in-set, otherwise "home".
func ValidateTelecomUse(use string) string {
	if telecomUseSet[use] {
		return use
	}
	return constvars.FhirTelecomUseHome
}

// ValidateAddressUse returns the input when in-set, otherwise "home".
func ValidateAddressUse(use string) string {
	if addressUseSet[use] {
		return use
	}
	return constvars.FhirAddressUseHome
}

// ValidateAddressType returns the input when in-set, otherwise "physical".
func ValidateAddressType(addressType string) string {
	if addressTypeSet[addressType] {
		return addressType
	}
	return constvars.FhirAddressTypePhysical
}

// TelecomToFormData flattens FHIR contact points into editable form
// rows. A nil input yields an empty slice, and every enumerated field
// comes back a member of its value set.
func TelecomToFormData(telecom []fhir_dto.ContactPoint) []forms.TelecomFormData {
	formData := make([]forms.TelecomFormData, 0, len(telecom))
	for _, entry := range telecom {
		formData = append(formData, forms.TelecomFormData{
			System: ValidateTelecomSystem(entry.System),
			Value:  entry.Value,
			Use:    ValidateTelecomUse(entry.Use),
		})
	}
	return formData
}

// TelecomToFHIR builds FHIR contact points from form rows, coercing
// enumerated fields into their value sets on the way out as well.
func TelecomToFHIR(formData []forms.TelecomFormData) []fhir_dto.ContactPoint {
	telecom := make([]fhir_dto.ContactPoint, 0, len(formData))
	for _, entry := range formData {
		telecom = append(telecom, fhir_dto.ContactPoint{
			System: ValidateTelecomSystem(entry.System),
			Value:  entry.Value,
			Use:    ValidateTelecomUse(entry.Use),
		})
	}
	return telecom
}

// AddressToFormData flattens FHIR addresses into editable form rows.
func AddressToFormData(addresses []fhir_dto.Address) []forms.AddressFormData {
	formData := make([]forms.AddressFormData, 0, len(addresses))
	for _, entry := range addresses {
		line := entry.Line
		if line == nil {
			line = []string{}
		}
		formData = append(formData, forms.AddressFormData{
			Use:        ValidateAddressUse(entry.Use),
			Type:       ValidateAddressType(entry.Type),
			Line:       line,
			City:       entry.City,
			State:      entry.State,
			PostalCode: entry.PostalCode,
			Country:    entry.Country,
		})
	}
	return formData
}

// AddressToFHIR builds FHIR addresses from form rows.
func AddressToFHIR(formData []forms.AddressFormData) []fhir_dto.Address {
	addresses := make([]fhir_dto.Address, 0, len(formData))
	for _, entry := range formData {
		addresses = append(addresses, fhir_dto.Address{
			Use:        ValidateAddressUse(entry.Use),
			Type:       ValidateAddressType(entry.Type),
			Line:       entry.Line,
			City:       entry.City,
			State:      entry.State,
			PostalCode: entry.PostalCode,
			Country:    entry.Country,
		})
	}
	return addresses
}

// PhotoToFormData flattens FHIR attachments into editable form rows.
func PhotoToFormData(photos []fhir_dto.Attachment) []forms.PhotoFormData {
	formData := make([]forms.PhotoFormData, 0, len(photos))
	for _, entry := range photos {
		formData = append(formData, forms.PhotoFormData{
			ContentType: entry.ContentType,
			Data:        entry.Data,
			Url:         entry.Url,
			Title:       entry.Title,
		})
	}
	return formData
}

// PhotoToFHIR builds FHIR attachments from form rows. Rows carrying
// neither inline data nor a URL have no retrievable representation and
// are dropped rather than written back as empty attachments.
func PhotoToFHIR(formData []forms.PhotoFormData) []fhir_dto.Attachment {
	photos := make([]fhir_dto.Attachment, 0, len(formData))
	for _, entry := range formData {
		if entry.Data == "" && entry.Url == "" {
			continue
		}
		photos = append(photos, fhir_dto.Attachment{
			ContentType: entry.ContentType,
			Data:        entry.Data,
			Url:         entry.Url,
			Title:       entry.Title,
		})
	}
	return photos
}

// CommunicationToFormData flattens FHIR language preferences into form
// rows. The human-readable label falls back from the concept text to
// the coding display to the supported-language table, so the UI never
// renders an unlabeled row for a known code.
func CommunicationToFormData(communications []fhir_dto.Communication) []forms.CommunicationFormData {
	formData := make([]forms.CommunicationFormData, 0, len(communications))
	for _, entry := range communications {
		var code, display string
		if len(entry.Language.Coding) > 0 {
			code = entry.Language.Coding[0].Code
			display = entry.Language.Coding[0].Display
		}
		text := entry.Language.Text
		if text == "" {
			text = display
		}
		if text == "" {
			text = LanguageDisplay(code)
		}
		formData = append(formData, forms.CommunicationFormData{
			Language:  code,
			Text:      text,
			Preferred: entry.Preferred,
		})
	}
	return formData
}

// CommunicationToFHIR builds FHIR language preferences from form rows.
// Codes are carried under the BCP 47 coding system and the label is
// duplicated into both the coding display and the concept text.
func CommunicationToFHIR(formData []forms.CommunicationFormData) []fhir_dto.Communication {
	communications := make([]fhir_dto.Communication, 0, len(formData))
	for _, entry := range formData {
		text := entry.Text
		if text == "" {
			text = LanguageDisplay(entry.Language)
		}
		communications = append(communications, fhir_dto.Communication{
			Language: fhir_dto.CodeableConcept{
				Coding: []fhir_dto.Coding{
					{
						System:  constvars.FhirLanguageCodingSystem,
						Code:    entry.Language,
						Display: text,
					},
				},
				Text: text,
			},
			Preferred: entry.Preferred,
		})
	}
	return communications
}

// ReferenceID extracts the bare resource id from a FHIR literal
// reference such as "Organization/123" or an absolute resource URL.
func ReferenceID(reference string) string {
	if idx := strings.LastIndex(reference, "/"); idx >= 0 {
		return reference[idx+1:]
	}
	return reference
}
