package utils

import (
	"gandall-service/internal/pkg/constvars"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("fhir_date", validateFhirDate)
	validate.RegisterValidation("fhir_gender", validateFhirGender)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateFhirDate(fl validator.FieldLevel) bool {
	_, err := time.Parse("2006-01-02", fl.Field().String())
	return err == nil
}

func validateFhirGender(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case constvars.FhirGenderMale, constvars.FhirGenderFemale, constvars.FhirGenderOther, constvars.FhirGenderUnknown:
		return true
	}
	return false
}
