package contracts

import (
	"context"

	"gandall-service/internal/pkg/dto/forms"
	"gandall-service/internal/pkg/dto/responses"
	"gandall-service/internal/pkg/fhir_dto"
)

type PractitionerFhirClient interface {
	CreatePractitioner(ctx context.Context, request *fhir_dto.Practitioner) (*fhir_dto.Practitioner, error)
	UpdatePractitioner(ctx context.Context, request *fhir_dto.Practitioner) (*fhir_dto.Practitioner, error)
	FindPractitionerByID(ctx context.Context, practitionerID string) (*fhir_dto.Practitioner, error)
	FindPractitionersByName(ctx context.Context, name string, page, pageSize int) ([]fhir_dto.Practitioner, int, error)
}

type PractitionerUsecase interface {
	GetPractitionerForm(ctx context.Context, practitionerID string) (*responses.PractitionerForm, error)
	GetDefaultPractitionerForm(ctx context.Context) (*responses.PractitionerForm, error)
	CreatePractitioner(ctx context.Context, form *forms.PractitionerFormValues) (*responses.PractitionerForm, error)
	UpdatePractitioner(ctx context.Context, practitionerID string, form *forms.PractitionerFormValues) (*responses.PractitionerForm, error)
	ValidatePractitionerForm(ctx context.Context, form *forms.PractitionerFormValues) *responses.FormValidation
	SearchPractitioners(ctx context.Context, name string, page, pageSize int) ([]responses.PractitionerSummary, int, error)
}
