package contracts

import (
	"context"

	"gandall-service/internal/pkg/dto/forms"
	"gandall-service/internal/pkg/dto/responses"
	"gandall-service/internal/pkg/fhir_dto"
)

type OrganizationFhirClient interface {
	CreateOrganization(ctx context.Context, request *fhir_dto.Organization) (*fhir_dto.Organization, error)
	UpdateOrganization(ctx context.Context, request *fhir_dto.Organization) (*fhir_dto.Organization, error)
	FindOrganizationByID(ctx context.Context, organizationID string) (*fhir_dto.Organization, error)
	FindOrganizationsByName(ctx context.Context, name string, page, pageSize int) ([]fhir_dto.Organization, int, error)
}

type OrganizationUsecase interface {
	GetOrganizationForm(ctx context.Context, organizationID string) (*responses.OrganizationForm, error)
	GetDefaultOrganizationForm(ctx context.Context) (*responses.OrganizationForm, error)
	CreateOrganization(ctx context.Context, form *forms.OrganizationFormValues) (*responses.OrganizationForm, error)
	UpdateOrganization(ctx context.Context, organizationID string, form *forms.OrganizationFormValues) (*responses.OrganizationForm, error)
	ValidateOrganizationForm(ctx context.Context, form *forms.OrganizationFormValues) *responses.FormValidation
	SearchOrganizations(ctx context.Context, name string, page, pageSize int) ([]responses.OrganizationSummary, int, error)
}
