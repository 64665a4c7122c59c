package contracts

import (
	"context"

	"gandall-service/internal/pkg/dto/forms"
	"gandall-service/internal/pkg/dto/responses"
	"gandall-service/internal/pkg/fhir_dto"
)

type PatientFhirClient interface {
	CreatePatient(ctx context.Context, request *fhir_dto.Patient) (*fhir_dto.Patient, error)
	UpdatePatient(ctx context.Context, request *fhir_dto.Patient) (*fhir_dto.Patient, error)
	FindPatientByID(ctx context.Context, patientID string) (*fhir_dto.Patient, error)
	FindPatientsByName(ctx context.Context, name string, page, pageSize int) ([]fhir_dto.Patient, int, error)
}

type PatientUsecase interface {
	GetPatientForm(ctx context.Context, patientID string) (*responses.PatientForm, error)
	GetDefaultPatientForm(ctx context.Context) (*responses.PatientForm, error)
	CreatePatient(ctx context.Context, form *forms.PatientFormValues) (*responses.PatientForm, error)
	UpdatePatient(ctx context.Context, patientID string, form *forms.PatientFormValues) (*responses.PatientForm, error)
	ValidatePatientForm(ctx context.Context, form *forms.PatientFormValues) *responses.FormValidation
	SearchPatients(ctx context.Context, name string, page, pageSize int) ([]responses.PatientSummary, int, error)
}
