package patients

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"gandall-service/internal/app/config"
	"gandall-service/internal/app/contracts"
	"gandall-service/internal/app/models"
	"gandall-service/internal/pkg/constvars"
	"gandall-service/internal/pkg/dto/forms"
	"gandall-service/internal/pkg/dto/responses"
	"gandall-service/internal/pkg/exceptions"
	"gandall-service/internal/pkg/fhir_dto"
	"gandall-service/internal/pkg/fhirform"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type patientUsecase struct {
	PatientFhirClient contracts.PatientFhirClient
	CacheRepository   contracts.CacheRepository
	AuditPublisher    contracts.AuditPublisher
	Adapter           *fhirform.PatientAdapter
	InternalConfig    *config.InternalConfig
	Log               *zap.Logger
}

var (
	patientUsecaseInstance contracts.PatientUsecase
	oncePatientUsecase     sync.Once
)

func NewPatientUsecase(
	patientFhirClient contracts.PatientFhirClient,
	cacheRepository contracts.CacheRepository,
	auditPublisher contracts.AuditPublisher,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.PatientUsecase {
	oncePatientUsecase.Do(func() {
		patientUsecaseInstance = &patientUsecase{
			PatientFhirClient: patientFhirClient,
			CacheRepository:   cacheRepository,
			AuditPublisher:    auditPublisher,
			Adapter:           &fhirform.PatientAdapter{},
			InternalConfig:    internalConfig,
			Log:               logger,
		}
	})
	return patientUsecaseInstance
}

func (uc *patientUsecase) GetPatientForm(ctx context.Context, patientID string) (*responses.PatientForm, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("patientUsecase.GetPatientForm called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)

	patient := uc.findCachedPatient(ctx, requestID, patientID)
	if patient == nil {
		fetched, err := uc.PatientFhirClient.FindPatientByID(ctx, patientID)
		if err != nil {
			return nil, err
		}
		patient = fetched
		uc.cachePatient(ctx, requestID, patient)
	}

	form := uc.Adapter.ToFormValues(patient)

	uc.Log.Info("patientUsecase.GetPatientForm succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patient.ID),
	)
	return &responses.PatientForm{PatientID: patient.ID, Form: form}, nil
}

func (uc *patientUsecase) GetDefaultPatientForm(ctx context.Context) (*responses.PatientForm, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("patientUsecase.GetDefaultPatientForm called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	return &responses.PatientForm{Form: uc.Adapter.DefaultFormValues()}, nil
}

func (uc *patientUsecase) CreatePatient(ctx context.Context, form *forms.PatientFormValues) (*responses.PatientForm, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("patientUsecase.CreatePatient called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	if validationErrors := uc.Adapter.ValidationErrors(form); len(validationErrors) > 0 {
		uc.Log.Error("patientUsecase.CreatePatient form failed validation",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int("validation_error_count", len(validationErrors)),
		)
		return nil, exceptions.ErrFormValidation(validationErrors)
	}

	resource := uc.Adapter.ToResource(form, "")
	created, err := uc.PatientFhirClient.CreatePatient(ctx, resource)
	if err != nil {
		return nil, err
	}

	uc.publishAudit(ctx, requestID, created.ID, constvars.AuditActionCreate)

	uc.Log.Info("patientUsecase.CreatePatient succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, created.ID),
	)
	return &responses.PatientForm{PatientID: created.ID, Form: uc.Adapter.ToFormValues(created)}, nil
}

func (uc *patientUsecase) UpdatePatient(ctx context.Context, patientID string, form *forms.PatientFormValues) (*responses.PatientForm, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("patientUsecase.UpdatePatient called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)

	if validationErrors := uc.Adapter.ValidationErrors(form); len(validationErrors) > 0 {
		uc.Log.Error("patientUsecase.UpdatePatient form failed validation",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int("validation_error_count", len(validationErrors)),
		)
		return nil, exceptions.ErrFormValidation(validationErrors)
	}

	resource := uc.Adapter.ToResource(form, patientID)
	updated, err := uc.PatientFhirClient.UpdatePatient(ctx, resource)
	if err != nil {
		return nil, err
	}

	uc.invalidateCachedPatient(ctx, requestID, patientID)
	uc.publishAudit(ctx, requestID, updated.ID, constvars.AuditActionUpdate)

	uc.Log.Info("patientUsecase.UpdatePatient succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, updated.ID),
	)
	return &responses.PatientForm{PatientID: updated.ID, Form: uc.Adapter.ToFormValues(updated)}, nil
}

func (uc *patientUsecase) ValidatePatientForm(ctx context.Context, form *forms.PatientFormValues) *responses.FormValidation {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("patientUsecase.ValidatePatientForm called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	validationErrors := uc.Adapter.ValidationErrors(form)
	return &responses.FormValidation{
		Valid:  len(validationErrors) == 0,
		Errors: validationErrors,
	}
}

func (uc *patientUsecase) SearchPatients(ctx context.Context, name string, page, pageSize int) ([]responses.PatientSummary, int, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("patientUsecase.SearchPatients called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String("name", name),
	)

	patients, total, err := uc.PatientFhirClient.FindPatientsByName(ctx, name, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	summaries := make([]responses.PatientSummary, len(patients))
	for i := range patients {
		form := uc.Adapter.ToFormValues(&patients[i])
		summaries[i] = responses.PatientSummary{
			PatientID: patients[i].ID,
			Name:      strings.TrimSpace(form.FirstName + " " + form.LastName),
			Gender:    form.Gender,
			BirthDate: form.BirthDate,
		}
	}

	uc.Log.Info("patientUsecase.SearchPatients succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int("patient_count", len(summaries)),
	)
	return summaries, total, nil
}

// findCachedPatient returns the cached resource, or nil on a miss. Cache
// failures count as misses so reads always fall back to the FHIR server.
func (uc *patientUsecase) findCachedPatient(ctx context.Context, requestID, patientID string) *fhir_dto.Patient {
	cacheKey := fmt.Sprintf(constvars.CacheKeyFhirResourceFormat, constvars.ResourcePatient, patientID)
	cached, err := uc.CacheRepository.Get(ctx, cacheKey)
	if err != nil {
		uc.Log.Error("patientUsecase.findCachedPatient error retrieving data from cache",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingCacheKeyKey, cacheKey),
			zap.Error(err),
		)
		return nil
	}
	if cached == "" {
		return nil
	}

	patient := new(fhir_dto.Patient)
	if err := json.Unmarshal([]byte(cached), patient); err != nil {
		uc.Log.Error("patientUsecase.findCachedPatient error parsing cached JSON",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingCacheKeyKey, cacheKey),
			zap.Error(err),
		)
		return nil
	}

	uc.Log.Info("patientUsecase.findCachedPatient cache hit",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingCacheKeyKey, cacheKey),
	)
	return patient
}

func (uc *patientUsecase) cachePatient(ctx context.Context, requestID string, patient *fhir_dto.Patient) {
	cacheKey := fmt.Sprintf(constvars.CacheKeyFhirResourceFormat, constvars.ResourcePatient, patient.ID)
	expiration := time.Duration(uc.InternalConfig.FHIR.CacheExpiredTimeInMinutes) * time.Minute
	if err := uc.CacheRepository.Set(ctx, cacheKey, patient, expiration); err != nil {
		uc.Log.Error("patientUsecase.cachePatient error caching data",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingCacheKeyKey, cacheKey),
			zap.Error(err),
		)
	}
}

func (uc *patientUsecase) invalidateCachedPatient(ctx context.Context, requestID, patientID string) {
	cacheKey := fmt.Sprintf(constvars.CacheKeyFhirResourceFormat, constvars.ResourcePatient, patientID)
	if err := uc.CacheRepository.Delete(ctx, cacheKey); err != nil {
		uc.Log.Error("patientUsecase.invalidateCachedPatient error deleting cached data",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingCacheKeyKey, cacheKey),
			zap.Error(err),
		)
	}
}

// publishAudit emits the audit event for a durable write. Publish failures
// are logged and swallowed so a completed write never surfaces as an error.
func (uc *patientUsecase) publishAudit(ctx context.Context, requestID, patientID, action string) {
	actor := ""
	if isAPIKeyAuth, ok := ctx.Value(constvars.CONTEXT_API_KEY_AUTH_KEY).(bool); ok && isAPIKeyAuth {
		actor = "admin-api-key"
	}

	event := models.ResourceAudit{
		EventID:      uuid.NewString(),
		ResourceType: constvars.ResourcePatient,
		ResourceID:   patientID,
		Action:       action,
		Actor:        actor,
		RequestID:    requestID,
		OccurredAt:   time.Now().UTC(),
	}

	if err := uc.AuditPublisher.PublishResourceAudit(ctx, event); err != nil {
		uc.Log.Error("patientUsecase.publishAudit error publishing audit event",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAuditEventIDKey, event.EventID),
			zap.Error(err),
		)
	}
}
