package practitioners

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

type practitionerUsecase struct {
	PractitionerFhirClient contracts.PractitionerFhirClient
	CacheRepository        contracts.CacheRepository
	AuditPublisher         contracts.AuditPublisher
	Adapter                *fhirform.PractitionerAdapter
	InternalConfig         *config.InternalConfig
	Log                    *zap.Logger
}

var (
	practitionerUsecaseInstance contracts.PractitionerUsecase
	oncePractitionerUsecase     sync.Once
)

func NewPractitionerUsecase(
	practitionerFhirClient contracts.PractitionerFhirClient,
	cacheRepository contracts.CacheRepository,
	auditPublisher contracts.AuditPublisher,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.PractitionerUsecase {
	oncePractitionerUsecase.Do(func() {
		practitionerUsecaseInstance = &practitionerUsecase{
			PractitionerFhirClient: practitionerFhirClient,
			CacheRepository:        cacheRepository,
			AuditPublisher:         auditPublisher,
			Adapter:                &fhirform.PractitionerAdapter{},
			InternalConfig:         internalConfig,
			Log:                    logger,
		}
	})
	return practitionerUsecaseInstance
}

func (uc *practitionerUsecase) GetPractitionerForm(ctx context.Context, practitionerID string) (*responses.PractitionerForm, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("practitionerUsecase.GetPractitionerForm called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPractitionerIDKey, practitionerID),
	)

	practitioner := uc.findCachedPractitioner(ctx, requestID, practitionerID)
	if practitioner == nil {
		fetched, err := uc.PractitionerFhirClient.FindPractitionerByID(ctx, practitionerID)
		if err != nil {
			return nil, err
		}
		practitioner = fetched
		uc.cachePractitioner(ctx, requestID, practitioner)
	}

	form := uc.Adapter.ToFormValues(practitioner)

	uc.Log.Info("practitionerUsecase.GetPractitionerForm succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPractitionerIDKey, practitioner.ID),
	)
	return &responses.PractitionerForm{PractitionerID: practitioner.ID, Form: form}, nil
}

func (uc *practitionerUsecase) GetDefaultPractitionerForm(ctx context.Context) (*responses.PractitionerForm, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("practitionerUsecase.GetDefaultPractitionerForm called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	return &responses.PractitionerForm{Form: uc.Adapter.DefaultFormValues()}, nil
}

func (uc *practitionerUsecase) CreatePractitioner(ctx context.Context, form *forms.PractitionerFormValues) (*responses.PractitionerForm, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("practitionerUsecase.CreatePractitioner called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	if validationErrors := uc.Adapter.ValidationErrors(form); len(validationErrors) > 0 {
		uc.Log.Error("practitionerUsecase.CreatePractitioner form failed validation",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int("validation_error_count", len(validationErrors)),
		)
		return nil, exceptions.ErrFormValidation(validationErrors)
	}

	resource := uc.Adapter.ToResource(form, "")
	created, err := uc.PractitionerFhirClient.CreatePractitioner(ctx, resource)
	if err != nil {
		return nil, err
	}

	uc.publishAudit(ctx, requestID, created.ID, constvars.AuditActionCreate)

	uc.Log.Info("practitionerUsecase.CreatePractitioner succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPractitionerIDKey, created.ID),
	)
	return &responses.PractitionerForm{PractitionerID: created.ID, Form: uc.Adapter.ToFormValues(created)}, nil
}

func (uc *practitionerUsecase) UpdatePractitioner(ctx context.Context, practitionerID string, form *forms.PractitionerFormValues) (*responses.PractitionerForm, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("practitionerUsecase.UpdatePractitioner called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPractitionerIDKey, practitionerID),
	)

	if validationErrors := uc.Adapter.ValidationErrors(form); len(validationErrors) > 0 {
		uc.Log.Error("practitionerUsecase.UpdatePractitioner form failed validation",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int("validation_error_count", len(validationErrors)),
		)
		return nil, exceptions.ErrFormValidation(validationErrors)
	}

	resource := uc.Adapter.ToResource(form, practitionerID)
	updated, err := uc.PractitionerFhirClient.UpdatePractitioner(ctx, resource)
	if err != nil {
		return nil, err
	}

	uc.invalidateCachedPractitioner(ctx, requestID, practitionerID)
	uc.publishAudit(ctx, requestID, updated.ID, constvars.AuditActionUpdate)

	uc.Log.Info("practitionerUsecase.UpdatePractitioner succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPractitionerIDKey, updated.ID),
	)
	return &responses.PractitionerForm{PractitionerID: updated.ID, Form: uc.Adapter.ToFormValues(updated)}, nil
}

func (uc *practitionerUsecase) ValidatePractitionerForm(ctx context.Context, form *forms.PractitionerFormValues) *responses.FormValidation {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("practitionerUsecase.ValidatePractitionerForm called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	validationErrors := uc.Adapter.ValidationErrors(form)
	return &responses.FormValidation{
		Valid:  len(validationErrors) == 0,
		Errors: validationErrors,
	}
}

func (uc *practitionerUsecase) SearchPractitioners(ctx context.Context, name string, page, pageSize int) ([]responses.PractitionerSummary, int, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("practitionerUsecase.SearchPractitioners called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String("name", name),
	)

	practitioners, total, err := uc.PractitionerFhirClient.FindPractitionersByName(ctx, name, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	summaries := make([]responses.PractitionerSummary, len(practitioners))
	for i := range practitioners {
		form := uc.Adapter.ToFormValues(&practitioners[i])
		summaries[i] = responses.PractitionerSummary{
			PractitionerID: practitioners[i].ID,
			Name:           strings.TrimSpace(form.FirstName + " " + form.LastName),
		}
	}

	uc.Log.Info("practitionerUsecase.SearchPractitioners succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int("practitioner_count", len(summaries)),
	)
	return summaries, total, nil
}

// findCachedPractitioner returns the cached resource, or nil on a miss. Cache
// failures count as misses so reads always fall back to the FHIR server.
func (uc *practitionerUsecase) findCachedPractitioner(ctx context.Context, requestID, practitionerID string) *fhir_dto.Practitioner {
	cacheKey := fmt.Sprintf(constvars.CacheKeyFhirResourceFormat, constvars.ResourcePractitioner, practitionerID)
	cached, err := uc.CacheRepository.Get(ctx, cacheKey)
	if err != nil {
		uc.Log.Error("practitionerUsecase.findCachedPractitioner error retrieving data from cache",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingCacheKeyKey, cacheKey),
			zap.Error(err),
		)
		return nil
	}
	if cached == "" {
		return nil
	}

	practitioner := new(fhir_dto.Practitioner)
	if err := json.Unmarshal([]byte(cached), practitioner); err != nil {
		uc.Log.Error("practitionerUsecase.findCachedPractitioner error parsing cached JSON",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingCacheKeyKey, cacheKey),
			zap.Error(err),
		)
		return nil
	}

	uc.Log.Info("practitionerUsecase.findCachedPractitioner cache hit",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingCacheKeyKey, cacheKey),
	)
	return practitioner
}

func (uc *practitionerUsecase) cachePractitioner(ctx context.Context, requestID string, practitioner *fhir_dto.Practitioner) {
	cacheKey := fmt.Sprintf(constvars.CacheKeyFhirResourceFormat, constvars.ResourcePractitioner, practitioner.ID)
	expiration := time.Duration(uc.InternalConfig.FHIR.CacheExpiredTimeInMinutes) * time.Minute
	if err := uc.CacheRepository.Set(ctx, cacheKey, practitioner, expiration); err != nil {
		uc.Log.Error("practitionerUsecase.cachePractitioner error caching data",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingCacheKeyKey, cacheKey),
			zap.Error(err),
		)
	}
}

func (uc *practitionerUsecase) invalidateCachedPractitioner(ctx context.Context, requestID, practitionerID string) {
	cacheKey := fmt.Sprintf(constvars.CacheKeyFhirResourceFormat, constvars.ResourcePractitioner, practitionerID)
	if err := uc.CacheRepository.Delete(ctx, cacheKey); err != nil {
		uc.Log.Error("practitionerUsecase.invalidateCachedPractitioner error deleting cached data",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingCacheKeyKey, cacheKey),
			zap.Error(err),
		)
	}
}

// publishAudit emits the audit event for a durable write. Publish failures
// are logged and swallowed so a completed write never surfaces as an error.
func (uc *practitionerUsecase) publishAudit(ctx context.Context, requestID, practitionerID, action string) {
	actor := ""
	if isAPIKeyAuth, ok := ctx.Value(constvars.CONTEXT_API_KEY_AUTH_KEY).(bool); ok && isAPIKeyAuth {
		actor = "admin-api-key"
	}

	event := models.ResourceAudit{
		EventID:      uuid.NewString(),
		ResourceType: constvars.ResourcePractitioner,
		ResourceID:   practitionerID,
		Action:       action,
		Actor:        actor,
		RequestID:    requestID,
		OccurredAt:   time.Now().UTC(),
	}

	if err := uc.AuditPublisher.PublishResourceAudit(ctx, event); err != nil {
		uc.Log.Error("practitionerUsecase.publishAudit error publishing audit event",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAuditEventIDKey, event.EventID),
			zap.Error(err),
		)
	}
}
