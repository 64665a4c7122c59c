package organizations

import (
	"context"
	"encoding/json"
	"fmt"
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

type organizationUsecase struct {
	OrganizationFhirClient contracts.OrganizationFhirClient
	CacheRepository        contracts.CacheRepository
	AuditPublisher         contracts.AuditPublisher
	Adapter                *fhirform.OrganizationAdapter
	InternalConfig         *config.InternalConfig
	Log                    *zap.Logger
}

var (
	organizationUsecaseInstance contracts.OrganizationUsecase
	onceOrganizationUsecase     sync.Once
)

func NewOrganizationUsecase(
	organizationFhirClient contracts.OrganizationFhirClient,
	cacheRepository contracts.CacheRepository,
	auditPublisher contracts.AuditPublisher,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.OrganizationUsecase {
	onceOrganizationUsecase.Do(func() {
		organizationUsecaseInstance = &organizationUsecase{
			OrganizationFhirClient: organizationFhirClient,
			CacheRepository:        cacheRepository,
			AuditPublisher:         auditPublisher,
			Adapter:                &fhirform.OrganizationAdapter{},
			InternalConfig:         internalConfig,
			Log:                    logger,
		}
	})
	return organizationUsecaseInstance
}

func (uc *organizationUsecase) GetOrganizationForm(ctx context.Context, organizationID string) (*responses.OrganizationForm, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("organizationUsecase.GetOrganizationForm called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOrganizationIDKey, organizationID),
	)

	organization := uc.findCachedOrganization(ctx, requestID, organizationID)
	if organization == nil {
		fetched, err := uc.OrganizationFhirClient.FindOrganizationByID(ctx, organizationID)
		if err != nil {
			return nil, err
		}
		organization = fetched
		uc.cacheOrganization(ctx, requestID, organization)
	}

	form := uc.Adapter.ToFormValues(organization)

	uc.Log.Info("organizationUsecase.GetOrganizationForm succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOrganizationIDKey, organization.ID),
	)
	return &responses.OrganizationForm{OrganizationID: organization.ID, Form: form}, nil
}

func (uc *organizationUsecase) GetDefaultOrganizationForm(ctx context.Context) (*responses.OrganizationForm, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("organizationUsecase.GetDefaultOrganizationForm called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	return &responses.OrganizationForm{Form: uc.Adapter.DefaultFormValues()}, nil
}

func (uc *organizationUsecase) CreateOrganization(ctx context.Context, form *forms.OrganizationFormValues) (*responses.OrganizationForm, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("organizationUsecase.CreateOrganization called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	if validationErrors := uc.Adapter.ValidationErrors(form); len(validationErrors) > 0 {
		uc.Log.Error("organizationUsecase.CreateOrganization form failed validation",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int("validation_error_count", len(validationErrors)),
		)
		return nil, exceptions.ErrFormValidation(validationErrors)
	}

	resource := uc.Adapter.ToResource(form, "")
	created, err := uc.OrganizationFhirClient.CreateOrganization(ctx, resource)
	if err != nil {
		return nil, err
	}

	uc.publishAudit(ctx, requestID, created.ID, constvars.AuditActionCreate)

	uc.Log.Info("organizationUsecase.CreateOrganization succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOrganizationIDKey, created.ID),
	)
	return &responses.OrganizationForm{OrganizationID: created.ID, Form: uc.Adapter.ToFormValues(created)}, nil
}

func (uc *organizationUsecase) UpdateOrganization(ctx context.Context, organizationID string, form *forms.OrganizationFormValues) (*responses.OrganizationForm, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("organizationUsecase.UpdateOrganization called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOrganizationIDKey, organizationID),
	)

	if validationErrors := uc.Adapter.ValidationErrors(form); len(validationErrors) > 0 {
		uc.Log.Error("organizationUsecase.UpdateOrganization form failed validation",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int("validation_error_count", len(validationErrors)),
		)
		return nil, exceptions.ErrFormValidation(validationErrors)
	}

	resource := uc.Adapter.ToResource(form, organizationID)
	updated, err := uc.OrganizationFhirClient.UpdateOrganization(ctx, resource)
	if err != nil {
		return nil, err
	}

	uc.invalidateCachedOrganization(ctx, requestID, organizationID)
	uc.publishAudit(ctx, requestID, updated.ID, constvars.AuditActionUpdate)

	uc.Log.Info("organizationUsecase.UpdateOrganization succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOrganizationIDKey, updated.ID),
	)
	return &responses.OrganizationForm{OrganizationID: updated.ID, Form: uc.Adapter.ToFormValues(updated)}, nil
}

func (uc *organizationUsecase) ValidateOrganizationForm(ctx context.Context, form *forms.OrganizationFormValues) *responses.FormValidation {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("organizationUsecase.ValidateOrganizationForm called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	validationErrors := uc.Adapter.ValidationErrors(form)
	return &responses.FormValidation{
		Valid:  len(validationErrors) == 0,
		Errors: validationErrors,
	}
}

func (uc *organizationUsecase) SearchOrganizations(ctx context.Context, name string, page, pageSize int) ([]responses.OrganizationSummary, int, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("organizationUsecase.SearchOrganizations called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String("name", name),
	)

	organizations, total, err := uc.OrganizationFhirClient.FindOrganizationsByName(ctx, name, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	summaries := make([]responses.OrganizationSummary, len(organizations))
	for i := range organizations {
		summaries[i] = responses.OrganizationSummary{
			OrganizationID: organizations[i].ID,
			Name:           organizations[i].Name,
		}
	}

	uc.Log.Info("organizationUsecase.SearchOrganizations succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int("organization_count", len(summaries)),
	)
	return summaries, total, nil
}

// findCachedOrganization returns the cached resource, or nil on a miss. Cache
// failures count as misses so reads always fall back to the FHIR server.
func (uc *organizationUsecase) findCachedOrganization(ctx context.Context, requestID, organizationID string) *fhir_dto.Organization {
	cacheKey := fmt.Sprintf(constvars.CacheKeyFhirResourceFormat, constvars.ResourceOrganization, organizationID)
	cached, err := uc.CacheRepository.Get(ctx, cacheKey)
	if err != nil {
		uc.Log.Error("organizationUsecase.findCachedOrganization error retrieving data from cache",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingCacheKeyKey, cacheKey),
			zap.Error(err),
		)
		return nil
	}
	if cached == "" {
		return nil
	}

	organization := new(fhir_dto.Organization)
	if err := json.Unmarshal([]byte(cached), organization); err != nil {
		uc.Log.Error("organizationUsecase.findCachedOrganization error parsing cached JSON",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingCacheKeyKey, cacheKey),
			zap.Error(err),
		)
		return nil
	}

	uc.Log.Info("organizationUsecase.findCachedOrganization cache hit",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingCacheKeyKey, cacheKey),
	)
	return organization
}

func (uc *organizationUsecase) cacheOrganization(ctx context.Context, requestID string, organization *fhir_dto.Organization) {
	cacheKey := fmt.Sprintf(constvars.CacheKeyFhirResourceFormat, constvars.ResourceOrganization, organization.ID)
	expiration := time.Duration(uc.InternalConfig.FHIR.CacheExpiredTimeInMinutes) * time.Minute
	if err := uc.CacheRepository.Set(ctx, cacheKey, organization, expiration); err != nil {
		uc.Log.Error("organizationUsecase.cacheOrganization error caching data",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingCacheKeyKey, cacheKey),
			zap.Error(err),
		)
	}
}

func (uc *organizationUsecase) invalidateCachedOrganization(ctx context.Context, requestID, organizationID string) {
	cacheKey := fmt.Sprintf(constvars.CacheKeyFhirResourceFormat, constvars.ResourceOrganization, organizationID)
	if err := uc.CacheRepository.Delete(ctx, cacheKey); err != nil {
		uc.Log.Error("organizationUsecase.invalidateCachedOrganization error deleting cached data",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingCacheKeyKey, cacheKey),
			zap.Error(err),
		)
	}
}

// publishAudit emits the audit event for a durable write. Publish failures
// are logged and swallowed so a completed write never surfaces as an error.
func (uc *organizationUsecase) publishAudit(ctx context.Context, requestID, organizationID, action string) {
	actor := ""
	if isAPIKeyAuth, ok := ctx.Value(constvars.CONTEXT_API_KEY_AUTH_KEY).(bool); ok && isAPIKeyAuth {
		actor = "admin-api-key"
	}

	event := models.ResourceAudit{
		EventID:      uuid.NewString(),
		ResourceType: constvars.ResourceOrganization,
		ResourceID:   organizationID,
		Action:       action,
		Actor:        actor,
		RequestID:    requestID,
		OccurredAt:   time.Now().UTC(),
	}

	if err := uc.AuditPublisher.PublishResourceAudit(ctx, event); err != nil {
		uc.Log.Error("organizationUsecase.publishAudit error publishing audit event",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAuditEventIDKey, event.EventID),
			zap.Error(err),
		)
	}
}
