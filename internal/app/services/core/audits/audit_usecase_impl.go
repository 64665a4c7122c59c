package audits

import (
	"context"
	"sync"

	"gandall-service/internal/app/contracts"
	"gandall-service/internal/pkg/constvars"
	"gandall-service/internal/pkg/dto/responses"

	"go.uber.org/zap"
)

type auditUsecase struct {
	AuditRepository contracts.AuditRepository
	Log             *zap.Logger
}

var (
	auditUsecaseInstance contracts.AuditUsecase
	onceAuditUsecase     sync.Once
)

func NewAuditUsecase(
	auditRepository contracts.AuditRepository,
	logger *zap.Logger,
) contracts.AuditUsecase {
	onceAuditUsecase.Do(func() {
		auditUsecaseInstance = &auditUsecase{
			AuditRepository: auditRepository,
			Log:             logger,
		}
	})
	return auditUsecaseInstance
}

func (uc *auditUsecase) FindResourceAudits(ctx context.Context, resourceType, resourceID string, page, pageSize int) ([]responses.ResourceAudit, int, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("auditUsecase.FindResourceAudits called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String("resource_type", resourceType),
		zap.String("resource_id", resourceID),
	)

	audits, total, err := uc.AuditRepository.FindResourceAudits(ctx, resourceType, resourceID, page, pageSize)
	if err != nil {
		uc.Log.Error("auditUsecase.FindResourceAudits error fetching data from MongoDB",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, 0, err
	}

	response := make([]responses.ResourceAudit, len(audits))
	for i, eachAudit := range audits {
		response[i] = eachAudit.ConvertIntoResponse()
	}

	uc.Log.Info("auditUsecase.FindResourceAudits succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int("audit_count", len(response)),
	)
	return response, total, nil
}
