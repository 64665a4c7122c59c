package contracts

import (
	"context"

	"gandall-service/internal/app/models"
	"gandall-service/internal/pkg/dto/responses"
)

type AuditPublisher interface {
	PublishResourceAudit(ctx context.Context, event models.ResourceAudit) error
}

type AuditRepository interface {
	InsertResourceAudit(ctx context.Context, audit *models.ResourceAudit) error
	FindResourceAudits(ctx context.Context, resourceType, resourceID string, page, pageSize int) ([]models.ResourceAudit, int, error)
}

type AuditUsecase interface {
	FindResourceAudits(ctx context.Context, resourceType, resourceID string, page, pageSize int) ([]responses.ResourceAudit, int, error)
}
