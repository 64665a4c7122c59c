package models

import (
	"gandall-service/internal/pkg/dto/responses"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ResourceAudit records one successful create or update that went
// through the platform, persisted by the audit worker.
type ResourceAudit struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	EventID      string             `bson:"event_id"`
	ResourceType string             `bson:"resource_type"`
	ResourceID   string             `bson:"resource_id"`
	Action       string             `bson:"action"`
	Actor        string             `bson:"actor,omitempty"`
	RequestID    string             `bson:"request_id,omitempty"`
	OccurredAt   time.Time          `bson:"occurred_at"`
}

func (m ResourceAudit) ConvertIntoResponse() responses.ResourceAudit {
	return responses.ResourceAudit{
		EventID:      m.EventID,
		ResourceType: m.ResourceType,
		ResourceID:   m.ResourceID,
		Action:       m.Action,
		Actor:        m.Actor,
		RequestID:    m.RequestID,
		OccurredAt:   m.OccurredAt,
	}
}
