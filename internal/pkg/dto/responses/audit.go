package responses

import "time"

// ResourceAudit is one audit-trail entry as served to the platform's
// admin screens.
type ResourceAudit struct {
	EventID      string    `json:"event_id"`
	ResourceType string    `json:"resource_type"`
	ResourceID   string    `json:"resource_id"`
	Action       string    `json:"action"`
	Actor        string    `json:"actor,omitempty"`
	RequestID    string    `json:"request_id,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
}
