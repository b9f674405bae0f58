package services

import (
	"context"
	"time"
)

// Event is a structured notification emitted by the engine. The engine never
// formats or sends human-readable messages; delivery over concrete channels
// is the gateway implementation's concern.
type Event struct {
	Name       string         `json:"name"` // e.g. "sale.posted", "journal.pending_mapping", "rates.stale"
	OccurredAt time.Time      `json:"occurredAt"`
	Fields     map[string]any `json:"fields,omitempty"`
}

// NotificationGateway delivers engine events. Implementations must tolerate
// failure without affecting the business operation that emitted the event.
type NotificationGateway interface {
	Publish(ctx context.Context, event Event)
}
