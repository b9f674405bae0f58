package notification

import (
	"context"
	"log/slog"

	portssvc "github.com/sahab-erp/sahab-backend/internal/core/ports/services"
)

// SlogGateway delivers engine events to the structured log. It is the default
// gateway when no external channel is configured.
type SlogGateway struct {
	logger *slog.Logger
}

// NewSlogGateway creates a gateway writing to the given logger.
func NewSlogGateway(logger *slog.Logger) *SlogGateway {
	return &SlogGateway{logger: logger}
}

var _ portssvc.NotificationGateway = (*SlogGateway)(nil)

func (g *SlogGateway) Publish(_ context.Context, event portssvc.Event) {
	attrs := make([]any, 0, 2+len(event.Fields)*2)
	attrs = append(attrs, slog.String("event", event.Name), slog.Time("occurred_at", event.OccurredAt))
	for k, v := range event.Fields {
		attrs = append(attrs, slog.Any(k, v))
	}
	g.logger.Info("Engine event", attrs...)
}
