package amqp

import (
	"context"
	"log/slog"

	"certsale/internal/core/domain"
	"certsale/internal/core/port"
)

// LogPublisher writes events to the logger instead of a broker. It is used
// when no broker is configured.
type LogPublisher struct {
	logger *slog.Logger
}

var _ port.EventPublisher = LogPublisher{}

func NewLogPublisher(logger *slog.Logger) LogPublisher {
	return LogPublisher{logger: logger}
}

func (p LogPublisher) Publish(ctx context.Context, e domain.Event) error {
	attrs := []slog.Attr{
		slog.String("id", e.ID),
		slog.String("type", string(e.Type)),
		slog.String("campaign", e.ProjectAddress.String()),
	}
	if !e.Actor.IsZero() {
		attrs = append(attrs, slog.String("actor", e.Actor.String()))
	}
	if e.Amount > 0 {
		attrs = append(attrs, slog.Uint64("amount", e.Amount))
	}
	p.logger.LogAttrs(ctx, slog.LevelInfo, "event", attrs...)
	return nil
}
