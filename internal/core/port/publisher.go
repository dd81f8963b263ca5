package port

import (
	"context"
	"time"

	"certsale/internal/core/domain"
)

// EventPublisher delivers campaign events to subscribers.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.Event) error
}

// Metrics records operation outcomes and value flow.
type Metrics interface {
	ObserveOperation(op string, code domain.Code, elapsed time.Duration)
	ObserveMovement(kind domain.MovementKind, asset domain.Asset, amount uint64)
}
