package telemetry

import (
	"context"

	"github.com/tilesgalleria/backoffice/internal/domain/shared"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// ChangeCounter counts committed entity changes by resource and action.
// Subscribe it to the event bus.
type ChangeCounter struct {
	changes metric.Int64Counter
}

// NewChangeCounter creates a ChangeCounter on meter
func NewChangeCounter(meter metric.Meter) (*ChangeCounter, error) {
	c, err := meter.Int64Counter("backoffice.entity.changes",
		metric.WithDescription("Committed creates, updates and deletes per resource"),
	)
	if err != nil {
		return nil, err
	}
	return &ChangeCounter{changes: c}, nil
}

// Handle implements shared.EventHandler
func (c *ChangeCounter) Handle(ctx context.Context, ev shared.DomainEvent) error {
	action := "unknown"
	if changed, ok := ev.(*shared.EntityChangedEvent); ok {
		action = changed.Action
	}
	c.changes.Add(ctx, 1, metric.WithAttributes(
		attribute.String("resource", ev.AggregateType()),
		attribute.String("action", action),
	))
	return nil
}

// EventTypes implements shared.EventHandler
func (c *ChangeCounter) EventTypes() []string {
	return []string{shared.EventTypeEntityChanged}
}
