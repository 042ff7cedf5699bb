package report

import (
	"context"

	"github.com/tilesgalleria/backoffice/internal/domain/shared"
	"go.uber.org/zap"
)

// InvalidationHandler drops the cached dashboard summary whenever an entity changes
type InvalidationHandler struct {
	dashboard *DashboardService
	logger    *zap.Logger
}

// NewInvalidationHandler creates the handler
func NewInvalidationHandler(dashboard *DashboardService, logger *zap.Logger) *InvalidationHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InvalidationHandler{dashboard: dashboard, logger: logger}
}

// Handle implements shared.EventHandler
func (h *InvalidationHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	if err := h.dashboard.Invalidate(ctx); err != nil {
		h.logger.Warn("Failed to invalidate dashboard cache",
			zap.String("aggregate_type", event.AggregateType()),
			zap.Error(err))
		return err
	}
	return nil
}

// EventTypes implements shared.EventHandler
func (h *InvalidationHandler) EventTypes() []string {
	return []string{shared.EventTypeEntityChanged}
}

var _ shared.EventHandler = (*InvalidationHandler)(nil)
