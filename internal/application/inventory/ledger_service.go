// Package inventory runs the stock ledger against a product stock store.
package inventory

import (
	"context"

	"github.com/tilesgalleria/backoffice/internal/domain/inventory"
	"github.com/tilesgalleria/backoffice/internal/domain/shared"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

const meterName = "github.com/tilesgalleria/backoffice/inventory"

// LedgerService holds the stock policy and observability hooks shared by every
// document service. Bind it to a (usually transaction-scoped) stock repository
// to obtain a StockLedger.
type LedgerService struct {
	policy      inventory.Policy
	logger      *zap.Logger
	adjustments metric.Int64Counter
}

// NewLedgerService creates a LedgerService. A nil logger disables logging and a
// nil meter falls back to the global meter provider.
func NewLedgerService(policy inventory.Policy, logger *zap.Logger, meter metric.Meter) *LedgerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if meter == nil {
		meter = otel.GetMeterProvider().Meter(meterName)
	}
	counter, err := meter.Int64Counter(
		"stock.adjustments",
		metric.WithDescription("Per-product stock adjustments applied by the ledger"),
		metric.WithUnit("{adjustment}"),
	)
	if err != nil {
		logger.Warn("stock adjustment counter unavailable", zap.Error(err))
	}
	return &LedgerService{policy: policy, logger: logger, adjustments: counter}
}

// Policy returns the configured stock policy
func (s *LedgerService) Policy() inventory.Policy {
	return s.policy
}

// Bind returns a StockLedger writing through repo
func (s *LedgerService) Bind(repo inventory.StockRepository) inventory.StockLedger {
	return &ledger{svc: s, repo: repo}
}

type ledger struct {
	svc  *LedgerService
	repo inventory.StockRepository
}

var _ inventory.StockLedger = (*ledger)(nil)

func (l *ledger) Apply(ctx context.Context, kind inventory.DocumentKind, lines []inventory.StockLine) (*inventory.AdjustmentReport, error) {
	dir := l.svc.policy.DirectionFor(kind)
	return l.run(ctx, kind, "apply", inventory.NetDeltas(kind, dir.Sign(), lines))
}

func (l *ledger) Reverse(ctx context.Context, kind inventory.DocumentKind, lines []inventory.StockLine) (*inventory.AdjustmentReport, error) {
	dir := l.svc.policy.DirectionFor(kind)
	return l.run(ctx, kind, "reverse", inventory.NetDeltas(kind, dir.Sign().Neg(), lines))
}

func (l *ledger) Reconcile(ctx context.Context, kind inventory.DocumentKind, oldLines, newLines []inventory.StockLine) (*inventory.AdjustmentReport, error) {
	dir := l.svc.policy.DirectionFor(kind)
	return l.run(ctx, kind, "reconcile", inventory.ReconcileDeltas(kind, dir, oldLines, newLines))
}

func (l *ledger) run(ctx context.Context, kind inventory.DocumentKind, op string, deltas []inventory.Delta) (*inventory.AdjustmentReport, error) {
	report := &inventory.AdjustmentReport{Kind: kind, Adjustments: make([]inventory.Adjustment, 0, len(deltas))}
	log := l.svc.logger.With(zap.String("kind", string(kind)), zap.String("op", op))

	for _, d := range deltas {
		change, err := l.repo.Adjust(ctx, d)
		if err != nil {
			log.Error("stock adjustment failed", zap.String("product_id", d.ProductID.String()), zap.Error(err))
			return report, shared.WrapDomainError(shared.CodeStockAdjustmentFailed,
				"failed to adjust stock for product "+d.ProductID.String(), err)
		}

		adj := inventory.Adjustment{
			ProductID: d.ProductID,
			Requested: d,
			Before:    change.Before,
			After:     change.After,
			Outcome:   inventory.OutcomeAdjusted,
		}
		switch {
		case !change.Found:
			adj.Outcome = inventory.OutcomeSkipped
			log.Warn("stock adjustment skipped: product not found",
				zap.String("product_id", d.ProductID.String()),
				zap.String("quantity_delta", d.Quantity.String()),
			)
		case change.Clamped:
			adj.Outcome = inventory.OutcomeClamped
			log.Warn("stock clamped at zero",
				zap.String("product_id", d.ProductID.String()),
				zap.String("requested_quantity", d.Quantity.String()),
				zap.String("available_quantity", change.Before.Quantity.String()),
				zap.String("requested_boxes", d.Boxes.String()),
				zap.String("available_boxes", change.Before.Boxes.String()),
			)
		default:
			log.Debug("stock adjusted",
				zap.String("product_id", d.ProductID.String()),
				zap.String("quantity_delta", d.Quantity.String()),
				zap.String("boxes_delta", d.Boxes.String()),
				zap.String("quantity_after", change.After.Quantity.String()),
			)
		}
		report.Adjustments = append(report.Adjustments, adj)
		l.svc.record(ctx, kind, op, adj.Outcome)
	}
	return report, nil
}

func (s *LedgerService) record(ctx context.Context, kind inventory.DocumentKind, op string, outcome inventory.Outcome) {
	if s.adjustments == nil {
		return
	}
	s.adjustments.Add(ctx, 1, metric.WithAttributes(
		attribute.String("kind", string(kind)),
		attribute.String("op", op),
		attribute.String("direction", string(s.policy.DirectionFor(kind))),
		attribute.String("outcome", string(outcome)),
	))
}
