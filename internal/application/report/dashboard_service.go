package report

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/tilesgalleria/backoffice/internal/domain/catalog"
	"github.com/tilesgalleria/backoffice/internal/domain/partner"
	"github.com/tilesgalleria/backoffice/internal/domain/report"
	"github.com/tilesgalleria/backoffice/internal/domain/shared"
	"github.com/tilesgalleria/backoffice/internal/domain/trade"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const summaryCacheKey = "dashboard:summary"

// Source is the read side the dashboard needs from each repository
type Source[T any] interface {
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	FindRecent(ctx context.Context, limit int) ([]T, error)
}

// Sources groups the repositories feeding the dashboard
type Sources struct {
	Customers        Source[partner.Customer]
	Leads            Source[partner.Lead]
	Products         Source[catalog.Product]
	Invoices         Source[trade.Invoice]
	ManualInvoices   Source[trade.ManualInvoice]
	Quotations       Source[trade.Quotation]
	ManualQuotations Source[trade.ManualQuotation]
	Purchases        Source[trade.PurchaseOrder]
}

// Cache is the subset of a key/value cache used for the summary
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// DashboardConfig tunes the summary
type DashboardConfig struct {
	RecentLimit int
	CacheTTL    time.Duration
}

// DashboardService builds the dashboard summary
type DashboardService struct {
	src    Sources
	cache  Cache
	cfg    DashboardConfig
	logger *zap.Logger
	now    func() time.Time
	// generation advances on every invalidation; a build that overlapped one
	// is returned to its caller but not cached
	generation atomic.Uint64
}

// NewDashboardService creates a dashboard service. A nil cache disables caching.
func NewDashboardService(src Sources, cache Cache, cfg DashboardConfig, logger *zap.Logger) *DashboardService {
	if cfg.RecentLimit <= 0 {
		cfg.RecentLimit = 5
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{src: src, cache: cache, cfg: cfg, logger: logger, now: time.Now}
}

// Summary returns the cached summary or builds a fresh one
func (s *DashboardService) Summary(ctx context.Context) (*report.Summary, error) {
	if cached := s.cached(ctx); cached != nil {
		return cached, nil
	}

	gen := s.generation.Load()
	summary, err := s.build(ctx)
	if err != nil {
		return nil, err
	}
	if s.generation.Load() != gen {
		s.logger.Debug("Dashboard summary invalidated while building; not cached")
		return summary, nil
	}
	s.store(ctx, summary)
	return summary, nil
}

// Invalidate drops the cached summary
func (s *DashboardService) Invalidate(ctx context.Context) error {
	s.generation.Add(1)
	if s.cache == nil {
		return nil
	}
	return s.cache.Delete(ctx, summaryCacheKey)
}

// build runs every count and recent-list read concurrently. Any failure
// cancels the rest and fails the whole summary.
func (s *DashboardService) build(ctx context.Context) (*report.Summary, error) {
	var (
		counts report.Counts
		recent report.Recent
		autoQ  []report.RecentDocument
		manQ   []report.RecentDocument
	)
	limit := s.cfg.RecentLimit
	all := shared.Filter{}

	g, gctx := errgroup.WithContext(ctx)

	count := func(src interface {
		Count(context.Context, shared.Filter) (int64, error)
	}, dst *int64) {
		g.Go(func() error {
			n, err := src.Count(gctx, all)
			if err != nil {
				return err
			}
			*dst = n
			return nil
		})
	}
	count(s.src.Customers, &counts.Customers)
	count(s.src.Invoices, &counts.Invoices)
	count(s.src.ManualInvoices, &counts.ManualInvoices)
	count(s.src.Products, &counts.Products)
	count(s.src.Quotations, &counts.Quotations)
	count(s.src.ManualQuotations, &counts.ManualQuotations)
	count(s.src.Purchases, &counts.Purchases)
	count(s.src.Leads, &counts.Leads)

	g.Go(func() error {
		return recentOf(gctx, s.src.Customers, limit, &recent.Customers, customerRow)
	})
	g.Go(func() error {
		return recentOf(gctx, s.src.Products, limit, &recent.Products, productRow)
	})
	g.Go(func() error {
		return recentOf(gctx, s.src.Leads, limit, &recent.Leads, leadRow)
	})
	g.Go(func() error {
		return recentOf(gctx, s.src.Invoices, limit, &recent.Invoices, invoiceRow)
	})
	g.Go(func() error {
		return recentOf(gctx, s.src.ManualInvoices, limit, &recent.ManualInvoices, manualInvoiceRow)
	})
	g.Go(func() error {
		return recentOf(gctx, s.src.Purchases, limit, &recent.Purchases, purchaseRow)
	})
	g.Go(func() error {
		return recentOf(gctx, s.src.Quotations, limit, &autoQ, quotationRow)
	})
	g.Go(func() error {
		return recentOf(gctx, s.src.ManualQuotations, limit, &manQ, manualQuotationRow)
	})

	if err := g.Wait(); err != nil {
		s.logger.Error("Failed to build dashboard summary", zap.Error(err))
		return nil, err
	}

	recent.Quotations = report.MergeQuotations(autoQ, manQ)
	return &report.Summary{Counts: counts, Recent: recent, GeneratedAt: s.now()}, nil
}

func (s *DashboardService) cached(ctx context.Context) *report.Summary {
	if s.cache == nil {
		return nil
	}
	raw, ok, err := s.cache.Get(ctx, summaryCacheKey)
	if err != nil {
		s.logger.Warn("Dashboard cache read failed", zap.Error(err))
		return nil
	}
	if !ok {
		return nil
	}
	var summary report.Summary
	if err := json.Unmarshal(raw, &summary); err != nil {
		s.logger.Warn("Discarding corrupt dashboard cache entry", zap.Error(err))
		return nil
	}
	return &summary
}

func (s *DashboardService) store(ctx context.Context, summary *report.Summary) {
	if s.cache == nil || s.cfg.CacheTTL <= 0 {
		return
	}
	raw, err := json.Marshal(summary)
	if err != nil {
		s.logger.Warn("Failed to encode dashboard summary", zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, summaryCacheKey, raw, s.cfg.CacheTTL); err != nil {
		s.logger.Warn("Dashboard cache write failed", zap.Error(err))
	}
}

func recentOf[T any, R any](ctx context.Context, src Source[T], limit int, dst *[]R, fn func(*T) R) error {
	items, err := src.FindRecent(ctx, limit)
	if err != nil {
		return err
	}
	out := make([]R, 0, len(items))
	for i := range items {
		out = append(out, fn(&items[i]))
	}
	*dst = out
	return nil
}
