package report

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tilesgalleria/backoffice/internal/domain/catalog"
	"github.com/tilesgalleria/backoffice/internal/domain/partner"
	"github.com/tilesgalleria/backoffice/internal/domain/report"
	"github.com/tilesgalleria/backoffice/internal/domain/shared"
	"github.com/tilesgalleria/backoffice/internal/domain/trade"
	"github.com/tilesgalleria/backoffice/internal/infrastructure/cache"
)

type fakeSource[T any] struct {
	count int64
	items []T
	err   error
	calls atomic.Int32
	limit atomic.Int32
}

func (f *fakeSource[T]) Count(context.Context, shared.Filter) (int64, error) {
	f.calls.Add(1)
	return f.count, f.err
}

func (f *fakeSource[T]) FindRecent(_ context.Context, limit int) ([]T, error) {
	f.calls.Add(1)
	f.limit.Store(int32(limit))
	if f.err != nil {
		return nil, f.err
	}
	return f.items, nil
}

type fixture struct {
	customers  *fakeSource[partner.Customer]
	leads      *fakeSource[partner.Lead]
	products   *fakeSource[catalog.Product]
	invoices   *fakeSource[trade.Invoice]
	manualInv  *fakeSource[trade.ManualInvoice]
	quotations *fakeSource[trade.Quotation]
	manualQuot *fakeSource[trade.ManualQuotation]
	purchases  *fakeSource[trade.PurchaseOrder]
}

func (f *fixture) sources() Sources {
	return Sources{
		Customers:        f.customers,
		Leads:            f.leads,
		Products:         f.products,
		Invoices:         f.invoices,
		ManualInvoices:   f.manualInv,
		Quotations:       f.quotations,
		ManualQuotations: f.manualQuot,
		Purchases:        f.purchases,
	}
}

func (f *fixture) totalCalls() int32 {
	return f.customers.calls.Load() + f.leads.calls.Load() + f.products.calls.Load() +
		f.invoices.calls.Load() + f.manualInv.calls.Load() + f.quotations.calls.Load() +
		f.manualQuot.calls.Load() + f.purchases.calls.Load()
}

func at(minute int) time.Time {
	return time.Date(2024, 6, 1, 10, minute, 0, 0, time.UTC)
}

func doc(number string, minute int, total string) trade.Document {
	d := trade.Document{Number: number}
	d.ID = uuid.New()
	d.CreatedAt = at(minute)
	d.Totals.GrandTotal = decimal.RequireFromString(total)
	return d
}

func newFixture() *fixture {
	cust := partner.Customer{Name: "Ana", Email: "ana@example.com"}
	cust.ID = uuid.New()
	cust.CreatedAt = at(1)

	return &fixture{
		customers: &fakeSource[partner.Customer]{count: 12, items: []partner.Customer{cust}},
		leads:     &fakeSource[partner.Lead]{count: 3},
		products:  &fakeSource[catalog.Product]{count: 40},
		invoices: &fakeSource[trade.Invoice]{count: 7, items: []trade.Invoice{
			{Document: doc("INV-0007", 9, "110.00"), CustomerName: "Ana", Status: trade.PaymentStatus("paid")},
		}},
		manualInv: &fakeSource[trade.ManualInvoice]{count: 2},
		quotations: &fakeSource[trade.Quotation]{count: 5, items: []trade.Quotation{
			{Document: doc("QUO-0005", 8, "50"), CustomerName: "Ana"},
			{Document: doc("QUO-0004", 2, "20"), CustomerName: "Bo"},
		}},
		manualQuot: &fakeSource[trade.ManualQuotation]{count: 4, items: []trade.ManualQuotation{
			{
				Document: doc("MQ-0004", 5, "75"),
				Customer: trade.CustomerInline(trade.CustomerSnapshot{Name: "Walk-in"}),
			},
		}},
		purchases: &fakeSource[trade.PurchaseOrder]{count: 6},
	}
}

func TestDashboardService_Summary(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	svc := NewDashboardService(f.sources(), nil, DashboardConfig{}, nil)

	summary, err := svc.Summary(ctx)
	require.NoError(t, err)

	assert.Equal(t, report.Counts{
		Customers: 12, Invoices: 7, ManualInvoices: 2, Products: 40,
		Quotations: 5, ManualQuotations: 4, Purchases: 6, Leads: 3,
	}, summary.Counts)
	assert.Equal(t, int32(16), f.totalCalls())
	assert.Equal(t, int32(5), f.invoices.limit.Load())

	t.Run("quotations are merged newest first and tagged", func(t *testing.T) {
		q := summary.Recent.Quotations
		require.Len(t, q, 3)
		assert.Equal(t, "QUO-0005", q[0].Number)
		assert.Equal(t, report.SourceAuto, q[0].Source)
		assert.Equal(t, "MQ-0004", q[1].Number)
		assert.Equal(t, report.SourceManual, q[1].Source)
		assert.Equal(t, "Walk-in", q[1].Party)
		assert.Equal(t, "QUO-0004", q[2].Number)
	})

	t.Run("rows carry party and totals", func(t *testing.T) {
		require.Len(t, summary.Recent.Invoices, 1)
		inv := summary.Recent.Invoices[0]
		assert.Equal(t, "Ana", inv.Party)
		assert.Equal(t, "paid", inv.Status)
		assert.True(t, inv.GrandTotal.Equal(decimal.NewFromInt(110)))

		require.Len(t, summary.Recent.Customers, 1)
		assert.Equal(t, "ana@example.com", summary.Recent.Customers[0].Detail)
		assert.NotNil(t, summary.Recent.Products)
		assert.Empty(t, summary.Recent.Products)
	})
}

func TestDashboardService_FailsWhenAnyReadFails(t *testing.T) {
	f := newFixture()
	f.leads.err = errors.New("connection reset")

	svc := NewDashboardService(f.sources(), nil, DashboardConfig{RecentLimit: 3}, nil)
	_, err := svc.Summary(context.Background())
	assert.EqualError(t, err, "connection reset")
}

func TestDashboardService_Cache(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	store := cache.NewMemoryStore()
	svc := NewDashboardService(f.sources(), store, DashboardConfig{CacheTTL: 30 * time.Second}, nil)

	first, err := svc.Summary(ctx)
	require.NoError(t, err)
	require.Equal(t, int32(16), f.totalCalls())

	t.Run("second call is served from cache", func(t *testing.T) {
		second, err := svc.Summary(ctx)
		require.NoError(t, err)
		assert.Equal(t, int32(16), f.totalCalls())
		assert.Equal(t, first.Counts, second.Counts)
		require.Len(t, second.Recent.Quotations, 3)
		assert.Equal(t, report.SourceManual, second.Recent.Quotations[1].Source)
	})

	t.Run("entity change invalidates", func(t *testing.T) {
		h := NewInvalidationHandler(svc, nil)
		assert.Equal(t, []string{shared.EventTypeEntityChanged}, h.EventTypes())
		require.NoError(t, h.Handle(ctx, shared.NewEntityChangedEvent("invoice", uuid.New(), shared.ActionCreated)))

		f.invoices.count = 8
		fresh, err := svc.Summary(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(8), fresh.Counts.Invoices)
		assert.Equal(t, int32(32), f.totalCalls())
	})

	t.Run("corrupt entry is rebuilt", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, summaryCacheKey, []byte("{not json"), time.Minute))
		_, err := svc.Summary(ctx)
		require.NoError(t, err)
		assert.Equal(t, int32(48), f.totalCalls())
	})
}

// invalidatingSource fires an invalidation while the summary is being built
type invalidatingSource struct {
	*fakeSource[trade.Invoice]
	during func()
}

func (s *invalidatingSource) Count(ctx context.Context, f shared.Filter) (int64, error) {
	s.during()
	return s.fakeSource.Count(ctx, f)
}

func TestDashboardService_InvalidationDuringBuildIsNotCached(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	store := cache.NewMemoryStore()

	var svc *DashboardService
	src := f.sources()
	fired := false
	src.Invoices = &invalidatingSource{fakeSource: f.invoices, during: func() {
		if !fired {
			fired = true
			require.NoError(t, svc.Invalidate(ctx))
		}
	}}
	svc = NewDashboardService(src, store, DashboardConfig{CacheTTL: time.Minute}, nil)

	stale, err := svc.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(7), stale.Counts.Invoices)
	_, ok, err := store.Get(ctx, summaryCacheKey)
	require.NoError(t, err)
	assert.False(t, ok, "a summary overlapping an invalidation must not be cached")

	f.invoices.count = 9
	fresh, err := svc.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(9), fresh.Counts.Invoices)
	_, ok, err = store.Get(ctx, summaryCacheKey)
	require.NoError(t, err)
	assert.True(t, ok)
}
