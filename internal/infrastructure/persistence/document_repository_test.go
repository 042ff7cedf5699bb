package persistence

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apptrade "github.com/tilesgalleria/backoffice/internal/application/trade"
	"github.com/tilesgalleria/backoffice/internal/domain/inventory"
	"github.com/tilesgalleria/backoffice/internal/domain/shared"
	"github.com/tilesgalleria/backoffice/internal/domain/trade"
)

func lineItem(productID *uuid.UUID, qty, price string) trade.LineItem {
	return trade.LineItem{
		ID:          uuid.New(),
		ProductID:   productID,
		ProductName: "Porcelain",
		Quantity:    dec(qty),
		UnitPrice:   dec(price),
		TaxRate:     dec("10"),
		Total:       trade.LineTotal(dec(qty), dec(price)),
	}
}

func newInvoice(t *testing.T, number string, items ...trade.LineItem) *trade.Invoice {
	t.Helper()
	inv, err := trade.NewInvoice(number, trade.InvoiceHeader{
		CustomerID:   uuid.New(),
		CustomerName: "Harbour Builders",
		Shipping:     trade.ShippingInfo{Name: "Site 4", AddressLine: "12 Quay St"},
	}, items, trade.Charges{TaxRate: dec("10")})
	require.NoError(t, err)
	return inv
}

func TestDocumentRepository_SaveAndLoad(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewGormInvoiceRepository(db)
	pid := uuid.New()

	inv := newInvoice(t, "INV-0001", lineItem(&pid, "5", "20"), lineItem(nil, "1", "15"))
	require.NoError(t, repo.Save(t.Context(), inv))

	got, err := repo.FindByID(t.Context(), inv.ID)
	require.NoError(t, err)
	assert.Equal(t, "INV-0001", got.Number)
	assert.Equal(t, "Site 4", got.Shipping.Name)
	assert.Equal(t, trade.PaymentStatusUnpaid, got.Status)
	require.Len(t, got.Items, 2)
	assert.Equal(t, pid, *got.Items[0].ProductID)
	assert.Nil(t, got.Items[1].ProductID)
	assert.True(t, got.Totals.SubTotal.Equal(dec("115")), got.Totals.SubTotal.String())
	assert.True(t, got.Totals.GrandTotal.Equal(inv.Totals.GrandTotal))

	t.Run("update replaces the items", func(t *testing.T) {
		require.NoError(t, got.Update(trade.InvoiceHeader{
			CustomerID:   got.CustomerID,
			CustomerName: got.CustomerName,
		}, []trade.LineItem{lineItem(&pid, "8", "20")}, trade.Charges{TaxRate: dec("10")}))
		require.NoError(t, repo.Save(t.Context(), got))

		again, err := repo.FindByID(t.Context(), inv.ID)
		require.NoError(t, err)
		require.Len(t, again.Items, 1)
		assert.True(t, again.Items[0].Quantity.Equal(dec("8")))
	})

	t.Run("list hydrates items", func(t *testing.T) {
		require.NoError(t, repo.Save(t.Context(), newInvoice(t, "INV-0002", lineItem(&pid, "1", "1"))))

		list, err := repo.FindAll(t.Context(), shared.Filter{Page: 1, PageSize: 10, Search: "harbour"})
		require.NoError(t, err)
		require.Len(t, list, 2)
		for _, d := range list {
			assert.NotEmpty(t, d.Items)
		}

		count, err := repo.Count(t.Context(), shared.Filter{Search: "INV-0002"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})
}

func TestDocumentRepository_Numbers(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewGormInvoiceRepository(db)

	last, err := repo.LastNumber(t.Context(), trade.PrefixInvoice)
	require.NoError(t, err)
	assert.Empty(t, last)

	for _, n := range []string{"INV-9999", "INV-10000", "INV-0042"} {
		require.NoError(t, repo.Save(t.Context(), newInvoice(t, n)))
	}
	// a manual invoice number must not match the INV prefix
	require.NoError(t, NewGormManualInvoiceRepository(db).Save(t.Context(), &trade.ManualInvoice{
		Document:     trade.Document{BaseEntity: shared.NewBaseEntity(), Number: "MINV-99999", Date: time.Now()},
		CustomerName: "Walk-in",
		Status:       trade.PaymentStatusPaid,
	}))

	last, err = repo.LastNumber(t.Context(), trade.PrefixInvoice)
	require.NoError(t, err)
	assert.Equal(t, "INV-10000", last)

	exists, err := repo.ExistsByNumber(t.Context(), "INV-0042", nil)
	require.NoError(t, err)
	assert.True(t, exists)

	t.Run("custom numbers do not reset the sequence", func(t *testing.T) {
		require.NoError(t, repo.Save(t.Context(), newInvoice(t, "INV-2024-07")))
		require.NoError(t, repo.Save(t.Context(), newInvoice(t, "INV-99999-B")))

		last, err := repo.LastNumber(t.Context(), trade.PrefixInvoice)
		require.NoError(t, err)
		assert.Equal(t, "INV-10000", last)
		assert.Equal(t, "INV-10001", trade.NextNumber(trade.PrefixInvoice, last))
	})

	t.Run("duplicate numbers are rejected by the unique index", func(t *testing.T) {
		err := repo.Save(t.Context(), newInvoice(t, "INV-0042"))
		require.Error(t, err)
		assert.Equal(t, shared.CodeAlreadyExists, shared.CodeOf(err))
	})
}

func TestDocumentRepository_Delete(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewGormQuotationRepository(db)
	pid := uuid.New()

	q, err := trade.NewQuotation("QUO-0001", trade.QuotationHeader{CustomerID: uuid.New(), CustomerName: "Ana"},
		[]trade.LineItem{lineItem(&pid, "2", "30")}, trade.Charges{})
	require.NoError(t, err)
	require.NoError(t, repo.Save(t.Context(), q))

	require.NoError(t, repo.Delete(t.Context(), q.ID))

	_, err = repo.FindByID(t.Context(), q.ID)
	assert.True(t, errors.Is(err, shared.ErrNotFound))

	var orphans int64
	require.NoError(t, db.Table("document_items").Where("owner_id = ?", q.ID).Count(&orphans).Error)
	assert.Zero(t, orphans)

	assert.True(t, errors.Is(repo.Delete(t.Context(), q.ID), shared.ErrNotFound))
}

func TestManualQuotationRepository_CustomerVariants(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewGormManualQuotationRepository(db)

	inline, err := trade.NewManualQuotation("MQUO-0001", trade.ManualQuotationHeader{
		Customer: trade.CustomerInline(trade.CustomerSnapshot{Name: "Walk-in Jo", Phone: "0400 000 000"}),
	}, nil, trade.Charges{})
	require.NoError(t, err)
	require.NoError(t, repo.Save(t.Context(), inline))

	customerID := uuid.New()
	ref, err := trade.NewManualQuotation("MQUO-0002", trade.ManualQuotationHeader{
		Customer:     trade.CustomerRef(customerID),
		CustomerName: "Registered Pty",
	}, nil, trade.Charges{})
	require.NoError(t, err)
	require.NoError(t, repo.Save(t.Context(), ref))

	got, err := repo.FindByID(t.Context(), inline.ID)
	require.NoError(t, err)
	assert.Equal(t, trade.CustomerKindSnapshot, got.Customer.Kind)
	assert.Equal(t, "0400 000 000", got.Customer.Snapshot.Phone)
	assert.Equal(t, "Walk-in Jo", got.CustomerName)

	got, err = repo.FindByID(t.Context(), ref.ID)
	require.NoError(t, err)
	assert.Equal(t, trade.CustomerKindReference, got.Customer.Kind)
	assert.Equal(t, customerID, got.Customer.CustomerID)
}

func TestGormTransactionScope(t *testing.T) {
	db := newSQLiteDB(t)
	products := NewGormProductRepository(db)
	p := seedProduct(t, products, "10", "0")
	scope := NewGormTransactionScope(db)
	invoices := NewGormInvoiceRepository(db)

	t.Run("commits document and stock together", func(t *testing.T) {
		inv := newInvoice(t, "INV-0100", lineItem(&p.ID, "4", "10"))
		err := scope.Execute(t.Context(), func(repos apptrade.TransactionalRepositories) error {
			if err := repos.Invoices().Save(t.Context(), inv); err != nil {
				return err
			}
			_, err := repos.Stock().Adjust(t.Context(), inventory.Delta{ProductID: p.ID, Quantity: dec("-4")})
			return err
		})
		require.NoError(t, err)

		reloaded, err := products.FindByID(t.Context(), p.ID)
		require.NoError(t, err)
		assert.True(t, reloaded.Quantity.Equal(dec("6")))
	})

	t.Run("rolls back both on failure", func(t *testing.T) {
		inv := newInvoice(t, "INV-0101", lineItem(&p.ID, "3", "10"))
		boom := errors.New("boom")
		err := scope.Execute(t.Context(), func(repos apptrade.TransactionalRepositories) error {
			if err := repos.Invoices().Save(t.Context(), inv); err != nil {
				return err
			}
			if _, err := repos.Stock().Adjust(t.Context(), inventory.Delta{ProductID: p.ID, Quantity: dec("-3")}); err != nil {
				return err
			}
			return boom
		})
		require.ErrorIs(t, err, boom)

		reloaded, err := products.FindByID(t.Context(), p.ID)
		require.NoError(t, err)
		assert.True(t, reloaded.Quantity.Equal(dec("6")))

		exists, err := invoices.ExistsByNumber(t.Context(), "INV-0101", nil)
		require.NoError(t, err)
		assert.False(t, exists)
	})
}
