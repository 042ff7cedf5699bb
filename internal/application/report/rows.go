package report

import (
	"github.com/tilesgalleria/backoffice/internal/domain/catalog"
	"github.com/tilesgalleria/backoffice/internal/domain/partner"
	"github.com/tilesgalleria/backoffice/internal/domain/report"
	"github.com/tilesgalleria/backoffice/internal/domain/trade"
)

func customerRow(c *partner.Customer) report.RecentEntity {
	return report.RecentEntity{ID: c.ID, Name: c.Name, Detail: c.Email, CreatedAt: c.CreatedAt}
}

func productRow(p *catalog.Product) report.RecentEntity {
	return report.RecentEntity{ID: p.ID, Name: p.Name, Detail: p.ProductType, CreatedAt: p.CreatedAt}
}

func leadRow(l *partner.Lead) report.RecentEntity {
	return report.RecentEntity{ID: l.ID, Name: l.Name, Detail: string(l.Status), CreatedAt: l.CreatedAt}
}

func documentRow(d *trade.Document, party, status string) report.RecentDocument {
	return report.RecentDocument{
		ID:         d.ID,
		Number:     d.Number,
		Party:      party,
		Status:     status,
		GrandTotal: d.Totals.GrandTotal,
		CreatedAt:  d.CreatedAt,
	}
}

func invoiceRow(i *trade.Invoice) report.RecentDocument {
	return documentRow(&i.Document, i.CustomerName, string(i.Status))
}

func manualInvoiceRow(i *trade.ManualInvoice) report.RecentDocument {
	return documentRow(&i.Document, i.CustomerName, string(i.Status))
}

func quotationRow(q *trade.Quotation) report.RecentDocument {
	return documentRow(&q.Document, q.CustomerName, string(q.Status))
}

func manualQuotationRow(q *trade.ManualQuotation) report.RecentDocument {
	return documentRow(&q.Document, q.Customer.DisplayName(q.CustomerName), string(q.Status))
}

func purchaseRow(p *trade.PurchaseOrder) report.RecentDocument {
	return documentRow(&p.Document, p.VendorName, string(p.Status))
}
