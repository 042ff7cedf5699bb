package trade

import (
	"strings"

	"github.com/tilesgalleria/backoffice/internal/domain/shared"
)

// parseStatus matches s case-insensitively against allowed; an empty s yields def
func parseStatus[S ~string](s string, def S, allowed []S) (S, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return def, nil
	}
	for _, a := range allowed {
		if strings.EqualFold(string(a), s) {
			return a, nil
		}
	}
	names := make([]string, len(allowed))
	for i, a := range allowed {
		names[i] = string(a)
	}
	return def, shared.Validation("status must be one of %s, got %q", strings.Join(names, ", "), s)
}

// PaymentStatus is the status of invoices and manual invoices
type PaymentStatus string

const (
	PaymentStatusPaid   PaymentStatus = "paid"
	PaymentStatusUnpaid PaymentStatus = "unpaid"
)

var paymentStatuses = []PaymentStatus{PaymentStatusPaid, PaymentStatusUnpaid}

// ParsePaymentStatus parses an invoice status, defaulting to unpaid
func ParsePaymentStatus(s string) (PaymentStatus, error) {
	return parseStatus(s, PaymentStatusUnpaid, paymentStatuses)
}

// QuotationStatus is the lifecycle status of an auto quotation
type QuotationStatus string

const (
	QuotationStatusDraft              QuotationStatus = "draft"
	QuotationStatusSent               QuotationStatus = "sent"
	QuotationStatusAccepted           QuotationStatus = "accepted"
	QuotationStatusRejected           QuotationStatus = "rejected"
	QuotationStatusExpired            QuotationStatus = "expired"
	QuotationStatusDeliveryNote       QuotationStatus = "delivery_note"
	QuotationStatusEditedDeliveryNote QuotationStatus = "edited_delivery_note"
	QuotationStatusEmailSent          QuotationStatus = "email_sent"
)

var quotationStatuses = []QuotationStatus{
	QuotationStatusDraft, QuotationStatusSent, QuotationStatusAccepted, QuotationStatusRejected,
	QuotationStatusExpired, QuotationStatusDeliveryNote, QuotationStatusEditedDeliveryNote,
	QuotationStatusEmailSent,
}

// ParseQuotationStatus parses an auto quotation status, defaulting to draft
func ParseQuotationStatus(s string) (QuotationStatus, error) {
	return parseStatus(s, QuotationStatusDraft, quotationStatuses)
}

// ManualQuotationStatus is the lifecycle status of a manual quotation
type ManualQuotationStatus string

const (
	ManualQuotationStatusDraft    ManualQuotationStatus = "draft"
	ManualQuotationStatusSent     ManualQuotationStatus = "sent"
	ManualQuotationStatusAccepted ManualQuotationStatus = "accepted"
	ManualQuotationStatusRejected ManualQuotationStatus = "rejected"
)

var manualQuotationStatuses = []ManualQuotationStatus{
	ManualQuotationStatusDraft, ManualQuotationStatusSent,
	ManualQuotationStatusAccepted, ManualQuotationStatusRejected,
}

// ParseManualQuotationStatus parses a manual quotation status, defaulting to draft
func ParseManualQuotationStatus(s string) (ManualQuotationStatus, error) {
	return parseStatus(s, ManualQuotationStatusDraft, manualQuotationStatuses)
}

// PurchaseStatus is the status of a purchase order
type PurchaseStatus string

const (
	PurchaseStatusDraft   PurchaseStatus = "draft"
	PurchaseStatusUnpaid  PurchaseStatus = "unpaid"
	PurchaseStatusPaid    PurchaseStatus = "paid"
	PurchaseStatusOverdue PurchaseStatus = "overdue"
)

var purchaseStatuses = []PurchaseStatus{PurchaseStatusDraft, PurchaseStatusUnpaid, PurchaseStatusPaid, PurchaseStatusOverdue}

// ParsePurchaseStatus parses a purchase order status, defaulting to draft
func ParsePurchaseStatus(s string) (PurchaseStatus, error) {
	return parseStatus(s, PurchaseStatusDraft, purchaseStatuses)
}
