package finance

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tilesgalleria/backoffice/internal/domain/shared"
)

// PaymentMode is how an expense was paid
type PaymentMode string

const (
	PaymentModeCash   PaymentMode = "Cash"
	PaymentModeBank   PaymentMode = "Bank"
	PaymentModeCheque PaymentMode = "Cheque"
)

// PaymentStatus is the settlement state of an expense
type PaymentStatus string

const (
	PaymentStatusPaid      PaymentStatus = "Paid"
	PaymentStatusPending   PaymentStatus = "Pending"
	PaymentStatusCancelled PaymentStatus = "Cancelled"
)

// ParsePaymentMode matches case-insensitively; empty means Cash
func ParsePaymentMode(s string) (PaymentMode, error) {
	return parseEnum(s, PaymentModeCash, []PaymentMode{PaymentModeCash, PaymentModeBank, PaymentModeCheque}, "payment mode")
}

// ParsePaymentStatus matches case-insensitively; empty means Pending
func ParsePaymentStatus(s string) (PaymentStatus, error) {
	return parseEnum(s, PaymentStatusPending, []PaymentStatus{PaymentStatusPaid, PaymentStatusPending, PaymentStatusCancelled}, "payment status")
}

func parseEnum[E ~string](s string, def E, allowed []E, what string) (E, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return def, nil
	}
	for _, a := range allowed {
		if strings.EqualFold(string(a), s) {
			return a, nil
		}
	}
	return def, shared.Validation("unknown %s %q", what, s)
}

// Expense is an operating cost of the business
type Expense struct {
	shared.BaseEntity
	Reference     string
	Amount        decimal.Decimal
	ExpenseBy     string
	PaymentMode   PaymentMode
	PaymentStatus PaymentStatus
	Description   string
	Attachment    string
	Date          time.Time
}

// ExpenseInput carries the writable expense fields
type ExpenseInput struct {
	Reference     string
	Amount        decimal.Decimal
	ExpenseBy     string
	PaymentMode   string
	PaymentStatus string
	Description   string
	Attachment    string
	Date          time.Time
}

func NewExpense(in ExpenseInput) (*Expense, error) {
	e := &Expense{BaseEntity: shared.NewBaseEntity()}
	if err := e.apply(in); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Expense) Update(in ExpenseInput) error {
	if err := e.apply(in); err != nil {
		return err
	}
	e.Touch()
	return nil
}

func (e *Expense) apply(in ExpenseInput) error {
	if in.Amount.IsNegative() {
		return shared.Validation("amount cannot be negative")
	}
	mode, err := ParsePaymentMode(in.PaymentMode)
	if err != nil {
		return err
	}
	status, err := ParsePaymentStatus(in.PaymentStatus)
	if err != nil {
		return err
	}
	date := in.Date
	if date.IsZero() {
		date = time.Now()
	}
	e.Reference = strings.TrimSpace(in.Reference)
	e.Amount = in.Amount.Round(2)
	e.ExpenseBy = strings.TrimSpace(in.ExpenseBy)
	e.PaymentMode = mode
	e.PaymentStatus = status
	e.Description = in.Description
	e.Attachment = strings.TrimSpace(in.Attachment)
	e.Date = date
	return nil
}

// ExpenseRepository persists expenses
type ExpenseRepository interface {
	shared.Repository[Expense]
}
