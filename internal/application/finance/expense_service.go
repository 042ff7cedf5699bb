// Package finance holds the expense service.
package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tilesgalleria/backoffice/internal/domain/finance"
	"github.com/tilesgalleria/backoffice/internal/domain/shared"
	"go.uber.org/zap"
)

const resourceExpense = "expense"

// ExpenseRequest creates or replaces an expense
type ExpenseRequest struct {
	Reference     string          `json:"reference" binding:"max=100"`
	Amount        decimal.Decimal `json:"amount"`
	ExpenseBy     string          `json:"expense_by" binding:"max=100"`
	PaymentMode   string          `json:"payment_mode"`
	PaymentStatus string          `json:"payment_status"`
	Description   string          `json:"description"`
	Attachment    string          `json:"attachment"`
	Date          *time.Time      `json:"date"`
}

func (r ExpenseRequest) toInput() finance.ExpenseInput {
	in := finance.ExpenseInput{
		Reference:     r.Reference,
		Amount:        r.Amount,
		ExpenseBy:     r.ExpenseBy,
		PaymentMode:   r.PaymentMode,
		PaymentStatus: r.PaymentStatus,
		Description:   r.Description,
		Attachment:    r.Attachment,
	}
	if r.Date != nil {
		in.Date = *r.Date
	}
	return in
}

// ExpenseResponse represents an expense in API responses
type ExpenseResponse struct {
	ID            uuid.UUID       `json:"id"`
	Reference     string          `json:"reference"`
	Amount        decimal.Decimal `json:"amount"`
	ExpenseBy     string          `json:"expense_by"`
	PaymentMode   string          `json:"payment_mode"`
	PaymentStatus string          `json:"payment_status"`
	Description   string          `json:"description,omitempty"`
	Attachment    string          `json:"attachment,omitempty"`
	Date          time.Time       `json:"date"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func ToExpenseResponse(e *finance.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:            e.ID,
		Reference:     e.Reference,
		Amount:        e.Amount,
		ExpenseBy:     e.ExpenseBy,
		PaymentMode:   string(e.PaymentMode),
		PaymentStatus: string(e.PaymentStatus),
		Description:   e.Description,
		Attachment:    e.Attachment,
		Date:          e.Date,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

// ExpenseService handles expense operations
type ExpenseService struct {
	expenseRepo finance.ExpenseRepository
	events      shared.EventPublisher
	logger      *zap.Logger
}

func NewExpenseService(expenseRepo finance.ExpenseRepository, events shared.EventPublisher, logger *zap.Logger) *ExpenseService {
	if events == nil {
		events = shared.NoopPublisher{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExpenseService{expenseRepo: expenseRepo, events: events, logger: logger}
}

func (s *ExpenseService) Create(ctx context.Context, req ExpenseRequest) (*ExpenseResponse, error) {
	expense, err := finance.NewExpense(req.toInput())
	if err != nil {
		return nil, err
	}
	if err := s.expenseRepo.Save(ctx, expense); err != nil {
		return nil, err
	}
	s.publish(ctx, expense.ID, shared.ActionCreated)
	resp := ToExpenseResponse(expense)
	return &resp, nil
}

func (s *ExpenseService) Update(ctx context.Context, id uuid.UUID, req ExpenseRequest) (*ExpenseResponse, error) {
	expense, err := s.expenseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	in := req.toInput()
	if in.Date.IsZero() {
		in.Date = expense.Date
	}
	if err := expense.Update(in); err != nil {
		return nil, err
	}
	if err := s.expenseRepo.Save(ctx, expense); err != nil {
		return nil, err
	}
	s.publish(ctx, expense.ID, shared.ActionUpdated)
	resp := ToExpenseResponse(expense)
	return &resp, nil
}

func (s *ExpenseService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.expenseRepo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.expenseRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, id, shared.ActionDeleted)
	return nil
}

func (s *ExpenseService) GetByID(ctx context.Context, id uuid.UUID) (*ExpenseResponse, error) {
	expense, err := s.expenseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToExpenseResponse(expense)
	return &resp, nil
}

// List supports "payment_status" and "payment_mode" filters on top of search
func (s *ExpenseService) List(ctx context.Context, filter shared.Filter) ([]ExpenseResponse, int64, error) {
	filter = filter.Normalize()
	if raw, ok := filter.Filters["payment_status"].(string); ok && raw != "" {
		st, err := finance.ParsePaymentStatus(raw)
		if err != nil {
			return nil, 0, err
		}
		filter.Filters["payment_status"] = string(st)
	}
	if raw, ok := filter.Filters["payment_mode"].(string); ok && raw != "" {
		m, err := finance.ParsePaymentMode(raw)
		if err != nil {
			return nil, 0, err
		}
		filter.Filters["payment_mode"] = string(m)
	}

	expenses, err := s.expenseRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.expenseRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	out := make([]ExpenseResponse, len(expenses))
	for i := range expenses {
		out[i] = ToExpenseResponse(&expenses[i])
	}
	return out, total, nil
}

func (s *ExpenseService) publish(ctx context.Context, id uuid.UUID, action string) {
	if err := s.events.Publish(ctx, shared.NewEntityChangedEvent(resourceExpense, id, action)); err != nil {
		s.logger.Warn("failed to publish expense event", zap.String("expense_id", id.String()), zap.Error(err))
	}
}
