package handler

import (
	financeapp "github.com/tilesgalleria/backoffice/internal/application/finance"
	tradeapp "github.com/tilesgalleria/backoffice/internal/application/trade"
)

// ExpenseHandler exposes expense CRUD
type ExpenseHandler = ResourceHandler[financeapp.ExpenseRequest, financeapp.ExpenseResponse]

// PrePurchaseHandler exposes pre-purchase CRUD. Pre-purchases have no stock effect.
type PrePurchaseHandler = ResourceHandler[tradeapp.PrePurchaseRequest, tradeapp.PrePurchaseResponse]

// NewExpenseHandler creates an ExpenseHandler
func NewExpenseHandler(svc *financeapp.ExpenseService) *ExpenseHandler {
	return NewResourceHandler[financeapp.ExpenseRequest, financeapp.ExpenseResponse](svc)
}

// NewPrePurchaseHandler creates a PrePurchaseHandler
func NewPrePurchaseHandler(svc *tradeapp.PrePurchaseService) *PrePurchaseHandler {
	return NewResourceHandler[tradeapp.PrePurchaseRequest, tradeapp.PrePurchaseResponse](svc)
}
