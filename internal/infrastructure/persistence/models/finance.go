package models

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tilesgalleria/backoffice/internal/domain/finance"
)

// ExpenseModel is the persistence model for shop expenses
type ExpenseModel struct {
	BaseModel
	Reference     string                `gorm:"type:varchar(100);index"`
	Amount        decimal.Decimal       `gorm:"type:decimal(18,2);not null"`
	ExpenseBy     string                `gorm:"type:varchar(100)"`
	PaymentMode   finance.PaymentMode   `gorm:"type:varchar(20);not null;index"`
	PaymentStatus finance.PaymentStatus `gorm:"type:varchar(20);not null;index"`
	Description   string                `gorm:"type:text"`
	Attachment    string                `gorm:"type:varchar(500)"`
	Date          time.Time             `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (ExpenseModel) TableName() string {
	return "expenses"
}

func (m *ExpenseModel) ToDomain() *finance.Expense {
	return &finance.Expense{
		BaseEntity:    m.BaseModel.ToDomain(),
		Reference:     m.Reference,
		Amount:        m.Amount,
		ExpenseBy:     m.ExpenseBy,
		PaymentMode:   m.PaymentMode,
		PaymentStatus: m.PaymentStatus,
		Description:   m.Description,
		Attachment:    m.Attachment,
		Date:          m.Date,
	}
}

func (m *ExpenseModel) FromDomain(e *finance.Expense) {
	m.FromDomainBaseEntity(e.BaseEntity)
	m.Reference = e.Reference
	m.Amount = e.Amount
	m.ExpenseBy = e.ExpenseBy
	m.PaymentMode = e.PaymentMode
	m.PaymentStatus = e.PaymentStatus
	m.Description = e.Description
	m.Attachment = e.Attachment
	m.Date = e.Date
}
