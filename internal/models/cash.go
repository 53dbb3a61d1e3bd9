package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	CashIncome  = "income"
	CashExpense = "expense"
)

// Secondary expense classification, orthogonal to Category.
const (
	ExpenseOperational  = "operational"
	ExpenseWithdrawal   = "withdrawal"
	ExpenseStockPayment = "stock_payment"
	ExpenseOther        = "other"
)

// CashCategories are the accepted values for CashTransaction.Category.
var CashCategories = []string{
	"Cobranzas", "Capital", "Ajuste", "Alquiler", "Comida", "Transporte",
	"Servicios", "Impuestos", "Salarios", "Retiro del dueño", "Pago stock", "Otros",
}

// CashTransaction is one movement in or out of the single physical cash
// balance. Amount is always non-negative; direction is carried by Type.
type CashTransaction struct {
	ID            string          `gorm:"primaryKey" json:"id"`
	Type          string          `gorm:"not null" json:"type"` // income, expense
	Date          string          `gorm:"type:date;not null" json:"date"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount"`
	PaymentMethod string          `gorm:"not null" json:"payment_method"` // cash, transfer, card, check, other
	Category      string          `gorm:"not null;index" json:"category"`
	Description   string          `json:"description"`
	ExpenseType   string          `json:"expense_type,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

func (CashTransaction) TableName() string { return "cash_transactions" }
