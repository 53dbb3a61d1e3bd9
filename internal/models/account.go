package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account transaction kinds. Sign convention: sale/purchase/manual_debt are
// stored positive (the entity owes more), payment/payment_to_provider negative.
const (
	TxSale              = "sale"
	TxPayment           = "payment"
	TxPurchase          = "purchase"
	TxPaymentToProvider = "payment_to_provider"
	TxManualDebt        = "manual_debt"
)

const (
	AccountTypeClient   = "client"
	AccountTypeProvider = "provider"
)

// AccountTransaction is one signed ledger entry against a client or provider
// account. Accounts themselves are never stored; they are derived by grouping
// these rows by AccountID.
type AccountTransaction struct {
	ID          string          `gorm:"primaryKey" json:"id"`
	AccountType string          `gorm:"not null;index" json:"account_type"` // client, provider
	AccountID   string          `gorm:"not null;index" json:"account_id"`
	AccountName string          `gorm:"not null" json:"account_name"` // display only, never a key
	Type        string          `gorm:"not null" json:"type"`
	Date        string          `gorm:"type:date;not null" json:"date"` // yyyy-mm-dd
	Description string          `json:"description"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount"`
	SaleID      string          `gorm:"column:sale_id;index" json:"sale_id,omitempty"`
	DueDate     string          `gorm:"type:date" json:"due_date,omitempty"` // informational, not enforced
	CreatedAt   time.Time       `json:"created_at"`
}

func (AccountTransaction) TableName() string { return "account_transactions" }
