package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale statuses keep the Spanish domain values used by the shop.
const (
	SaleCredited  = "Acreditado" // payment fully collected
	SalePending   = "Pendiente"  // sold on credit, payment outstanding
	SaleDelivered = "Entregado"
)

type Sale struct {
	ID          string          `gorm:"primaryKey" json:"id"`
	Status      string          `gorm:"not null;index" json:"status"`
	Date        string          `gorm:"type:date;not null" json:"date"`
	Time        string          `json:"time"`
	Client      string          `gorm:"not null" json:"client"`
	Salesperson string          `json:"salesperson"`
	TradeIn     string          `gorm:"column:trade_in" json:"trade_in,omitempty"`
	Order       string          `gorm:"column:order" json:"order"` // free-text description of what was sold
	GrossProfit decimal.Decimal `gorm:"type:decimal(18,2)" json:"gross_profit"`
	Total       decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"total"`
	Discount    decimal.Decimal `gorm:"type:decimal(18,2)" json:"discount"`
	TotalCost   decimal.Decimal `gorm:"type:decimal(18,2)" json:"total_cost"`
	CreatedAt   time.Time       `json:"created_at"`
}

func (Sale) TableName() string { return "sales" }
