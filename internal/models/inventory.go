package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	ItemAvailable = "Disponible"
	ItemSold      = "Vendido"
	ItemReserved  = "Reservado"
)

const (
	ConditionNew         = "Nuevo"
	ConditionUsed        = "Usado"
	ConditionRefurbished = "Refurbished"
)

// InventoryItem is one serialized unit. Units are never merged: receiving a
// pending order with quantity 3 produces three rows.
type InventoryItem struct {
	ID          string          `gorm:"primaryKey" json:"id"`
	Model       string          `gorm:"not null" json:"model"`
	Storage     string          `json:"storage"`
	Color       string          `json:"color"`
	Battery     int             `json:"battery"` // health percentage, 0 when unknown
	IMEI        string          `gorm:"column:imei" json:"imei"`
	CostPrice   decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"cost_price"`
	SalePrice   decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"sale_price"`
	Condition   string          `json:"condition"`
	Status      string          `gorm:"not null;index" json:"status"`
	Provider    string          `json:"provider"`
	ProductType string          `gorm:"not null;default:'Celular'" json:"product_type"`
	CreatedAt   time.Time       `json:"created_at"`
}

func (InventoryItem) TableName() string { return "inventory" }
