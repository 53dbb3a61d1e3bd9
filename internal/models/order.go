package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

const (
	OrderPending  = "pending"
	OrderReceived = "received"
)

// OrderLine is one line of a purchase order: a model plus how many units of it
// were ordered. The optional fields carry over to the inventory rows created
// when the order is received.
type OrderLine struct {
	Model           string          `json:"model"`
	Quantity        int             `json:"quantity"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
	TotalCost       decimal.Decimal `json:"total_cost"`
	Storage         string          `json:"storage,omitempty"`
	Color           string          `json:"color,omitempty"`
	Battery         int             `json:"battery,omitempty"`
	IMEI            string          `json:"imei,omitempty"`
	SalePrice       decimal.Decimal `json:"sale_price,omitempty"`
	Condition       string          `json:"condition,omitempty"`
	ProductCategory string          `json:"product_category,omitempty"`
}

// PendingOrder is a multi-line purchase order awaiting delivery. Lines are
// stored as a JSON array in the products column.
type PendingOrder struct {
	ID           string          `gorm:"primaryKey" json:"id"`
	Provider     string          `gorm:"not null;index" json:"provider"`
	Products     datatypes.JSON  `gorm:"not null" json:"products"`
	TotalCost    decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"total_cost"`
	OrderDate    string          `gorm:"type:date;not null" json:"order_date"`
	Status       string          `gorm:"not null;index" json:"status"`
	ReceivedDate string          `gorm:"type:date" json:"received_date,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

func (PendingOrder) TableName() string { return "pending_orders" }

func (o *PendingOrder) Lines() ([]OrderLine, error) {
	var lines []OrderLine
	if len(o.Products) == 0 {
		return lines, nil
	}
	if err := json.Unmarshal(o.Products, &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

func (o *PendingOrder) SetLines(lines []OrderLine) error {
	raw, err := json.Marshal(lines)
	if err != nil {
		return err
	}
	o.Products = datatypes.JSON(raw)
	return nil
}
