package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/fernandosattini/iphoneapp/internal/dates"
	"github.com/fernandosattini/iphoneapp/internal/ledger"
	"github.com/fernandosattini/iphoneapp/internal/logger"
	"github.com/fernandosattini/iphoneapp/internal/models"
)

var (
	ErrSaleNotFound      = errors.New("sale not found")
	ErrInvalidSaleStatus = errors.New("invalid sale status")
)

// SaleInput is the sale-entry flow's payload. OnCredit decides the initial
// status and which ledger the money lands in. TradeInItem, when present,
// enters the traded-in device into inventory at its appraised values.
type SaleInput struct {
	ClientID      string           `json:"client_id"`
	ClientName    string           `json:"client_name"`
	Salesperson   string           `json:"salesperson"`
	Order         string           `json:"order"`
	TradeIn       string           `json:"trade_in"`
	GrossProfit   decimal.Decimal  `json:"gross_profit"`
	Total         decimal.Decimal  `json:"total"`
	Discount      decimal.Decimal  `json:"discount"`
	TotalCost     decimal.Decimal  `json:"total_cost"`
	OnCredit      bool             `json:"on_credit"`
	DueDate       string           `json:"due_date"`
	PaymentMethod string           `json:"payment_method"`
	SoldItemIDs   []string         `json:"sold_item_ids"`
	TradeInItem   *InventoryInput  `json:"trade_in_item"`
}

// SaleService owns the sales collection and drives the cross-cutting flows of
// a new sale: cash income or client debt, sold-unit status flips and trade-in
// intake. It also receives settle notifications from the account ledger.
type SaleService struct {
	db        *gorm.DB
	log       zerolog.Logger
	cash      *ledger.CashLedger
	accounts  *ledger.AccountLedger
	inventory *InventoryService
}

func NewSaleService(conn *gorm.DB, cash *ledger.CashLedger, accounts *ledger.AccountLedger, inventory *InventoryService) *SaleService {
	return &SaleService{
		db:        conn,
		log:       logger.WithComponent("sales"),
		cash:      cash,
		accounts:  accounts,
		inventory: inventory,
	}
}

// Create persists the sale and fans out to the ledgers. A cash sale is
// Acreditado immediately and booked as cash income; a credit sale starts
// Pendiente with a sale transaction on the client's account. The steps run
// sequentially against the store; the first failure aborts the rest.
func (s *SaleService) Create(ctx context.Context, in SaleInput) (*models.Sale, error) {
	if !in.Total.IsPositive() {
		return nil, ledger.ErrInvalidAmount
	}
	status := models.SaleCredited
	if in.OnCredit {
		status = models.SalePending
	}
	sale := models.Sale{
		ID:          models.NewID("sale"),
		Status:      status,
		Date:        dates.Today(),
		Time:        dates.NowTime(),
		Client:      in.ClientName,
		Salesperson: in.Salesperson,
		TradeIn:     in.TradeIn,
		Order:       in.Order,
		GrossProfit: in.GrossProfit,
		Total:       in.Total,
		Discount:    in.Discount,
		TotalCost:   in.TotalCost,
	}
	if err := s.db.WithContext(ctx).Create(&sale).Error; err != nil {
		return nil, fmt.Errorf("create sale: %w", err)
	}

	if in.OnCredit {
		_, err := s.accounts.RecordSale(ctx, in.ClientID, in.ClientName, sale.ID, in.Total, "Venta: "+in.Order, in.DueDate)
		if err != nil {
			return nil, err
		}
	} else {
		method := in.PaymentMethod
		if method == "" {
			method = "cash"
		}
		_, err := s.cash.Record(ctx, ledger.CashInput{
			Type:          models.CashIncome,
			Amount:        in.Total,
			PaymentMethod: method,
			Category:      "Cobranzas",
			Description:   "Venta: " + in.Order,
		})
		if err != nil {
			return nil, err
		}
	}

	if len(in.SoldItemIDs) > 0 {
		if err := s.inventory.MarkManySold(ctx, in.SoldItemIDs); err != nil {
			return nil, err
		}
	}
	if in.TradeInItem != nil {
		item := *in.TradeInItem
		if item.Condition == "" {
			item.Condition = models.ConditionUsed
		}
		if item.Provider == "" {
			item.Provider = "Parte de pago"
		}
		if _, err := s.inventory.Add(ctx, item); err != nil {
			return nil, err
		}
	}
	return &sale, nil
}

// UpdateStatus flips a sale to one of the three statuses.
func (s *SaleService) UpdateStatus(ctx context.Context, saleID, status string) error {
	switch status {
	case models.SaleCredited, models.SalePending, models.SaleDelivered:
	default:
		return ErrInvalidSaleStatus
	}
	res := s.db.WithContext(ctx).Model(&models.Sale{}).Where("id = ?", saleID).Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("update sale status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrSaleNotFound
	}
	return nil
}

// Delete removes the sale row only. Downstream cash and account entries are
// deliberately left in place; the ledgers stay the record of money that moved.
func (s *SaleService) Delete(ctx context.Context, saleID string) error {
	if err := s.db.WithContext(ctx).Where("id = ?", saleID).Delete(&models.Sale{}).Error; err != nil {
		return fmt.Errorf("delete sale: %w", err)
	}
	return nil
}

func (s *SaleService) List(ctx context.Context) ([]models.Sale, error) {
	var sales []models.Sale
	if err := s.db.WithContext(ctx).Order("created_at desc").Find(&sales).Error; err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	return sales, nil
}

// MarkCredited is the settle notifier installed on the account ledger at
// wiring time. Settlement is fire-and-forget, so failures are only logged.
func (s *SaleService) MarkCredited(saleID, newStatus string) {
	if err := s.UpdateStatus(context.Background(), saleID, newStatus); err != nil {
		s.log.Error().Err(err).Str("sale_id", saleID).Msg("settle notification could not update sale")
	}
}
