package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/fernandosattini/iphoneapp/internal/dates"
	"github.com/fernandosattini/iphoneapp/internal/logger"
	"github.com/fernandosattini/iphoneapp/internal/models"
)

var (
	ErrOrderNotFound   = errors.New("pending order not found")
	ErrOrderNotPending = errors.New("order is not pending")
)

type OrderInput struct {
	Provider  string             `json:"provider"`
	Lines     []models.OrderLine `json:"lines"`
	TotalCost decimal.Decimal    `json:"total_cost"`
}

// OrderService owns the pending purchase orders and the receipt fan-out that
// turns a quantity-bearing order into individual inventory units.
type OrderService struct {
	db  *gorm.DB
	log zerolog.Logger

	// called after each inventory insert during receipt; tests use it to
	// force a mid-fan-out failure
	insertHook func(inserted int) error
}

func NewOrderService(conn *gorm.DB) *OrderService {
	return &OrderService{db: conn, log: logger.WithComponent("orders")}
}

func (s *OrderService) Add(ctx context.Context, in OrderInput) (*models.PendingOrder, error) {
	if len(in.Lines) == 0 {
		return nil, errors.New("order needs at least one line")
	}
	order := models.PendingOrder{
		ID:        models.NewID("order"),
		Provider:  in.Provider,
		TotalCost: in.TotalCost,
		OrderDate: dates.Today(),
		Status:    models.OrderPending,
	}
	if err := order.SetLines(in.Lines); err != nil {
		return nil, fmt.Errorf("encode order lines: %w", err)
	}
	if err := s.db.WithContext(ctx).Create(&order).Error; err != nil {
		return nil, fmt.Errorf("add pending order: %w", err)
	}
	return &order, nil
}

// MarkAsReceived expands every order line into quantity individual inventory
// units (status Disponible) and flips the order to received. The whole fan-out
// runs in one transaction: a failure part-way rolls back every inserted unit
// and leaves the order pending, so a retry cannot duplicate stock. Returns the
// number of units added.
func (s *OrderService) MarkAsReceived(ctx context.Context, orderID string) (int, error) {
	inserted := 0
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order models.PendingOrder
		if err := tx.Where("id = ?", orderID).First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return fmt.Errorf("load order: %w", err)
		}
		if order.Status != models.OrderPending {
			return ErrOrderNotPending
		}
		lines, err := order.Lines()
		if err != nil {
			return fmt.Errorf("decode order lines: %w", err)
		}

		for _, line := range lines {
			for i := 0; i < line.Quantity; i++ {
				item := itemFromLine(line, order.Provider)
				if err := tx.Create(&item).Error; err != nil {
					return fmt.Errorf("insert received unit: %w", err)
				}
				inserted++
				if s.insertHook != nil {
					if err := s.insertHook(inserted); err != nil {
						return err
					}
				}
			}
		}

		updates := map[string]any{"status": models.OrderReceived, "received_date": dates.Today()}
		if err := tx.Model(&models.PendingOrder{}).Where("id = ?", order.ID).Updates(updates).Error; err != nil {
			return fmt.Errorf("mark order received: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	s.log.Info().Str("order_id", orderID).Int("units", inserted).Msg("order received")
	return inserted, nil
}

// itemFromLine builds one inventory unit from an order line, applying the
// same defaults the manual intake form uses for missing attributes.
func itemFromLine(line models.OrderLine, provider string) models.InventoryItem {
	item := models.InventoryItem{
		ID:          models.NewID("inv"),
		Model:       orDefault(line.Model, "N/A"),
		Storage:     orDefault(line.Storage, "N/A"),
		Color:       orDefault(line.Color, "N/A"),
		Battery:     line.Battery,
		IMEI:        orDefault(line.IMEI, "N/A"),
		CostPrice:   line.UnitCost,
		SalePrice:   line.SalePrice,
		Condition:   orDefault(line.Condition, "N/A"),
		Status:      models.ItemAvailable,
		Provider:    provider,
		ProductType: orDefault(line.ProductCategory, "Celular"),
	}
	return item
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func (s *OrderService) Delete(ctx context.Context, orderID string) error {
	if err := s.db.WithContext(ctx).Where("id = ?", orderID).Delete(&models.PendingOrder{}).Error; err != nil {
		return fmt.Errorf("delete pending order: %w", err)
	}
	return nil
}

func (s *OrderService) List(ctx context.Context) ([]models.PendingOrder, error) {
	var orders []models.PendingOrder
	if err := s.db.WithContext(ctx).Order("created_at desc").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("list pending orders: %w", err)
	}
	return orders, nil
}
