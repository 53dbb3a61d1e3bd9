package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/fernandosattini/iphoneapp/internal/models"
)

var ErrItemNotFound = errors.New("inventory item not found")

// InventoryInput carries the fields of a unit entering stock. Status defaults
// to Disponible, ProductType to Celular.
type InventoryInput struct {
	Model       string          `json:"model"`
	Storage     string          `json:"storage"`
	Color       string          `json:"color"`
	Battery     int             `json:"battery"`
	IMEI        string          `json:"imei"`
	CostPrice   decimal.Decimal `json:"cost_price"`
	SalePrice   decimal.Decimal `json:"sale_price"`
	Condition   string          `json:"condition"`
	Status      string          `json:"status"`
	Provider    string          `json:"provider"`
	ProductType string          `json:"product_type"`
}

// InventoryUpdate is a partial update; nil fields are left untouched.
type InventoryUpdate struct {
	Model       *string          `json:"model"`
	Storage     *string          `json:"storage"`
	Color       *string          `json:"color"`
	Battery     *int             `json:"battery"`
	IMEI        *string          `json:"imei"`
	CostPrice   *decimal.Decimal `json:"cost_price"`
	SalePrice   *decimal.Decimal `json:"sale_price"`
	Condition   *string          `json:"condition"`
	Status      *string          `json:"status"`
	Provider    *string          `json:"provider"`
	ProductType *string          `json:"product_type"`
}

type InventoryService struct{ db *gorm.DB }

func NewInventoryService(conn *gorm.DB) *InventoryService { return &InventoryService{db: conn} }

func (s *InventoryService) Add(ctx context.Context, in InventoryInput) (*models.InventoryItem, error) {
	item := models.InventoryItem{
		ID:          models.NewID("inv"),
		Model:       in.Model,
		Storage:     in.Storage,
		Color:       in.Color,
		Battery:     in.Battery,
		IMEI:        in.IMEI,
		CostPrice:   in.CostPrice,
		SalePrice:   in.SalePrice,
		Condition:   in.Condition,
		Status:      in.Status,
		Provider:    in.Provider,
		ProductType: in.ProductType,
	}
	if item.Status == "" {
		item.Status = models.ItemAvailable
	}
	if item.ProductType == "" {
		item.ProductType = "Celular"
	}
	if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, fmt.Errorf("add inventory item: %w", err)
	}
	return &item, nil
}

func (s *InventoryService) Update(ctx context.Context, id string, updates InventoryUpdate) error {
	fields := map[string]any{}
	if updates.Model != nil {
		fields["model"] = *updates.Model
	}
	if updates.Storage != nil {
		fields["storage"] = *updates.Storage
	}
	if updates.Color != nil {
		fields["color"] = *updates.Color
	}
	if updates.Battery != nil {
		fields["battery"] = *updates.Battery
	}
	if updates.IMEI != nil {
		fields["imei"] = *updates.IMEI
	}
	if updates.CostPrice != nil {
		fields["cost_price"] = *updates.CostPrice
	}
	if updates.SalePrice != nil {
		fields["sale_price"] = *updates.SalePrice
	}
	if updates.Condition != nil {
		fields["condition"] = *updates.Condition
	}
	if updates.Status != nil {
		fields["status"] = *updates.Status
	}
	if updates.Provider != nil {
		fields["provider"] = *updates.Provider
	}
	if updates.ProductType != nil {
		fields["product_type"] = *updates.ProductType
	}
	if len(fields) == 0 {
		return nil
	}
	res := s.db.WithContext(ctx).Model(&models.InventoryItem{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return fmt.Errorf("update inventory item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (s *InventoryService) Remove(ctx context.Context, id string) error {
	if err := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.InventoryItem{}).Error; err != nil {
		return fmt.Errorf("remove inventory item: %w", err)
	}
	return nil
}

func (s *InventoryService) List(ctx context.Context) ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	if err := s.db.WithContext(ctx).Order("created_at desc").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	return items, nil
}

// Available returns units still for sale.
func (s *InventoryService) Available(ctx context.Context) ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	err := s.db.WithContext(ctx).Where("status = ?", models.ItemAvailable).Order("created_at desc").Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("list available inventory: %w", err)
	}
	return items, nil
}

func (s *InventoryService) ByID(ctx context.Context, id string) (*models.InventoryItem, error) {
	var item models.InventoryItem
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load inventory item: %w", err)
	}
	return &item, nil
}

func (s *InventoryService) MarkSold(ctx context.Context, id string) error {
	status := models.ItemSold
	return s.Update(ctx, id, InventoryUpdate{Status: &status})
}

// MarkManySold flips each given unit to Vendido, stopping at the first error.
func (s *InventoryService) MarkManySold(ctx context.Context, ids []string) error {
	for _, id := range ids {
		if err := s.MarkSold(ctx, id); err != nil {
			return err
		}
	}
	return nil
}
