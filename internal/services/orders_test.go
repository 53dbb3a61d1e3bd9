package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fernandosattini/iphoneapp/internal/models"
)

func seedOrder(t *testing.T, svc *OrderService, lines []models.OrderLine) *models.PendingOrder {
	t.Helper()
	order, err := svc.Add(context.Background(), OrderInput{Provider: "Acme", Lines: lines, TotalCost: dec("900")})
	require.NoError(t, err)
	return order
}

func TestMarkAsReceivedFansOutUnits(t *testing.T) {
	conn := setupTestDB(t)
	svc := NewOrderService(conn)
	ctx := context.Background()

	order := seedOrder(t, svc, []models.OrderLine{{
		Model: "iPhone 13", Quantity: 3, UnitCost: dec("300"), TotalCost: dec("900"),
		Storage: "128GB", Color: "Azul", Condition: "Nuevo", SalePrice: dec("450"),
	}})

	units, err := svc.MarkAsReceived(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, units)

	var items []models.InventoryItem
	require.NoError(t, conn.Find(&items).Error)
	require.Len(t, items, 3)
	seen := map[string]bool{}
	for _, item := range items {
		assert.Equal(t, models.ItemAvailable, item.Status)
		assert.Equal(t, "iPhone 13", item.Model)
		assert.Equal(t, "Acme", item.Provider)
		assert.Equal(t, "300", item.CostPrice.String())
		assert.False(t, seen[item.ID], "unit ids must be distinct")
		seen[item.ID] = true
	}

	var reloaded models.PendingOrder
	require.NoError(t, conn.Where("id = ?", order.ID).First(&reloaded).Error)
	assert.Equal(t, models.OrderReceived, reloaded.Status)
	assert.NotEmpty(t, reloaded.ReceivedDate)
}

func TestMarkAsReceivedAppliesLineDefaults(t *testing.T) {
	conn := setupTestDB(t)
	svc := NewOrderService(conn)

	order := seedOrder(t, svc, []models.OrderLine{{Model: "Funda", Quantity: 2, UnitCost: dec("5")}})

	_, err := svc.MarkAsReceived(context.Background(), order.ID)
	require.NoError(t, err)

	var items []models.InventoryItem
	require.NoError(t, conn.Find(&items).Error)
	require.Len(t, items, 2)
	assert.Equal(t, "N/A", items[0].Storage)
	assert.Equal(t, "N/A", items[0].Condition)
	assert.Equal(t, "Celular", items[0].ProductType)
}

func TestMarkAsReceivedRollsBackOnFailure(t *testing.T) {
	conn := setupTestDB(t)
	svc := NewOrderService(conn)
	boom := errors.New("store exploded")
	svc.insertHook = func(inserted int) error {
		if inserted == 2 {
			return boom
		}
		return nil
	}

	order := seedOrder(t, svc, []models.OrderLine{{Model: "iPhone 13", Quantity: 3, UnitCost: dec("300")}})

	_, err := svc.MarkAsReceived(context.Background(), order.ID)
	require.ErrorIs(t, err, boom)

	// the whole fan-out rolls back: no partial inventory, order still pending
	var count int64
	require.NoError(t, conn.Model(&models.InventoryItem{}).Count(&count).Error)
	assert.Zero(t, count)

	var reloaded models.PendingOrder
	require.NoError(t, conn.Where("id = ?", order.ID).First(&reloaded).Error)
	assert.Equal(t, models.OrderPending, reloaded.Status)

	// and a retry succeeds without duplicating anything
	svc.insertHook = nil
	units, err := svc.MarkAsReceived(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, units)
	require.NoError(t, conn.Model(&models.InventoryItem{}).Count(&count).Error)
	assert.EqualValues(t, 3, count)
}

func TestMarkAsReceivedRejectsNonPending(t *testing.T) {
	conn := setupTestDB(t)
	svc := NewOrderService(conn)
	ctx := context.Background()

	order := seedOrder(t, svc, []models.OrderLine{{Model: "iPhone 13", Quantity: 1, UnitCost: dec("300")}})
	_, err := svc.MarkAsReceived(ctx, order.ID)
	require.NoError(t, err)

	_, err = svc.MarkAsReceived(ctx, order.ID)
	assert.ErrorIs(t, err, ErrOrderNotPending)

	_, err = svc.MarkAsReceived(ctx, "order_missing")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestOrderAddRequiresLines(t *testing.T) {
	conn := setupTestDB(t)
	svc := NewOrderService(conn)

	_, err := svc.Add(context.Background(), OrderInput{Provider: "Acme"})
	assert.Error(t, err)
}

func TestOrderLinesRoundTrip(t *testing.T) {
	conn := setupTestDB(t)
	svc := NewOrderService(conn)

	in := []models.OrderLine{
		{Model: "iPhone 13", Quantity: 2, UnitCost: dec("300"), Storage: "128GB"},
		{Model: "Cable USB-C", Quantity: 10, UnitCost: dec("3"), ProductCategory: "Accesorio"},
	}
	order := seedOrder(t, svc, in)

	var reloaded models.PendingOrder
	require.NoError(t, conn.Where("id = ?", order.ID).First(&reloaded).Error)
	lines, err := reloaded.Lines()
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "Cable USB-C", lines[1].Model)
	assert.Equal(t, 10, lines[1].Quantity)
}
