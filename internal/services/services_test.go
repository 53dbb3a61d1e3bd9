package services

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/fernandosattini/iphoneapp/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	err = conn.AutoMigrate(
		&models.Client{}, &models.Provider{}, &models.InventoryItem{}, &models.Sale{},
		&models.AccountTransaction{}, &models.CashTransaction{}, &models.PendingOrder{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return conn
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }
