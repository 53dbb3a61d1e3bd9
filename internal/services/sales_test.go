package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fernandosattini/iphoneapp/internal/ledger"
	"github.com/fernandosattini/iphoneapp/internal/models"
)

func newSaleFixture(t *testing.T) (*SaleService, *ledger.CashLedger, *ledger.AccountLedger, *InventoryService) {
	t.Helper()
	conn := setupTestDB(t)
	cash := ledger.NewCashLedger(conn)
	accounts := ledger.NewAccountLedger(conn)
	inventory := NewInventoryService(conn)
	sales := NewSaleService(conn, cash, accounts, inventory)
	accounts.SetSaleSettled(sales.MarkCredited)
	return sales, cash, accounts, inventory
}

func TestCashSaleBooksIncomeAndCredits(t *testing.T) {
	sales, cash, _, _ := newSaleFixture(t)
	ctx := context.Background()

	sale, err := sales.Create(ctx, SaleInput{
		ClientName:    "Alice",
		Order:         "iPhone 13 128GB",
		Total:         dec("450"),
		TotalCost:     dec("300"),
		GrossProfit:   dec("150"),
		PaymentMethod: "cash",
	})
	require.NoError(t, err)
	assert.Equal(t, models.SaleCredited, sale.Status)

	balance, err := cash.Balance(ctx)
	require.NoError(t, err)
	assert.Equal(t, "450", balance.String())

	txs, err := cash.Transactions(ctx)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, models.CashIncome, txs[0].Type)
	assert.Equal(t, "Cobranzas", txs[0].Category)
	assert.Equal(t, "Venta: iPhone 13 128GB", txs[0].Description)
}

func TestCreditSaleOpensClientDebt(t *testing.T) {
	sales, cash, accounts, _ := newSaleFixture(t)
	ctx := context.Background()

	sale, err := sales.Create(ctx, SaleInput{
		ClientID:   "c1",
		ClientName: "Alice",
		Order:      "iPhone 15 Pro",
		Total:      dec("900"),
		OnCredit:   true,
		DueDate:    "2026-09-30",
	})
	require.NoError(t, err)
	assert.Equal(t, models.SalePending, sale.Status)

	// no cash moved
	balance, err := cash.Balance(ctx)
	require.NoError(t, err)
	assert.Equal(t, "0", balance.String())

	acc, err := accounts.ClientAccount(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "900", acc.Balance.String())
	require.Len(t, acc.Transactions, 1)
	assert.Equal(t, models.TxSale, acc.Transactions[0].Type)
	assert.Equal(t, sale.ID, acc.Transactions[0].SaleID)
	assert.Equal(t, "2026-09-30", acc.Transactions[0].DueDate)
}

func TestFullPaymentFlipsCreditSaleToCredited(t *testing.T) {
	sales, _, accounts, _ := newSaleFixture(t)
	ctx := context.Background()

	sale, err := sales.Create(ctx, SaleInput{
		ClientID: "c1", ClientName: "Alice", Order: "iPhone 14", Total: dec("600"), OnCredit: true,
	})
	require.NoError(t, err)
	require.Equal(t, models.SalePending, sale.Status)

	_, err = accounts.RecordPayment(ctx, "c1", dec("600"), "")
	require.NoError(t, err)

	list, err := sales.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, models.SaleCredited, list[0].Status)
}

func TestSaleMarksUnitsSold(t *testing.T) {
	sales, _, _, inventory := newSaleFixture(t)
	ctx := context.Background()

	a, err := inventory.Add(ctx, InventoryInput{Model: "iPhone 13", CostPrice: dec("300"), SalePrice: dec("450")})
	require.NoError(t, err)
	b, err := inventory.Add(ctx, InventoryInput{Model: "Cargador", CostPrice: dec("5"), SalePrice: dec("15")})
	require.NoError(t, err)

	_, err = sales.Create(ctx, SaleInput{
		ClientName:  "Alice",
		Order:       "iPhone 13 + cargador",
		Total:       dec("465"),
		SoldItemIDs: []string{a.ID, b.ID},
	})
	require.NoError(t, err)

	for _, id := range []string{a.ID, b.ID} {
		item, err := inventory.ByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, models.ItemSold, item.Status)
	}
}

func TestTradeInEntersInventory(t *testing.T) {
	sales, _, _, inventory := newSaleFixture(t)
	ctx := context.Background()

	_, err := sales.Create(ctx, SaleInput{
		ClientName: "Alice",
		Order:      "iPhone 15",
		TradeIn:    "iPhone 11 64GB",
		Total:      dec("500"),
		TradeInItem: &InventoryInput{
			Model: "iPhone 11", Storage: "64GB", CostPrice: dec("150"), SalePrice: dec("220"),
		},
	})
	require.NoError(t, err)

	items, err := inventory.Available(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "iPhone 11", items[0].Model)
	assert.Equal(t, models.ConditionUsed, items[0].Condition)
	assert.Equal(t, "Parte de pago", items[0].Provider)
}

func TestUpdateStatusValidation(t *testing.T) {
	sales, _, _, _ := newSaleFixture(t)
	ctx := context.Background()

	sale, err := sales.Create(ctx, SaleInput{ClientName: "Alice", Order: "Venta", Total: dec("10")})
	require.NoError(t, err)

	require.NoError(t, sales.UpdateStatus(ctx, sale.ID, models.SaleDelivered))
	assert.ErrorIs(t, sales.UpdateStatus(ctx, sale.ID, "Enviado"), ErrInvalidSaleStatus)
	assert.ErrorIs(t, sales.UpdateStatus(ctx, "sale_missing", models.SalePending), ErrSaleNotFound)
}

func TestDeleteSaleKeepsLedgerEntries(t *testing.T) {
	sales, _, accounts, _ := newSaleFixture(t)
	ctx := context.Background()

	sale, err := sales.Create(ctx, SaleInput{
		ClientID: "c1", ClientName: "Alice", Order: "iPhone 14", Total: dec("600"), OnCredit: true,
	})
	require.NoError(t, err)

	require.NoError(t, sales.Delete(ctx, sale.ID))

	list, err := sales.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	// the debt survives the sale row
	acc, err := accounts.ClientAccount(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "600", acc.Balance.String())
}

func TestSaleRejectsNonPositiveTotal(t *testing.T) {
	sales, _, _, _ := newSaleFixture(t)

	_, err := sales.Create(context.Background(), SaleInput{ClientName: "Alice", Order: "Venta", Total: dec("0")})
	assert.ErrorIs(t, err, ledger.ErrInvalidAmount)
}
