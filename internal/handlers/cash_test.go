package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/fernandosattini/iphoneapp/internal/ledger"
	"github.com/fernandosattini/iphoneapp/internal/models"
)

func TestCashCreateAndBalance(t *testing.T) {
	l := ledger.NewCashLedger(setupTestDB(t))
	h := NewCashHandler(l)

	rr := doJSON(t, h.Create, http.MethodPost, "/cash", map[string]any{
		"type":           models.CashIncome,
		"amount":         "1000",
		"payment_method": "cash",
		"category":       "Cobranzas",
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}

	rr = doJSON(t, h.Create, http.MethodPost, "/cash", map[string]any{
		"type":           models.CashExpense,
		"amount":         "250",
		"payment_method": "transfer",
		"category":       "Alquiler",
		"expense_type":   models.ExpenseOperational,
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}

	rr = doJSON(t, h.Balance, http.MethodGet, "/cash/balance", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var resp struct {
		Balance string `json:"balance"`
	}
	decodeBody(t, rr, &resp)
	if resp.Balance != "750" {
		t.Fatalf("expected balance 750, got %q", resp.Balance)
	}
}

func TestCashCreateValidation(t *testing.T) {
	h := NewCashHandler(ledger.NewCashLedger(setupTestDB(t)))

	rr := doJSON(t, h.Create, http.MethodPost, "/cash", map[string]any{
		"type":     "transfer",
		"amount":   "0",
		"category": "Sobornos",
	})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rr.Code, rr.Body.String())
	}
	var resp struct {
		Details map[string]string `json:"details"`
	}
	decodeBody(t, rr, &resp)
	for _, field := range []string{"type", "amount", "payment_method", "category"} {
		if _, ok := resp.Details[field]; !ok {
			t.Fatalf("expected %s violation, got %v", field, resp.Details)
		}
	}
}

func TestCashListFilters(t *testing.T) {
	l := ledger.NewCashLedger(setupTestDB(t))
	h := NewCashHandler(l)
	ctx := context.Background()

	seed := []ledger.CashInput{
		{Type: models.CashIncome, Amount: mustDec(t, "10"), Date: "2026-08-01", PaymentMethod: "cash", Category: "Cobranzas"},
		{Type: models.CashExpense, Amount: mustDec(t, "20"), Date: "2026-08-15", PaymentMethod: "cash", Category: "Comida"},
		{Type: models.CashIncome, Amount: mustDec(t, "30"), Date: "2026-09-01", PaymentMethod: "cash", Category: "Cobranzas"},
	}
	for _, in := range seed {
		if _, err := l.Record(ctx, in); err != nil {
			t.Fatalf("seed cash: %v", err)
		}
	}

	rr := doJSON(t, h.List, http.MethodGet, "/cash?category=Comida", nil)
	var byCat struct {
		Items []models.CashTransaction `json:"items"`
	}
	decodeBody(t, rr, &byCat)
	if len(byCat.Items) != 1 || byCat.Items[0].Category != "Comida" {
		t.Fatalf("category filter failed: %+v", byCat.Items)
	}

	rr = doJSON(t, h.List, http.MethodGet, "/cash?from=2026-08-01&to=2026-08-31", nil)
	var byRange struct {
		Items []models.CashTransaction `json:"items"`
	}
	decodeBody(t, rr, &byRange)
	if len(byRange.Items) != 2 {
		t.Fatalf("expected 2 in august, got %d", len(byRange.Items))
	}

	rr = doJSON(t, h.List, http.MethodGet, "/cash?from=2026-08-31&to=2026-08-01", nil)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for inverted range, got %d", rr.Code)
	}
}

func TestOperationalExpensesEndpoint(t *testing.T) {
	l := ledger.NewCashLedger(setupTestDB(t))
	h := NewCashHandler(l)
	ctx := context.Background()

	_, err := l.Record(ctx, ledger.CashInput{
		Type: models.CashExpense, Amount: mustDec(t, "100"), Date: "2026-08-10",
		PaymentMethod: "cash", Category: "Alquiler", ExpenseType: models.ExpenseOperational,
	})
	if err != nil {
		t.Fatalf("seed expense: %v", err)
	}

	rr := doJSON(t, h.OperationalExpenses, http.MethodGet, "/cash/operational-expenses", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var resp struct {
		Total string `json:"total"`
	}
	decodeBody(t, rr, &resp)
	if resp.Total != "100" {
		t.Fatalf("expected total 100, got %q", resp.Total)
	}
}
