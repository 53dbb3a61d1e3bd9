package handlers

import (
	"net/http"
	"time"

	"github.com/fernandosattini/iphoneapp/internal/dates"
	"github.com/fernandosattini/iphoneapp/internal/httpx"
	"github.com/fernandosattini/iphoneapp/internal/ledger"
	"github.com/fernandosattini/iphoneapp/internal/models"
	"github.com/fernandosattini/iphoneapp/internal/validation"
)

type CashHandler struct{ Ledger *ledger.CashLedger }

func NewCashHandler(l *ledger.CashLedger) *CashHandler { return &CashHandler{Ledger: l} }

// List: GET /cash (?from=&to= yyyy-mm-dd, ?category=)
func (h *CashHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if cat := q.Get("category"); cat != "" {
		txs, err := h.Ledger.ByCategory(r.Context(), cat)
		if err != nil {
			httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_cash", nil)
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]any{"items": txs})
		return
	}
	if fromStr, toStr := q.Get("from"), q.Get("to"); fromStr != "" && toStr != "" {
		from, to, ok := parseWindow(fromStr, toStr)
		if !ok {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_date_range", nil)
			return
		}
		txs, err := h.Ledger.ByDateRange(r.Context(), from, to)
		if err != nil {
			httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_cash", nil)
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]any{"items": txs})
		return
	}
	txs, err := h.Ledger.Transactions(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_cash", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": txs})
}

// Create: POST /cash
func (h *CashHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req ledger.CashInput
	if err := httpx.Decode(r, &req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.OneOf("type", req.Type, []string{models.CashIncome, models.CashExpense}, v)
	validation.PositiveAmount("amount", req.Amount, v)
	validation.Required("payment_method", req.PaymentMethod, v)
	validation.OneOf("category", req.Category, models.CashCategories, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	tx, err := h.Ledger.Record(r.Context(), req)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_record_cash", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, tx)
}

// Delete: POST /cash/delete
func (h *CashHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID string `json:"id"`
	}
	if err := httpx.Decode(r, &req); err != nil || req.ID == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing_id", nil)
		return
	}
	if err := h.Ledger.Remove(r.Context(), req.ID); err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_delete_cash", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Balance: GET /cash/balance
func (h *CashHandler) Balance(w http.ResponseWriter, r *http.Request) {
	balance, err := h.Ledger.Balance(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_compute_balance", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"balance": balance})
}

// OperationalExpenses: GET /cash/operational-expenses (?from=&to=)
func (h *CashHandler) OperationalExpenses(w http.ResponseWriter, r *http.Request) {
	var from, to *time.Time
	if fromStr, toStr := r.URL.Query().Get("from"), r.URL.Query().Get("to"); fromStr != "" && toStr != "" {
		f, t, ok := parseWindow(fromStr, toStr)
		if !ok {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_date_range", nil)
			return
		}
		from, to = &f, &t
	}
	total, err := h.Ledger.OperationalExpenses(r.Context(), from, to)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_compute_expenses", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"total": total})
}

func parseWindow(fromStr, toStr string) (time.Time, time.Time, bool) {
	from, err1 := dates.Parse(fromStr)
	to, err2 := dates.Parse(toStr)
	if err1 != nil || err2 != nil || to.Before(from) {
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}
