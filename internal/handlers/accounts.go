package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/fernandosattini/iphoneapp/internal/httpx"
	"github.com/fernandosattini/iphoneapp/internal/ledger"
	"github.com/fernandosattini/iphoneapp/internal/models"
	"github.com/fernandosattini/iphoneapp/internal/validation"
)

// AccountHandler exposes the client/provider account ledger: derived account
// views plus the payment, purchase and manual-debt entry points.
type AccountHandler struct{ Ledger *ledger.AccountLedger }

func NewAccountHandler(l *ledger.AccountLedger) *AccountHandler { return &AccountHandler{Ledger: l} }

// ClientAccounts: GET /accounts/clients (?with_balance=1)
func (h *AccountHandler) ClientAccounts(w http.ResponseWriter, r *http.Request) {
	var accounts []ledger.Account
	var err error
	if r.URL.Query().Get("with_balance") == "1" {
		accounts, err = h.Ledger.ClientAccountsWithBalance(r.Context())
	} else {
		accounts, err = h.Ledger.ClientAccounts(r.Context())
	}
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_accounts", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": accounts})
}

// ProviderAccounts: GET /accounts/providers (?with_balance=1)
func (h *AccountHandler) ProviderAccounts(w http.ResponseWriter, r *http.Request) {
	var accounts []ledger.Account
	var err error
	if r.URL.Query().Get("with_balance") == "1" {
		accounts, err = h.Ledger.ProviderAccountsWithBalance(r.Context())
	} else {
		accounts, err = h.Ledger.ProviderAccounts(r.Context())
	}
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_accounts", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": accounts})
}

type paymentReq struct {
	EntityID    string          `json:"entity_id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

// RecordPayment: POST /accounts/payments — a client paying down their debt.
// This is the call that can flip pending sales to Acreditado.
func (h *AccountHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	var req paymentReq
	if err := httpx.Decode(r, &req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.Required("entity_id", req.EntityID, v)
	validation.PositiveAmount("amount", req.Amount, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	tx, err := h.Ledger.RecordPayment(r.Context(), req.EntityID, req.Amount, req.Description)
	if err != nil {
		if errors.Is(err, ledger.ErrAccountNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "account_not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_record_payment", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, tx)
}

// RecordProviderPayment: POST /accounts/provider-payments
func (h *AccountHandler) RecordProviderPayment(w http.ResponseWriter, r *http.Request) {
	var req paymentReq
	if err := httpx.Decode(r, &req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.Required("entity_id", req.EntityID, v)
	validation.PositiveAmount("amount", req.Amount, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	tx, err := h.Ledger.RecordPaymentToProvider(r.Context(), req.EntityID, req.Amount, req.Description)
	if err != nil {
		if errors.Is(err, ledger.ErrAccountNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "account_not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_record_payment", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, tx)
}

type chargeReq struct {
	EntityID    string          `json:"entity_id"`
	EntityName  string          `json:"entity_name"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	DueDate     string          `json:"due_date"`
}

// RecordPurchase: POST /accounts/purchases — stock bought from a provider on
// account.
func (h *AccountHandler) RecordPurchase(w http.ResponseWriter, r *http.Request) {
	h.recordCharge(w, r, h.Ledger.RecordPurchase)
}

// RecordDebt: POST /accounts/debts — a manually entered provider debt.
func (h *AccountHandler) RecordDebt(w http.ResponseWriter, r *http.Request) {
	h.recordCharge(w, r, h.Ledger.RecordManualDebt)
}

type chargeFunc func(ctx context.Context, providerID, providerName string, amount decimal.Decimal, description, dueDate string) (*models.AccountTransaction, error)

func (h *AccountHandler) recordCharge(w http.ResponseWriter, r *http.Request, record chargeFunc) {
	var req chargeReq
	if err := httpx.Decode(r, &req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.Required("entity_id", req.EntityID, v)
	validation.Required("entity_name", req.EntityName, v)
	validation.PositiveAmount("amount", req.Amount, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	tx, err := record(r.Context(), req.EntityID, req.EntityName, req.Amount, req.Description, req.DueDate)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_record_transaction", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, tx)
}

// DeleteTransaction: POST /accounts/transactions/delete — idempotent; deleting
// an id that is already gone still returns 200.
func (h *AccountHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID string `json:"id"`
	}
	if err := httpx.Decode(r, &req); err != nil || req.ID == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing_id", nil)
		return
	}
	if err := h.Ledger.RemoveTransaction(r.Context(), req.ID); err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_delete_transaction", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
