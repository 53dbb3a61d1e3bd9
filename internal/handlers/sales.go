package handlers

import (
	"errors"
	"net/http"

	"github.com/fernandosattini/iphoneapp/internal/httpx"
	"github.com/fernandosattini/iphoneapp/internal/services"
	"github.com/fernandosattini/iphoneapp/internal/validation"
)

type SaleHandler struct{ Svc *services.SaleService }

func NewSaleHandler(svc *services.SaleService) *SaleHandler { return &SaleHandler{Svc: svc} }

// List: GET /sales
func (h *SaleHandler) List(w http.ResponseWriter, r *http.Request) {
	sales, err := h.Svc.List(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_sales", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": sales})
}

// Create: POST /sales — the sale-entry flow; fans out to the ledgers.
func (h *SaleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req services.SaleInput
	if err := httpx.Decode(r, &req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.Required("client_name", req.ClientName, v)
	validation.Required("order", req.Order, v)
	validation.PositiveAmount("total", req.Total, v)
	if req.OnCredit {
		validation.Required("client_id", req.ClientID, v)
	}
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	sale, err := h.Svc.Create(r.Context(), req)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_create_sale", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, sale)
}

// UpdateStatus: POST /sales/status
func (h *SaleHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	if err := httpx.Decode(r, &req); err != nil || req.ID == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing_id", nil)
		return
	}
	if err := h.Svc.UpdateStatus(r.Context(), req.ID, req.Status); err != nil {
		switch {
		case errors.Is(err, services.ErrSaleNotFound):
			httpx.JSONError(w, http.StatusNotFound, "sale_not_found", nil)
		case errors.Is(err, services.ErrInvalidSaleStatus):
			httpx.JSONError(w, http.StatusBadRequest, "invalid_status", nil)
		default:
			httpx.JSONError(w, http.StatusInternalServerError, "failed_to_update_sale", nil)
		}
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// Delete: POST /sales/delete
func (h *SaleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID string `json:"id"`
	}
	if err := httpx.Decode(r, &req); err != nil || req.ID == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing_id", nil)
		return
	}
	if err := h.Svc.Delete(r.Context(), req.ID); err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_delete_sale", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
