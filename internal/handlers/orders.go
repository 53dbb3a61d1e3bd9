package handlers

import (
	"errors"
	"net/http"

	"github.com/fernandosattini/iphoneapp/internal/httpx"
	"github.com/fernandosattini/iphoneapp/internal/services"
	"github.com/fernandosattini/iphoneapp/internal/validation"
)

type OrderHandler struct{ Svc *services.OrderService }

func NewOrderHandler(svc *services.OrderService) *OrderHandler { return &OrderHandler{Svc: svc} }

// List: GET /orders
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Svc.List(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_orders", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": orders})
}

// Create: POST /orders
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req services.OrderInput
	if err := httpx.Decode(r, &req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.Required("provider", req.Provider, v)
	validation.NonNegativeAmount("total_cost", req.TotalCost, v)
	if len(req.Lines) == 0 {
		v["lines"] = "required"
	}
	for _, line := range req.Lines {
		validation.PositiveInt("quantity", line.Quantity, v)
	}
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	order, err := h.Svc.Add(r.Context(), req)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_create_order", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, order)
}

// Receive: POST /orders/receive — triggers the inventory fan-out.
func (h *OrderHandler) Receive(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID string `json:"id"`
	}
	if err := httpx.Decode(r, &req); err != nil || req.ID == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing_id", nil)
		return
	}
	units, err := h.Svc.MarkAsReceived(r.Context(), req.ID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrOrderNotFound):
			httpx.JSONError(w, http.StatusNotFound, "order_not_found", nil)
		case errors.Is(err, services.ErrOrderNotPending):
			httpx.JSONError(w, http.StatusConflict, "order_not_pending", nil)
		default:
			httpx.JSONError(w, http.StatusInternalServerError, "failed_to_receive_order", nil)
		}
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"status": "received", "units_added": units})
}

// Delete: POST /orders/delete
func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID string `json:"id"`
	}
	if err := httpx.Decode(r, &req); err != nil || req.ID == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing_id", nil)
		return
	}
	if err := h.Svc.Delete(r.Context(), req.ID); err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_delete_order", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
