package handlers

import (
	"errors"
	"net/http"

	"github.com/fernandosattini/iphoneapp/internal/httpx"
	"github.com/fernandosattini/iphoneapp/internal/services"
	"github.com/fernandosattini/iphoneapp/internal/validation"
)

type InventoryHandler struct{ Svc *services.InventoryService }

func NewInventoryHandler(svc *services.InventoryService) *InventoryHandler {
	return &InventoryHandler{Svc: svc}
}

// List: GET /inventory (?available=1)
func (h *InventoryHandler) List(w http.ResponseWriter, r *http.Request) {
	var err error
	var items any
	if r.URL.Query().Get("available") == "1" {
		items, err = h.Svc.Available(r.Context())
	} else {
		items, err = h.Svc.List(r.Context())
	}
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_inventory", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": items})
}

// Create: POST /inventory
func (h *InventoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req services.InventoryInput
	if err := httpx.Decode(r, &req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.Required("model", req.Model, v)
	validation.NonNegativeAmount("cost_price", req.CostPrice, v)
	validation.NonNegativeAmount("sale_price", req.SalePrice, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	item, err := h.Svc.Add(r.Context(), req)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_create_item", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, item)
}

// Update: POST /inventory/update — partial update by id
func (h *InventoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID string `json:"id"`
		services.InventoryUpdate
	}
	if err := httpx.Decode(r, &req); err != nil || req.ID == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing_id", nil)
		return
	}
	if err := h.Svc.Update(r.Context(), req.ID, req.InventoryUpdate); err != nil {
		if errors.Is(err, services.ErrItemNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "item_not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_update_item", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// Delete: POST /inventory/delete
func (h *InventoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID string `json:"id"`
	}
	if err := httpx.Decode(r, &req); err != nil || req.ID == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing_id", nil)
		return
	}
	if err := h.Svc.Remove(r.Context(), req.ID); err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_delete_item", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// MarkSold: POST /inventory/sold — one id or several
func (h *InventoryHandler) MarkSold(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID  string   `json:"id"`
		IDs []string `json:"ids"`
	}
	if err := httpx.Decode(r, &req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	ids := req.IDs
	if req.ID != "" {
		ids = append(ids, req.ID)
	}
	if len(ids) == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "missing_id", nil)
		return
	}
	if err := h.Svc.MarkManySold(r.Context(), ids); err != nil {
		if errors.Is(err, services.ErrItemNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "item_not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_mark_sold", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "sold"})
}
