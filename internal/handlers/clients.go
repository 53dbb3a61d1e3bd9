// Package handlers exposes the services over JSON HTTP. Validation failures
// are rejected here with a violations map and never reach the ledger layer.
package handlers

import (
	"net/http"

	"github.com/fernandosattini/iphoneapp/internal/httpx"
	"github.com/fernandosattini/iphoneapp/internal/services"
	"github.com/fernandosattini/iphoneapp/internal/validation"
)

type ClientHandler struct{ Svc *services.ClientService }

func NewClientHandler(svc *services.ClientService) *ClientHandler { return &ClientHandler{Svc: svc} }

// List: GET /clients (?q= for search)
func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	if q := r.URL.Query().Get("q"); q != "" {
		clients, err := h.Svc.Search(r.Context(), q)
		if err != nil {
			httpx.JSONError(w, http.StatusInternalServerError, "failed_to_search_clients", nil)
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]any{"items": clients})
		return
	}
	clients, err := h.Svc.List(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_clients", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": clients})
}

// Create: POST /clients
func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string `json:"name"`
		Phone string `json:"phone"`
	}
	if err := httpx.Decode(r, &req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.Required("name", req.Name, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	client, err := h.Svc.Add(r.Context(), req.Name, req.Phone)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_create_client", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, client)
}

// Delete: POST /clients/delete
func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID string `json:"id"`
	}
	if err := httpx.Decode(r, &req); err != nil || req.ID == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing_id", nil)
		return
	}
	if err := h.Svc.Remove(r.Context(), req.ID); err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_delete_client", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
