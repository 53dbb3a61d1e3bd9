package handlers

import (
	"net/http"

	"github.com/fernandosattini/iphoneapp/internal/httpx"
	"github.com/fernandosattini/iphoneapp/internal/services"
	"github.com/fernandosattini/iphoneapp/internal/validation"
)

type ProviderHandler struct{ Svc *services.ProviderService }

func NewProviderHandler(svc *services.ProviderService) *ProviderHandler {
	return &ProviderHandler{Svc: svc}
}

// List: GET /providers (?q= for search)
func (h *ProviderHandler) List(w http.ResponseWriter, r *http.Request) {
	if q := r.URL.Query().Get("q"); q != "" {
		providers, err := h.Svc.Search(r.Context(), q)
		if err != nil {
			httpx.JSONError(w, http.StatusInternalServerError, "failed_to_search_providers", nil)
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]any{"items": providers})
		return
	}
	providers, err := h.Svc.List(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_providers", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": providers})
}

// Create: POST /providers
func (h *ProviderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string `json:"name"`
		Phone string `json:"phone"`
		Email string `json:"email"`
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
	provider, err := h.Svc.Add(r.Context(), req.Name, req.Phone, req.Email)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_create_provider", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, provider)
}

// Delete: POST /providers/delete
func (h *ProviderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID string `json:"id"`
	}
	if err := httpx.Decode(r, &req); err != nil || req.ID == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing_id", nil)
		return
	}
	if err := h.Svc.Remove(r.Context(), req.ID); err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_delete_provider", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
