package httpx

import (
	"net/http"

	"github.com/batisuivi/batisuivi/internal/domain/model"
	"github.com/batisuivi/batisuivi/internal/service"
)

// SalarieHandlers serves employee CRUD.
type SalarieHandlers struct {
	Svc    *service.SalarieService
	Errors *ErrorRenderer
}

// List handles GET /api/salaries.
func (h *SalarieHandlers) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := ParseLimitOffset(r, defaultListLimit, maxListLimit)
	salaries, err := h.Svc.List(r.Context(), model.SalariesListOptions{
		Limit:  limit,
		Offset: offset,
		Q:      optionalQuery(r, "q"),
		Actif:  parseBoolQuery(r, "actif"),
	})
	if err != nil {
		h.Errors.Render(w, r, "list salaries", err)
		return
	}
	WriteJSON(w, http.StatusOK, newListResponse(salaries, limit, offset))
}

// Get handles GET /api/salaries/{id}.
func (h *SalarieHandlers) Get(w http.ResponseWriter, r *http.Request) {
	s, err := h.Svc.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		h.Errors.Render(w, r, "get salarie", err)
		return
	}
	WriteJSON(w, http.StatusOK, s)
}

// Create handles POST /api/salaries. The optional "compte" block creates a
// linked account in the same transaction.
func (h *SalarieHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateSalarieRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	actor, _ := SessionUserFromContext(r.Context())
	s, err := h.Svc.Create(r.Context(), actor, &req)
	if err != nil {
		h.Errors.Render(w, r, "create salarie", err)
		return
	}
	WriteJSON(w, http.StatusCreated, s)
}

// Update handles PUT /api/salaries/{id}.
func (h *SalarieHandlers) Update(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateSalarieRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	s, err := h.Svc.Update(r.Context(), r.PathValue("id"), req)
	if err != nil {
		h.Errors.Render(w, r, "update salarie", err)
		return
	}
	WriteJSON(w, http.StatusOK, s)
}

// Delete handles DELETE /api/salaries/{id}.
func (h *SalarieHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.Svc.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		h.Errors.Render(w, r, "delete salarie", err)
		return
	}
	if !deleted {
		WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "not_found", Message: "Salarié introuvable"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
