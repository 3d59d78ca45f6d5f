package httpx

import (
	"net/http"

	"github.com/batisuivi/batisuivi/internal/domain/model"
	"github.com/batisuivi/batisuivi/internal/service"
)

// ChantierHandlers serves construction site CRUD.
type ChantierHandlers struct {
	Svc    *service.ChantierService
	Errors *ErrorRenderer
}

// List handles GET /api/chantiers with limit, offset, q and statut filters.
func (h *ChantierHandlers) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := ParseLimitOffset(r, defaultListLimit, maxListLimit)
	opts := model.ChantiersListOptions{Limit: limit, Offset: offset, Q: optionalQuery(r, "q")}
	if v := optionalQuery(r, "statut"); v != nil {
		statut, ok := model.ParseChantierStatut(*v)
		if !ok {
			WriteError(w, ErrorParams{
				Code:    http.StatusBadRequest,
				ErrCode: "validation",
				Message: "statut must be one of A_VENIR, EN_COURS, TERMINE",
			})
			return
		}
		opts.Statut = &statut
	}

	chantiers, err := h.Svc.List(r.Context(), opts)
	if err != nil {
		h.Errors.Render(w, r, "list chantiers", err)
		return
	}
	WriteJSON(w, http.StatusOK, newListResponse(chantiers, limit, offset))
}

// Get handles GET /api/chantiers/{id}.
func (h *ChantierHandlers) Get(w http.ResponseWriter, r *http.Request) {
	c, err := h.Svc.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		h.Errors.Render(w, r, "get chantier", err)
		return
	}
	WriteJSON(w, http.StatusOK, c)
}

// Create handles POST /api/chantiers.
func (h *ChantierHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateChantierRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	c, err := h.Svc.Create(r.Context(), &req)
	if err != nil {
		h.Errors.Render(w, r, "create chantier", err)
		return
	}
	WriteJSON(w, http.StatusCreated, c)
}

// Update handles PUT /api/chantiers/{id}.
func (h *ChantierHandlers) Update(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateChantierRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	c, err := h.Svc.Update(r.Context(), r.PathValue("id"), req)
	if err != nil {
		h.Errors.Render(w, r, "update chantier", err)
		return
	}
	WriteJSON(w, http.StatusOK, c)
}

// Delete handles DELETE /api/chantiers/{id}.
func (h *ChantierHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.Svc.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		h.Errors.Render(w, r, "delete chantier", err)
		return
	}
	if !deleted {
		WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "not_found", Message: "Chantier introuvable"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
