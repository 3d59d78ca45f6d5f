package httpx

import (
	"net/http"

	domainauth "github.com/batisuivi/batisuivi/internal/domain/auth"
	"github.com/batisuivi/batisuivi/internal/domain/model"
	"github.com/batisuivi/batisuivi/internal/service"
)

// UserHandlers administers user accounts.
type UserHandlers struct {
	Svc    *service.UserService
	Errors *ErrorRenderer
}

// List handles GET /api/users with limit, offset, q, role and actif filters.
func (h *UserHandlers) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := ParseLimitOffset(r, defaultListLimit, maxListLimit)
	opts := model.UsersListOptions{
		Limit:  limit,
		Offset: offset,
		Q:      optionalQuery(r, "q"),
		Actif:  parseBoolQuery(r, "actif"),
	}
	if v := optionalQuery(r, "role"); v != nil {
		role, err := domainauth.ParseRole(*v)
		if err != nil {
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation", Message: err.Error()})
			return
		}
		opts.Role = &role
	}

	users, err := h.Svc.List(r.Context(), opts)
	if err != nil {
		h.Errors.Render(w, r, "list users", err)
		return
	}
	WriteJSON(w, http.StatusOK, newListResponse(users, limit, offset))
}

// Get handles GET /api/users/{id}.
func (h *UserHandlers) Get(w http.ResponseWriter, r *http.Request) {
	u, err := h.Svc.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		h.Errors.Render(w, r, "get user", err)
		return
	}
	WriteJSON(w, http.StatusOK, u)
}

// Create handles POST /api/users.
func (h *UserHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateUserRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	actor, _ := SessionUserFromContext(r.Context())
	u, err := h.Svc.Create(r.Context(), actor, &req)
	if err != nil {
		h.Errors.Render(w, r, "create user", err)
		return
	}
	WriteJSON(w, http.StatusCreated, u)
}

// Update handles PUT /api/users/{id}.
func (h *UserHandlers) Update(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateUserRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	u, err := h.Svc.Update(r.Context(), r.PathValue("id"), req)
	if err != nil {
		h.Errors.Render(w, r, "update user", err)
		return
	}
	WriteJSON(w, http.StatusOK, u)
}

// SetActive handles PATCH /api/users/{id}/active.
func (h *UserHandlers) SetActive(w http.ResponseWriter, r *http.Request) {
	var req model.SetActiveRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if req.Actif == nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation", Message: "actif is required"})
		return
	}
	actor, _ := SessionUserFromContext(r.Context())
	u, err := h.Svc.SetActive(r.Context(), actor, r.PathValue("id"), *req.Actif)
	if err != nil {
		h.Errors.Render(w, r, "set user active", err)
		return
	}
	WriteJSON(w, http.StatusOK, u)
}

// SetRole handles PATCH /api/users/{id}/role. Unknown roles are rejected while decoding.
func (h *UserHandlers) SetRole(w http.ResponseWriter, r *http.Request) {
	var req model.SetRoleRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	actor, _ := SessionUserFromContext(r.Context())
	u, err := h.Svc.SetRole(r.Context(), actor, r.PathValue("id"), req.Role)
	if err != nil {
		h.Errors.Render(w, r, "set user role", err)
		return
	}
	WriteJSON(w, http.StatusOK, u)
}

// ResetPassword handles PUT /api/users/{id}/password.
func (h *UserHandlers) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req model.ResetPasswordRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if err := h.Svc.ResetPassword(r.Context(), r.PathValue("id"), req.MotDePasse); err != nil {
		h.Errors.Render(w, r, "reset password", err)
		return
	}
	WriteJSON(w, http.StatusOK, messageResponse{Message: msgPasswordChanged})
}
