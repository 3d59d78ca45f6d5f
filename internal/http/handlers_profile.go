package httpx

import (
	"net/http"

	domainauth "github.com/batisuivi/batisuivi/internal/domain/auth"
	"github.com/batisuivi/batisuivi/internal/domain/model"
	"github.com/batisuivi/batisuivi/internal/service"
)

// ProfileHandlers serves the MON_PROFIL and ACCUEIL spaces.
type ProfileHandlers struct {
	Users     *service.UserService
	Dashboard *service.DashboardService
	Errors    *ErrorRenderer
}

type profileResponse struct {
	User   *domainauth.SessionUser `json:"user"`
	Spaces []domainauth.Space      `json:"spaces"`
}

// Get handles GET /api/profil.
func (h *ProfileHandlers) Get(w http.ResponseWriter, r *http.Request) {
	user, _ := SessionUserFromContext(r.Context())
	WriteJSON(w, http.StatusOK, profileResponse{User: user, Spaces: domainauth.SpacesFor(user.Role)})
}

// ChangePassword handles PUT /api/profil/mot-de-passe.
func (h *ProfileHandlers) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req model.ChangePasswordRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	user, _ := SessionUserFromContext(r.Context())
	if err := h.Users.ChangePassword(r.Context(), user, req); err != nil {
		h.Errors.Render(w, r, "change password", err)
		return
	}
	WriteJSON(w, http.StatusOK, messageResponse{Message: msgPasswordChanged})
}

// Accueil handles GET /api/accueil.
func (h *ProfileHandlers) Accueil(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Dashboard.Summary(r.Context())
	if err != nil {
		h.Errors.Render(w, r, "accueil", err)
		return
	}
	WriteJSON(w, http.StatusOK, summary)
}

type roleCatalogEntry struct {
	Role   domainauth.Role    `json:"role"`
	Spaces []domainauth.Space `json:"spaces"`
}

// RoleCatalog handles GET /api/configuration/roles: every role with the spaces it may enter.
func RoleCatalog(w http.ResponseWriter, _ *http.Request) {
	roles := domainauth.AllRoles()
	out := make([]roleCatalogEntry, 0, len(roles))
	for _, role := range roles {
		out = append(out, roleCatalogEntry{Role: role, Spaces: domainauth.SpacesFor(role)})
	}
	WriteJSON(w, http.StatusOK, map[string]any{"roles": out})
}

type policyEntry struct {
	Resource domainauth.Resource `json:"resource"`
	Verb     domainauth.Verb     `json:"verb"`
	Roles    []domainauth.Role   `json:"roles"`
}

// AccessTable handles GET /api/admin/spaces: the full space table and every
// per-operation policy.
func AccessTable(w http.ResponseWriter, _ *http.Request) {
	policies := domainauth.Policies()
	out := make([]policyEntry, 0, len(policies))
	for _, p := range policies {
		out = append(out, policyEntry{Resource: p.Resource, Verb: p.Verb, Roles: p.Roles.Roles()})
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"spaces":   domainauth.SpaceTable(),
		"policies": out,
	})
}
