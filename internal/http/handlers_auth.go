// Package httpx provides the HTTP surface of batisuivi: session cookies, the
// access guard, JSON handlers and the few browser pages.
package httpx

import (
	"context"
	"errors"
	"net/http"
	"strings"

	domainauth "github.com/batisuivi/batisuivi/internal/domain/auth"
	"github.com/batisuivi/batisuivi/internal/service"
)

// Authenticator checks a login and password and returns the matching user.
type Authenticator interface {
	Authenticate(ctx context.Context, login, password string) (*domainauth.SessionUser, error)
}

// AuthHandlers serves login, logout and the current-user endpoint.
type AuthHandlers struct {
	Auth     Authenticator
	Sessions *SessionManager
	Errors   *ErrorRenderer
}

type loginRequest struct {
	Identifiant string `json:"identifiant"`
	MotDePasse  string `json:"motDePasse"`
}

// loginUser is the user block returned by login; it leaves out salarieId.
type loginUser struct {
	ID          string          `json:"id"`
	Identifiant string          `json:"identifiant"`
	Email       *string         `json:"email"`
	Nom         *string         `json:"nom"`
	Prenom      *string         `json:"prenom"`
	Role        domainauth.Role `json:"role"`
}

type userResponse struct {
	User any `json:"user"`
}

// Login authenticates the credentials and sets the session cookie.
// POST /api/auth/login.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Identifiant) == "" || req.MotDePasse == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation", Message: msgLoginFieldsMissing})
		return
	}

	// Matched literally: only blank input is rejected before this point.
	user, err := h.Auth.Authenticate(r.Context(), req.Identifiant, req.MotDePasse)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			WriteError(w, ErrorParams{Code: http.StatusUnauthorized, Message: msgInvalidCredentials})
			return
		}
		h.Errors.Render(w, r, "login", err)
		return
	}

	if err := h.Sessions.Create(w, user.ID); err != nil {
		h.Errors.Render(w, r, "create session", err)
		return
	}

	WriteJSON(w, http.StatusOK, userResponse{User: loginUser{
		ID:          user.ID,
		Identifiant: user.Identifiant,
		Email:       user.Email,
		Nom:         user.Nom,
		Prenom:      user.Prenom,
		Role:        user.Role,
	}})
}

// Logout clears the session cookie. It succeeds whether or not a session existed.
// POST /api/auth/logout.
func (h *AuthHandlers) Logout(w http.ResponseWriter, _ *http.Request) {
	h.Sessions.Delete(w)
	WriteJSON(w, http.StatusOK, messageResponse{Message: msgLoggedOut})
}

// Me returns the current session user. It runs behind RequireAuth.
// GET /api/auth/me.
func (h *AuthHandlers) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := SessionUserFromContext(r.Context())
	if !ok {
		WriteError(w, ErrorParams{Code: http.StatusUnauthorized, Message: msgUnauthenticated})
		return
	}
	WriteJSON(w, http.StatusOK, userResponse{User: user})
}
