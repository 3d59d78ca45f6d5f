package httpx

import (
	"html/template"
	"log/slog"
	"net/http"

	batisuivi "github.com/batisuivi/batisuivi"
	domainauth "github.com/batisuivi/batisuivi/internal/domain/auth"
)

const templateDir = "web/templates"

//nolint:gochecknoglobals // parsed once at startup
var (
	loginPage        = mustParsePage("login.gohtml")
	accessDeniedPage = mustParsePage("acces-refuse.gohtml")
	homePage         = mustParsePage("accueil.gohtml")
)

// mustParsePage pairs the shared layout with one content template.
func mustParsePage(name string) *template.Template {
	return template.Must(template.ParseFS(batisuivi.TemplateFS,
		templateDir+"/layout.gohtml", templateDir+"/"+name))
}

// PageHandlers renders the browser pages.
type PageHandlers struct {
	Logger *slog.Logger
}

type pageData struct {
	Title       string
	RedirectURI string
	User        *domainauth.SessionUser
	Spaces      []domainauth.Space
}

// Login handles GET /login.
func (h *PageHandlers) Login(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, loginPage, pageData{
		Title:       "Connexion",
		RedirectURI: safeRedirectPath(r.URL.Query().Get("redirect_uri")),
	})
}

// AccessDenied handles GET /acces-refuse.
func (h *PageHandlers) AccessDenied(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusForbidden, accessDeniedPage, pageData{Title: "Accès refusé"})
}

// Home handles GET / behind the ACCUEIL space guard.
func (h *PageHandlers) Home(w http.ResponseWriter, r *http.Request) {
	user, _ := SessionUserFromContext(r.Context())
	h.render(w, r, http.StatusOK, homePage, pageData{
		Title:  "Accueil",
		User:   user,
		Spaces: domainauth.SpacesFor(user.Role),
	})
}

func (h *PageHandlers) render(w http.ResponseWriter, r *http.Request, status int, t *template.Template, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := t.ExecuteTemplate(w, "layout", data); err != nil && h.Logger != nil {
		h.Logger.ErrorContext(r.Context(), "render page failed", slog.String("page", data.Title), slog.Any("error", err))
	}
}
