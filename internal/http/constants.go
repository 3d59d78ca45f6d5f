package httpx

// User-facing messages. The auth messages are part of the API contract.
const (
	msgUnauthenticated    = "Non authentifié"
	msgForbidden          = "Accès non autorisé"
	msgInvalidCredentials = "Identifiant ou mot de passe incorrect"
	msgLoginFieldsMissing = "Identifiant et mot de passe requis"
	msgTooManyRequests    = "Trop de requêtes"
	msgInvalidJSON        = "Corps de requête invalide"
	msgInternal           = "Erreur interne du serveur"
	msgUnavailable        = "Service temporairement indisponible"
	msgLoggedOut          = "Déconnexion réussie"
	msgPasswordChanged    = "Mot de passe modifié"
	msgNotFound           = "Ressource introuvable"
)

// Paths of the browser pages used by the access guard.
const (
	PathLogin        = "/login"
	PathAccessDenied = "/acces-refuse"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)
