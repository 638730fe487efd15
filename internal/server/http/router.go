package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// HealthInfo is reported by the root health endpoint.
type HealthInfo struct {
	Name        string
	Version     string
	Environment string
}

// NewRouter builds the API router.
//
// Routes:
//
//	GET  /                       → health
//	POST /api/auth/register      → AuthHandler.Register
//	POST /api/auth/login         → AuthHandler.Login
//	POST /api/auth/refresh-token → AuthHandler.RefreshToken
//	GET  /api/auth/me            → AuthHandler.Me (behind RequireAuth)
//
// POST bodies must be application/json. Unmatched routes return the
// NOT_FOUND envelope; panics and logging are handled by the outer middleware
// so every response keeps the envelope shape.
func NewRouter(auth *AuthHandler, verifier AccessVerifier, log *zap.Logger, health HealthInfo) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(WithRecover(log))
	r.Use(WithRequestLogging(log))

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		writeSuccess(w, http.StatusOK, map[string]string{
			"name":        health.Name,
			"version":     health.Version,
			"status":      "healthy",
			"environment": health.Environment,
		}, "")
	})

	r.Route("/api/auth", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(WithJSONContentType)
			r.Post("/register", auth.Register)
			r.Post("/login", auth.Login)
			r.Post("/refresh-token", auth.RefreshToken)
		})

		r.Group(func(r chi.Router) {
			r.Use(RequireAuth(verifier))
			r.Get("/me", auth.Me)
		})
	})

	notFound := func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, codeNotFound, "The requested resource was not found", nil)
	}
	r.NotFound(notFound)
	r.MethodNotAllowed(notFound)

	return r
}
