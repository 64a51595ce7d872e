package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/WiMProject/backend-test/internal/metrics"
)

// NewRouter wires the middleware chain, health and metrics endpoints and the
// user routes. prom may be nil.
func NewRouter(userHandler *UserHandler, prom *metrics.Prom) chi.Router {
	router := chi.NewRouter()
	router.Use(RequestID)
	router.Use(middleware.RealIP)
	router.Use(RequestLogger)
	router.Use(middleware.Recoverer)

	if prom != nil {
		router.Use(prom.Middleware)
		router.Method(http.MethodGet, "/metrics", prom.Handler())
	}

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	userHandler.RegisterRoutes(router)

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondWithError(w, http.StatusNotFound, "Route not found", r.Method+" "+r.URL.Path)
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondWithError(w, http.StatusMethodNotAllowed, "Method not allowed", r.Method+" "+r.URL.Path)
	})

	return router
}
