package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/legalfox/legalfox-backend/internal/api/legalfox"
	"github.com/legalfox/legalfox-backend/internal/api/middleware"
)

// SetupRouter creates and configures the HTTP router
func SetupRouter(legalfoxHandler *legalfox.Handler, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimiddleware.Recoverer)                 // Recover from panics
	r.Use(chimiddleware.RequestID)                 // Add request ID
	r.Use(middleware.Logger(logger))               // Log requests
	r.Use(middleware.CORS)                         // Handle CORS
	r.Use(chimiddleware.Timeout(30 * time.Second)) // Default timeout

	// Liveness probe
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"legalfox-backend"}`))
	})

	legalfox.RegisterRoutes(r, legalfoxHandler)

	return r
}
