package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"buildflow/internal/api/handler"
)

// NewRouter mounts the API under /api with an open CORS policy; the service
// sits behind the frontend's dev server and has no origin restrictions of
// its own.
func NewRouter(h *handler.Service, log *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{"*"},
	}))
	r.Use(recoverer(log))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.HandleHealth)
		r.Post("/chat", h.HandleChat)
		r.Post("/deploy", h.HandleDeploy)
		r.Get("/deploy-status/{projectID}", h.HandleDeployStatus)
	})
	return r
}

// recoverer is the outer boundary: an unexpected panic anywhere in a request
// is reported as a 500 with the panic message in the detail field. That
// leaks internals to the caller, which is intentional while the product is
// a development tool.
func recoverer(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					log.Error("panic in request handler",
						zap.String("path", r.URL.Path), zap.Any("panic", rec))
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"detail": fmt.Sprintf("%v", rec),
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
