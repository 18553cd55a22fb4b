package handlers

import (
	"net/http"
	"time"

	config "github.com/avvvet/giftcard-services/configs"
	"github.com/avvvet/giftcard-services/internal/giftsvc/metrics"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
)

var (
	APIMethods   = []string{"GET", "POST", "OPTIONS"}
	AdminMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
)

const requestTimeout = 60 * time.Second

// NewRouter builds a mux with the middleware stack shared by both services.
func NewRouter(service string, methods []string) *chi.Mux {
	r := chi.NewRouter()
	c := config.CORS(methods)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(config.CustomLoggerMiddleware())
	r.Use(metrics.Middleware(service))
	r.Use(config.JSONRecoverer)
	r.Use(c.Handler)
	r.Use(config.CORSHeaders(methods))
	r.Use(middleware.Timeout(requestTimeout))

	metrics.MustRegister()
	r.Handle("/metrics", metrics.Handler())

	return r
}

func (h *Handler) SetAPIRoutes(r *chi.Mux, prefix string) {
	r.NotFound(h.RouteNotFound)
	r.MethodNotAllowed(h.RouteNotFound)

	withPrefix(r, prefix, func(r chi.Router) {
		r.Post("/detect-card-type", h.DetectCardType)
		r.Post("/check-balance", h.CheckBalance)
		r.Get("/health", h.Health)

		r.Get("/admin/check", h.AdminCheck)
		r.Post("/admin/register", h.AdminRegister)
		r.Post("/admin/login", h.AdminLogin)
		r.Post("/admin/logout", h.AdminLogout)
	})
}

// SetAdminRoutes registers the admin API. live, when set, serves the
// record event feed at <prefix>/live.
func (h *Handler) SetAdminRoutes(r *chi.Mux, prefix string, live http.Handler) {
	r.NotFound(h.RouteNotFound)
	r.MethodNotAllowed(h.RouteNotFound)

	withPrefix(r, prefix, func(r chi.Router) {
		// public
		r.Get("/check", h.Check)

		// Secure routes
		r.Group(func(r chi.Router) {
			r.Use(h.RequireAdmin)

			r.Get("/history", h.History)
			r.Delete("/record/*", h.DeleteRecord)
		})

		if live != nil {
			r.Handle("/live", live)
		}
	})
}

// withPrefix mounts fn under prefix. chi rejects an empty Route pattern,
// so an empty prefix registers the routes at the root.
func withPrefix(r chi.Router, prefix string, fn func(r chi.Router)) {
	if prefix == "" || prefix == "/" {
		r.Group(fn)
		return
	}
	r.Route(prefix, fn)
}
