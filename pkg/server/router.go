// Package server wires the public submission endpoints and the admin
// API onto a chi router. All request validation lives here; the storage
// layers receive only well-formed entities.
package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/clavisnova/submissions/pkg/export"
	"github.com/clavisnova/submissions/pkg/gateway"
	"github.com/clavisnova/submissions/pkg/model"
	"github.com/clavisnova/submissions/pkg/query"
	"github.com/clavisnova/submissions/pkg/store"
)

// Deps collects the components the router serves.
type Deps struct {
	Gateway  *gateway.Gateway
	Query    *query.Service
	Store    *store.LocalStore
	Exporter *export.Exporter
	Logger   *slog.Logger

	// CORSOrigins lists the browser origins allowed to call the API.
	CORSOrigins []string
}

// NewRouter builds the full API router.
func NewRouter(deps Deps) chi.Router {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(requestLogger(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/registrations", createRegistrationHandler(deps.Gateway))
		r.Post("/requirements", createRequirementsHandler(deps.Gateway))
		r.Post("/contact", createContactHandler(deps.Gateway))

		r.Route("/admin", func(r chi.Router) {
			r.Get("/registrations", listHandler(deps.Query, model.KindRegistration))
			r.Get("/requirements", listHandler(deps.Query, model.KindRequirements))
			r.Get("/contacts", listHandler(deps.Query, model.KindContact))
			r.Get("/logs", listHandler(deps.Query, model.KindSystemLog))
			r.Get("/stats", statsHandler(deps.Query))
			r.Delete("/{kind}/{id}", deleteHandler(deps.Store))
			r.Get("/export/{kind}", exportHandler(deps.Exporter))
		})
	})

	return r
}
