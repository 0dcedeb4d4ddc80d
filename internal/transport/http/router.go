// Package httptransport is the thin HTTP facade over the entity services.
// Handlers decode, delegate and encode; every business rule lives in the
// services so the facade stays replaceable.
package httptransport

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"curator/internal/audit"
	"curator/internal/auth"
	"curator/internal/domain"
	"curator/internal/exhibit"
	"curator/internal/maintenance"
	"curator/internal/museum"
	"curator/internal/platform/metrics"
	"curator/internal/platform/middleware"
	"curator/internal/visitor"
)

// Handler bundles the services the routes delegate to.
type Handler struct {
	logger      *log.Logger
	metrics     *metrics.Metrics
	tokens      *auth.TokenManager
	auth        *auth.Service
	museums     *museum.Service
	exhibits    *exhibit.Service
	visitors    *visitor.Service
	maintenance *maintenance.Service
	audit       *audit.Recorder
}

func NewHandler(
	logger *log.Logger,
	m *metrics.Metrics,
	tokens *auth.TokenManager,
	authSvc *auth.Service,
	museums *museum.Service,
	exhibits *exhibit.Service,
	visitors *visitor.Service,
	maintenanceSvc *maintenance.Service,
	auditRec *audit.Recorder,
) *Handler {
	return &Handler{
		logger:      logger,
		metrics:     m,
		tokens:      tokens,
		auth:        authSvc,
		museums:     museums,
		exhibits:    exhibits,
		visitors:    visitors,
		maintenance: maintenanceSvc,
		audit:       auditRec,
	}
}

// NewRouter wires all endpoints. Reads need any authenticated role; mutations
// need curator or better. User creation is guarded inside the auth service so
// its permission message stays consistent across entrypoints.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(h.logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)
	r.Use(middleware.Logger(h.logger))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/auth/login", h.handleLogin)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(h.tokens, h.logger))

		r.Post("/auth/users", h.handleCreateUser)

		r.Get("/museums", h.handleListMuseums)
		r.Get("/museums/{museumID}/performance", h.handleMuseumPerformance)

		r.Get("/exhibits", h.handleExhibitsByCondition)
		r.Get("/exhibits/search", h.handleSearchExhibits)
		r.Get("/exhibits/valuable", h.handleValuableExhibits)
		r.Get("/exhibits/top", h.handleTopExhibits)

		r.Get("/visitors/statistics", h.handleVisitorStatistics)
		r.Get("/visitors/vips", h.handleVIPs)
		r.Get("/visitors/lookup", h.handleVisitorByEmail)

		r.Get("/maintenance/plan", h.handleMaintenancePlan)
		r.Get("/maintenance/budget", h.handleMaintenanceBudget)
		r.Get("/maintenance/summary", h.handleMaintenanceSummary)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(domain.RoleCurator, h.logger))

			r.Post("/museums", h.handleCreateMuseum)
			r.Post("/exhibits", h.handleAddExhibit)
			r.Patch("/exhibits/{exhibitID}/condition", h.handleUpdateCondition)
			r.Post("/exhibits/{exhibitID}/restoration", h.handleFlagRestoration)
			r.Delete("/exhibits/{exhibitID}", h.handleRemoveExhibit)
			r.Post("/visitors", h.handleRegisterVisitor)
			r.Post("/visits", h.handleLogVisit)
			r.Post("/maintenance", h.handleScheduleMaintenance)
		})

		r.With(middleware.RequireRole(domain.RoleAdmin, h.logger)).
			Get("/audit", h.handleAuditList)
	})

	return r
}

func urlParam(r *http.Request, name string) string {
	return chi.URLParam(r, name)
}
