package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/resellerdesk/creditledger/internal/adapter/http/handler"
	"github.com/resellerdesk/creditledger/internal/adapter/http/middleware"
	"github.com/resellerdesk/creditledger/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	SupplierHandler  *handler.SupplierHandler
	SaleHandler      *handler.SaleHandler
	PaymentHandler   *handler.PaymentHandler
	RecordHandler    *handler.RecordHandler
	HealthHandler    *handler.HealthHandler
	IdempotencyStore usecase.IdempotencyStore
	IdempotencyTTL   time.Duration
	Logger           zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Metrics)
	r.Use(middleware.Recovery)
	r.Use(middleware.Actor)

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Suppliers and their ledger surface
		r.Route("/suppliers", func(r chi.Router) {
			r.Post("/", cfg.SupplierHandler.Create)
			r.Get("/", cfg.SupplierHandler.List)
			r.Get("/{id}", cfg.SupplierHandler.Get)
			r.Get("/{id}/transactions", cfg.RecordHandler.ListBySupplier)
			r.Get("/{id}/consistency", cfg.SupplierHandler.Consistency)
			r.Post("/{id}/adjustments", cfg.SupplierHandler.Adjust)
			r.Post("/{id}/recalculate", cfg.SupplierHandler.Recalculate)
			r.Post("/{id}/backfill", cfg.SupplierHandler.Backfill)
		})

		// Sales
		r.Route("/sales", func(r chi.Router) {
			r.Post("/", cfg.SaleHandler.Create)
			r.Get("/{id}", cfg.SaleHandler.Get)
			r.Post("/{id}/refund", cfg.SaleHandler.Refund)
		})

		// Payments
		r.Route("/payments", func(r chi.Router) {
			r.Post("/", cfg.PaymentHandler.Create)
			r.Get("/{id}", cfg.PaymentHandler.Get)
			r.Put("/{id}", cfg.PaymentHandler.Update)
			r.Delete("/{id}", cfg.PaymentHandler.Delete)
		})

		// Audit records by ID
		r.Get("/transactions/{id}", cfg.RecordHandler.Get)
	})

	return r
}
