package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iho/caisse/internal/adapter/http/handler"
	"github.com/iho/caisse/internal/adapter/http/middleware"
	"github.com/iho/caisse/internal/domain"
	"github.com/iho/caisse/internal/infrastructure/metrics"
	"github.com/iho/caisse/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	RegisterHandler *handler.RegisterHandler
	EntryHandler    *handler.EntryHandler
	PaymentHandler  *handler.PaymentHandler
	OrderHandler    *handler.OrderHandler
	CatalogHandler  *handler.CatalogHandler
	StatsHandler    *handler.StatsHandler
	AuthHandler     *handler.AuthHandler
	HealthHandler   *handler.HealthHandler

	// TokenVerifier turns authentication on. Nil leaves every route open.
	TokenVerifier middleware.TokenVerifier

	IdempotencyStore usecase.IdempotencyStore
	IdempotencyTTL   time.Duration
	RateLimiter      *middleware.RateLimiter

	// Metrics, when set, instruments requests. MetricsHandler defaults to
	// the default Prometheus registry.
	Metrics        *metrics.Metrics
	MetricsHandler http.Handler

	Logger zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery(cfg.Logger))
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)

	metricsHandler := cfg.MetricsHandler
	if metricsHandler == nil {
		metricsHandler = promhttp.Handler()
	}
	r.Method(http.MethodGet, "/metrics", metricsHandler)

	r.Post("/user/login", cfg.AuthHandler.Login)

	r.Group(func(r chi.Router) {
		authEnabled := cfg.TokenVerifier != nil
		if authEnabled {
			r.Use(middleware.AuthMiddleware(cfg.TokenVerifier))
		}
		if cfg.IdempotencyStore != nil {
			r.Use(middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL, cfg.Logger).Wrap)
		}

		// can restricts a route to roles passing check; a no-op
		// without authentication.
		can := func(check func(domain.Role) bool) func(http.Handler) http.Handler {
			if !authEnabled {
				return func(next http.Handler) http.Handler { return next }
			}
			return middleware.RequireRole(check)
		}
		write := can(domain.Role.CanCreate)
		remove := can(domain.Role.CanDelete)
		register := can(domain.Role.CanManageRegister)

		r.Get("/user/me", cfg.AuthHandler.GetCurrentUser)

		r.Route("/caisse", func(r chi.Router) {
			r.Get("/", cfg.RegisterHandler.Latest)
			r.Get("/open", cfg.RegisterHandler.Active)
			r.With(register).Post("/open", cfg.RegisterHandler.Open)
			r.With(register).Post("/close", cfg.RegisterHandler.Close)
			r.Get("/list", cfg.RegisterHandler.List)
			r.Get("/consistency", cfg.RegisterHandler.Consistency)
			r.Get("/{id}/reconcile", cfg.RegisterHandler.Reconcile)
		})

		r.Route("/transactions", func(r chi.Router) {
			r.With(write).Post("/", cfg.EntryHandler.Create)
			r.Get("/", cfg.EntryHandler.List)
			r.Get("/caisse/{caisseId}", cfg.EntryHandler.ListBySession)
			r.Get("/{id}", cfg.EntryHandler.Get)
			r.With(remove).Delete("/{id}", cfg.EntryHandler.Delete)
		})

		r.Route("/paiements", func(r chi.Router) {
			r.With(write).Post("/", cfg.PaymentHandler.Create)
			r.Get("/", cfg.PaymentHandler.ListActive)
			r.Get("/commande/{id}", cfg.PaymentHandler.ListByOrder)
			r.With(write).Put("/{id}", cfg.PaymentHandler.Update)
			r.With(remove).Delete("/{id}", cfg.PaymentHandler.Delete)
		})

		r.Route("/commandes", func(r chi.Router) {
			r.With(write).Post("/", cfg.OrderHandler.Create)
			r.Get("/", cfg.OrderHandler.List)
			r.Get("/{id}", cfg.OrderHandler.Get)
			r.Get("/{id}/facture", cfg.OrderHandler.Invoice)
			r.With(write).Put("/{id}", cfg.OrderHandler.Update)
			r.With(remove).Delete("/{id}", cfg.OrderHandler.Delete)
			r.With(write).Put("/active/{id}", cfg.OrderHandler.MarkPaid)
			r.With(write).Put("/desactive/{id}", cfg.OrderHandler.MarkUnpaid)
		})

		catalog := cfg.CatalogHandler
		r.Route("/clients", func(r chi.Router) {
			r.With(write).Post("/", catalog.CreateClient)
			r.Get("/", catalog.ListClients)
			r.Get("/{id}", catalog.GetClient)
			r.With(write).Put("/{id}", catalog.UpdateClient)
			r.With(remove).Delete("/{id}", catalog.DeleteClient)
		})
		r.Route("/produits", func(r chi.Router) {
			r.With(write).Post("/", catalog.CreateProduct)
			r.Get("/", catalog.ListProducts)
			r.Get("/{id}", catalog.GetProduct)
			r.With(write).Put("/{id}", catalog.UpdateProduct)
			r.With(remove).Delete("/{id}", catalog.DeleteProduct)
		})
		r.Route("/services", func(r chi.Router) {
			r.With(write).Post("/", catalog.CreateService)
			r.Get("/", catalog.ListServices)
			r.Get("/{id}", catalog.GetService)
			r.With(write).Put("/{id}", catalog.UpdateService)
			r.With(remove).Delete("/{id}", catalog.DeleteService)
		})

		r.Get("/stats", cfg.StatsHandler.Get)
	})

	return r
}
