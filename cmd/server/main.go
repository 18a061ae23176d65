package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/iho/caisse/internal/adapter/http"
	"github.com/iho/caisse/internal/adapter/http/handler"
	"github.com/iho/caisse/internal/adapter/http/middleware"
	"github.com/iho/caisse/internal/adapter/repository/memory"
	postgresRepo "github.com/iho/caisse/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/caisse/internal/adapter/repository/redis"
	"github.com/iho/caisse/internal/domain"
	"github.com/iho/caisse/internal/infrastructure/auth"
	"github.com/iho/caisse/internal/infrastructure/config"
	"github.com/iho/caisse/internal/infrastructure/eventpublisher"
	"github.com/iho/caisse/internal/infrastructure/logger"
	"github.com/iho/caisse/internal/infrastructure/metrics"
	"github.com/iho/caisse/internal/infrastructure/postgres"
	"github.com/iho/caisse/internal/infrastructure/redis"
	"github.com/iho/caisse/internal/infrastructure/scheduler"
	"github.com/iho/caisse/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	l := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	log.Logger = l

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cfg, l, prometheus.DefaultRegisterer)
	if err != nil {
		l.Fatal().Err(err).Msg("failed to initialize")
	}
	defer a.close()

	if err := a.run(ctx); err != nil {
		l.Fatal().Err(err).Msg("server failed")
	}

	l.Info().Msg("server stopped")
}

// repositories groups the storage backend behind the use case ports.
type repositories struct {
	tx       usecase.TransactionManager
	sessions usecase.SessionRepository
	entries  usecase.EntryRepository
	payments usecase.PaymentRepository
	orders   usecase.OrderRepository
	clients  usecase.ClientRepository
	products usecase.ProductRepository
	services usecase.ServiceRepository
	outbox   usecase.OutboxRepository
	ledger   usecase.LedgerRepository
	users    usecase.UserRepository
}

func postgresRepositories(db postgresRepo.DB, tx usecase.TransactionManager) repositories {
	return repositories{
		tx:       tx,
		sessions: postgresRepo.NewSessionRepository(db),
		entries:  postgresRepo.NewEntryRepository(db),
		payments: postgresRepo.NewPaymentRepository(db),
		orders:   postgresRepo.NewOrderRepository(db),
		clients:  postgresRepo.NewClientRepository(db),
		products: postgresRepo.NewProductRepository(db),
		services: postgresRepo.NewServiceRepository(db),
		outbox:   postgresRepo.NewOutboxRepository(db),
		ledger:   postgresRepo.NewLedgerRepository(db),
		users:    postgresRepo.NewUserRepository(db),
	}
}

func memoryRepositories() repositories {
	store := memory.NewStore()
	return repositories{
		tx:       memory.NewTxManager(store),
		sessions: memory.NewSessionRepository(store),
		entries:  memory.NewEntryRepository(store),
		payments: memory.NewPaymentRepository(store),
		orders:   memory.NewOrderRepository(store),
		clients:  memory.NewClientRepository(store),
		products: memory.NewProductRepository(store),
		services: memory.NewServiceRepository(store),
		outbox:   memory.NewOutboxRepository(store),
		ledger:   memory.NewLedgerRepository(store),
		users:    memory.NewUserRepository(store),
	}
}

type app struct {
	cfg         *config.Config
	logger      zerolog.Logger
	server      *http.Server
	scheduler   *scheduler.Scheduler
	outbox      *eventpublisher.EventPublisher
	rateLimiter *middleware.RateLimiter
	closers     []func()
}

func newApp(ctx context.Context, cfg *config.Config, l zerolog.Logger, reg prometheus.Registerer) (*app, error) {
	a := &app{cfg: cfg, logger: l}
	var checks []handler.Check

	var repos repositories
	switch cfg.Storage {
	case config.StorageMemory:
		l.Warn().Msg("using in-memory storage, data is lost on restart")
		repos = memoryRepositories()
	default:
		if cfg.AutoMigrate {
			if err := postgres.RunMigrations(l, cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
				return nil, err
			}
		}
		pool, err := postgres.NewPoolWithConfig(ctx, postgres.PoolConfig{
			DatabaseURL:    cfg.DatabaseURL,
			MaxConns:       cfg.DatabaseMaxConns,
			MinConns:       cfg.DatabaseMinConns,
			ConnectTimeout: cfg.DatabaseTimeout,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		a.closers = append(a.closers, pool.Close)
		checks = append(checks, handler.Check{Name: "postgres", Ping: pool.Ping})
		l.Info().Msg("connected to postgres")
		repos = postgresRepositories(pool, postgresRepo.NewTxManager(pool))
	}

	var (
		cache       usecase.Cache
		idempotency usecase.IdempotencyStore
		publisher   eventpublisher.Publisher = eventpublisher.NewLogPublisher(l)
	)
	if cfg.RedisEnabled {
		client, err := redis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			a.close()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		a.closers = append(a.closers, func() { _ = client.Close() })
		checks = append(checks, handler.Check{Name: "redis", Ping: func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		}})
		l.Info().Msg("connected to redis")

		cache = redisRepo.NewCache(client)
		idempotency = redisRepo.NewIdempotencyStore(client)
		publisher = redisRepo.NewPublisher(client, cfg.EventChannel)
	}

	m := metrics.New(reg)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier(l)

	registerUC := usecase.NewRegisterUseCase(repos.tx, repos.sessions, repos.outbox, idGen, retrier, l)
	registerUC.SetMetrics(m)
	entryUC := usecase.NewEntryUseCase(repos.tx, repos.sessions, repos.entries, repos.outbox, idGen, retrier, l)
	entryUC.SetMetrics(m)
	paymentUC := usecase.NewPaymentUseCase(repos.tx, repos.payments, repos.orders, repos.sessions, repos.entries, repos.outbox, idGen, retrier, l)
	paymentUC.SetMetrics(m)
	orderUC := usecase.NewOrderUseCase(repos.tx, repos.orders, repos.payments, repos.clients, repos.products, repos.services, repos.outbox, idGen, retrier, l)
	catalogUC := usecase.NewCatalogUseCase(repos.clients, repos.products, repos.services, idGen)
	statsUC := usecase.NewStatsUseCase(repos.payments, repos.orders, repos.sessions, cache, cfg.StatsCacheTTL, l)
	reconciliationUC := usecase.NewReconciliationUseCase(repos.sessions, repos.entries, repos.ledger)
	userUC := usecase.NewUserUseCase(repos.users, idGen)

	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		_, created, err := userUC.EnsureUser(ctx, usecase.CreateUserInput{
			Email:    cfg.AdminEmail,
			Name:     "Administrator",
			Password: cfg.AdminPassword,
			Role:     domain.RoleAdmin,
		})
		if err != nil {
			a.close()
			return nil, fmt.Errorf("failed to ensure admin user: %w", err)
		}
		if created {
			l.Info().Str("email", cfg.AdminEmail).Msg("admin user created")
		}
	}

	secret := cfg.JWTSecret
	if secret == "" {
		// Tokens stay valid only for the lifetime of this process.
		secret = uuid.NewString()
		l.Warn().Msg("JWT_SECRET not set, using an ephemeral signing key")
	}
	jwtManager := auth.NewJWTManager(secret, cfg.JWTExpiration)

	routerCfg := httpAdapter.RouterConfig{
		RegisterHandler:  handler.NewRegisterHandler(registerUC, reconciliationUC),
		EntryHandler:     handler.NewEntryHandler(entryUC),
		PaymentHandler:   handler.NewPaymentHandler(paymentUC),
		OrderHandler:     handler.NewOrderHandler(orderUC, cfg.Currency),
		CatalogHandler:   handler.NewCatalogHandler(catalogUC),
		StatsHandler:     handler.NewStatsHandler(statsUC),
		AuthHandler:      handler.NewAuthHandler(userUC, jwtManager, int64(cfg.JWTExpiration.Seconds()), m),
		HealthHandler:    handler.NewHealthHandler(checks...),
		IdempotencyStore: idempotency,
		IdempotencyTTL:   cfg.IdempotencyTTL,
		Metrics:          m,
		Logger:           l,
	}
	if g, ok := reg.(prometheus.Gatherer); ok {
		routerCfg.MetricsHandler = promhttp.HandlerFor(g, promhttp.HandlerOpts{})
	}
	if cfg.AuthEnabled {
		routerCfg.TokenVerifier = jwtManager
	} else {
		l.Warn().Msg("authentication disabled")
	}
	if cfg.RateLimitRPS > 0 {
		a.rateLimiter = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, m.RateLimited)
		routerCfg.RateLimiter = a.rateLimiter
	}

	loc, err := time.LoadLocation(cfg.SchedulerTimezone)
	if err != nil {
		a.close()
		return nil, err
	}
	a.scheduler, err = scheduler.New(scheduler.Config{
		OpenSpec:  cfg.RegisterOpenCron,
		CloseSpec: cfg.RegisterCloseCron,
		Location:  loc,
	}, registerUC, m, l)
	if err != nil {
		a.close()
		return nil, err
	}

	a.outbox = eventpublisher.NewEventPublisher(eventpublisher.Config{
		OutboxRepo: repos.outbox,
		Publisher:  publisher,
		Observer:   m,
		Logger:     l,
		BatchSize:  cfg.OutboxBatchSize,
		Interval:   cfg.OutboxInterval,
		Retention:  cfg.OutboxRetention,
	})

	a.server = &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      httpAdapter.NewRouter(routerCfg),
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	return a, nil
}

// run serves until ctx is cancelled, then shuts everything down.
func (a *app) run(ctx context.Context) error {
	workers, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		if err := a.outbox.Start(workers); err != nil && !errors.Is(err, context.Canceled) {
			a.logger.Error().Err(err).Msg("outbox publisher stopped")
		}
	}()
	if a.rateLimiter != nil {
		go a.rateLimiter.RunCleanup(workers, time.Minute)
	}
	a.scheduler.Start()
	a.logger.Info().Int("jobs", a.scheduler.Jobs()).Msg("scheduler started")

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info().Str("port", a.cfg.HTTPPort).Str("storage", a.cfg.Storage).Msg("starting server")
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}

	a.logger.Info().Msg("shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), a.cfg.HTTPShutdownTimeout)
	defer shutdownCancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	select {
	case <-a.scheduler.Stop().Done():
	case <-shutdownCtx.Done():
		a.logger.Warn().Msg("scheduler jobs still running at shutdown")
	}

	return nil
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
