package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/testutil"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/caisse/internal/adapter/http/handler"
	apimiddleware "github.com/iho/caisse/internal/adapter/http/middleware"
	"github.com/iho/caisse/internal/adapter/repository/memory"
	"github.com/iho/caisse/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/caisse/internal/adapter/repository/redis"
	"github.com/iho/caisse/internal/domain"
	"github.com/iho/caisse/internal/infrastructure/auth"
	"github.com/iho/caisse/internal/infrastructure/metrics"
	"github.com/iho/caisse/internal/usecase"
)

// newRouterConfig wires the real use cases over the in-memory store.
func newRouterConfig(opts ...func(*RouterConfig)) RouterConfig {
	log := zerolog.Nop()
	store := memory.NewStore()
	txManager := memory.NewTxManager(store)
	sessions := memory.NewSessionRepository(store)
	entries := memory.NewEntryRepository(store)
	payments := memory.NewPaymentRepository(store)
	orders := memory.NewOrderRepository(store)
	clients := memory.NewClientRepository(store)
	products := memory.NewProductRepository(store)
	services := memory.NewServiceRepository(store)
	outbox := memory.NewOutboxRepository(store)
	ledger := memory.NewLedgerRepository(store)
	users := memory.NewUserRepository(store)
	idGen := postgres.NewULIDGenerator()
	retrier := postgres.NewRetrier(log)

	registerUC := usecase.NewRegisterUseCase(txManager, sessions, outbox, idGen, retrier, log)
	entryUC := usecase.NewEntryUseCase(txManager, sessions, entries, outbox, idGen, retrier, log)
	paymentUC := usecase.NewPaymentUseCase(txManager, payments, orders, sessions, entries, outbox, idGen, retrier, log)
	orderUC := usecase.NewOrderUseCase(txManager, orders, payments, clients, products, services, outbox, idGen, retrier, log)
	catalogUC := usecase.NewCatalogUseCase(clients, products, services, idGen)
	statsUC := usecase.NewStatsUseCase(payments, orders, sessions, nil, 0, log)
	reconciliationUC := usecase.NewReconciliationUseCase(sessions, entries, ledger)
	userUC := usecase.NewUserUseCase(users, idGen)

	jwtManager := auth.NewJWTManager("router-test-secret", time.Hour)

	cfg := RouterConfig{
		RegisterHandler: handler.NewRegisterHandler(registerUC, reconciliationUC),
		EntryHandler:    handler.NewEntryHandler(entryUC),
		PaymentHandler:  handler.NewPaymentHandler(paymentUC),
		OrderHandler:    handler.NewOrderHandler(orderUC, "EUR"),
		CatalogHandler:  handler.NewCatalogHandler(catalogUC),
		StatsHandler:    handler.NewStatsHandler(statsUC),
		AuthHandler:     handler.NewAuthHandler(userUC, jwtManager, 3600, nil),
		HealthHandler:   handler.NewHealthHandler(),
		MetricsHandler:  promhttp.HandlerFor(prometheus.NewRegistry(), promhttp.HandlerOpts{}),
		Logger:          log,
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

type client struct {
	t      *testing.T
	router http.Handler
	token  string
}

func (c *client) do(method, path, body string, headers ...string) *httptest.ResponseRecorder {
	c.t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	c.router.ServeHTTP(rec, req)
	return rec
}

func (c *client) json(method, path, body string, status int) map[string]any {
	c.t.Helper()

	rec := c.do(method, path, body)
	require.Equal(c.t, status, rec.Code, "%s %s: %s", method, path, rec.Body.String())
	if rec.Body.Len() == 0 {
		return nil
	}
	var out map[string]any
	require.NoError(c.t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func amount(t *testing.T, v any) decimal.Decimal {
	t.Helper()
	s, ok := v.(string)
	require.True(t, ok, "expected a decimal string, got %T", v)
	return decimal.RequireFromString(s)
}

func TestNewRouter_HealthEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /health to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_RateLimiterBlocksExcessRequests(t *testing.T) {
	rl := apimiddleware.NewRateLimiter(0.001, 1, nil)
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.RateLimiter = rl
	}))

	req1 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req1.RemoteAddr = "1.2.3.4:1234"
	rec1 := httptest.NewRecorder()
	router.ServeHTTP(rec1, req1)
	if rec1.Code != http.StatusOK {
		t.Fatalf("expected first request to succeed, got %d", rec1.Code)
	}

	req2 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req2.RemoteAddr = "1.2.3.4:1234"
	rec2 := httptest.NewRecorder()
	router.ServeHTTP(rec2, req2)
	if rec2.Code != http.StatusTooManyRequests {
		t.Fatalf("expected second request to be throttled, got %d", rec2.Code)
	}
}

func TestNewRouter_RegistersKeyRoutes(t *testing.T) {
	router := NewRouter(newRouterConfig())

	chiRoutes, ok := router.(chi.Routes)
	if !ok {
		t.Fatal("router does not implement chi.Routes")
	}

	seen := map[string]bool{}
	if err := chi.Walk(chiRoutes, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		seen[method+" "+strings.TrimSuffix(route, "/")] = true
		return nil
	}); err != nil {
		t.Fatalf("walk failed: %v", err)
	}

	expected := []string{
		"GET /health",
		"GET /ready",
		"GET /metrics",
		"POST /user/login",
		"POST /transactions",
		"GET /transactions/caisse/{caisseId}",
		"DELETE /transactions/{id}",
		"GET /caisse",
		"GET /caisse/open",
		"POST /caisse/open",
		"POST /caisse/close",
		"GET /caisse/list",
		"GET /caisse/{id}/reconcile",
		"GET /caisse/consistency",
		"POST /paiements",
		"PUT /paiements/{id}",
		"GET /paiements/commande/{id}",
		"PUT /commandes/active/{id}",
		"PUT /commandes/desactive/{id}",
		"GET /commandes/{id}/facture",
		"DELETE /clients/{id}",
		"PUT /produits/{id}",
		"GET /services",
		"GET /stats",
	}

	for _, route := range expected {
		if !seen[route] {
			t.Fatalf("expected route %s to be registered", route)
		}
	}
}

func TestNewRouter_CashPaymentRoundTrip(t *testing.T) {
	c := &client{t: t, router: NewRouter(newRouterConfig())}

	// No register yet: cash cannot be taken.
	c.json(http.MethodGet, "/caisse/open", "", http.StatusNotFound)

	session := c.json(http.MethodPost, "/caisse/open", "", http.StatusCreated)
	sessionID := session["id"].(string)
	c.json(http.MethodPost, "/transactions", `{"type":"depot","montant":"100","motif":"fond de caisse"}`, http.StatusCreated)

	cl := c.json(http.MethodPost, "/clients", `{"name":"Mme Dupont"}`, http.StatusCreated)
	product := c.json(http.MethodPost, "/produits", `{"name":"Shampoing","price":"50","stock":10}`, http.StatusCreated)

	order := c.json(http.MethodPost, "/commandes", `{
		"client_id": "`+cl["id"].(string)+`",
		"line_items": [{"product_id": "`+product["id"].(string)+`", "quantity": 2}]
	}`, http.StatusCreated)
	orderID := order["id"].(string)
	totals := order["totals"].(map[string]any)
	assert.True(t, amount(t, totals["total"]).Equal(decimal.NewFromInt(100)))

	payment := c.json(http.MethodPost, "/paiements", `{"commande":"`+orderID+`","montant":"40","methode":"cash"}`, http.StatusCreated)
	assert.Equal(t, sessionID, payment["caisse_id"])

	view := c.json(http.MethodGet, "/commandes/"+orderID, "", http.StatusOK)
	assert.False(t, view["is_paid"].(bool))
	assert.True(t, amount(t, view["totals"].(map[string]any)["remaining_due"]).Equal(decimal.NewFromInt(60)))

	active := c.json(http.MethodGet, "/caisse/open", "", http.StatusOK)
	assert.True(t, amount(t, active["closing_balance"]).Equal(decimal.NewFromInt(140)))

	c.json(http.MethodPost, "/paiements", `{"commande":"`+orderID+`","montant":"60","methode":"carte"}`, http.StatusCreated)
	view = c.json(http.MethodGet, "/commandes/"+orderID, "", http.StatusOK)
	assert.True(t, view["is_paid"].(bool))

	c.json(http.MethodDelete, "/paiements/"+payment["id"].(string), "", http.StatusNoContent)
	view = c.json(http.MethodGet, "/commandes/"+orderID, "", http.StatusOK)
	assert.False(t, view["is_paid"].(bool))

	active = c.json(http.MethodGet, "/caisse/open", "", http.StatusOK)
	assert.True(t, amount(t, active["closing_balance"]).Equal(decimal.NewFromInt(100)))

	entries := c.json(http.MethodGet, "/transactions/caisse/"+sessionID, "", http.StatusOK)
	assert.Len(t, entries["items"], 3)

	reconcile := c.json(http.MethodGet, "/caisse/"+sessionID+"/reconcile", "", http.StatusOK)
	assert.True(t, reconcile["is_reconciled"].(bool))

	// The product is referenced by the order.
	c.json(http.MethodDelete, "/produits/"+product["id"].(string), "", http.StatusConflict)
	// The order still has its card payment.
	c.json(http.MethodDelete, "/commandes/"+orderID, "", http.StatusBadRequest)

	invoice := c.json(http.MethodGet, "/commandes/"+orderID+"/facture", "", http.StatusOK)
	assert.Equal(t, "EUR", invoice["currency"])

	closed := c.json(http.MethodPost, "/caisse/close", "", http.StatusOK)
	assert.False(t, closed["is_open"].(bool))

	reopened := c.json(http.MethodPost, "/caisse/open", "", http.StatusCreated)
	assert.True(t, amount(t, reopened["opening_balance"]).Equal(decimal.NewFromInt(100)))

	consistency := c.json(http.MethodGet, "/caisse/consistency", "", http.StatusOK)
	assert.True(t, consistency["ledger_consistent"].(bool))
}

func TestNewRouter_AuthAndRoles(t *testing.T) {
	cfg := newRouterConfig()
	jwtManager := auth.NewJWTManager("router-test-secret", time.Hour)
	cfg.TokenVerifier = jwtManager
	router := NewRouter(cfg)

	anonymous := &client{t: t, router: router}
	anonymous.json(http.MethodGet, "/caisse", "", http.StatusUnauthorized)
	anonymous.json(http.MethodGet, "/health", "", http.StatusOK)

	viewerToken, err := jwtManager.Generate(&domain.User{ID: "v1", Email: "v@shop.fr", Role: domain.RoleViewer})
	require.NoError(t, err)
	viewer := &client{t: t, router: router, token: viewerToken}
	viewer.json(http.MethodGet, "/commandes", "", http.StatusOK)
	viewer.json(http.MethodPost, "/caisse/open", "", http.StatusForbidden)

	cashierToken, err := jwtManager.Generate(&domain.User{ID: "c1", Email: "c@shop.fr", Role: domain.RoleCashier})
	require.NoError(t, err)
	cashier := &client{t: t, router: router, token: cashierToken}
	cashier.json(http.MethodPost, "/caisse/open", "", http.StatusCreated)
	entry := cashier.json(http.MethodPost, "/transactions", `{"type":"deposit","montant":"5"}`, http.StatusCreated)
	cashier.json(http.MethodDelete, "/transactions/"+entry["id"].(string), "", http.StatusForbidden)

	me := cashier.json(http.MethodGet, "/user/me", "", http.StatusOK)
	assert.Equal(t, "cashier", me["role"])
}

func TestNewRouter_IdempotentPaymentReplay(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	m := metrics.New(prometheus.NewRegistry())
	c := &client{t: t, router: NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.IdempotencyStore = redisRepo.NewIdempotencyStore(rdb)
		cfg.IdempotencyTTL = time.Hour
		cfg.Metrics = m
	}))}

	c.json(http.MethodPost, "/caisse/open", "", http.StatusCreated)

	body := `{"type":"deposit","montant":"20","motif":"appoint"}`
	first := c.do(http.MethodPost, "/transactions", body, apimiddleware.IdempotencyKeyHeader, "dep-1")
	require.Equal(t, http.StatusCreated, first.Code)

	second := c.do(http.MethodPost, "/transactions", body, apimiddleware.IdempotencyKeyHeader, "dep-1")
	require.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, "true", second.Header().Get(apimiddleware.IdempotencyReplayHeader))
	assert.JSONEq(t, first.Body.String(), second.Body.String())

	active := c.json(http.MethodGet, "/caisse/open", "", http.StatusOK)
	assert.True(t, amount(t, active["closing_balance"]).Equal(decimal.NewFromInt(20)))

	// chi reports the mounted pattern with or without the trailing slash
	// depending on its version.
	served := testutil.ToFloat64(m.HTTPRequests.WithLabelValues(http.MethodPost, "/transactions/", "201")) +
		testutil.ToFloat64(m.HTTPRequests.WithLabelValues(http.MethodPost, "/transactions", "201"))
	assert.Equal(t, 2.0, served)
}
