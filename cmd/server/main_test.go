package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/caisse/internal/infrastructure/config"
)

func memoryConfig() *config.Config {
	return &config.Config{
		Storage:             config.StorageMemory,
		HTTPPort:            "0",
		HTTPShutdownTimeout: time.Second,
		IdempotencyTTL:      time.Hour,
		JWTExpiration:       time.Hour,
		SchedulerTimezone:   "UTC",
		OutboxInterval:      time.Second,
		OutboxBatchSize:     10,
		StatsCacheTTL:       time.Minute,
		Currency:            "EUR",
	}
}

func TestNewApp_MemoryStorage(t *testing.T) {
	a, err := newApp(context.Background(), memoryConfig(), zerolog.Nop(), prometheus.NewRegistry())
	require.NoError(t, err)
	defer a.close()

	h := a.server.Handler

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/caisse/open", nil))
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "caisse_register_sessions_opened_total 1")
	assert.Equal(t, 0, a.scheduler.Jobs())
}

func TestNewApp_AuthWithAdmin(t *testing.T) {
	cfg := memoryConfig()
	cfg.AuthEnabled = true
	cfg.JWTSecret = "test-secret"
	cfg.AdminEmail = "admin@example.com"
	cfg.AdminPassword = "S3cret-pass"

	a, err := newApp(context.Background(), cfg, zerolog.Nop(), prometheus.NewRegistry())
	require.NoError(t, err)
	defer a.close()

	h := a.server.Handler

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/caisse/list", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	body := `{"email":"admin@example.com","password":"S3cret-pass"}`
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/user/login", strings.NewReader(body)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"token"`)
}

func TestNewApp_Scheduler(t *testing.T) {
	cfg := memoryConfig()
	cfg.RegisterOpenCron = "0 8 * * *"
	cfg.RegisterCloseCron = "0 20 * * *"

	a, err := newApp(context.Background(), cfg, zerolog.Nop(), prometheus.NewRegistry())
	require.NoError(t, err)
	defer a.close()
	assert.Equal(t, 2, a.scheduler.Jobs())

	cfg.RegisterOpenCron = "not a cron"
	_, err = newApp(context.Background(), cfg, zerolog.Nop(), prometheus.NewRegistry())
	assert.Error(t, err)
}

func TestApp_RunStopsOnCancel(t *testing.T) {
	a, err := newApp(context.Background(), memoryConfig(), zerolog.Nop(), prometheus.NewRegistry())
	require.NoError(t, err)
	defer a.close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("run did not return after cancel")
	}
}
