package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/caisse/internal/domain"
	"github.com/iho/caisse/internal/usecase"
)

var _ usecase.MetricsRecorder = (*Metrics)(nil)

func TestNewRegistersMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	m.SessionOpened()
	m.HTTPRequests.WithLabelValues("GET", "/caisse", "200").Inc()

	families, err := registry.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)

	// A second registry accepts the same names.
	assert.NotPanics(t, func() { New(prometheus.NewRegistry()) })
}

func TestRecorder(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.SessionOpened()
	m.EntryRecorded(domain.EntryTypeDeposit)
	m.EntryRecorded(domain.EntryTypeDeposit)
	m.EntryRecorded(domain.EntryTypeWithdrawal)
	m.PaymentRecorded(domain.PaymentMethodCash, decimal.RequireFromString("12.50"))
	m.RegisterBalance(decimal.RequireFromString("112.50"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.SessionsOpened))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.EntriesRecorded.WithLabelValues("deposit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EntriesRecorded.WithLabelValues("withdrawal")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PaymentsRecorded.WithLabelValues("cash")))
	assert.Equal(t, 112.5, testutil.ToFloat64(m.Balance))

	m.SessionClosed()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SessionsClosed))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.Balance))
}

func TestHTTPAndAuthCounters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveHTTP("POST", "/paiements", 201, 15*time.Millisecond)
	m.AuthAttempt(true)
	m.AuthAttempt(false)
	m.AuthAttempt(false)
	m.RateLimited()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("POST", "/paiements", "201")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AuthAttempts.WithLabelValues("success")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.AuthAttempts.WithLabelValues("failure")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RateLimitHits))
}
