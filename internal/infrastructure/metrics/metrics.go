package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"

	"github.com/iho/caisse/internal/domain"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Register metrics
	SessionsOpened  prometheus.Counter
	SessionsClosed  prometheus.Counter
	Balance         prometheus.Gauge
	EntriesRecorded *prometheus.CounterVec

	// Payment metrics
	PaymentsRecorded *prometheus.CounterVec
	PaymentAmount    *prometheus.HistogramVec

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
	HTTPInFlight prometheus.Gauge

	// Authentication metrics
	AuthAttempts *prometheus.CounterVec

	// Rate limiting metrics
	RateLimitHits prometheus.Counter

	// Background jobs
	OutboxPublished prometheus.Counter
	OutboxErrors    prometheus.Counter
	SchedulerRuns   *prometheus.CounterVec
}

// New creates all metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		SessionsOpened: f.NewCounter(prometheus.CounterOpts{
			Name: "caisse_register_sessions_opened_total",
			Help: "Total number of register sessions opened",
		}),
		SessionsClosed: f.NewCounter(prometheus.CounterOpts{
			Name: "caisse_register_sessions_closed_total",
			Help: "Total number of register sessions closed",
		}),
		Balance: f.NewGauge(prometheus.GaugeOpts{
			Name: "caisse_register_balance",
			Help: "Running balance of the open register session",
		}),
		EntriesRecorded: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "caisse_ledger_entries_total",
				Help: "Total ledger entries recorded by type",
			},
			[]string{"type"},
		),

		PaymentsRecorded: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "caisse_payments_total",
				Help: "Total payments recorded by method",
			},
			[]string{"method"},
		),
		PaymentAmount: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "caisse_payment_amount",
				Help:    "Payment amounts by method",
				Buckets: []float64{1, 5, 10, 20, 50, 100, 200, 500, 1000},
			},
			[]string{"method"},
		),

		HTTPRequests: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "caisse_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "caisse_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		HTTPInFlight: f.NewGauge(prometheus.GaugeOpts{
			Name: "caisse_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		}),

		AuthAttempts: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "caisse_auth_attempts_total",
				Help: "Total authentication attempts",
			},
			[]string{"status"},
		),

		RateLimitHits: f.NewCounter(prometheus.CounterOpts{
			Name: "caisse_rate_limit_hits_total",
			Help: "Total requests rejected by the rate limiter",
		}),

		OutboxPublished: f.NewCounter(prometheus.CounterOpts{
			Name: "caisse_outbox_published_total",
			Help: "Total outbox events published",
		}),
		OutboxErrors: f.NewCounter(prometheus.CounterOpts{
			Name: "caisse_outbox_errors_total",
			Help: "Total outbox publish failures",
		}),
		SchedulerRuns: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "caisse_scheduler_runs_total",
				Help: "Scheduled register jobs by job and outcome",
			},
			[]string{"job", "status"},
		),
	}
}

func (m *Metrics) SessionOpened() { m.SessionsOpened.Inc() }

func (m *Metrics) SessionClosed() {
	m.SessionsClosed.Inc()
	m.Balance.Set(0)
}

func (m *Metrics) EntryRecorded(entryType domain.EntryType) {
	m.EntriesRecorded.WithLabelValues(string(entryType)).Inc()
}

func (m *Metrics) PaymentRecorded(method domain.PaymentMethod, amount decimal.Decimal) {
	m.PaymentsRecorded.WithLabelValues(string(method)).Inc()
	m.PaymentAmount.WithLabelValues(string(method)).Observe(amount.InexactFloat64())
}

func (m *Metrics) RegisterBalance(balance decimal.Decimal) {
	m.Balance.Set(balance.InexactFloat64())
}

func (m *Metrics) EventPublished() { m.OutboxPublished.Inc() }

func (m *Metrics) EventFailed() { m.OutboxErrors.Inc() }

// SchedulerRun counts a scheduled register job.
func (m *Metrics) SchedulerRun(job string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.SchedulerRuns.WithLabelValues(job, status).Inc()
}

// AuthAttempt counts a login attempt.
func (m *Metrics) AuthAttempt(ok bool) {
	status := "success"
	if !ok {
		status = "failure"
	}
	m.AuthAttempts.WithLabelValues(status).Inc()
}

func (m *Metrics) RateLimited() { m.RateLimitHits.Inc() }

// ObserveHTTP records one served request. path is the route pattern.
func (m *Metrics) ObserveHTTP(method, path string, status int, d time.Duration) {
	m.HTTPRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(method, path).Observe(d.Seconds())
}
