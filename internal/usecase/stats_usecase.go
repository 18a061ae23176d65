package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/caisse/internal/domain"
)

// StatsUseCase computes the dashboard figures.
type StatsUseCase struct {
	paymentRepo PaymentRepository
	orderRepo   OrderRepository
	sessionRepo SessionRepository
	cache       Cache
	cacheTTL    time.Duration
	logger      zerolog.Logger
}

// NewStatsUseCase creates a new StatsUseCase. cache may be nil.
func NewStatsUseCase(
	paymentRepo PaymentRepository,
	orderRepo OrderRepository,
	sessionRepo SessionRepository,
	cache Cache,
	cacheTTL time.Duration,
	logger zerolog.Logger,
) *StatsUseCase {
	return &StatsUseCase{
		paymentRepo: paymentRepo,
		orderRepo:   orderRepo,
		sessionRepo: sessionRepo,
		cache:       cache,
		cacheTTL:    cacheTTL,
		logger:      logger,
	}
}

// DailyRevenue is the sum of payments taken on one day.
type DailyRevenue struct {
	Date   string          `json:"date"`
	Amount decimal.Decimal `json:"amount"`
}

// Stats holds the dashboard figures.
type Stats struct {
	GeneratedAt     time.Time                                `json:"generated_at"`
	From            time.Time                                `json:"from"`
	To              time.Time                                `json:"to"`
	CurrentBalance  *decimal.Decimal                         `json:"current_balance,omitempty"`
	RevenueByMethod map[domain.PaymentMethod]decimal.Decimal `json:"revenue_by_method"`
	RevenueByDay    []DailyRevenue                           `json:"revenue_by_day"`
	TotalRevenue    decimal.Decimal                          `json:"total_revenue"`
	PaidOrders      int64                                    `json:"paid_orders"`
	UnpaidOrders    int64                                    `json:"unpaid_orders"`
	RegisterOpen    bool                                     `json:"register_open"`
}

// GetStats returns figures for the last days days, served from the cache
// when a fresh copy exists.
func (uc *StatsUseCase) GetStats(ctx context.Context, days int) (*Stats, error) {
	if days <= 0 {
		days = DefaultStatsDays
	}
	key := cacheKey(days)

	if uc.cache != nil {
		if raw, err := uc.cache.Get(ctx, key); err == nil && raw != nil {
			var cached Stats
			if err := json.Unmarshal(raw, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	stats, err := uc.compute(ctx, days)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil && uc.cacheTTL > 0 {
		if raw, err := json.Marshal(stats); err == nil {
			if err := uc.cache.Set(ctx, key, raw, uc.cacheTTL); err != nil {
				uc.logger.Warn().Err(err).Msg("failed to cache stats")
			}
		}
	}

	return stats, nil
}

func (uc *StatsUseCase) compute(ctx context.Context, days int) (*Stats, error) {
	now := time.Now().UTC()
	to := now
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -(days - 1))

	payments, err := uc.paymentRepo.ListBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}

	paid, unpaid, err := uc.orderRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		GeneratedAt:     now,
		From:            from,
		To:              to,
		RevenueByMethod: make(map[domain.PaymentMethod]decimal.Decimal),
		RevenueByDay:    make([]DailyRevenue, 0),
		TotalRevenue:    decimal.Zero,
		PaidOrders:      paid,
		UnpaidOrders:    unpaid,
	}

	byDay := make(map[string]decimal.Decimal)
	for _, p := range payments {
		stats.TotalRevenue = stats.TotalRevenue.Add(p.Amount)
		stats.RevenueByMethod[p.Method] = stats.RevenueByMethod[p.Method].Add(p.Amount)
		day := p.CreatedAt.UTC().Format(time.DateOnly)
		byDay[day] = byDay[day].Add(p.Amount)
	}

	for day, amount := range byDay {
		stats.RevenueByDay = append(stats.RevenueByDay, DailyRevenue{Date: day, Amount: amount})
	}
	sort.Slice(stats.RevenueByDay, func(i, j int) bool {
		return stats.RevenueByDay[i].Date < stats.RevenueByDay[j].Date
	})

	session, err := uc.sessionRepo.GetActive(ctx)
	switch {
	case err == nil:
		stats.RegisterOpen = true
		balance := session.ClosingBalance
		stats.CurrentBalance = &balance
	case !errors.Is(err, domain.ErrNoOpenSession):
		return nil, err
	}

	return stats, nil
}

// Invalidate drops cached figures so the next read recomputes them.
func (uc *StatsUseCase) Invalidate(ctx context.Context, days int) {
	if uc.cache == nil {
		return
	}
	if days <= 0 {
		days = DefaultStatsDays
	}
	if err := uc.cache.Delete(ctx, cacheKey(days)); err != nil {
		uc.logger.Warn().Err(err).Msg("failed to invalidate stats cache")
	}
}

func cacheKey(days int) string {
	return StatsCacheKey + ":" + strconv.Itoa(days)
}
