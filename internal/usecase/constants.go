package usecase

import "time"

const (
	// DefaultTransactionTimeout is the maximum duration for a database transaction
	// This prevents long-running transactions from blocking tables
	DefaultTransactionTimeout = 10 * time.Second

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour

	// StatsCacheKey is where the dashboard figures are cached
	StatsCacheKey = "caisse:stats"

	// DefaultStatsDays is how many days of revenue the dashboard shows
	DefaultStatsDays = 30

	defaultListLimit = 20
	maxListLimit     = 100
)

func clampLimit(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
