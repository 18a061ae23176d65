package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/caisse/internal/domain"
)

// SessionRepository defines data access for register sessions.
type SessionRepository interface {
	Create(ctx context.Context, tx Transaction, session *domain.RegisterSession) error
	GetByID(ctx context.Context, id string) (*domain.RegisterSession, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.RegisterSession, error)
	// GetActive returns domain.ErrNoOpenSession when no session is open.
	GetActive(ctx context.Context) (*domain.RegisterSession, error)
	GetActiveForUpdate(ctx context.Context, tx Transaction) (*domain.RegisterSession, error)
	// GetLatest returns the most recently opened session, open or closed.
	GetLatest(ctx context.Context) (*domain.RegisterSession, error)
	UpdateBalance(ctx context.Context, tx Transaction, id string, balance decimal.Decimal) error
	Close(ctx context.Context, tx Transaction, id string, closedAt time.Time) error
	List(ctx context.Context, limit, offset int) ([]*domain.RegisterSession, error)
}

// EntryRepository defines data access for ledger entries.
type EntryRepository interface {
	Create(ctx context.Context, tx Transaction, entry *domain.LedgerEntry) error
	GetByID(ctx context.Context, id string) (*domain.LedgerEntry, error)
	Delete(ctx context.Context, tx Transaction, id string) error
	List(ctx context.Context, limit, offset int) ([]*domain.LedgerEntry, error)
	// ListBySession returns entries in creation order.
	ListBySession(ctx context.Context, sessionID string) ([]*domain.LedgerEntry, error)
}

// LedgerRepository defines data access for ledger-wide checks.
type LedgerRepository interface {
	// CheckConsistency returns the sum of (closing - opening) over every
	// session and the sum of signed entry amounts. Both must match.
	CheckConsistency(ctx context.Context) (sessionDelta, entryTotal decimal.Decimal, err error)
}

// PaymentRepository defines data access for payments.
type PaymentRepository interface {
	Create(ctx context.Context, tx Transaction, payment *domain.Payment) error
	GetByID(ctx context.Context, id string) (*domain.Payment, error)
	Update(ctx context.Context, tx Transaction, payment *domain.Payment) error
	Delete(ctx context.Context, tx Transaction, id string) error
	ListByOrder(ctx context.Context, orderID string) ([]*domain.Payment, error)
	ListBySession(ctx context.Context, sessionID string) ([]*domain.Payment, error)
	ListBetween(ctx context.Context, from, to time.Time) ([]*domain.Payment, error)
}

// OrderFilter narrows order listings.
type OrderFilter struct {
	IsPaid   *bool
	ClientID string
	Limit    int
	Offset   int
}

// OrderRepository defines data access for orders and their items.
type OrderRepository interface {
	Create(ctx context.Context, tx Transaction, order *domain.Order) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Order, error)
	// Update replaces items and discount along with the paid flag.
	Update(ctx context.Context, tx Transaction, order *domain.Order) error
	UpdateStatus(ctx context.Context, tx Transaction, id string, isPaid bool, updatedAt time.Time) error
	Delete(ctx context.Context, tx Transaction, id string) error
	List(ctx context.Context, filter OrderFilter) ([]*domain.Order, error)
	CountByStatus(ctx context.Context) (paid, unpaid int64, err error)
}

// ClientRepository defines data access for clients.
type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) error
	GetByID(ctx context.Context, id string) (*domain.Client, error)
	Update(ctx context.Context, client *domain.Client) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, limit, offset int) ([]*domain.Client, error)
}

// ProductRepository defines data access for products.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, limit, offset int) ([]*domain.Product, error)
}

// ServiceRepository defines data access for services.
type ServiceRepository interface {
	Create(ctx context.Context, service *domain.Service) error
	GetByID(ctx context.Context, id string) (*domain.Service, error)
	Update(ctx context.Context, service *domain.Service) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, limit, offset int) ([]*domain.Service, error)
}

// OutboxRepository defines data access for outbox events.
type OutboxRepository interface {
	Create(ctx context.Context, tx Transaction, event *domain.OutboxEvent) error
	GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublished(ctx context.Context, id string, publishedAt time.Time) error
	DeletePublished(ctx context.Context, before time.Time) error
}

// UserRepository defines data access for users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, limit, offset int) ([]*domain.User, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Retrier re-runs an operation on transient storage errors.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
	// Release drops key so a failed request can be retried.
	Release(ctx context.Context, key string) error
}

// MetricsRecorder receives business events worth counting.
type MetricsRecorder interface {
	SessionOpened()
	SessionClosed()
	EntryRecorded(entryType domain.EntryType)
	PaymentRecorded(method domain.PaymentMethod, amount decimal.Decimal)
	RegisterBalance(balance decimal.Decimal)
}

type noopMetrics struct{}

func (noopMetrics) SessionOpened()                                        {}
func (noopMetrics) SessionClosed()                                        {}
func (noopMetrics) EntryRecorded(domain.EntryType)                        {}
func (noopMetrics) PaymentRecorded(domain.PaymentMethod, decimal.Decimal) {}
func (noopMetrics) RegisterBalance(decimal.Decimal)                       {}
