package memory

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/caisse/internal/domain"
	"github.com/iho/caisse/internal/usecase"
)

func TestSessionRepository_SingleOpenSession(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	repo := NewSessionRepository(store)

	t0 := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, nil, domain.NewRegisterSession("s1", nil, t0)))

	err := repo.Create(ctx, nil, domain.NewRegisterSession("s2", nil, t0.Add(time.Hour)))
	assert.ErrorIs(t, err, domain.ErrSessionConflict)

	require.NoError(t, repo.Close(ctx, nil, "s1", t0.Add(time.Hour)))
	_, err = repo.GetActive(ctx)
	assert.ErrorIs(t, err, domain.ErrNoOpenSession)

	require.NoError(t, repo.Create(ctx, nil, domain.NewRegisterSession("s2", nil, t0.Add(2*time.Hour))))
	latest, err := repo.GetLatest(ctx)
	require.NoError(t, err)
	assert.Equal(t, "s2", latest.ID)

	list, err := repo.List(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "s2", list[0].ID)
}

func TestSessionRepository_GetLatestEmpty(t *testing.T) {
	_, err := NewSessionRepository(NewStore()).GetLatest(context.Background())
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSessionRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository(NewStore())
	require.NoError(t, repo.Create(ctx, nil, domain.NewRegisterSession("s1", nil, time.Now())))

	s, err := repo.GetByID(ctx, "s1")
	require.NoError(t, err)
	s.ClosingBalance = decimal.NewFromInt(99)

	again, err := repo.GetByID(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, again.ClosingBalance.IsZero())
}

func TestCatalog_DeleteInUse(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	clients := NewClientRepository(store)
	products := NewProductRepository(store)
	services := NewServiceRepository(store)
	orders := NewOrderRepository(store)

	require.NoError(t, clients.Create(ctx, &domain.Client{ID: "c1", Name: "Alice"}))
	require.NoError(t, products.Create(ctx, &domain.Product{ID: "p1", Name: "Shampoo", Price: decimal.NewFromInt(10)}))
	require.NoError(t, services.Create(ctx, &domain.Service{ID: "sv1", Name: "Cut", Price: decimal.NewFromInt(20)}))
	require.NoError(t, orders.Create(ctx, nil, &domain.Order{
		ID:           "o1",
		ClientID:     "c1",
		LineItems:    []domain.LineItem{{ProductID: "p1", UnitPrice: decimal.NewFromInt(10), Quantity: 1}},
		ServiceItems: []domain.ServiceItem{{ServiceID: "sv1", Price: decimal.NewFromInt(20)}},
	}))

	assert.ErrorIs(t, clients.Delete(ctx, "c1"), domain.ErrInUse)
	assert.ErrorIs(t, products.Delete(ctx, "p1"), domain.ErrInUse)
	assert.ErrorIs(t, services.Delete(ctx, "sv1"), domain.ErrInUse)

	require.NoError(t, orders.Delete(ctx, nil, "o1"))
	assert.NoError(t, clients.Delete(ctx, "c1"))
	assert.NoError(t, products.Delete(ctx, "p1"))
	assert.NoError(t, services.Delete(ctx, "sv1"))
	assert.ErrorIs(t, clients.Delete(ctx, "c1"), domain.ErrClientNotFound)
}

func TestCatalog_ListSortedByName(t *testing.T) {
	ctx := context.Background()
	clients := NewClientRepository(NewStore())
	for id, name := range map[string]string{"1": "Zoé", "2": "Bruno", "3": "Marc"} {
		require.NoError(t, clients.Create(ctx, &domain.Client{ID: id, Name: name}))
	}

	list, err := clients.List(ctx, 2, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Bruno", list[0].Name)
	assert.Equal(t, "Marc", list[1].Name)
}

func TestOrderRepository_FilterAndCount(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	require.NoError(t, NewClientRepository(store).Create(ctx, &domain.Client{ID: "c1", Name: "Alice"}))
	orders := NewOrderRepository(store)

	require.NoError(t, orders.Create(ctx, nil, &domain.Order{ID: "o1", ClientID: "c1", IsPaid: true}))
	require.NoError(t, orders.Create(ctx, nil, &domain.Order{ID: "o2", ClientID: "c1"}))
	require.NoError(t, orders.Create(ctx, nil, &domain.Order{ID: "o3", ClientID: "c1"}))

	err := orders.Create(ctx, nil, &domain.Order{ID: "o4", ClientID: "missing"})
	assert.ErrorIs(t, err, domain.ErrClientNotFound)

	unpaid := false
	list, err := orders.List(ctx, usecase.OrderFilter{IsPaid: &unpaid})
	require.NoError(t, err)
	assert.Len(t, list, 2)

	paid, open, err := orders.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), paid)
	assert.Equal(t, int64(2), open)
}

func TestUserRepository_EmailIsUnique(t *testing.T) {
	ctx := context.Background()
	users := NewUserRepository(NewStore())

	require.NoError(t, users.Create(ctx, &domain.User{ID: "u1", Email: "a@shop.fr", Role: domain.RoleAdmin}))
	assert.ErrorIs(t, users.Create(ctx, &domain.User{ID: "u2", Email: "A@shop.fr"}), domain.ErrUserExists)

	u, err := users.GetByEmail(ctx, "a@shop.fr")
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)

	_, err = users.GetByEmail(ctx, "b@shop.fr")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestOutboxRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	outbox := NewOutboxRepository(NewStore())
	now := time.Now()

	for _, id := range []string{"ev1", "ev2"} {
		require.NoError(t, outbox.Create(ctx, nil, &domain.OutboxEvent{
			ID: id, EventType: domain.EventTypeRegisterOpened, CreatedAt: now,
			Payload: map[string]any{"session_id": "s1"},
		}))
	}

	events, err := outbox.GetUnpublished(ctx, 10)
	require.NoError(t, err)
	require.Len(t, events, 2)

	require.NoError(t, outbox.MarkPublished(ctx, "ev1", now))
	events, err = outbox.GetUnpublished(ctx, 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "ev2", events[0].ID)

	require.NoError(t, outbox.DeletePublished(ctx, now.Add(time.Minute)))
	events, err = outbox.GetUnpublished(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestLedgerRepository_CheckConsistency(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	sessions := NewSessionRepository(store)
	entries := NewEntryRepository(store)
	ledger := NewLedgerRepository(store)
	now := time.Now()

	require.NoError(t, sessions.Create(ctx, nil, domain.NewRegisterSession("s1", nil, now)))
	require.NoError(t, entries.Create(ctx, nil, &domain.LedgerEntry{
		ID: "e1", SessionID: "s1", Type: domain.EntryTypeDeposit, Amount: decimal.NewFromInt(50), OccurredAt: now,
	}))
	require.NoError(t, entries.Create(ctx, nil, &domain.LedgerEntry{
		ID: "e2", SessionID: "s1", Type: domain.EntryTypeWithdrawal, Amount: decimal.NewFromInt(20), OccurredAt: now,
	}))
	require.NoError(t, sessions.UpdateBalance(ctx, nil, "s1", decimal.NewFromInt(30)))

	delta, total, err := ledger.CheckConsistency(ctx)
	require.NoError(t, err)
	assert.True(t, delta.Equal(decimal.NewFromInt(30)))
	assert.True(t, total.Equal(delta))
}
