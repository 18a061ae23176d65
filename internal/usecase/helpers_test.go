package usecase_test

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/iho/caisse/internal/adapter/repository/memory"
	"github.com/iho/caisse/internal/domain"
	"github.com/iho/caisse/internal/usecase"
)

type seqIDGen struct {
	n atomic.Int64
}

func (g *seqIDGen) Generate() string {
	return fmt.Sprintf("id-%04d", g.n.Add(1))
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// shop wires every use case over one in-memory store.
type shop struct {
	store    *memory.Store
	sessions *memory.SessionRepository
	entries  *memory.EntryRepository
	payments *memory.PaymentRepository
	orders   *memory.OrderRepository
	outbox   *memory.OutboxRepository

	register       *usecase.RegisterUseCase
	ledger         *usecase.EntryUseCase
	payment        *usecase.PaymentUseCase
	order          *usecase.OrderUseCase
	catalog        *usecase.CatalogUseCase
	reconciliation *usecase.ReconciliationUseCase
}

func newShop(t *testing.T) *shop {
	t.Helper()

	store := memory.NewStore()
	txm := memory.NewTxManager(store)
	ids := &seqIDGen{}
	log := zerolog.Nop()

	s := &shop{
		store:    store,
		sessions: memory.NewSessionRepository(store),
		entries:  memory.NewEntryRepository(store),
		payments: memory.NewPaymentRepository(store),
		orders:   memory.NewOrderRepository(store),
		outbox:   memory.NewOutboxRepository(store),
	}
	clients := memory.NewClientRepository(store)
	products := memory.NewProductRepository(store)
	services := memory.NewServiceRepository(store)

	s.register = usecase.NewRegisterUseCase(txm, s.sessions, s.outbox, ids, nil, log)
	s.ledger = usecase.NewEntryUseCase(txm, s.sessions, s.entries, s.outbox, ids, nil, log)
	s.payment = usecase.NewPaymentUseCase(txm, s.payments, s.orders, s.sessions, s.entries, s.outbox, ids, nil, log)
	s.order = usecase.NewOrderUseCase(txm, s.orders, s.payments, clients, products, services, s.outbox, ids, nil, log)
	s.catalog = usecase.NewCatalogUseCase(clients, products, services, ids)
	s.reconciliation = usecase.NewReconciliationUseCase(s.sessions, s.entries, memory.NewLedgerRepository(store))

	return s
}

func (s *shop) client(t *testing.T) *domain.Client {
	t.Helper()
	c, err := s.catalog.CreateClient(context.Background(), usecase.ClientInput{Name: "Camille"})
	require.NoError(t, err)
	return c
}

// orderWithService creates an order holding a single service at price.
func (s *shop) orderWithService(t *testing.T, price, globalDiscount string) *domain.Order {
	t.Helper()
	ctx := context.Background()

	client := s.client(t)
	svc, err := s.catalog.CreateService(ctx, usecase.ServiceInput{Name: "Coupe", Price: dec(price)})
	require.NoError(t, err)

	view, err := s.order.CreateOrder(ctx, usecase.OrderInput{
		ClientID:              client.ID,
		ServiceItems:          []usecase.ServiceItemInput{{ServiceID: svc.ID}},
		GlobalDiscountPercent: dec(globalDiscount),
	})
	require.NoError(t, err)
	return view.Order
}

func (s *shop) balance(t *testing.T) decimal.Decimal {
	t.Helper()
	session, err := s.register.GetActiveSession(context.Background())
	require.NoError(t, err)
	return session.ClosingBalance
}

// requireReconciled asserts every session matches its entries.
func (s *shop) requireReconciled(t *testing.T) {
	t.Helper()
	report, err := s.reconciliation.GenerateReconciliationReport(context.Background())
	require.NoError(t, err)
	require.Empty(t, report.Discrepancies)
	require.True(t, report.LedgerConsistent)
}

func (s *shop) unpublished(t *testing.T) []*domain.OutboxEvent {
	t.Helper()
	events, err := s.outbox.GetUnpublished(context.Background(), 1000)
	require.NoError(t, err)
	return events
}
