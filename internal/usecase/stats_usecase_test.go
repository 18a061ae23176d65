package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/iho/caisse/internal/domain"
	"github.com/iho/caisse/internal/usecase"
	"github.com/iho/caisse/internal/usecase/mocks"
)

func TestStatsUseCase_ComputesFigures(t *testing.T) {
	ctx := context.Background()
	s := newShop(t)
	_, err := s.register.OpenSession(ctx)
	require.NoError(t, err)

	paidOrder := s.orderWithService(t, "50", "0")
	openOrder := s.orderWithService(t, "80", "0")

	_, err = s.payment.RecordPayment(ctx, usecase.RecordPaymentInput{OrderID: paidOrder.ID, Amount: dec("50"), Method: domain.PaymentMethodCash})
	require.NoError(t, err)
	_, err = s.payment.RecordPayment(ctx, usecase.RecordPaymentInput{OrderID: openOrder.ID, Amount: dec("30"), Method: domain.PaymentMethodCard})
	require.NoError(t, err)

	uc := usecase.NewStatsUseCase(s.payments, s.orders, s.sessions, nil, 0, zerolog.Nop())
	stats, err := uc.GetStats(ctx, 7)
	require.NoError(t, err)

	assert.True(t, stats.TotalRevenue.Equal(dec("80")))
	assert.True(t, stats.RevenueByMethod[domain.PaymentMethodCash].Equal(dec("50")))
	assert.True(t, stats.RevenueByMethod[domain.PaymentMethodCard].Equal(dec("30")))
	require.Len(t, stats.RevenueByDay, 1)
	assert.Equal(t, time.Now().UTC().Format(time.DateOnly), stats.RevenueByDay[0].Date)
	assert.Equal(t, int64(1), stats.PaidOrders)
	assert.Equal(t, int64(1), stats.UnpaidOrders)
	assert.True(t, stats.RegisterOpen)
	require.NotNil(t, stats.CurrentBalance)
	assert.True(t, stats.CurrentBalance.Equal(dec("50")))
}

func TestStatsUseCase_RegisterClosed(t *testing.T) {
	s := newShop(t)
	uc := usecase.NewStatsUseCase(s.payments, s.orders, s.sessions, nil, 0, zerolog.Nop())

	stats, err := uc.GetStats(context.Background(), 0)
	require.NoError(t, err)
	assert.False(t, stats.RegisterOpen)
	assert.Nil(t, stats.CurrentBalance)
	assert.True(t, stats.TotalRevenue.IsZero())
}

func TestStatsUseCase_ServesFromCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	cache := mocks.NewMockCache(ctrl)
	payments := mocks.NewMockPaymentRepository(ctrl)
	orders := mocks.NewMockOrderRepository(ctrl)
	sessions := mocks.NewMockSessionRepository(ctrl)

	cached, err := json.Marshal(usecase.Stats{PaidOrders: 42, TotalRevenue: dec("12.5")})
	require.NoError(t, err)
	cache.EXPECT().Get(gomock.Any(), "caisse:stats:30").Return(cached, nil)

	uc := usecase.NewStatsUseCase(payments, orders, sessions, cache, time.Minute, zerolog.Nop())
	stats, err := uc.GetStats(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, int64(42), stats.PaidOrders)
	assert.True(t, stats.TotalRevenue.Equal(dec("12.5")))
}

func TestStatsUseCase_FillsCacheOnMiss(t *testing.T) {
	ctrl := gomock.NewController(t)
	cache := mocks.NewMockCache(ctrl)
	payments := mocks.NewMockPaymentRepository(ctrl)
	orders := mocks.NewMockOrderRepository(ctrl)
	sessions := mocks.NewMockSessionRepository(ctrl)

	cache.EXPECT().Get(gomock.Any(), "caisse:stats:7").Return(nil, nil)
	payments.EXPECT().ListBetween(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
	orders.EXPECT().CountByStatus(gomock.Any()).Return(int64(3), int64(4), nil)
	sessions.EXPECT().GetActive(gomock.Any()).Return(nil, domain.ErrNoOpenSession)
	cache.EXPECT().Set(gomock.Any(), "caisse:stats:7", gomock.Any(), time.Minute).Return(errors.New("redis down"))

	uc := usecase.NewStatsUseCase(payments, orders, sessions, cache, time.Minute, zerolog.Nop())
	stats, err := uc.GetStats(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.PaidOrders)
	assert.Equal(t, int64(4), stats.UnpaidOrders)

	cache.EXPECT().Delete(gomock.Any(), "caisse:stats:7").Return(nil)
	uc.Invalidate(context.Background(), 7)
}

func TestStatsUseCase_RepositoryError(t *testing.T) {
	ctrl := gomock.NewController(t)
	payments := mocks.NewMockPaymentRepository(ctrl)
	orders := mocks.NewMockOrderRepository(ctrl)
	sessions := mocks.NewMockSessionRepository(ctrl)

	payments.EXPECT().ListBetween(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))

	uc := usecase.NewStatsUseCase(payments, orders, sessions, nil, 0, zerolog.Nop())
	_, err := uc.GetStats(context.Background(), 1)
	require.EqualError(t, err, "db down")
}
