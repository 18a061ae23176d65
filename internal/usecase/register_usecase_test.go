package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/iho/caisse/internal/domain"
	"github.com/iho/caisse/internal/usecase"
	"github.com/iho/caisse/internal/usecase/mocks"
)

func TestRegisterUseCase_FirstSessionStartsAtZero(t *testing.T) {
	s := newShop(t)

	session, err := s.register.OpenSession(context.Background())
	require.NoError(t, err)
	assert.True(t, session.IsOpen)
	assert.True(t, session.OpeningBalance.IsZero())
	assert.True(t, session.ClosingBalance.IsZero())
}

func TestRegisterUseCase_CarriesClosingBalanceForward(t *testing.T) {
	ctx := context.Background()
	s := newShop(t)

	_, err := s.register.OpenSession(ctx)
	require.NoError(t, err)
	_, err = s.ledger.RecordEntry(ctx, usecase.RecordEntryInput{Type: domain.EntryTypeDeposit, Amount: dec("120.50"), Reason: "fond de caisse"})
	require.NoError(t, err)

	closed, err := s.register.CloseSession(ctx)
	require.NoError(t, err)
	assert.False(t, closed.IsOpen)
	assert.NotNil(t, closed.ClosedAt)

	next, err := s.register.OpenSession(ctx)
	require.NoError(t, err)
	assert.True(t, next.OpeningBalance.Equal(dec("120.50")))
	assert.True(t, next.ClosingBalance.Equal(next.OpeningBalance))
}

func TestRegisterUseCase_OpenClosesActiveSession(t *testing.T) {
	ctx := context.Background()
	s := newShop(t)

	first, err := s.register.OpenSession(ctx)
	require.NoError(t, err)
	_, err = s.ledger.RecordEntry(ctx, usecase.RecordEntryInput{Type: domain.EntryTypeDeposit, Amount: dec("40"), Reason: "apport"})
	require.NoError(t, err)

	second, err := s.register.OpenSession(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
	assert.True(t, second.OpeningBalance.Equal(dec("40")))

	old, err := s.register.GetSession(ctx, first.ID)
	require.NoError(t, err)
	assert.False(t, old.IsOpen)

	active, err := s.register.GetActiveSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, second.ID, active.ID)

	var closedEvents int
	for _, e := range s.unpublished(t) {
		if e.EventType == domain.EventTypeRegisterClosed {
			closedEvents++
		}
	}
	assert.Equal(t, 1, closedEvents)
}

func TestRegisterUseCase_CloseWithoutOpenSession(t *testing.T) {
	s := newShop(t)

	_, err := s.register.CloseSession(context.Background())
	assert.ErrorIs(t, err, domain.ErrNoOpenSession)
}

func TestRegisterUseCase_LatestAndList(t *testing.T) {
	ctx := context.Background()
	s := newShop(t)

	_, err := s.register.GetLatestSession(ctx)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	_, err = s.register.OpenSession(ctx)
	require.NoError(t, err)
	closed, err := s.register.CloseSession(ctx)
	require.NoError(t, err)

	latest, err := s.register.GetLatestSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, closed.ID, latest.ID)
	assert.False(t, latest.IsOpen)

	_, err = s.register.GetActiveSession(ctx)
	assert.ErrorIs(t, err, domain.ErrNoOpenSession)

	list, err := s.register.ListSessions(ctx, 0, 0)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestRegisterUseCase_RecordsMetrics(t *testing.T) {
	ctrl := gomock.NewController(t)
	metrics := mocks.NewMockMetricsRecorder(ctrl)
	s := newShop(t)
	s.register.SetMetrics(metrics)

	metrics.EXPECT().SessionOpened()
	metrics.EXPECT().RegisterBalance(gomock.Any())
	_, err := s.register.OpenSession(context.Background())
	require.NoError(t, err)

	metrics.EXPECT().SessionClosed()
	_, err = s.register.CloseSession(context.Background())
	require.NoError(t, err)
}

func TestRegisterUseCase_OpenRollsBackOnOutboxFailure(t *testing.T) {
	ctrl := gomock.NewController(t)

	txManager := mocks.NewMockTransactionManager(ctrl)
	tx := mocks.NewMockTransaction(ctrl)
	sessions := mocks.NewMockSessionRepository(ctrl)
	outbox := mocks.NewMockOutboxRepository(ctrl)
	ids := mocks.NewMockIDGenerator(ctrl)

	txManager.EXPECT().Begin(gomock.Any()).Return(tx, nil)
	sessions.EXPECT().GetActiveForUpdate(gomock.Any(), tx).Return(nil, domain.ErrNoOpenSession)
	sessions.EXPECT().GetLatest(gomock.Any()).Return(nil, domain.ErrSessionNotFound)
	ids.EXPECT().Generate().Return("s1").Times(2)
	sessions.EXPECT().Create(gomock.Any(), tx, gomock.Any()).Return(nil)
	outbox.EXPECT().Create(gomock.Any(), tx, gomock.Any()).Return(errors.New("outbox down"))
	tx.EXPECT().Rollback(gomock.Any()).Return(nil)

	uc := usecase.NewRegisterUseCase(txManager, sessions, outbox, ids, nil, zerolog.Nop())
	_, err := uc.OpenSession(context.Background())
	require.EqualError(t, err, "outbox down")
}

func TestRegisterUseCase_OpenIsRetried(t *testing.T) {
	ctrl := gomock.NewController(t)

	txManager := mocks.NewMockTransactionManager(ctrl)
	retrier := mocks.NewMockRetrier(ctrl)
	sessions := mocks.NewMockSessionRepository(ctrl)
	outbox := mocks.NewMockOutboxRepository(ctrl)

	beginErr := errors.New("serialization failure")
	retrier.EXPECT().Retry(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, op func() error) error {
		return op()
	})
	txManager.EXPECT().Begin(gomock.Any()).Return(nil, beginErr)

	uc := usecase.NewRegisterUseCase(txManager, sessions, outbox, &seqIDGen{}, retrier, zerolog.Nop())
	_, err := uc.OpenSession(context.Background())
	assert.ErrorIs(t, err, beginErr)
}
