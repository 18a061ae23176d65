package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/iho/caisse/internal/domain"
	"github.com/iho/caisse/internal/usecase"
	"github.com/iho/caisse/internal/usecase/mocks"
)

func TestReconciliationUseCase_HoldsAfterMixedActivity(t *testing.T) {
	ctx := context.Background()
	s := newShop(t)

	first, err := s.register.OpenSession(ctx)
	require.NoError(t, err)
	_, err = s.ledger.RecordEntry(ctx, usecase.RecordEntryInput{Type: domain.EntryTypeDeposit, Amount: dec("100"), Reason: "fond"})
	require.NoError(t, err)

	order := s.orderWithService(t, "45", "0")
	payment, err := s.payment.RecordPayment(ctx, usecase.RecordPaymentInput{OrderID: order.ID, Amount: dec("45"), Method: domain.PaymentMethodCash})
	require.NoError(t, err)

	// reopening auto-closes the first session
	_, err = s.register.OpenSession(ctx)
	require.NoError(t, err)
	require.NoError(t, s.payment.DeletePayment(ctx, payment.ID))
	_, err = s.ledger.RecordEntry(ctx, usecase.RecordEntryInput{Type: domain.EntryTypeWithdrawal, Amount: dec("12.30"), Reason: "course"})
	require.NoError(t, err)

	result, err := s.reconciliation.ReconcileSession(ctx, first.ID)
	require.NoError(t, err)
	assert.True(t, result.IsReconciled)
	assert.Equal(t, 2, result.EntryCount)
	assert.True(t, result.Deposits.Equal(dec("145")))
	assert.True(t, result.RecordedBalance.Equal(dec("145")))

	report, err := s.reconciliation.GenerateReconciliationReport(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, report.TotalSessions)
	assert.Equal(t, 2, report.ReconciledSessions)
	assert.True(t, report.LedgerConsistent)
	assert.True(t, s.balance(t).Equal(dec("87.70")))
}

func TestReconciliationUseCase_DetectsDrift(t *testing.T) {
	ctx := context.Background()
	s := newShop(t)

	session, err := s.register.OpenSession(ctx)
	require.NoError(t, err)
	_, err = s.ledger.RecordEntry(ctx, usecase.RecordEntryInput{Type: domain.EntryTypeDeposit, Amount: dec("20"), Reason: "fond"})
	require.NoError(t, err)

	// balance moved without an entry
	require.NoError(t, s.sessions.UpdateBalance(ctx, nil, session.ID, dec("25")))

	result, err := s.reconciliation.ReconcileSession(ctx, session.ID)
	require.NoError(t, err)
	assert.False(t, result.IsReconciled)
	assert.True(t, result.Difference.Equal(dec("5")))

	assert.ErrorIs(t, s.reconciliation.CheckLedgerConsistency(ctx), usecase.ErrInconsistentLedger)

	report, err := s.reconciliation.GenerateReconciliationReport(ctx)
	require.NoError(t, err)
	assert.False(t, report.LedgerConsistent)
	require.Len(t, report.Discrepancies, 1)
	assert.Equal(t, session.ID, report.Discrepancies[0].SessionID)
}

func TestReconciliationUseCase_UnknownSession(t *testing.T) {
	s := newShop(t)
	_, err := s.reconciliation.ReconcileSession(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestReconciliationUseCase_ReportSurfacesRepositoryErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	sessions := mocks.NewMockSessionRepository(ctrl)
	entries := mocks.NewMockEntryRepository(ctrl)
	ledger := mocks.NewMockLedgerRepository(ctrl)

	sessions.EXPECT().List(gomock.Any(), 500, 0).Return([]*domain.RegisterSession{{ID: "s1"}}, nil)
	entries.EXPECT().ListBySession(gomock.Any(), "s1").Return(nil, nil)
	ledger.EXPECT().CheckConsistency(gomock.Any()).Return(dec("0"), dec("0"), errors.New("db down"))

	uc := usecase.NewReconciliationUseCase(sessions, entries, ledger)
	_, err := uc.GenerateReconciliationReport(context.Background())
	require.EqualError(t, err, "db down")
}
