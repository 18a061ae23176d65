package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/caisse/internal/adapter/http/dto"
	"github.com/iho/caisse/internal/domain"
	"github.com/iho/caisse/internal/usecase"
)

func TestRegisterHandler_Open(t *testing.T) {
	h := NewRegisterHandler(&registerServiceStub{
		openFn: func(ctx context.Context) (*domain.RegisterSession, error) {
			return &domain.RegisterSession{
				ID:             "s2",
				OpeningBalance: decimal.NewFromInt(150),
				ClosingBalance: decimal.NewFromInt(150),
				IsOpen:         true,
			}, nil
		},
	}, nil)

	rr := serve(t, http.MethodPost, "/caisse/open", "/caisse/open", nil, h.Open)

	require.Equal(t, http.StatusCreated, rr.Code)
	resp := decode[dto.SessionResponse](t, rr)
	assert.Equal(t, "s2", resp.ID)
	assert.True(t, resp.IsOpen)
	assert.True(t, resp.OpeningBalance.Equal(decimal.NewFromInt(150)))
}

func TestRegisterHandler_NoOpenSessionIs404(t *testing.T) {
	stub := &registerServiceStub{
		closeFn: func(ctx context.Context) (*domain.RegisterSession, error) {
			return nil, domain.ErrNoOpenSession
		},
		activeFn: func(ctx context.Context) (*domain.RegisterSession, error) {
			return nil, domain.ErrNoOpenSession
		},
	}
	h := NewRegisterHandler(stub, nil)

	rr := serve(t, http.MethodPost, "/caisse/close", "/caisse/close", nil, h.Close)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = serve(t, http.MethodGet, "/caisse/open", "/caisse/open", nil, h.Active)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "no open register session", decode[dto.ErrorResponse](t, rr).Message)
}

func TestRegisterHandler_ListPagination(t *testing.T) {
	var gotLimit, gotOffset int
	h := NewRegisterHandler(&registerServiceStub{
		listFn: func(ctx context.Context, limit, offset int) ([]*domain.RegisterSession, error) {
			gotLimit, gotOffset = limit, offset
			return nil, nil
		},
	}, nil)

	rr := serve(t, http.MethodGet, "/caisse/list", "/caisse/list?limit=5&offset=10", nil, h.List)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 5, gotLimit)
	assert.Equal(t, 10, gotOffset)
	resp := decode[dto.ListResponse[dto.SessionResponse]](t, rr)
	assert.NotNil(t, resp.Items)
	assert.Zero(t, resp.Count)
}

func TestRegisterHandler_Reconcile(t *testing.T) {
	h := NewRegisterHandler(nil, &reconciliationServiceStub{
		reconcileFn: func(ctx context.Context, id string) (*usecase.ReconciliationResult, error) {
			if id != "s1" {
				return nil, domain.ErrSessionNotFound
			}
			return &usecase.ReconciliationResult{
				SessionID:       "s1",
				RecordedBalance: decimal.NewFromInt(90),
				ExpectedBalance: decimal.NewFromInt(100),
				Difference:      decimal.NewFromInt(-10),
			}, nil
		},
	})

	rr := serve(t, http.MethodGet, "/caisse/{id}/reconcile", "/caisse/s1/reconcile", nil, h.Reconcile)
	require.Equal(t, http.StatusOK, rr.Code)
	resp := decode[dto.ReconciliationResponse](t, rr)
	assert.False(t, resp.IsReconciled)
	assert.True(t, resp.Difference.Equal(decimal.NewFromInt(-10)))

	rr = serve(t, http.MethodGet, "/caisse/{id}/reconcile", "/caisse/zz/reconcile", nil, h.Reconcile)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestRegisterHandler_Consistency(t *testing.T) {
	h := NewRegisterHandler(nil, &reconciliationServiceStub{
		reportFn: func(ctx context.Context) (*usecase.ReconciliationReport, error) {
			return &usecase.ReconciliationReport{TotalSessions: 3, ReconciledSessions: 3, LedgerConsistent: true}, nil
		},
	})

	rr := serve(t, http.MethodGet, "/caisse/consistency", "/caisse/consistency", nil, h.Consistency)

	require.Equal(t, http.StatusOK, rr.Code)
	resp := decode[dto.ConsistencyResponse](t, rr)
	assert.True(t, resp.LedgerConsistent)
	assert.Equal(t, 3, resp.TotalSessions)
}
