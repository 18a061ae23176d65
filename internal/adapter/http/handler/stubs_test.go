package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/iho/caisse/internal/domain"
	"github.com/iho/caisse/internal/usecase"
)

// serve routes one request through a chi router so URL params resolve.
func serve(t *testing.T, method, pattern, target string, body any, h http.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	r := chi.NewRouter()
	r.MethodFunc(method, pattern, h)

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rr.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode response %q: %v", rr.Body.String(), err)
	}
	return v
}

type registerServiceStub struct {
	openFn   func(ctx context.Context) (*domain.RegisterSession, error)
	closeFn  func(ctx context.Context) (*domain.RegisterSession, error)
	activeFn func(ctx context.Context) (*domain.RegisterSession, error)
	latestFn func(ctx context.Context) (*domain.RegisterSession, error)
	listFn   func(ctx context.Context, limit, offset int) ([]*domain.RegisterSession, error)
}

func (s *registerServiceStub) OpenSession(ctx context.Context) (*domain.RegisterSession, error) {
	return s.openFn(ctx)
}

func (s *registerServiceStub) CloseSession(ctx context.Context) (*domain.RegisterSession, error) {
	return s.closeFn(ctx)
}

func (s *registerServiceStub) GetActiveSession(ctx context.Context) (*domain.RegisterSession, error) {
	return s.activeFn(ctx)
}

func (s *registerServiceStub) GetLatestSession(ctx context.Context) (*domain.RegisterSession, error) {
	return s.latestFn(ctx)
}

func (s *registerServiceStub) ListSessions(ctx context.Context, limit, offset int) ([]*domain.RegisterSession, error) {
	return s.listFn(ctx, limit, offset)
}

type reconciliationServiceStub struct {
	reconcileFn func(ctx context.Context, id string) (*usecase.ReconciliationResult, error)
	reportFn    func(ctx context.Context) (*usecase.ReconciliationReport, error)
}

func (s *reconciliationServiceStub) ReconcileSession(ctx context.Context, id string) (*usecase.ReconciliationResult, error) {
	return s.reconcileFn(ctx, id)
}

func (s *reconciliationServiceStub) GenerateReconciliationReport(ctx context.Context) (*usecase.ReconciliationReport, error) {
	return s.reportFn(ctx)
}

type entryServiceStub struct {
	recordFn    func(ctx context.Context, input usecase.RecordEntryInput) (*domain.LedgerEntry, error)
	deleteFn    func(ctx context.Context, id string) error
	getFn       func(ctx context.Context, id string) (*domain.LedgerEntry, error)
	listFn      func(ctx context.Context, limit, offset int) ([]*domain.LedgerEntry, error)
	listByRegFn func(ctx context.Context, sessionID string) ([]*domain.LedgerEntry, error)
}

func (s *entryServiceStub) RecordEntry(ctx context.Context, input usecase.RecordEntryInput) (*domain.LedgerEntry, error) {
	return s.recordFn(ctx, input)
}

func (s *entryServiceStub) DeleteEntry(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func (s *entryServiceStub) GetEntry(ctx context.Context, id string) (*domain.LedgerEntry, error) {
	return s.getFn(ctx, id)
}

func (s *entryServiceStub) ListEntries(ctx context.Context, limit, offset int) ([]*domain.LedgerEntry, error) {
	return s.listFn(ctx, limit, offset)
}

func (s *entryServiceStub) ListEntriesForSession(ctx context.Context, sessionID string) ([]*domain.LedgerEntry, error) {
	return s.listByRegFn(ctx, sessionID)
}

type paymentServiceStub struct {
	recordFn   func(ctx context.Context, input usecase.RecordPaymentInput) (*domain.Payment, error)
	updateFn   func(ctx context.Context, input usecase.UpdatePaymentInput) (*domain.Payment, error)
	deleteFn   func(ctx context.Context, id string) error
	byOrderFn  func(ctx context.Context, orderID string) ([]*domain.Payment, error)
	forActiveF func(ctx context.Context) ([]*domain.Payment, error)
}

func (s *paymentServiceStub) RecordPayment(ctx context.Context, input usecase.RecordPaymentInput) (*domain.Payment, error) {
	return s.recordFn(ctx, input)
}

func (s *paymentServiceStub) UpdatePayment(ctx context.Context, input usecase.UpdatePaymentInput) (*domain.Payment, error) {
	return s.updateFn(ctx, input)
}

func (s *paymentServiceStub) DeletePayment(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func (s *paymentServiceStub) ListByOrder(ctx context.Context, orderID string) ([]*domain.Payment, error) {
	return s.byOrderFn(ctx, orderID)
}

func (s *paymentServiceStub) ListForActiveSession(ctx context.Context) ([]*domain.Payment, error) {
	return s.forActiveF(ctx)
}
