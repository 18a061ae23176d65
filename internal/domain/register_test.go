package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestNewRegisterSession_CarriesForwardClosingBalance(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()

	first := NewRegisterSession("s1", nil, now)
	if !first.OpeningBalance.IsZero() || !first.ClosingBalance.IsZero() {
		t.Fatalf("expected zero balances for first session, got %s/%s", first.OpeningBalance, first.ClosingBalance)
	}
	if !first.IsOpen {
		t.Fatal("expected new session to be open")
	}

	first.ClosingBalance = dec("150")
	first.Close(now)

	second := NewRegisterSession("s2", first, now.Add(time.Hour))
	if !second.OpeningBalance.Equal(dec("150")) {
		t.Fatalf("expected opening balance 150, got %s", second.OpeningBalance)
	}
	if !second.ClosingBalance.Equal(dec("150")) {
		t.Fatalf("expected closing balance 150, got %s", second.ClosingBalance)
	}
}

func TestRegisterSession_ApplyAndRevert(t *testing.T) {
	t.Parallel()

	s := &RegisterSession{ClosingBalance: dec("100")}

	if got := s.ApplyEntry(EntryTypeDeposit, dec("50")); !got.Equal(dec("150")) {
		t.Fatalf("deposit: expected 150, got %s", got)
	}
	if got := s.ApplyEntry(EntryTypeWithdrawal, dec("30")); !got.Equal(dec("70")) {
		t.Fatalf("withdrawal: expected 70, got %s", got)
	}
	if got := s.RevertEntry(EntryTypeDeposit, dec("50")); !got.Equal(dec("50")) {
		t.Fatalf("revert deposit: expected 50, got %s", got)
	}
	if got := s.RevertEntry(EntryTypeWithdrawal, dec("30")); !got.Equal(dec("130")) {
		t.Fatalf("revert withdrawal: expected 130, got %s", got)
	}
}

func TestRegisterSession_Close(t *testing.T) {
	t.Parallel()

	s := NewRegisterSession("s1", nil, time.Now())
	at := time.Date(2024, 5, 1, 20, 0, 0, 0, time.UTC)
	s.Close(at)

	if s.IsOpen {
		t.Fatal("expected session closed")
	}
	if s.ClosedAt == nil || !s.ClosedAt.Equal(at) {
		t.Fatalf("expected closedAt %v, got %v", at, s.ClosedAt)
	}
}

func TestRegisterSession_ExpectedClosingBalance(t *testing.T) {
	t.Parallel()

	s := &RegisterSession{OpeningBalance: dec("20")}
	entries := []*LedgerEntry{
		{Type: EntryTypeDeposit, Amount: dec("100")},
		{Type: EntryTypeWithdrawal, Amount: dec("35.50")},
		{Type: EntryTypeDeposit, Amount: dec("0.50")},
	}

	if got := s.ExpectedClosingBalance(entries); !got.Equal(dec("85")) {
		t.Fatalf("expected 85, got %s", got)
	}
}
