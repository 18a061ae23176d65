package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestLedgerUseCase_CheckConsistency(t *testing.T) {
	tests := []struct {
		name        string
		repo        *fakeLedgerRepository
		want        bool
		expectedErr error
	}{
		{
			name: "empty ledger",
			repo: &fakeLedgerRepository{
				sessionDelta: decimal.Zero,
				entryTotal:   decimal.Zero,
			},
			want: true,
		},
		{
			name: "balances backed by entries",
			repo: &fakeLedgerRepository{
				sessionDelta: decimal.RequireFromString("152.40"),
				entryTotal:   decimal.RequireFromString("152.4"),
			},
			want: true,
		},
		{
			name: "repo error surfaces",
			repo: &fakeLedgerRepository{
				err: errors.New("db down"),
			},
			want:        false,
			expectedErr: errors.New("db down"),
		},
		{
			name: "balance moved without an entry",
			repo: &fakeLedgerRepository{
				sessionDelta: decimal.NewFromInt(10),
				entryTotal:   decimal.Zero,
			},
			want:        false,
			expectedErr: ErrInconsistentLedger,
		},
		{
			name: "entry without a balance move",
			repo: &fakeLedgerRepository{
				sessionDelta: decimal.NewFromInt(-5),
				entryTotal:   decimal.NewFromInt(5),
			},
			want:        false,
			expectedErr: ErrInconsistentLedger,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewLedgerUseCase(tt.repo)
			got, err := uc.CheckConsistency(context.Background())

			if tt.expectedErr != nil {
				if err == nil || err.Error() != tt.expectedErr.Error() {
					t.Fatalf("expected error %v, got %v", tt.expectedErr, err)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got != tt.want {
				t.Fatalf("CheckConsistency() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLedgerUseCase_RepositoryInvoked(t *testing.T) {
	repo := &fakeLedgerRepository{}
	uc := NewLedgerUseCase(repo)

	if _, err := uc.CheckConsistency(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if repo.calls != 1 {
		t.Fatalf("expected CheckConsistency to call repository once, got %d", repo.calls)
	}
}

func TestClampLimit(t *testing.T) {
	tests := []struct {
		limit, offset         int
		wantLimit, wantOffset int
	}{
		{0, 0, defaultListLimit, 0},
		{-3, -1, defaultListLimit, 0},
		{50, 10, 50, 10},
		{1000, 0, maxListLimit, 0},
	}

	for _, tt := range tests {
		l, o := clampLimit(tt.limit, tt.offset)
		if l != tt.wantLimit || o != tt.wantOffset {
			t.Fatalf("clampLimit(%d, %d) = (%d, %d), want (%d, %d)", tt.limit, tt.offset, l, o, tt.wantLimit, tt.wantOffset)
		}
	}
}

type fakeLedgerRepository struct {
	sessionDelta decimal.Decimal
	entryTotal   decimal.Decimal
	err          error
	calls        int
}

func (f *fakeLedgerRepository) CheckConsistency(ctx context.Context) (decimal.Decimal, decimal.Decimal, error) {
	f.calls++
	return f.sessionDelta, f.entryTotal, f.err
}
