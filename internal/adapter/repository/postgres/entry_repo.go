package postgres

import (
	"context"

	"github.com/iho/caisse/internal/domain"
	"github.com/iho/caisse/internal/infrastructure/postgres/generated"
	"github.com/iho/caisse/internal/usecase"
)

// EntryRepository implements usecase.EntryRepository.
type EntryRepository struct {
	queries *generated.Queries
}

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository(db DB) *EntryRepository {
	return &EntryRepository{queries: generated.New(db)}
}

// Create creates a new ledger entry.
func (r *EntryRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.LedgerEntry) error {
	err := txQueries(tx).CreateLedgerEntry(ctx, generated.CreateLedgerEntryParams{
		ID:         entry.ID,
		SessionID:  entry.SessionID,
		Type:       string(entry.Type),
		Amount:     decimalToNumeric(entry.Amount),
		Reason:     entry.Reason,
		PaymentID:  stringPtrToText(entry.PaymentID),
		OccurredAt: timeToPgTimestamptz(entry.OccurredAt),
	})
	if code, _ := pgErrorCode(err); code == pgErrForeignKeyViolation {
		return domain.ErrSessionNotFound
	}
	return err
}

// GetByID retrieves an entry by ID.
func (r *EntryRepository) GetByID(ctx context.Context, id string) (*domain.LedgerEntry, error) {
	row, err := r.queries.GetLedgerEntryByID(ctx, id)
	if err != nil {
		return nil, notFound(err, domain.ErrEntryNotFound)
	}
	return rowToEntry(row), nil
}

// Delete removes an entry.
func (r *EntryRepository) Delete(ctx context.Context, tx usecase.Transaction, id string) error {
	n, err := txQueries(tx).DeleteLedgerEntry(ctx, id)
	return affected(n, err, domain.ErrEntryNotFound)
}

// List lists entries, most recent first.
func (r *EntryRepository) List(ctx context.Context, limit, offset int) ([]*domain.LedgerEntry, error) {
	rows, err := r.queries.ListLedgerEntries(ctx, generated.ListLedgerEntriesParams{
		Limit:  int32(limit),
		Offset: int32(offset),
	})
	if err != nil {
		return nil, err
	}
	return rowsToEntries(rows), nil
}

// ListBySession lists a session's entries in the order they were recorded.
func (r *EntryRepository) ListBySession(ctx context.Context, sessionID string) ([]*domain.LedgerEntry, error) {
	rows, err := r.queries.ListLedgerEntriesBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return rowsToEntries(rows), nil
}

func rowsToEntries(rows []generated.LedgerEntry) []*domain.LedgerEntry {
	entries := make([]*domain.LedgerEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, rowToEntry(row))
	}
	return entries
}

func rowToEntry(row generated.LedgerEntry) *domain.LedgerEntry {
	return &domain.LedgerEntry{
		ID:         row.ID,
		SessionID:  row.SessionID,
		Type:       domain.EntryType(row.Type),
		Amount:     numericToDecimal(row.Amount),
		Reason:     row.Reason,
		PaymentID:  textToStringPtr(row.PaymentID),
		OccurredAt: row.OccurredAt.Time,
	}
}
