package repositories

import (
	"context"

	"github.com/finbooks/ledger_backend/internal/core/domain"
)

// JournalReader defines read operations for journal entry data.
type JournalReader interface {
	// FindEntryByID retrieves a specific journal entry (without lines).
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// FindLinesByEntryID retrieves all lines of a journal entry.
	FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error)

	// ListEntriesByCompany retrieves a paginated list of entries using
	// token-based pagination. Status filters by lifecycle state when non-empty.
	ListEntriesByCompany(ctx context.Context, companyID string, limit int, nextToken *string, status domain.EntryStatus) ([]domain.JournalEntry, *string, error)
}

// JournalWriter defines write operations for journal entry data.
type JournalWriter interface {
	// NextEntryNumber allocates the next per-company entry sequence value.
	NextEntryNumber(ctx context.Context, companyID string) (int64, error)

	// SaveEntry persists a new draft entry header.
	SaveEntry(ctx context.Context, entry domain.JournalEntry) error

	// ReplaceLines swaps the full line set of a draft entry and updates its
	// totals in one transaction.
	ReplaceLines(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error

	// PostEntry atomically applies the per-account deltas to the financial
	// year's balance rows (locking them, lazily creating missing rows) and
	// flips the entry to POSTED. All-or-nothing: on any failure no balance
	// change is retained.
	PostEntry(ctx context.Context, entry domain.JournalEntry, fy domain.FinancialYear, deltas map[string]domain.BalanceDelta) error

	// ReverseEntry atomically persists the mirrored reversal entry with its
	// lines, posts it (applying deltas the same way PostEntry does), links
	// both entries, and marks the original REVERSED.
	ReverseEntry(ctx context.Context, original domain.JournalEntry, reversal domain.JournalEntry, lines []domain.JournalLine, fy domain.FinancialYear, deltas map[string]domain.BalanceDelta) error
}

// JournalRepositoryFacade combines all journal repository interfaces.
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}
