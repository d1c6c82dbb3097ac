package services

import (
	"context"
	"time"

	"github.com/finbooks/ledger_backend/internal/core/domain"
	"github.com/finbooks/ledger_backend/internal/dto"
)

// JournalSvcFacade defines the journal ledger operations. This is the surface
// collaborator modules (sales, purchase, POS, banking, compliance) call to
// record money movement.
type JournalSvcFacade interface {
	CreateEntry(ctx context.Context, companyID string, req dto.CreateEntryRequest, creatorID string) (*domain.JournalEntry, error)
	AddLines(ctx context.Context, companyID, entryID string, req dto.AddLinesRequest, updaterID string) (*domain.JournalEntry, error)
	SubmitJournal(ctx context.Context, companyID string, req dto.SubmitJournalRequest, creatorID string) (*domain.JournalEntry, error)
	Post(ctx context.Context, companyID, entryID string, posterID string) (*domain.JournalEntry, error)
	Reverse(ctx context.Context, companyID, entryID string, date time.Time, reason string, reverserID string) (*domain.JournalEntry, error)
	GetEntry(ctx context.Context, companyID, entryID string) (*domain.JournalEntry, error)
	ListEntries(ctx context.Context, companyID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)
}
