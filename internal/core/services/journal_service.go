package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/finbooks/ledger_backend/internal/apperrors"
	"github.com/finbooks/ledger_backend/internal/core/domain"
	portsrepo "github.com/finbooks/ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/finbooks/ledger_backend/internal/core/ports/services"
	"github.com/finbooks/ledger_backend/internal/dto"
	"github.com/finbooks/ledger_backend/internal/middleware"
	"github.com/finbooks/ledger_backend/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

var (
	ErrEntryUnbalanced  = errors.New("entry debits and credits do not balance")
	ErrEntryNoLines     = errors.New("entry has no lines")
	ErrEntryMinAccounts = errors.New("entry must affect at least two different accounts")
	ErrEntryNotDraft    = errors.New("entry is not in draft state")
	ErrEntryNotPosted   = errors.New("entry is not posted")
	ErrAlreadyReversed  = errors.New("entry has already been reversed")
	ErrIsReversalEntry  = errors.New("cannot reverse a reversal entry")
	ErrPeriodClosed     = errors.New("financial year is closed for posting")
	ErrNoPeriodForDate  = errors.New("no financial year covers the entry date")
	ErrAccountNotFound  = errors.New("account not found")
	ErrNarrationMissing = errors.New("entry narration is required")
)

// journalService owns the journal entry lifecycle: draft creation, line
// mutation, posting and reversal.
type journalService struct {
	journalRepo portsrepo.JournalRepositoryFacade
	accountSvc  portssvc.AccountSvcFacade
	fyRepo      portsrepo.FinancialYearReader
}

// NewJournalService creates a new journal ledger service.
func NewJournalService(journalRepo portsrepo.JournalRepositoryFacade, accountSvc portssvc.AccountSvcFacade, fyRepo portsrepo.FinancialYearReader) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo: journalRepo,
		accountSvc:  accountSvc,
		fyRepo:      fyRepo,
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// CreateEntry creates a new draft entry with zero lines and allocates its
// per-company entry number.
func (s *journalService) CreateEntry(ctx context.Context, companyID string, req dto.CreateEntryRequest, creatorID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Narration == "" {
		return nil, fmt.Errorf("%w (%w)", ErrNarrationMissing, apperrors.ErrValidation)
	}

	seq, err := s.journalRepo.NextEntryNumber(ctx, companyID)
	if err != nil {
		logger.Error("Failed to allocate entry number", slog.String("error", err.Error()), slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to allocate entry number: %w", err)
	}

	now := time.Now().UTC()
	entry := domain.JournalEntry{
		EntryID:       uuid.NewString(),
		CompanyID:     companyID,
		EntryNumber:   fmt.Sprintf("JE-%06d", seq),
		EntryDate:     req.EntryDate,
		Status:        domain.Draft,
		ReferenceType: req.ReferenceType,
		ReferenceID:   req.ReferenceID,
		Narration:     req.Narration,
		TotalDebit:    decimal.Zero,
		TotalCredit:   decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorID,
		},
	}

	if err := s.journalRepo.SaveEntry(ctx, entry); err != nil {
		logger.Error("Failed to save draft entry", slog.String("error", err.Error()), slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to save entry: %w", err)
	}

	logger.Info("Draft entry created", slog.String("entry_id", entry.EntryID), slog.String("entry_number", entry.EntryNumber))
	return &entry, nil
}

// buildLines validates line requests against the chart of accounts and
// converts them to domain lines. Malformed lines (both or neither side set,
// negative amounts) are rejected; accounts must exist, belong to the
// company, and be active.
func (s *journalService) buildLines(ctx context.Context, companyID, entryID string, reqs []dto.JournalLineRequest, actor string, now time.Time) ([]domain.JournalLine, error) {
	lines := make([]domain.JournalLine, len(reqs))
	accountIDs := make([]string, 0, len(reqs))
	for i, lr := range reqs {
		line := domain.JournalLine{
			LineID:       uuid.NewString(),
			EntryID:      entryID,
			AccountID:    lr.AccountID,
			DebitAmount:  lr.DebitAmount,
			CreditAmount: lr.CreditAmount,
			Description:  lr.Description,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     actor,
				LastUpdatedAt: now,
				LastUpdatedBy: actor,
			},
		}
		if err := accounting.ValidateLine(line); err != nil {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		lines[i] = line
		accountIDs = append(accountIDs, lr.AccountID)
	}

	uniqueIDs := uniqueStrings(accountIDs)
	accountsMap, err := s.accountSvc.GetAccountsByIDs(ctx, companyID, uniqueIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}
	for _, id := range uniqueIDs {
		acc, found := accountsMap[id]
		if !found {
			return nil, fmt.Errorf("%w: %s (%w)", ErrAccountNotFound, id, apperrors.ErrNotFound)
		}
		if acc.CompanyID != companyID {
			return nil, fmt.Errorf("%w: %s (%w)", ErrAccountNotFound, id, apperrors.ErrNotFound)
		}
		if !acc.IsActive {
			return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, id)
		}
	}

	return lines, nil
}

// AddLines replaces the line set of a draft entry and recomputes its totals.
// Balance is not required here; the debit=credit invariant is enforced at
// post time.
func (s *journalService) AddLines(ctx context.Context, companyID, entryID string, req dto.AddLinesRequest, updaterID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.getCompanyEntry(ctx, companyID, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Status != domain.Draft {
		return nil, fmt.Errorf("%w: status is %s (%w)", ErrEntryNotDraft, entry.Status, apperrors.ErrConflict)
	}

	now := time.Now().UTC()
	lines, err := s.buildLines(ctx, companyID, entryID, req.Lines, updaterID, now)
	if err != nil {
		return nil, err
	}

	entry.TotalDebit, entry.TotalCredit = accounting.LineTotals(lines)
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = updaterID

	if err := s.journalRepo.ReplaceLines(ctx, *entry, lines); err != nil {
		logger.Error("Failed to replace entry lines", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to save entry lines: %w", err)
	}

	entry.Lines = lines
	logger.Info("Entry lines updated", slog.String("entry_id", entryID), slog.Int("line_count", len(lines)))
	return entry, nil
}

// SubmitJournal is the collaborator contract: create a draft entry with its
// lines in one call. The entry stays in DRAFT until posted.
func (s *journalService) SubmitJournal(ctx context.Context, companyID string, req dto.SubmitJournalRequest, creatorID string) (*domain.JournalEntry, error) {
	accountSet := make(map[string]struct{})
	for _, l := range req.Lines {
		accountSet[l.AccountID] = struct{}{}
	}
	if len(accountSet) < 2 {
		return nil, fmt.Errorf("%w (%w)", ErrEntryMinAccounts, apperrors.ErrValidation)
	}

	entry, err := s.CreateEntry(ctx, companyID, dto.CreateEntryRequest{
		EntryDate:     req.EntryDate,
		Narration:     req.Narration,
		ReferenceType: req.ReferenceType,
		ReferenceID:   req.ReferenceID,
	}, creatorID)
	if err != nil {
		return nil, err
	}

	return s.AddLines(ctx, companyID, entry.EntryID, dto.AddLinesRequest{Lines: req.Lines}, creatorID)
}

// Post validates and applies a draft entry to the ledger. The whole posting
// is all-or-nothing: if any balance update fails, no change is retained.
func (s *journalService) Post(ctx context.Context, companyID, entryID string, posterID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.getCompanyEntry(ctx, companyID, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Status != domain.Draft {
		return nil, fmt.Errorf("%w: status is %s (%w)", ErrEntryNotDraft, entry.Status, apperrors.ErrConflict)
	}

	lines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load entry lines: %w", err)
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w (%w)", ErrEntryNoLines, apperrors.ErrValidation)
	}

	totalDebit, totalCredit := accounting.LineTotals(lines)
	if !totalDebit.Equal(totalCredit) {
		return nil, fmt.Errorf("%w: unbalanced, debits %s vs credits %s (%w)",
			ErrEntryUnbalanced, totalDebit.String(), totalCredit.String(), apperrors.ErrValidation)
	}

	fy, err := s.resolveOpenPeriod(ctx, companyID, entry.EntryDate)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	entry.Status = domain.Posted
	entry.FinancialYearID = fy.FinancialYearID
	entry.TotalDebit = totalDebit
	entry.TotalCredit = totalCredit
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = posterID

	deltas := lineDeltas(lines)
	if err := s.journalRepo.PostEntry(ctx, *entry, *fy, deltas); err != nil {
		logger.Error("Failed to post entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to post entry: %w", err)
	}

	logger.Info("Entry posted", slog.String("entry_id", entryID), slog.String("financial_year_id", fy.FinancialYearID), slog.String("total", totalDebit.String()))
	entry.Lines = lines
	return entry, nil
}

// Reverse creates a mirrored entry (debit/credit swapped per line), posts it
// immediately, links both entries and marks the original REVERSED. The
// original stays part of the posted ledger.
func (s *journalService) Reverse(ctx context.Context, companyID, entryID string, date time.Time, reason string, reverserID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	original, err := s.getCompanyEntry(ctx, companyID, entryID)
	if err != nil {
		return nil, err
	}
	if original.Status == domain.Reversed || original.ReversedByID != nil {
		return nil, fmt.Errorf("%w (%w)", ErrAlreadyReversed, apperrors.ErrConflict)
	}
	if original.Status != domain.Posted {
		return nil, fmt.Errorf("%w: status is %s (%w)", ErrEntryNotPosted, original.Status, apperrors.ErrConflict)
	}
	if original.ReversalOfID != nil {
		return nil, fmt.Errorf("%w (%w)", ErrIsReversalEntry, apperrors.ErrConflict)
	}

	originalLines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load entry lines: %w", err)
	}

	fy, err := s.resolveOpenPeriod(ctx, companyID, date)
	if err != nil {
		return nil, err
	}

	seq, err := s.journalRepo.NextEntryNumber(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate entry number: %w", err)
	}

	now := time.Now().UTC()
	reversal := domain.JournalEntry{
		EntryID:         uuid.NewString(),
		CompanyID:       companyID,
		EntryNumber:     fmt.Sprintf("JE-%06d", seq),
		EntryDate:       date,
		Status:          domain.Posted,
		ReferenceType:   original.ReferenceType,
		ReferenceID:     original.ReferenceID,
		Narration:       fmt.Sprintf("Reversal of %s: %s", original.EntryNumber, original.Narration),
		ReversalOfID:    &original.EntryID,
		ReversalReason:  reason,
		FinancialYearID: fy.FinancialYearID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     reverserID,
			LastUpdatedAt: now,
			LastUpdatedBy: reverserID,
		},
	}

	reversalLines := make([]domain.JournalLine, len(originalLines))
	for i, ol := range originalLines {
		reversalLines[i] = domain.JournalLine{
			LineID:       uuid.NewString(),
			EntryID:      reversal.EntryID,
			AccountID:    ol.AccountID,
			DebitAmount:  ol.CreditAmount, // Swapped
			CreditAmount: ol.DebitAmount,
			Description:  ol.Description,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     reverserID,
				LastUpdatedAt: now,
				LastUpdatedBy: reverserID,
			},
		}
	}
	reversal.TotalDebit, reversal.TotalCredit = accounting.LineTotals(reversalLines)

	original.Status = domain.Reversed
	original.ReversedByID = &reversal.EntryID
	original.ReversalReason = reason
	original.LastUpdatedAt = now
	original.LastUpdatedBy = reverserID

	deltas := lineDeltas(reversalLines)
	if err := s.journalRepo.ReverseEntry(ctx, *original, reversal, reversalLines, *fy, deltas); err != nil {
		logger.Error("Failed to reverse entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to reverse entry: %w", err)
	}

	logger.Info("Entry reversed", slog.String("entry_id", entryID), slog.String("reversal_entry_id", reversal.EntryID))
	reversal.Lines = reversalLines
	return &reversal, nil
}

// GetEntry retrieves an entry with its lines.
func (s *journalService) GetEntry(ctx context.Context, companyID, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.getCompanyEntry(ctx, companyID, entryID)
	if err != nil {
		return nil, err
	}

	lines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load entry lines: %w", err)
	}
	entry.Lines = lines
	return entry, nil
}

// ListEntries retrieves a paginated list of entries for a company.
func (s *journalService) ListEntries(ctx context.Context, companyID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	entries, nextToken, err := s.journalRepo.ListEntriesByCompany(ctx, companyID, limit, params.NextToken, domain.EntryStatus(params.Status))
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}

	responses := make([]dto.JournalEntryResponse, len(entries))
	for i := range entries {
		responses[i] = dto.ToJournalEntryResponse(&entries[i])
	}
	return &dto.ListEntriesResponse{Entries: responses, NextToken: nextToken}, nil
}

// getCompanyEntry fetches an entry and verifies it belongs to the company.
// A foreign entry reads as not found to obscure existence.
func (s *journalService) getCompanyEntry(ctx context.Context, companyID, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}
	if entry.CompanyID != companyID {
		return nil, fmt.Errorf("entry %s: %w", entryID, apperrors.ErrNotFound)
	}
	return entry, nil
}

// resolveOpenPeriod finds the financial year covering the date and rejects
// closed periods.
func (s *journalService) resolveOpenPeriod(ctx context.Context, companyID string, date time.Time) (*domain.FinancialYear, error) {
	fy, err := s.fyRepo.FindFinancialYearByDate(ctx, companyID, date)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s (%w)", ErrNoPeriodForDate, date.Format("2006-01-02"), apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to resolve financial year: %w", err)
	}
	if fy.IsClosed {
		return nil, fmt.Errorf("%w: %s (%w)", ErrPeriodClosed, fy.YearName, apperrors.ErrConflict)
	}
	return fy, nil
}

// lineDeltas folds lines into per-account debit/credit deltas.
func lineDeltas(lines []domain.JournalLine) map[string]domain.BalanceDelta {
	deltas := make(map[string]domain.BalanceDelta)
	for _, line := range lines {
		deltas[line.AccountID] = deltas[line.AccountID].Add(domain.BalanceDelta{
			Debit:  line.DebitAmount,
			Credit: line.CreditAmount,
		})
	}
	return deltas
}

// uniqueStrings returns a slice containing only the unique strings from the input.
func uniqueStrings(input []string) []string {
	seen := make(map[string]struct{}, len(input))
	result := make([]string, 0, len(input))
	for _, str := range input {
		if _, ok := seen[str]; !ok {
			seen[str] = struct{}{}
			result = append(result, str)
		}
	}
	return result
}
