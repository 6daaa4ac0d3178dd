package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/bizledger/bizledger_app/internal/core/domain"
	portssvc "github.com/bizledger/bizledger_app/internal/core/ports/services"
	"github.com/bizledger/bizledger_app/internal/utils/dateutil"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidSpec    = errors.New("invalid series specification")
	ErrSeriesNotFound = errors.New("entry does not belong to a series")
	ErrUnknownScope   = errors.New("unknown edit scope")
)

// positionalSuffix matches the " (3/12)" style marker appended to installment
// descriptions; it is preserved per entry when an edit cascades.
var positionalSuffix = regexp.MustCompile(` \(\d+/\d+\)$`)

// scheduleService expands series specs into entry drafts and computes the
// update sets for scoped series edits. It performs no I/O; callers persist
// each returned batch atomically.
type scheduleService struct{}

// NewScheduleService creates a new ScheduleService.
func NewScheduleService() portssvc.ScheduleSvcFacade {
	return &scheduleService{}
}

// Ensure scheduleService implements the portssvc.ScheduleSvcFacade interface
var _ portssvc.ScheduleSvcFacade = (*scheduleService)(nil)

// GenerateSeries expands spec into an ordered list of ledger entry drafts
// sharing one freshly assigned series ID. Entry IDs are left empty; the
// persistence path assigns them. The whole batch is produced or none is.
func (s *scheduleService) GenerateSeries(ctx context.Context, organizationID string, spec domain.SeriesSpec, creatorUserID string) ([]domain.LedgerEntry, error) {
	if err := validateSeriesSpec(spec); err != nil {
		return nil, err
	}

	count := occurrenceCount(spec)
	perEntryAmount := spec.TotalAmount
	if spec.Cadence == domain.Installment {
		// Equal slices, rounded to cents; the rounding residue is bounded by
		// one cent per entry and tolerated by the callers.
		perEntryAmount = spec.TotalAmount.Div(decimal.NewFromInt(int64(count))).Round(2)
	}

	// Transaction dates advance with the due dates; when the spec leaves the
	// transaction date empty, each entry defaults to its own due date.
	txnBase := spec.TransactionDate
	if txnBase.IsZero() {
		txnBase = spec.AnchorDueDate
	}

	seriesID := uuid.NewString()
	now := time.Now()

	entries := make([]domain.LedgerEntry, count)
	for i := 0; i < count; i++ {
		description := spec.Description
		if spec.Cadence == domain.Installment {
			description = fmt.Sprintf("%s (%d/%d)", spec.Description, i+1, count)
		}

		entries[i] = domain.LedgerEntry{
			OrganizationID:  organizationID,
			Description:     description,
			Amount:          perEntryAmount,
			Nature:          spec.Nature,
			TransactionDate: dateutil.ShiftMonths(txnBase, i),
			DueDate:         dateutil.ShiftMonths(spec.AnchorDueDate, i),
			Status:          domain.Pending,
			AccountID:       spec.AccountID,
			CategoryID:      spec.CategoryID,
			CounterpartyID:  spec.CounterpartyID,
			VentureID:       spec.VentureID,
			PhaseID:         spec.PhaseID,
			CompanyID:       spec.CompanyID,
			SeriesID:        seriesID,
			Notes:           spec.Notes,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     creatorUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: creatorUserID,
			},
		}
	}

	// Only the first entry carries the recurrence metadata.
	if spec.Cadence == domain.Recurring {
		entries[0].RecurrenceFrequency = domain.Monthly
		entries[0].RecurrenceEndDate = spec.RecurrenceEndDate
	}

	return entries, nil
}

// PropagateEdit computes the update set for a series edit. The pivot (the
// edited entry with its explicit field values) is always first in the result;
// for ScopeFuture it is followed by every future entry shifted by the pivot's
// whole-month date deltas and re-anchored to the pivot's day-of-month.
func (s *scheduleService) PropagateEdit(ctx context.Context, edit domain.SeriesEdit, editorUserID string) ([]domain.LedgerEntry, error) {
	if edit.Edited.SeriesID == "" {
		return nil, fmt.Errorf("%w: entry %s has no series ID", ErrSeriesNotFound, edit.Edited.EntryID)
	}

	now := time.Now()
	pivot := edit.Edited
	pivot.LastUpdatedAt = now
	pivot.LastUpdatedBy = editorUserID

	switch edit.Scope {
	case domain.ScopeSingle:
		return []domain.LedgerEntry{pivot}, nil
	case domain.ScopeFuture:
		// fall through below
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownScope, edit.Scope)
	}

	// A single recomputed month offset, applied from each entry's own month,
	// keeps day-of-month drift from compounding across a long series: every
	// future date is re-anchored to the edited entry's day, not shifted from
	// its own previous day.
	dueOffset := dateutil.WholeMonthsBetween(edit.Original.DueDate, edit.Edited.DueDate)
	txnOffset := dateutil.WholeMonthsBetween(edit.Original.TransactionDate, edit.Edited.TransactionDate)
	dueDay := edit.Edited.DueDate.Day()
	txnDay := edit.Edited.TransactionDate.Day()
	prefix := positionalSuffix.ReplaceAllString(edit.Edited.Description, "")

	updates := make([]domain.LedgerEntry, 0, len(edit.FutureEntries)+1)
	updates = append(updates, pivot)

	for _, entry := range edit.FutureEntries {
		suffix := positionalSuffix.FindString(entry.Description)

		entry.Description = prefix + suffix
		entry.Amount = edit.Edited.Amount
		entry.Nature = edit.Edited.Nature
		entry.AccountID = edit.Edited.AccountID
		entry.CategoryID = edit.Edited.CategoryID
		entry.CounterpartyID = edit.Edited.CounterpartyID
		entry.VentureID = edit.Edited.VentureID
		entry.PhaseID = edit.Edited.PhaseID
		entry.CompanyID = edit.Edited.CompanyID
		entry.Notes = edit.Edited.Notes
		entry.DueDate = dateutil.ShiftMonthsAnchored(entry.DueDate, dueOffset, dueDay)
		entry.TransactionDate = dateutil.ShiftMonthsAnchored(entry.TransactionDate, txnOffset, txnDay)
		entry.LastUpdatedAt = now
		entry.LastUpdatedBy = editorUserID

		updates = append(updates, entry)
	}

	return updates, nil
}

func validateSeriesSpec(spec domain.SeriesSpec) error {
	if !spec.TotalAmount.IsPositive() {
		return fmt.Errorf("%w: total amount must be positive, got %s", ErrInvalidSpec, spec.TotalAmount)
	}
	if spec.AnchorDueDate.IsZero() {
		return fmt.Errorf("%w: anchor due date is required", ErrInvalidSpec)
	}
	switch spec.Cadence {
	case domain.Installment:
		if spec.InstallmentCount < 1 {
			return fmt.Errorf("%w: installment count must be at least 1, got %d", ErrInvalidSpec, spec.InstallmentCount)
		}
	case domain.Recurring:
		// No extra requirements; an absent end date means open-ended.
	default:
		return fmt.Errorf("%w: unknown cadence %q", ErrInvalidSpec, spec.Cadence)
	}
	return nil
}

// occurrenceCount resolves how many entries a valid spec expands to.
func occurrenceCount(spec domain.SeriesSpec) int {
	if spec.Cadence == domain.Installment {
		return spec.InstallmentCount
	}
	if spec.RecurrenceEndDate != nil {
		// Inclusive month count between anchor and end, never below one.
		count := dateutil.WholeMonthsBetween(spec.AnchorDueDate, *spec.RecurrenceEndDate) + 1
		if count < 1 {
			count = 1
		}
		return count
	}
	if spec.MaxOccurrences > 0 {
		return spec.MaxOccurrences
	}
	return domain.DefaultOpenEndedOccurrences
}
