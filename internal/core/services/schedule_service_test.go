package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/bizledger/bizledger_app/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func timePtr(t time.Time) *time.Time { return &t }

func installmentSpec(total float64, count int, anchor time.Time) domain.SeriesSpec {
	return domain.SeriesSpec{
		Cadence:          domain.Installment,
		TotalAmount:      decimal.NewFromFloat(total),
		InstallmentCount: count,
		AnchorDueDate:    anchor,
		TransactionDate:  anchor,
		Description:      "Office rent",
		Nature:           domain.Expense,
		AccountID:        "acc-1",
		CategoryID:       "cat-1",
	}
}

func TestGenerateSeries_Installment(t *testing.T) {
	svc := services.NewScheduleService()
	anchor := day(2024, time.January, 31)

	entries, err := svc.GenerateSeries(context.Background(), "org-1", installmentSpec(1000, 4, anchor), "user-1")
	require.NoError(t, err)
	require.Len(t, entries, 4)

	// All entries share one series ID and start pending.
	seriesID := entries[0].SeriesID
	assert.NotEmpty(t, seriesID)
	for i, e := range entries {
		assert.Equal(t, seriesID, e.SeriesID, "entry %d series ID", i)
		assert.Equal(t, domain.Pending, e.Status)
		assert.Equal(t, "org-1", e.OrganizationID)
		assert.Equal(t, "user-1", e.CreatedBy)
		assert.Empty(t, e.EntryID, "drafts carry no entry ID")
		assert.True(t, decimal.NewFromInt(250).Equal(e.Amount))
	}

	// Positional suffix disambiguates the series to a human reader.
	assert.Equal(t, "Office rent (1/4)", entries[0].Description)
	assert.Equal(t, "Office rent (4/4)", entries[3].Description)

	// Day-of-month clamps instead of rolling into the next month.
	assert.True(t, day(2024, time.January, 31).Equal(entries[0].DueDate))
	assert.True(t, day(2024, time.February, 29).Equal(entries[1].DueDate))
	assert.True(t, day(2024, time.March, 31).Equal(entries[2].DueDate))
	assert.True(t, day(2024, time.April, 30).Equal(entries[3].DueDate))
}

func TestGenerateSeries_InstallmentSumInvariant(t *testing.T) {
	svc := services.NewScheduleService()
	anchor := day(2024, time.March, 5)

	totals := []float64{100, 999.99, 0.01, 1234.56, 7.77}
	counts := []int{1, 2, 3, 7, 12, 60}

	for _, total := range totals {
		for _, count := range counts {
			t.Run(fmt.Sprintf("total=%v count=%d", total, count), func(t *testing.T) {
				entries, err := svc.GenerateSeries(context.Background(), "org-1", installmentSpec(total, count, anchor), "user-1")
				require.NoError(t, err)
				require.Len(t, entries, count)

				sum := decimal.Zero
				for _, e := range entries {
					sum = sum.Add(e.Amount)
				}
				// Rounding residue is bounded by one cent per entry.
				residue := sum.Sub(decimal.NewFromFloat(total)).Abs()
				maxResidue := decimal.NewFromFloat(0.01).Mul(decimal.NewFromInt(int64(count)))
				assert.True(t, residue.LessThanOrEqual(maxResidue),
					"residue %s exceeds %s", residue, maxResidue)
			})
		}
	}
}

func TestGenerateSeries_SeriesIdentityDistinctAcrossCalls(t *testing.T) {
	svc := services.NewScheduleService()
	spec := installmentSpec(300, 3, day(2024, time.June, 10))

	first, err := svc.GenerateSeries(context.Background(), "org-1", spec, "user-1")
	require.NoError(t, err)
	second, err := svc.GenerateSeries(context.Background(), "org-1", spec, "user-1")
	require.NoError(t, err)

	assert.NotEqual(t, first[0].SeriesID, second[0].SeriesID)
}

func TestGenerateSeries_RecurringWithEndDate(t *testing.T) {
	svc := services.NewScheduleService()
	anchor := day(2024, time.January, 15)

	spec := domain.SeriesSpec{
		Cadence:           domain.Recurring,
		TotalAmount:       decimal.NewFromFloat(89.9),
		AnchorDueDate:     anchor,
		RecurrenceEndDate: timePtr(day(2024, time.June, 15)),
		Description:       "Software subscription",
		Nature:            domain.Expense,
		AccountID:         "acc-1",
	}

	entries, err := svc.GenerateSeries(context.Background(), "org-1", spec, "user-1")
	require.NoError(t, err)
	require.Len(t, entries, 6, "inclusive month count between anchor and end")

	for _, e := range entries {
		// Recurring entries carry the flat amount, not a division of it.
		assert.True(t, decimal.NewFromFloat(89.9).Equal(e.Amount))
		// No positional suffix for recurring entries.
		assert.Equal(t, "Software subscription", e.Description)
	}

	// Only the first entry carries the recurrence metadata.
	assert.Equal(t, domain.Monthly, entries[0].RecurrenceFrequency)
	require.NotNil(t, entries[0].RecurrenceEndDate)
	for _, e := range entries[1:] {
		assert.Empty(t, e.RecurrenceFrequency)
		assert.Nil(t, e.RecurrenceEndDate)
	}
}

func TestGenerateSeries_RecurringEndBeforeAnchorYieldsOne(t *testing.T) {
	svc := services.NewScheduleService()
	anchor := day(2024, time.May, 1)

	spec := domain.SeriesSpec{
		Cadence:           domain.Recurring,
		TotalAmount:       decimal.NewFromInt(50),
		AnchorDueDate:     anchor,
		RecurrenceEndDate: timePtr(day(2024, time.February, 1)),
		Description:       "Backdated plan",
		Nature:            domain.Income,
		AccountID:         "acc-1",
	}

	entries, err := svc.GenerateSeries(context.Background(), "org-1", spec, "user-1")
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestGenerateSeries_RecurringOpenEndedCap(t *testing.T) {
	svc := services.NewScheduleService()

	spec := domain.SeriesSpec{
		Cadence:       domain.Recurring,
		TotalAmount:   decimal.NewFromInt(100),
		AnchorDueDate: day(2024, time.January, 1),
		Description:   "Open-ended retainer",
		Nature:        domain.Income,
		AccountID:     "acc-1",
	}

	entries, err := svc.GenerateSeries(context.Background(), "org-1", spec, "user-1")
	require.NoError(t, err)
	assert.Len(t, entries, domain.DefaultOpenEndedOccurrences)

	// The cap is overridable per spec.
	spec.MaxOccurrences = 12
	entries, err = svc.GenerateSeries(context.Background(), "org-1", spec, "user-1")
	require.NoError(t, err)
	assert.Len(t, entries, 12)
}

func TestGenerateSeries_InvalidSpecs(t *testing.T) {
	svc := services.NewScheduleService()
	anchor := day(2024, time.January, 5)

	tests := []struct {
		name string
		spec domain.SeriesSpec
	}{
		{
			name: "zero total",
			spec: installmentSpec(0, 3, anchor),
		},
		{
			name: "negative total",
			spec: installmentSpec(-10, 3, anchor),
		},
		{
			name: "installment count below one",
			spec: installmentSpec(100, 0, anchor),
		},
		{
			name: "missing anchor date",
			spec: installmentSpec(100, 3, time.Time{}),
		},
		{
			name: "unknown cadence",
			spec: domain.SeriesSpec{
				Cadence:       domain.Cadence("WEEKLY"),
				TotalAmount:   decimal.NewFromInt(100),
				AnchorDueDate: anchor,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := svc.GenerateSeries(context.Background(), "org-1", tt.spec, "user-1")
			assert.ErrorIs(t, err, services.ErrInvalidSpec)
			assert.Nil(t, entries, "no partial batch on error")
		})
	}
}

// twelveInstallmentsOnThe5th builds the series used by the propagation
// scenarios: 12 monthly installments anchored on 2024-01-05.
func twelveInstallmentsOnThe5th(t *testing.T) []domain.LedgerEntry {
	t.Helper()
	svc := services.NewScheduleService()
	entries, err := svc.GenerateSeries(context.Background(), "org-1", installmentSpec(1200, 12, day(2024, time.January, 5)), "user-1")
	require.NoError(t, err)
	for i := range entries {
		entries[i].EntryID = fmt.Sprintf("entry-%d", i+1)
	}
	return entries
}

func TestPropagateEdit_ScopeFutureAnchorsOnEditedDay(t *testing.T) {
	svc := services.NewScheduleService()
	entries := twelveInstallmentsOnThe5th(t)

	// Entry #3 (due 2024-03-05) edited: amount 200, due moved to the 10th.
	original := entries[2]
	edited := original
	edited.Amount = decimal.NewFromInt(200)
	edited.DueDate = day(2024, time.March, 10)
	edited.TransactionDate = day(2024, time.March, 10)

	updates, err := svc.PropagateEdit(context.Background(), domain.SeriesEdit{
		Original:      original,
		Edited:        edited,
		Scope:         domain.ScopeFuture,
		FutureEntries: entries[3:],
	}, "user-1")
	require.NoError(t, err)
	require.Len(t, updates, 10, "pivot plus entries 4..12")

	// The pivot keeps its own explicit values.
	pivot := updates[0]
	assert.Equal(t, "entry-3", pivot.EntryID)
	assert.True(t, day(2024, time.March, 10).Equal(pivot.DueDate))
	assert.True(t, decimal.NewFromInt(200).Equal(pivot.Amount))

	// Entries 4..12: amount copied, due day re-anchored to the 10th, each
	// entry's month unchanged relative to its original month.
	for i, update := range updates[1:] {
		originalFuture := entries[3+i]
		assert.Equal(t, originalFuture.EntryID, update.EntryID)
		assert.True(t, decimal.NewFromInt(200).Equal(update.Amount), "entry %s amount", update.EntryID)
		assert.Equal(t, 10, update.DueDate.Day(), "entry %s due day", update.EntryID)
		assert.Equal(t, originalFuture.DueDate.Month(), update.DueDate.Month(), "entry %s month", update.EntryID)
		assert.Equal(t, originalFuture.DueDate.Year(), update.DueDate.Year(), "entry %s year", update.EntryID)
	}

	// Entry 12 is still exactly 9 months after entry 4.
	entry4 := updates[1]
	entry12 := updates[9]
	assert.True(t, entry4.DueDate.AddDate(0, 9, 0).Equal(entry12.DueDate))
}

func TestPropagateEdit_ScopeFuturePreservesPositionalSuffix(t *testing.T) {
	svc := services.NewScheduleService()
	entries := twelveInstallmentsOnThe5th(t)

	original := entries[2]
	edited := original
	edited.Description = "Office rent renegotiated (3/12)"

	updates, err := svc.PropagateEdit(context.Background(), domain.SeriesEdit{
		Original:      original,
		Edited:        edited,
		Scope:         domain.ScopeFuture,
		FutureEntries: entries[3:],
	}, "user-1")
	require.NoError(t, err)

	assert.Equal(t, "Office rent renegotiated (3/12)", updates[0].Description)
	assert.Equal(t, "Office rent renegotiated (4/12)", updates[1].Description)
	assert.Equal(t, "Office rent renegotiated (12/12)", updates[9].Description)
}

func TestPropagateEdit_ScopeSingleTouchesOnlyThePivot(t *testing.T) {
	svc := services.NewScheduleService()
	entries := twelveInstallmentsOnThe5th(t)

	original := entries[2]
	edited := original
	edited.Amount = decimal.NewFromInt(200)
	edited.DueDate = day(2024, time.March, 10)

	updates, err := svc.PropagateEdit(context.Background(), domain.SeriesEdit{
		Original:      original,
		Edited:        edited,
		Scope:         domain.ScopeSingle,
		FutureEntries: entries[3:],
	}, "user-1")
	require.NoError(t, err)

	require.Len(t, updates, 1)
	assert.Equal(t, "entry-3", updates[0].EntryID)
	assert.True(t, decimal.NewFromInt(200).Equal(updates[0].Amount))
}

func TestPropagateEdit_ScopeFutureEmptyTailIsANoOp(t *testing.T) {
	svc := services.NewScheduleService()
	entries := twelveInstallmentsOnThe5th(t)

	// Editing the last entry of the series: nothing after it.
	original := entries[11]
	edited := original
	edited.Amount = decimal.NewFromInt(500)

	updates, err := svc.PropagateEdit(context.Background(), domain.SeriesEdit{
		Original: original,
		Edited:   edited,
		Scope:    domain.ScopeFuture,
	}, "user-1")
	require.NoError(t, err)

	require.Len(t, updates, 1, "only the pivot changes")
	assert.Equal(t, "entry-12", updates[0].EntryID)
}

func TestPropagateEdit_RequiresSeriesMembership(t *testing.T) {
	svc := services.NewScheduleService()

	loneEntry := domain.LedgerEntry{
		EntryID: "entry-x",
		Amount:  decimal.NewFromInt(100),
		DueDate: day(2024, time.April, 5),
	}

	_, err := svc.PropagateEdit(context.Background(), domain.SeriesEdit{
		Original: loneEntry,
		Edited:   loneEntry,
		Scope:    domain.ScopeFuture,
	}, "user-1")
	assert.ErrorIs(t, err, services.ErrSeriesNotFound)
}

func TestPropagateEdit_RejectsUnknownScope(t *testing.T) {
	svc := services.NewScheduleService()
	entries := twelveInstallmentsOnThe5th(t)

	_, err := svc.PropagateEdit(context.Background(), domain.SeriesEdit{
		Original: entries[0],
		Edited:   entries[0],
		Scope:    domain.EditScope("EVERYTHING"),
	}, "user-1")
	assert.ErrorIs(t, err, services.ErrUnknownScope)
}

func TestPropagateEdit_DueDateClampAcrossShortMonths(t *testing.T) {
	svc := services.NewScheduleService()

	// Series anchored on the 15th; the edit moves the due day to the 31st.
	gen, err := services.NewScheduleService().GenerateSeries(context.Background(), "org-1",
		installmentSpec(600, 6, day(2024, time.January, 15)), "user-1")
	require.NoError(t, err)
	for i := range gen {
		gen[i].EntryID = fmt.Sprintf("entry-%d", i+1)
	}

	original := gen[0]
	edited := original
	edited.DueDate = day(2024, time.January, 31)
	edited.TransactionDate = day(2024, time.January, 31)

	updates, err := svc.PropagateEdit(context.Background(), domain.SeriesEdit{
		Original:      original,
		Edited:        edited,
		Scope:         domain.ScopeFuture,
		FutureEntries: gen[1:],
	}, "user-1")
	require.NoError(t, err)
	require.Len(t, updates, 6)

	// February clamps to the 29th (leap year); longer months hit the 31st or
	// their own last day, never the following month.
	assert.True(t, day(2024, time.February, 29).Equal(updates[1].DueDate))
	assert.True(t, day(2024, time.March, 31).Equal(updates[2].DueDate))
	assert.True(t, day(2024, time.April, 30).Equal(updates[3].DueDate))
}
