package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/bizledger/bizledger_app/internal/core/domain"
	portsrepo "github.com/bizledger/bizledger_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// reportingRepository implements the ReportingRepositoryFacade interface
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository
func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepositoryFacade {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

var _ portsrepo.ReportingRepositoryFacade = (*reportingRepository)(nil)

// GetCashflowSummary aggregates an organization's entries over [from, to],
// split by nature and settlement status, with per-category breakdowns.
// Transfer legs are excluded: money moving between own accounts is not
// income or expense.
func (r *reportingRepository) GetCashflowSummary(ctx context.Context, organizationID string, from, to time.Time) (*domain.CashflowSummary, error) {
	totalsQuery := `
		SELECT
			COALESCE(SUM(CASE WHEN nature = 'INCOME' AND status = 'SETTLED' THEN amount ELSE 0 END), 0) AS settled_income,
			COALESCE(SUM(CASE WHEN nature = 'EXPENSE' AND status = 'SETTLED' THEN amount ELSE 0 END), 0) AS settled_expense,
			COALESCE(SUM(CASE WHEN nature = 'INCOME' AND status = 'PENDING' THEN amount ELSE 0 END), 0) AS pending_income,
			COALESCE(SUM(CASE WHEN nature = 'EXPENSE' AND status = 'PENDING' THEN amount ELSE 0 END), 0) AS pending_expense
		FROM ledger_entries
		WHERE organization_id = $1
			AND due_date BETWEEN $2 AND $3
			AND transfer_id IS NULL;
	`

	summary := &domain.CashflowSummary{From: from, To: to}
	err := r.Pool.QueryRow(ctx, totalsQuery, organizationID, from, to).Scan(
		&summary.SettledIncome,
		&summary.SettledExpense,
		&summary.PendingIncome,
		&summary.PendingExpense,
	)
	if err != nil {
		return nil, fmt.Errorf("error querying cashflow totals: %w", err)
	}

	summary.NetSettled = summary.SettledIncome.Sub(summary.SettledExpense)
	summary.NetProjected = summary.SettledIncome.Add(summary.PendingIncome).
		Sub(summary.SettledExpense.Add(summary.PendingExpense))

	categoryQuery := `
		SELECT
			e.nature,
			COALESCE(e.category_id, '') AS category_id,
			COALESCE(c.name, 'Uncategorized') AS category_name,
			SUM(e.amount) AS total
		FROM ledger_entries e
		LEFT JOIN categories c ON e.category_id = c.category_id
		WHERE e.organization_id = $1
			AND e.due_date BETWEEN $2 AND $3
			AND e.transfer_id IS NULL
		GROUP BY e.nature, e.category_id, c.name
		ORDER BY total DESC;
	`
	rows, err := r.Pool.Query(ctx, categoryQuery, organizationID, from, to)
	if err != nil {
		return nil, fmt.Errorf("error querying cashflow category breakdown: %w", err)
	}
	defer rows.Close()

	summary.ExpenseByCat = []domain.CategoryAmount{}
	summary.IncomeByCat = []domain.CategoryAmount{}
	for rows.Next() {
		var nature string
		var row domain.CategoryAmount
		var total decimal.Decimal
		if err := rows.Scan(&nature, &row.CategoryID, &row.CategoryName, &total); err != nil {
			return nil, fmt.Errorf("error scanning cashflow category row: %w", err)
		}
		row.Amount = total
		switch domain.EntryNature(nature) {
		case domain.Expense:
			summary.ExpenseByCat = append(summary.ExpenseByCat, row)
		case domain.Income:
			summary.IncomeByCat = append(summary.IncomeByCat, row)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cashflow category rows: %w", err)
	}

	return summary, nil
}
