package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CategoryAmount represents a category with its accumulated amount for
// cashflow reports.
type CategoryAmount struct {
	CategoryID   string          `json:"categoryID"`
	CategoryName string          `json:"categoryName"`
	Amount       decimal.Decimal `json:"amount"`
}

// CashflowSummary aggregates an organization's entries over a period,
// split by nature and settlement status.
type CashflowSummary struct {
	From            time.Time        `json:"from"`
	To              time.Time        `json:"to"`
	SettledIncome   decimal.Decimal  `json:"settledIncome"`
	SettledExpense  decimal.Decimal  `json:"settledExpense"`
	PendingIncome   decimal.Decimal  `json:"pendingIncome"`
	PendingExpense  decimal.Decimal  `json:"pendingExpense"`
	NetSettled      decimal.Decimal  `json:"netSettled"`
	NetProjected    decimal.Decimal  `json:"netProjected"`
	ExpenseByCat    []CategoryAmount `json:"expenseByCategory"`
	IncomeByCat     []CategoryAmount `json:"incomeByCategory"`
}

// DueEntry is a row of the due/overdue digest produced by the due scanner.
type DueEntry struct {
	EntryID        string          `json:"entryID"`
	OrganizationID string          `json:"organizationID"`
	Description    string          `json:"description"`
	Amount         decimal.Decimal `json:"amount"`
	Nature         EntryNature     `json:"nature"`
	DueDate        time.Time       `json:"dueDate"`
	Overdue        bool            `json:"overdue"`
}
