package dto

import (
	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CashflowSummaryParams defines query parameters for the cashflow summary.
type CashflowSummaryParams struct {
	From string `form:"from" binding:"required"` // 2006-01-02
	To   string `form:"to" binding:"required"`   // 2006-01-02
}

// CategoryAmountResponse represents a category with its accumulated amount.
type CategoryAmountResponse struct {
	CategoryID   string          `json:"categoryID"`
	CategoryName string          `json:"categoryName"`
	Amount       decimal.Decimal `json:"amount"`
}

// CashflowSummaryResponse represents the cashflow summary report response.
type CashflowSummaryResponse struct {
	From              string                   `json:"from"`
	To                string                   `json:"to"`
	SettledIncome     decimal.Decimal          `json:"settledIncome"`
	SettledExpense    decimal.Decimal          `json:"settledExpense"`
	PendingIncome     decimal.Decimal          `json:"pendingIncome"`
	PendingExpense    decimal.Decimal          `json:"pendingExpense"`
	NetSettled        decimal.Decimal          `json:"netSettled"`
	NetProjected      decimal.Decimal          `json:"netProjected"`
	ExpenseByCategory []CategoryAmountResponse `json:"expenseByCategory"`
	IncomeByCategory  []CategoryAmountResponse `json:"incomeByCategory"`
}

// ToCashflowSummaryResponse converts a domain summary to its DTO.
func ToCashflowSummaryResponse(s *domain.CashflowSummary) CashflowSummaryResponse {
	toCat := func(rows []domain.CategoryAmount) []CategoryAmountResponse {
		out := make([]CategoryAmountResponse, len(rows))
		for i, row := range rows {
			out[i] = CategoryAmountResponse{
				CategoryID:   row.CategoryID,
				CategoryName: row.CategoryName,
				Amount:       row.Amount,
			}
		}
		return out
	}
	return CashflowSummaryResponse{
		From:              s.From.Format("2006-01-02"),
		To:                s.To.Format("2006-01-02"),
		SettledIncome:     s.SettledIncome,
		SettledExpense:    s.SettledExpense,
		PendingIncome:     s.PendingIncome,
		PendingExpense:    s.PendingExpense,
		NetSettled:        s.NetSettled,
		NetProjected:      s.NetProjected,
		ExpenseByCategory: toCat(s.ExpenseByCat),
		IncomeByCategory:  toCat(s.IncomeByCat),
	}
}
