package accounting

import (
	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// driftAlertThreshold is one monetary unit's smallest subdivision. Residual
// drift at or below it is treated as floating rounding noise and not alerted,
// though the computed value remains authoritative.
var driftAlertThreshold = decimal.NewFromFloat(0.01)

// SignedAmount applies the correct sign to an entry amount based on its nature.
// Entries store positive amounts; Income counts positive, Expense negative.
// This is used in both services and repositories to ensure consistent cashflow math.
func SignedAmount(e domain.LedgerEntry) decimal.Decimal {
	if e.Nature == domain.Expense {
		return e.Amount.Neg()
	}
	return e.Amount
}

// SumInstallments returns the sum of the explicit installment amounts.
func SumInstallments(installments []domain.ContractInstallment) decimal.Decimal {
	sum := decimal.Zero
	for _, inst := range installments {
		sum = sum.Add(inst.Amount)
	}
	return sum
}

// SumTradeIns returns the sum of the trade-in credit amounts.
func SumTradeIns(tradeIns []domain.TradeInCredit) decimal.Decimal {
	sum := decimal.Zero
	for _, ti := range tradeIns {
		sum = sum.Add(ti.Amount)
	}
	return sum
}

// ComputeResidual returns the authoritative residual installment amount:
// total minus explicit installments minus trade-in credits. A negative result
// is a valid over-allocated plan and must be surfaced, not rejected.
func ComputeResidual(total decimal.Decimal, installments []domain.ContractInstallment, tradeIns []domain.TradeInCredit) decimal.Decimal {
	return total.Sub(SumInstallments(installments)).Sub(SumTradeIns(tradeIns))
}

// ReconcileResidual recomputes a contract's residual and compares it against
// the persisted cache. The cached value is never trusted: the Computed field
// is what callers must display. HasDrift flags a stale cache worth alerting.
func ReconcileResidual(total decimal.Decimal, installments []domain.ContractInstallment, tradeIns []domain.TradeInCredit, cached decimal.Decimal) domain.ResidualReconciliation {
	computed := ComputeResidual(total, installments, tradeIns)
	drift := computed.Sub(cached)
	return domain.ResidualReconciliation{
		Computed: computed,
		Cached:   cached,
		Drift:    drift,
		HasDrift: drift.Abs().GreaterThan(driftAlertThreshold),
	}
}
