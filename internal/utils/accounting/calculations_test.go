package accounting_test

import (
	"math/rand"
	"testing"

	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/bizledger/bizledger_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func installments(amounts ...float64) []domain.ContractInstallment {
	out := make([]domain.ContractInstallment, len(amounts))
	for i, a := range amounts {
		out[i] = domain.ContractInstallment{Amount: decimal.NewFromFloat(a)}
	}
	return out
}

func tradeIns(amounts ...float64) []domain.TradeInCredit {
	out := make([]domain.TradeInCredit, len(amounts))
	for i, a := range amounts {
		out[i] = domain.TradeInCredit{Amount: decimal.NewFromFloat(a)}
	}
	return out
}

func TestSignedAmount(t *testing.T) {
	amount := decimal.NewFromFloat(150.25)
	assert.True(t, amount.Equal(accounting.SignedAmount(domain.LedgerEntry{Nature: domain.Income, Amount: amount})))
	assert.True(t, amount.Neg().Equal(accounting.SignedAmount(domain.LedgerEntry{Nature: domain.Expense, Amount: amount})))
}

func TestComputeResidual(t *testing.T) {
	tests := []struct {
		name         string
		total        float64
		installments []domain.ContractInstallment
		tradeIns     []domain.TradeInCredit
		want         float64
	}{
		{
			name:         "residual balances the plan",
			total:        500000,
			installments: installments(50000, 200000),
			tradeIns:     tradeIns(80000),
			want:         170000,
		},
		{
			name:  "no explicit allocations leaves the full total",
			total: 1234.56,
			want:  1234.56,
		},
		{
			name:         "over-allocated plan yields a negative residual",
			total:        1000,
			installments: installments(800, 400),
			want:         -200,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := accounting.ComputeResidual(decimal.NewFromFloat(tt.total), tt.installments, tt.tradeIns)
			assert.True(t, decimal.NewFromFloat(tt.want).Equal(got), "want %v, got %s", tt.want, got)
		})
	}
}

// The residual is the balancing term by construction: explicit installments
// plus trade-ins plus the computed residual must reproduce the total exactly,
// whatever the inputs.
func TestComputeResidual_BalancingInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		total := decimal.NewFromInt(rng.Int63n(10_000_000)).Div(decimal.NewFromInt(100))
		var insts []domain.ContractInstallment
		for j := rng.Intn(6); j > 0; j-- {
			insts = append(insts, domain.ContractInstallment{
				Amount: decimal.NewFromInt(rng.Int63n(1_000_000)).Div(decimal.NewFromInt(100)),
			})
		}
		var credits []domain.TradeInCredit
		for j := rng.Intn(4); j > 0; j-- {
			credits = append(credits, domain.TradeInCredit{
				Amount: decimal.NewFromInt(rng.Int63n(1_000_000)).Div(decimal.NewFromInt(100)),
			})
		}

		residual := accounting.ComputeResidual(total, insts, credits)
		sum := accounting.SumInstallments(insts).Add(accounting.SumTradeIns(credits)).Add(residual)
		assert.True(t, total.Equal(sum), "iteration %d: total %s, reconstructed %s", i, total, sum)
	}
}

func TestReconcileResidual_DriftThreshold(t *testing.T) {
	total := decimal.NewFromInt(1000)

	// 0.005 of drift is rounding noise: computed stays authoritative but no alert.
	rec := accounting.ReconcileResidual(total, nil, nil, decimal.NewFromFloat(999.995))
	assert.True(t, decimal.NewFromInt(1000).Equal(rec.Computed))
	assert.True(t, decimal.NewFromFloat(0.005).Equal(rec.Drift))
	assert.False(t, rec.HasDrift)

	// A stale cache 10 off must alert.
	rec = accounting.ReconcileResidual(total, nil, nil, decimal.NewFromInt(990))
	assert.True(t, decimal.NewFromInt(10).Equal(rec.Drift))
	assert.True(t, rec.HasDrift)

	// Drift is signed: an inflated cache alerts too.
	rec = accounting.ReconcileResidual(total, nil, nil, decimal.NewFromInt(1010))
	assert.True(t, decimal.NewFromInt(-10).Equal(rec.Drift))
	assert.True(t, rec.HasDrift)

	// Exactly at the threshold is still treated as noise.
	rec = accounting.ReconcileResidual(total, nil, nil, decimal.NewFromFloat(999.99))
	assert.False(t, rec.HasDrift)
}
