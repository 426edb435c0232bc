package cpq

import (
	"testing"

	"github.com/gardops/gardops-backend-go/internal/domain/cpq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func assertDecimal(t *testing.T, want, got decimal.Decimal, field string) {
	t.Helper()
	assert.True(t, want.Equal(got), "%s = %s, want %s", field, got, want)
}

func TestAllocateQuote_OverheadSplitByGuardCount(t *testing.T) {
	t.Parallel()
	quote := cpq.Quote{
		ID:                       "q-1",
		ContractMonths:           12,
		MonthlyHours:             decimal.NewFromInt(180),
		BaseAdditionalCostsTotal: decimal.NewFromInt(400000),
		Positions: []cpq.Position{
			{ID: "p-1", Name: "Portería día", NumGuards: 3, MonthlyPositionCost: decimal.NewFromInt(3000000)},
			{ID: "p-2", Name: "Ronda nocturna", NumGuards: 1, MonthlyPositionCost: decimal.NewFromInt(1200000)},
		},
	}

	result := AllocateQuote(quote)

	assert.Equal(t, 4, result.TotalGuards)
	assertDecimal(t, decimal.NewFromFloat(0.75), result.Positions[0].Proportion, "proportion")
	assertDecimal(t, decimal.NewFromInt(300000), result.Positions[0].AllocatedOverhead, "allocated_overhead")
	assertDecimal(t, decimal.NewFromInt(100000), result.Positions[1].AllocatedOverhead, "allocated_overhead")
	assertDecimal(t, decimal.NewFromInt(3300000), result.Positions[0].TotalCost, "total_cost")
	assertDecimal(t, decimal.NewFromInt(1300000), result.Positions[1].TotalCost, "total_cost")
}

func TestAllocatePosition_MarginGrossUp(t *testing.T) {
	t.Parallel()
	position := cpq.Position{NumGuards: 1, MonthlyPositionCost: decimal.NewFromInt(800000)}
	policy := AllocationPolicy{
		TotalGuards: 1,
		MarginPct:   decimal.NewFromInt(20),
	}

	b := AllocatePosition(position, policy)

	// 800,000 / (1 - 0.20)
	assertDecimal(t, decimal.NewFromInt(1000000), b.BaseWithMargin, "base_with_margin")
	assert.False(t, b.MarginDegenerate)
}

func TestAllocatePosition_DegenerateMargin(t *testing.T) {
	t.Parallel()
	position := cpq.Position{NumGuards: 2, MonthlyPositionCost: decimal.NewFromInt(500000)}

	for _, margin := range []int64{100, 150} {
		policy := AllocationPolicy{
			TotalGuards: 2,
			MarginPct:   decimal.NewFromInt(margin),
		}
		b := AllocatePosition(position, policy)
		// Identity price rather than division by a non-positive factor
		assertDecimal(t, b.TotalCost, b.BaseWithMargin, "base_with_margin")
		assert.True(t, b.MarginDegenerate, "margin %d%% must be flagged", margin)
	}
}

func TestAllocatePosition_ZeroGuardTotal(t *testing.T) {
	t.Parallel()
	position := cpq.Position{NumGuards: 0, MonthlyPositionCost: decimal.NewFromInt(250000)}
	policy := AllocationPolicy{
		TotalGuards:              0,
		BaseAdditionalCostsTotal: decimal.NewFromInt(100000),
	}

	b := AllocatePosition(position, policy)

	assertDecimal(t, decimal.Zero, b.Proportion, "proportion")
	assertDecimal(t, decimal.Zero, b.AllocatedOverhead, "allocated_overhead")
	assertDecimal(t, position.MonthlyPositionCost, b.TotalCost, "total_cost")
}

func TestAllocatePosition_PolicyAndFinancialSurcharges(t *testing.T) {
	t.Parallel()
	position := cpq.Position{NumGuards: 1, MonthlyPositionCost: decimal.NewFromInt(800000)}
	policy := AllocationPolicy{
		TotalGuards:          1,
		MarginPct:            decimal.NewFromInt(20),
		FinancialRatePct:     decimal.NewFromInt(2),
		PolicyRatePct:        decimal.NewFromInt(1),
		PolicyContractMonths: 12,
		PolicyContractPct:    decimal.NewFromInt(50),
		ContractMonths:       24,
		MonthlyHours:         decimal.NewFromInt(160),
	}

	b := AllocatePosition(position, policy)

	// 12 months * 50% / 24-month contract
	assertDecimal(t, decimal.NewFromFloat(0.25), b.PolicyFactor, "policy_factor")
	assertDecimal(t, decimal.NewFromInt(20000), b.FinancialCost, "financial_cost")
	assertDecimal(t, decimal.NewFromInt(2500), b.PolicyCost, "policy_cost")
	assertDecimal(t, decimal.NewFromInt(1022500), b.SalePrice, "sale_price")
	assertDecimal(t, decimal.NewFromFloat(6390.625), b.HourlyRate, "hourly_rate")
}

func TestAllocatePosition_ZeroMonthlyHours(t *testing.T) {
	t.Parallel()
	position := cpq.Position{NumGuards: 1, MonthlyPositionCost: decimal.NewFromInt(100000)}
	policy := AllocationPolicy{TotalGuards: 1}

	b := AllocatePosition(position, policy)
	assertDecimal(t, decimal.Zero, b.HourlyRate, "hourly_rate")
}

func TestAllocateQuote_OverheadConservation(t *testing.T) {
	t.Parallel()
	quote := cpq.Quote{
		ID:                       "q-2",
		ContractMonths:           6,
		MonthlyHours:             decimal.NewFromInt(168),
		MarginPct:                decimal.NewFromInt(15),
		BaseAdditionalCostsTotal: decimal.NewFromInt(777777),
		Positions: []cpq.Position{
			{ID: "a", NumGuards: 2, MonthlyPositionCost: decimal.NewFromInt(1800000)},
			{ID: "b", NumGuards: 3, MonthlyPositionCost: decimal.NewFromInt(2700000)},
			{ID: "c", NumGuards: 2, MonthlyPositionCost: decimal.NewFromInt(1900000)},
		},
	}

	result := AllocateQuote(quote)

	allocated := decimal.Zero
	for _, p := range result.Positions {
		allocated = allocated.Add(p.AllocatedOverhead)
	}
	assertDecimal(t, quote.BaseAdditionalCostsTotal, allocated, "sum of allocated_overhead")
	assertDecimal(t, decimal.NewFromInt(6400000).Add(quote.BaseAdditionalCostsTotal), result.TotalCost, "total_cost")
}
