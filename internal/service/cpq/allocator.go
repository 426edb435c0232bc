package cpq

import (
	"github.com/gardops/gardops-backend-go/internal/domain/cpq"
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// AllocationPolicy - quote-level inputs to the position cost allocator
type AllocationPolicy struct {
	TotalGuards              int
	BaseAdditionalCostsTotal decimal.Decimal
	MarginPct                decimal.Decimal
	FinancialRatePct         decimal.Decimal
	PolicyRatePct            decimal.Decimal
	MonthlyHours             decimal.Decimal
	PolicyContractMonths     int
	PolicyContractPct        decimal.Decimal
	ContractMonths           int
}

// AllocatePosition distributes quote-level shared costs to one position
// proportionally to its guard count and derives the sale price from cost,
// margin and the contract-duration-weighted policy/financing surcharges.
//
// Degenerate inputs never abort the computation: a zero guard total yields
// a zero proportion, and margin >= 100% falls back to the identity price
// with MarginDegenerate set.
func AllocatePosition(position cpq.Position, policy AllocationPolicy) cpq.PositionBreakdown {
	proportion := decimal.Zero
	if policy.TotalGuards > 0 {
		proportion = decimal.NewFromInt(int64(position.NumGuards)).
			Div(decimal.NewFromInt(int64(policy.TotalGuards)))
	}

	allocatedOverhead := policy.BaseAdditionalCostsTotal.Mul(proportion)
	totalCost := position.MonthlyPositionCost.Add(allocatedOverhead)

	marginRate := policy.MarginPct.Div(oneHundred)
	baseWithMargin := totalCost
	marginDegenerate := false
	if marginRate.LessThan(decimal.NewFromInt(1)) {
		baseWithMargin = totalCost.Div(decimal.NewFromInt(1).Sub(marginRate))
	} else {
		marginDegenerate = true
	}

	policyFactor := decimal.Zero
	if policy.ContractMonths > 0 {
		policyFactor = decimal.NewFromInt(int64(policy.PolicyContractMonths)).
			Mul(policy.PolicyContractPct.Div(oneHundred)).
			Div(decimal.NewFromInt(int64(policy.ContractMonths)))
	}

	financialCost := baseWithMargin.Mul(policy.FinancialRatePct.Div(oneHundred))
	policyCost := baseWithMargin.Mul(policy.PolicyRatePct.Div(oneHundred)).Mul(policyFactor)
	salePrice := baseWithMargin.Add(financialCost).Add(policyCost)

	hourlyRate := decimal.Zero
	if policy.MonthlyHours.IsPositive() {
		hourlyRate = salePrice.Div(policy.MonthlyHours)
	}

	return cpq.PositionBreakdown{
		PositionID:        position.ID,
		Name:              position.Name,
		NumGuards:         position.NumGuards,
		Proportion:        proportion,
		AllocatedOverhead: allocatedOverhead,
		TotalCost:         totalCost,
		BaseWithMargin:    baseWithMargin,
		PolicyFactor:      policyFactor,
		FinancialCost:     financialCost,
		PolicyCost:        policyCost,
		SalePrice:         salePrice,
		HourlyRate:        hourlyRate,
		MarginDegenerate:  marginDegenerate,
	}
}

// AllocateQuote runs the allocator over every position of a quote.
// Allocated overhead sums back to BaseAdditionalCostsTotal whenever the
// quote has at least one guard.
func AllocateQuote(quote cpq.Quote) cpq.QuoteBreakdownResponse {
	totalGuards := 0
	for _, p := range quote.Positions {
		totalGuards += p.NumGuards
	}

	policy := AllocationPolicy{
		TotalGuards:              totalGuards,
		BaseAdditionalCostsTotal: quote.BaseAdditionalCostsTotal,
		MarginPct:                quote.MarginPct,
		FinancialRatePct:         quote.FinancialRatePct,
		PolicyRatePct:            quote.PolicyRatePct,
		MonthlyHours:             quote.MonthlyHours,
		PolicyContractMonths:     quote.PolicyContractMonths,
		PolicyContractPct:        quote.PolicyContractPct,
		ContractMonths:           quote.ContractMonths,
	}

	breakdowns := make([]cpq.PositionBreakdown, 0, len(quote.Positions))
	totalCost := decimal.Zero
	totalSalePrice := decimal.Zero
	for _, p := range quote.Positions {
		b := AllocatePosition(p, policy)
		totalCost = totalCost.Add(b.TotalCost)
		totalSalePrice = totalSalePrice.Add(b.SalePrice)
		breakdowns = append(breakdowns, b)
	}

	return cpq.QuoteBreakdownResponse{
		QuoteID:        quote.ID,
		TotalGuards:    totalGuards,
		TotalCost:      totalCost,
		TotalSalePrice: totalSalePrice,
		Positions:      breakdowns,
	}
}
