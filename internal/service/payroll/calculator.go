package payroll

import (
	"strings"

	"github.com/gardops/gardops-backend-go/internal/domain/params"
	"github.com/gardops/gardops-backend-go/internal/domain/simulation"
	"github.com/shopspring/decimal"
)

// The calculator is a pure function of its arguments. It never reads
// ambient state: the caller resolves the parameter version and reference
// rates and passes them in, so the same input against the same snapshot
// always reproduces the same breakdown.

var gratificationRate = decimal.NewFromFloat(0.25)

// LegalGratification returns 25% of (base + overtime) clamped at the
// statutory monthly ceiling.
func LegalGratification(baseCLP, overtimeCLP, capCLP decimal.Decimal) decimal.Decimal {
	grat := baseCLP.Add(overtimeCLP).Mul(gratificationRate)
	if grat.GreaterThan(capCLP) {
		return capCLP.Round(0)
	}
	return grat.Round(0)
}

// FamilyAllowance returns the stepped per-dependent allowance. Bands are
// ordered ascending by income cap; income above the top band pays zero.
func FamilyAllowance(bands []params.FamilyAllowanceBand, taxableIncome decimal.Decimal, dependents int) decimal.Decimal {
	if dependents <= 0 {
		return decimal.Zero
	}
	deps := decimal.NewFromInt(int64(dependents))
	for _, band := range bands {
		if taxableIncome.LessThanOrEqual(band.IncomeCapCLP) {
			return band.PerDependentCLP.Mul(deps)
		}
	}
	return decimal.Zero
}

// grossPay - totals assembled from the request
type grossPay struct {
	TaxableIncome    decimal.Decimal
	NonTaxableIncome decimal.Decimal
	GrossSalary      decimal.Decimal
}

func assembleGross(req simulation.SimulateRequest, data params.ParameterData) grossPay {
	taxable := req.BaseSalaryCLP.Add(req.OtherTaxableAllowances)
	if req.Gratification != nil && req.Gratification.Include {
		taxable = taxable.Add(req.Gratification.OvertimeCLP)
		taxable = taxable.Add(LegalGratification(req.BaseSalaryCLP, req.Gratification.OvertimeCLP, data.GratificationCapCLP()))
	}

	family := req.NonTaxable.Family
	if req.NumDependents > 0 && family.IsZero() {
		family = FamilyAllowance(data.FamilyAllowanceBand, taxable, req.NumDependents)
	}
	nonTaxable := req.NonTaxable.Transport.Add(req.NonTaxable.Meal).Add(family)

	return grossPay{
		TaxableIncome:    taxable,
		NonTaxableIncome: nonTaxable,
		GrossSalary:      taxable.Add(nonTaxable),
	}
}

// progressiveTax walks the ordered bracket table with the taxable base
// expressed in UTM and returns the CLP tax, floored at zero.
func progressiveTax(brackets []params.TaxBracket, taxBaseCLP, utmCLP decimal.Decimal) decimal.Decimal {
	if len(brackets) == 0 || utmCLP.IsZero() || taxBaseCLP.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	baseUTM := taxBaseCLP.Div(utmCLP)
	bracket := brackets[len(brackets)-1]
	for _, b := range brackets {
		if b.UpperBoundUTM.IsZero() || baseUTM.LessThanOrEqual(b.UpperBoundUTM) {
			bracket = b
			break
		}
	}

	taxUTM := baseUTM.Mul(bracket.Rate).Sub(bracket.RebateUTM)
	if taxUTM.IsNegative() {
		return decimal.Zero
	}
	return taxUTM.Mul(utmCLP).Round(0)
}

// Compute runs the full pipeline: gross assembly, employee deductions,
// employer costs. Every field of the response is populated even when zero.
func Compute(req simulation.SimulateRequest, data params.ParameterData, refs params.ReferenceSnapshot) (simulation.SimulateResponse, error) {
	afpRates, ok := data.AFP[strings.ToLower(req.AFPName)]
	if !ok {
		return simulation.SimulateResponse{}, simulation.ErrUnknownAFP
	}

	gross := assembleGross(req, data)

	pensionCapCLP := data.Caps.PensionUF.Mul(refs.UFCLP)
	afcCapCLP := data.Caps.AFCUF.Mul(refs.UFCLP)
	pensionBase := decimal.Min(gross.TaxableIncome, pensionCapCLP)
	afcBase := decimal.Min(gross.TaxableIncome, afcCapCLP)

	// AFP: statutory base plus provider commission, on pension-capped income
	afpRate := afpRates.BaseRate.Add(afpRates.CommissionRate)
	afpAmount := pensionBase.Mul(afpRate).Round(0)

	// Health: fonasa pays the statutory rate; isapre plans below the
	// statutory minimum are clamped up. No cap applies.
	healthRate := data.Health.BaseRate
	if req.HealthSystem == simulation.HealthIsapre && req.HealthPlanPct.GreaterThan(healthRate) {
		healthRate = req.HealthPlanPct
	}
	healthAmount := gross.TaxableIncome.Mul(healthRate).Round(0)

	// AFC employee leg: fixed-term contracts owe nothing by law
	afcRate := decimal.Zero
	afcAmount := decimal.Zero
	if req.ContractType == simulation.ContractIndefinite {
		afcRate = data.AFC.EmployeeRate
		afcAmount = afcBase.Mul(afcRate).Round(0)
	}

	// Income tax on taxable income net of pension and health
	taxBase := gross.TaxableIncome.Sub(afpAmount).Sub(healthAmount)
	taxAmount := progressiveTax(data.TaxBrackets, taxBase, refs.UTMCLP)

	netSalary := gross.GrossSalary.
		Sub(afpAmount).
		Sub(healthAmount).
		Sub(afcAmount).
		Sub(taxAmount).
		Sub(req.AdditionalDeductions.Other)
	if netSalary.IsNegative() {
		netSalary = decimal.Zero
	}

	// Employer-side contributions
	sisAmount := pensionBase.Mul(data.SIS.EmployerRate).Round(0)

	afcEmployerRate := data.AFC.EmployerRateIndefinite
	if req.ContractType == simulation.ContractFixedTerm {
		afcEmployerRate = data.AFC.EmployerRateFixedTerm
	}
	afcEmployerAmount := afcBase.Mul(afcEmployerRate).Round(0)

	workInjuryAmount := gross.TaxableIncome.Mul(data.WorkInjury.BaseRate).Round(0)

	totalEmployerCost := gross.GrossSalary.
		Add(sisAmount).
		Add(afcEmployerAmount).
		Add(workInjuryAmount)

	return simulation.SimulateResponse{
		NetSalary:             netSalary,
		GrossSalary:           gross.GrossSalary,
		TotalTaxableIncome:    gross.TaxableIncome,
		TotalNonTaxableIncome: gross.NonTaxableIncome,
		TotalEmployerCost:     totalEmployerCost,
		Deductions: simulation.Deductions{
			AFP:    simulation.AFPDeduction{Amount: afpAmount, TotalRate: afpRate},
			Health: simulation.DeductionLine{Amount: healthAmount, Rate: healthRate},
			AFC:    simulation.AFCDeduction{Amount: afcAmount, TotalRate: afcRate},
			Tax:    simulation.TaxDeduction{Amount: taxAmount},
			Other:  req.AdditionalDeductions.Other,
		},
		EmployerCost: simulation.EmployerCost{
			SIS: simulation.DeductionLine{Amount: sisAmount, Rate: data.SIS.EmployerRate},
			AFC: simulation.EmployerAFC{
				Amount:      afcEmployerAmount,
				Rate:        afcEmployerRate,
				TotalAmount: afcEmployerAmount.Add(afcAmount),
				TotalRate:   afcEmployerRate.Add(afcRate),
			},
			WorkInjury: simulation.DeductionLine{Amount: workInjuryAmount, Rate: data.WorkInjury.BaseRate},
		},
		UsedFallbackReference: refs.UsedFallback,
	}, nil
}
