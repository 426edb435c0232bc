package payroll

import (
	"testing"

	"github.com/gardops/gardops-backend-go/internal/domain/params"
	"github.com/gardops/gardops-backend-go/internal/domain/simulation"
	"github.com/gardops/gardops-backend-go/internal/fixtures"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testReferences() params.ReferenceSnapshot {
	return params.ReferenceSnapshot{
		UFCLP:    decimal.NewFromFloat(39703.50),
		UFDate:   "2026-01-15",
		UTMCLP:   decimal.NewFromInt(69611),
		UTMMonth: "2026-01",
	}
}

func assertDecimal(t *testing.T, want, got decimal.Decimal, field string) {
	t.Helper()
	assert.True(t, want.Equal(got), "%s = %s, want %s", field, got, want)
}

// ===== GROSS ASSEMBLY =====

func TestCompute_GratificationIncluded(t *testing.T) {
	t.Parallel()
	req := simulation.SimulateRequest{
		BaseSalaryCLP: decimal.NewFromInt(550000),
		ContractType:  simulation.ContractIndefinite,
		AFPName:       "capital",
		HealthSystem:  simulation.HealthFonasa,
		Gratification: &simulation.GratificationInput{Include: true},
	}

	result, err := Compute(req, fixtures.DefaultParameterData(), testReferences())
	require.NoError(t, err)

	// 550,000 + 25% gratification = 687,500 taxable
	assertDecimal(t, decimal.NewFromInt(687500), result.TotalTaxableIncome, "total_taxable_income")
	// Capital: 10% base + 1.44% commission on uncapped income
	assertDecimal(t, decimal.NewFromInt(78650), result.Deductions.AFP.Amount, "afp.amount")
	// Fonasa statutory 7%
	assertDecimal(t, decimal.NewFromInt(48125), result.Deductions.Health.Amount, "health.amount")
	// AFC employee 0.6% on indefinite contract
	assertDecimal(t, decimal.NewFromInt(4125), result.Deductions.AFC.Amount, "afc.amount")
	// Tax base 560,725 CLP is about 8.06 UTM, inside the exempt bracket
	assertDecimal(t, decimal.Zero, result.Deductions.Tax.Amount, "tax.amount")
	assertDecimal(t, decimal.NewFromInt(456600), result.NetSalary, "net_salary")
}

func TestLegalGratification_CapClamp(t *testing.T) {
	t.Parallel()
	data := fixtures.DefaultParameterData()
	cap := data.GratificationCapCLP()

	// 25% of 1,000,000 exceeds the 4.75 minimum-wage monthly ceiling
	got := LegalGratification(decimal.NewFromInt(1000000), decimal.Zero, cap)
	assertDecimal(t, decimal.NewFromInt(209396), got, "gratification")

	// Under the ceiling the plain 25% applies
	got = LegalGratification(decimal.NewFromInt(400000), decimal.NewFromInt(50000), cap)
	assertDecimal(t, decimal.NewFromInt(112500), got, "gratification")
}

func TestFamilyAllowance_Bands(t *testing.T) {
	t.Parallel()
	bands := fixtures.DefaultParameterData().FamilyAllowanceBand

	cases := []struct {
		name       string
		income     int64
		dependents int
		want       int64
	}{
		{"four dependents lowest band", 600000, 4, 88028},
		{"middle band", 800000, 2, 27010},
		{"top band", 1400000, 1, 4267},
		{"above all bands", 2000000, 3, 0},
		{"zero dependents", 500000, 0, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := FamilyAllowance(bands, decimal.NewFromInt(c.income), c.dependents)
			assertDecimal(t, decimal.NewFromInt(c.want), got, "family_allowance")
		})
	}
}

func TestCompute_FamilyAllowanceFromDependents(t *testing.T) {
	t.Parallel()
	req := simulation.SimulateRequest{
		BaseSalaryCLP: decimal.NewFromInt(600000),
		ContractType:  simulation.ContractIndefinite,
		AFPName:       "modelo",
		HealthSystem:  simulation.HealthFonasa,
		NumDependents: 4,
	}

	result, err := Compute(req, fixtures.DefaultParameterData(), testReferences())
	require.NoError(t, err)

	assertDecimal(t, decimal.NewFromInt(88028), result.TotalNonTaxableIncome, "total_non_taxable_income")
	assertDecimal(t, decimal.NewFromInt(688028), result.GrossSalary, "gross_salary")
}

// ===== DEDUCTIONS =====

func TestCompute_FixedTermSkipsEmployeeAFC(t *testing.T) {
	t.Parallel()
	req := simulation.SimulateRequest{
		BaseSalaryCLP: decimal.NewFromInt(800000),
		ContractType:  simulation.ContractFixedTerm,
		AFPName:       "habitat",
		HealthSystem:  simulation.HealthFonasa,
	}

	result, err := Compute(req, fixtures.DefaultParameterData(), testReferences())
	require.NoError(t, err)

	assertDecimal(t, decimal.Zero, result.Deductions.AFC.Amount, "afc.amount")
	assertDecimal(t, decimal.Zero, result.Deductions.AFC.TotalRate, "afc.total_rate")
	// Employer pays the higher 3.0% fixed-term rate instead
	assertDecimal(t, decimal.NewFromFloat(0.03), result.EmployerCost.AFC.Rate, "employer afc.rate")
	assertDecimal(t, decimal.NewFromInt(24000), result.EmployerCost.AFC.Amount, "employer afc.amount")
}

func TestCompute_PensionCapBindsAFP(t *testing.T) {
	t.Parallel()
	data := fixtures.DefaultParameterData()
	refs := testReferences()

	base := simulation.SimulateRequest{
		ContractType: simulation.ContractIndefinite,
		AFPName:      "capital",
		HealthSystem: simulation.HealthFonasa,
	}

	high := base
	high.BaseSalaryCLP = decimal.NewFromInt(4000000)
	higher := base
	higher.BaseSalaryCLP = decimal.NewFromInt(5000000)

	resultHigh, err := Compute(high, data, refs)
	require.NoError(t, err)
	resultHigher, err := Compute(higher, data, refs)
	require.NoError(t, err)

	// Both incomes exceed the 87.8 UF pension cap, so AFP and SIS freeze
	assertDecimal(t, resultHigh.Deductions.AFP.Amount, resultHigher.Deductions.AFP.Amount, "afp.amount")
	assertDecimal(t, resultHigh.EmployerCost.SIS.Amount, resultHigher.EmployerCost.SIS.Amount, "sis.amount")
	// Health has no cap and keeps growing
	assert.True(t, resultHigher.Deductions.Health.Amount.GreaterThan(resultHigh.Deductions.Health.Amount),
		"health must stay uncapped")
}

func TestCompute_IsapreClampUp(t *testing.T) {
	t.Parallel()
	data := fixtures.DefaultParameterData()
	refs := testReferences()

	req := simulation.SimulateRequest{
		BaseSalaryCLP: decimal.NewFromInt(1000000),
		ContractType:  simulation.ContractIndefinite,
		AFPName:       "uno",
		HealthSystem:  simulation.HealthIsapre,
		HealthPlanPct: decimal.NewFromFloat(0.055),
	}

	result, err := Compute(req, data, refs)
	require.NoError(t, err)
	// Plans below the statutory 7% are charged at 7%
	assertDecimal(t, decimal.NewFromFloat(0.07), result.Deductions.Health.Rate, "health.rate")
	assertDecimal(t, decimal.NewFromInt(70000), result.Deductions.Health.Amount, "health.amount")

	req.HealthPlanPct = decimal.NewFromFloat(0.09)
	result, err = Compute(req, data, refs)
	require.NoError(t, err)
	assertDecimal(t, decimal.NewFromFloat(0.09), result.Deductions.Health.Rate, "health.rate")
	assertDecimal(t, decimal.NewFromInt(90000), result.Deductions.Health.Amount, "health.amount")
}

func TestCompute_NetSalaryFloorsAtZero(t *testing.T) {
	t.Parallel()
	req := simulation.SimulateRequest{
		BaseSalaryCLP:        decimal.NewFromInt(300000),
		ContractType:         simulation.ContractIndefinite,
		AFPName:              "modelo",
		HealthSystem:         simulation.HealthFonasa,
		AdditionalDeductions: simulation.AdditionalDeductions{Other: decimal.NewFromInt(1000000)},
	}

	result, err := Compute(req, fixtures.DefaultParameterData(), testReferences())
	require.NoError(t, err)
	assertDecimal(t, decimal.Zero, result.NetSalary, "net_salary")
}

func TestCompute_UnknownAFP(t *testing.T) {
	t.Parallel()
	req := simulation.SimulateRequest{
		BaseSalaryCLP: decimal.NewFromInt(500000),
		ContractType:  simulation.ContractIndefinite,
		AFPName:       "nonexistent",
		HealthSystem:  simulation.HealthFonasa,
	}

	_, err := Compute(req, fixtures.DefaultParameterData(), testReferences())
	assert.ErrorIs(t, err, simulation.ErrUnknownAFP)
}

// ===== TAX =====

func TestProgressiveTax(t *testing.T) {
	t.Parallel()
	brackets := fixtures.DefaultParameterData().TaxBrackets
	utm := decimal.NewFromInt(69611)

	// Exempt bracket
	got := progressiveTax(brackets, decimal.NewFromInt(560725), utm)
	assertDecimal(t, decimal.Zero, got, "tax")

	// 20 UTM: 20*4% - 0.54 = 0.26 UTM
	got = progressiveTax(brackets, utm.Mul(decimal.NewFromInt(20)), utm)
	assertDecimal(t, decimal.NewFromInt(18099), got, "tax")

	// 400 UTM lands in the open top bracket: 400*40% - 38.82 = 121.18 UTM
	got = progressiveTax(brackets, utm.Mul(decimal.NewFromInt(400)), utm)
	assertDecimal(t, decimal.NewFromInt(8435461), got, "tax")

	// Non-positive base
	got = progressiveTax(brackets, decimal.NewFromInt(-100), utm)
	assertDecimal(t, decimal.Zero, got, "tax")
}

func TestProgressiveTax_RebateFloorsAtZero(t *testing.T) {
	t.Parallel()
	brackets := []params.TaxBracket{
		{UpperBoundUTM: decimal.Zero, Rate: decimal.NewFromFloat(0.04), RebateUTM: decimal.NewFromInt(10)},
	}
	got := progressiveTax(brackets, decimal.NewFromInt(69611), decimal.NewFromInt(69611))
	assertDecimal(t, decimal.Zero, got, "tax")
}

// ===== PROPERTIES =====

func TestCompute_Deterministic(t *testing.T) {
	t.Parallel()
	data := fixtures.DefaultParameterData()
	refs := testReferences()
	req := simulation.SimulateRequest{
		BaseSalaryCLP:          decimal.NewFromInt(750000),
		OtherTaxableAllowances: decimal.NewFromInt(120000),
		NonTaxable: simulation.NonTaxableAllowances{
			Transport: decimal.NewFromInt(40000),
			Meal:      decimal.NewFromInt(35000),
		},
		ContractType:  simulation.ContractIndefinite,
		AFPName:       "provida",
		HealthSystem:  simulation.HealthFonasa,
		NumDependents: 2,
	}

	first, err := Compute(req, data, refs)
	require.NoError(t, err)
	second, err := Compute(req, data, refs)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestCompute_AllAmountsNonNegative(t *testing.T) {
	t.Parallel()
	req := simulation.SimulateRequest{
		BaseSalaryCLP: decimal.NewFromInt(529000),
		ContractType:  simulation.ContractFixedTerm,
		AFPName:       "planvital",
		HealthSystem:  simulation.HealthFonasa,
	}

	result, err := Compute(req, fixtures.DefaultParameterData(), testReferences())
	require.NoError(t, err)

	amounts := map[string]decimal.Decimal{
		"net_salary":          result.NetSalary,
		"gross_salary":        result.GrossSalary,
		"afp":                 result.Deductions.AFP.Amount,
		"health":              result.Deductions.Health.Amount,
		"afc":                 result.Deductions.AFC.Amount,
		"tax":                 result.Deductions.Tax.Amount,
		"sis":                 result.EmployerCost.SIS.Amount,
		"employer_afc":        result.EmployerCost.AFC.Amount,
		"work_injury":         result.EmployerCost.WorkInjury.Amount,
		"total_employer_cost": result.TotalEmployerCost,
	}
	for name, amount := range amounts {
		assert.False(t, amount.IsNegative(), "%s must be non-negative, got %s", name, amount)
	}
}

func TestCompute_FallbackFlagPropagates(t *testing.T) {
	t.Parallel()
	refs := testReferences()
	refs.UsedFallback = true

	req := simulation.SimulateRequest{
		BaseSalaryCLP: decimal.NewFromInt(500000),
		ContractType:  simulation.ContractIndefinite,
		AFPName:       "habitat",
		HealthSystem:  simulation.HealthFonasa,
	}

	result, err := Compute(req, fixtures.DefaultParameterData(), refs)
	require.NoError(t, err)
	assert.True(t, result.UsedFallbackReference)
}
