package fixtures

import (
	"time"

	"github.com/gardops/gardops-backend-go/internal/domain/params"
	"github.com/shopspring/decimal"
)

// Default Chilean legal parameter set, effective January 2026. Used to
// seed a fresh database and as the test fixture. These are data, not law:
// production deployments load the current tables through the parameter
// import flow and this set is never consulted once a newer version exists.

func d(f float64) decimal.Decimal { return decimal.NewFromFloat(f) }

func DefaultParameterData() params.ParameterData {
	afpBase := d(0.10)
	return params.ParameterData{
		AFP: map[string]params.AFPRates{
			"capital":   {BaseRate: afpBase, CommissionRate: d(0.0144)},
			"cuprum":    {BaseRate: afpBase, CommissionRate: d(0.0144)},
			"habitat":   {BaseRate: afpBase, CommissionRate: d(0.0127)},
			"modelo":    {BaseRate: afpBase, CommissionRate: d(0.0058)},
			"planvital": {BaseRate: afpBase, CommissionRate: d(0.0116)},
			"provida":   {BaseRate: afpBase, CommissionRate: d(0.0145)},
			"uno":       {BaseRate: afpBase, CommissionRate: d(0.0049)},
		},
		Health: params.HealthRates{BaseRate: d(0.07)},
		AFC: params.AFCRates{
			EmployeeRate:           d(0.006),
			EmployerRateIndefinite: d(0.024),
			EmployerRateFixedTerm:  d(0.03),
		},
		SIS:        params.SISRates{EmployerRate: d(0.0188)},
		WorkInjury: params.WorkInjuryRates{BaseRate: d(0.0093)},
		Caps: params.ContributionCaps{
			PensionUF: d(87.8),
			AFCUF:     d(131.9),
		},
		// Monthly SII table in UTM; the last bracket is open-ended.
		TaxBrackets: []params.TaxBracket{
			{UpperBoundUTM: d(13.5), Rate: decimal.Zero, RebateUTM: decimal.Zero},
			{UpperBoundUTM: d(30), Rate: d(0.04), RebateUTM: d(0.54)},
			{UpperBoundUTM: d(50), Rate: d(0.08), RebateUTM: d(1.74)},
			{UpperBoundUTM: d(70), Rate: d(0.135), RebateUTM: d(4.49)},
			{UpperBoundUTM: d(90), Rate: d(0.23), RebateUTM: d(11.14)},
			{UpperBoundUTM: d(120), Rate: d(0.304), RebateUTM: d(17.80)},
			{UpperBoundUTM: d(310), Rate: d(0.35), RebateUTM: d(23.32)},
			{UpperBoundUTM: decimal.Zero, Rate: d(0.40), RebateUTM: d(38.82)},
		},
		MinimumWageCLP: d(529000),
		FamilyAllowanceBand: []params.FamilyAllowanceBand{
			{IncomeCapCLP: d(631976), PerDependentCLP: d(22007)},
			{IncomeCapCLP: d(923067), PerDependentCLP: d(13505)},
			{IncomeCapCLP: d(1439668), PerDependentCLP: d(4267)},
		},
	}
}

func DefaultParameterVersion() params.ParameterVersion {
	return params.ParameterVersion{
		EffectiveFrom: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Data:          DefaultParameterData(),
	}
}
