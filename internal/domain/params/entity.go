package params

import (
	"time"

	"github.com/shopspring/decimal"
)

// AFPRates - employee pension contribution for one provider.
// The effective rate is BaseRate + CommissionRate.
type AFPRates struct {
	BaseRate       decimal.Decimal `json:"base_rate"`
	CommissionRate decimal.Decimal `json:"commission_rate"`
}

// AFCRates - unemployment insurance split; the employer leg depends on
// contract type, the employee leg only applies to indefinite contracts.
type AFCRates struct {
	EmployeeRate           decimal.Decimal `json:"employee_rate"`
	EmployerRateIndefinite decimal.Decimal `json:"employer_rate_indefinite"`
	EmployerRateFixedTerm  decimal.Decimal `json:"employer_rate_fixed_term"`
}

// HealthRates - statutory minimum health contribution
type HealthRates struct {
	BaseRate decimal.Decimal `json:"base_rate"`
}

// SISRates - disability/survivor insurance, employer-only
type SISRates struct {
	EmployerRate decimal.Decimal `json:"employer_rate"`
}

// WorkInjuryRates - legal minimum; mutual-specific variable component is
// out of scope, only the base rate is applied
type WorkInjuryRates struct {
	BaseRate decimal.Decimal `json:"base_rate"`
}

// ContributionCaps - taxable income above these UF-denominated ceilings is
// not subject to the respective contribution
type ContributionCaps struct {
	PensionUF decimal.Decimal `json:"pension_uf"`
	AFCUF     decimal.Decimal `json:"afc_uf"`
}

// TaxBracket - one row of the monthly progressive tax table, in UTM.
// UpperBoundUTM zero means the bracket is open-ended; the table must be
// ordered ascending and end with an open bracket.
type TaxBracket struct {
	UpperBoundUTM decimal.Decimal `json:"upper_bound_utm"`
	Rate          decimal.Decimal `json:"rate"`
	RebateUTM     decimal.Decimal `json:"rebate_utm"`
}

// FamilyAllowanceBand - per-dependent allowance for taxable income up to
// IncomeCapCLP. Bands are ordered ascending; income above the last band
// pays nothing.
type FamilyAllowanceBand struct {
	IncomeCapCLP    decimal.Decimal `json:"income_cap_clp"`
	PerDependentCLP decimal.Decimal `json:"per_dependent_clp"`
}

// ParameterVersion - one row per legally effective period. Immutable once
// referenced by any simulation snapshot; the version in effect for a date
// is the latest one with EffectiveFrom <= date.
type ParameterVersion struct {
	ID            string
	EffectiveFrom time.Time
	Data          ParameterData
	CreatedAt     time.Time
}

// ParameterData - the versioned legal/financial constants, stored as one
// JSONB payload
type ParameterData struct {
	AFP                 map[string]AFPRates   `json:"afp"`
	Health              HealthRates           `json:"health"`
	AFC                 AFCRates              `json:"afc"`
	SIS                 SISRates              `json:"sis"`
	WorkInjury          WorkInjuryRates       `json:"work_injury"`
	Caps                ContributionCaps      `json:"caps"`
	TaxBrackets         []TaxBracket          `json:"tax_brackets"`
	MinimumWageCLP      decimal.Decimal       `json:"minimum_wage_clp"`
	FamilyAllowanceBand []FamilyAllowanceBand `json:"family_allowance_bands"`
}

// GratificationCapCLP returns the statutory monthly ceiling for the legal
// gratification: 4.75 minimum monthly wages spread over 12 months.
func (d ParameterData) GratificationCapCLP() decimal.Decimal {
	return d.MinimumWageCLP.Mul(decimal.NewFromFloat(4.75)).Div(decimal.NewFromInt(12))
}

// UFRate - CLP value of one UF on a given date
type UFRate struct {
	Date     time.Time
	ValueCLP decimal.Decimal
}

// UTMRate - CLP value of one UTM for a given month
type UTMRate struct {
	Month    time.Time // first day of the month
	ValueCLP decimal.Decimal
}

// ReferenceSnapshot - the UF/UTM values actually used by a computation,
// captured verbatim into the simulation snapshot
type ReferenceSnapshot struct {
	UFCLP        decimal.Decimal `json:"uf_clp"`
	UFDate       string          `json:"uf_date"`
	UTMCLP       decimal.Decimal `json:"utm_clp"`
	UTMMonth     string          `json:"utm_month"`
	UsedFallback bool            `json:"used_fallback"`
}
