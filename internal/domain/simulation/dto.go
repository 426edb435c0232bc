package simulation

import (
	"github.com/gardops/gardops-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== SIMULATE DTOs ==========

type NonTaxableAllowances struct {
	Transport decimal.Decimal `json:"transport"`
	Meal      decimal.Decimal `json:"meal"`
	Family    decimal.Decimal `json:"family"`
}

type AdditionalDeductions struct {
	Other decimal.Decimal `json:"other"` // e.g. voluntary pension savings (APV)
}

// GratificationInput - optional server-side legal gratification. When
// Include is set the engine adds 25% of (base + overtime) to taxable
// income, clamped at the statutory monthly ceiling. Callers that pre-sum
// the gratification into other_taxable_allowances leave this unset.
type GratificationInput struct {
	Include     bool            `json:"include"`
	OvertimeCLP decimal.Decimal `json:"overtime_clp"`
}

type SimulateRequest struct {
	BaseSalaryCLP          decimal.Decimal      `json:"base_salary_clp"`
	OtherTaxableAllowances decimal.Decimal      `json:"other_taxable_allowances"`
	NonTaxable             NonTaxableAllowances `json:"non_taxable_allowances"`
	ContractType           ContractType         `json:"contract_type"`
	AFPName                string               `json:"afp_name"`
	HealthSystem           HealthSystem         `json:"health_system"`
	HealthPlanPct          decimal.Decimal      `json:"health_plan_pct"`
	AdditionalDeductions   AdditionalDeductions `json:"additional_deductions"`
	Gratification          *GratificationInput  `json:"gratification,omitempty"`
	NumDependents          int                  `json:"num_dependents,omitempty"`
	SaveSimulation         bool                 `json:"save_simulation"`
}

func (r *SimulateRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.BaseSalaryCLP.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "base_salary_clp", Message: "must be non-negative"})
	}
	if r.OtherTaxableAllowances.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "other_taxable_allowances", Message: "must be non-negative"})
	}
	if r.NonTaxable.Transport.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "non_taxable_allowances.transport", Message: "must be non-negative"})
	}
	if r.NonTaxable.Meal.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "non_taxable_allowances.meal", Message: "must be non-negative"})
	}
	if r.NonTaxable.Family.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "non_taxable_allowances.family", Message: "must be non-negative"})
	}
	if r.ContractType != ContractIndefinite && r.ContractType != ContractFixedTerm {
		errs = append(errs, validator.ValidationError{Field: "contract_type", Message: "must be 'indefinite' or 'fixed_term'"})
	}
	if validator.IsEmpty(r.AFPName) {
		errs = append(errs, validator.ValidationError{Field: "afp_name", Message: "is required"})
	}
	if r.HealthSystem != HealthFonasa && r.HealthSystem != HealthIsapre {
		errs = append(errs, validator.ValidationError{Field: "health_system", Message: "must be 'fonasa' or 'isapre'"})
	}
	if r.HealthSystem == HealthIsapre && r.HealthPlanPct.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "health_plan_pct", Message: "must be non-negative"})
	}
	if r.AdditionalDeductions.Other.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "additional_deductions.other", Message: "must be non-negative"})
	}
	if r.Gratification != nil && r.Gratification.OvertimeCLP.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "gratification.overtime_clp", Message: "must be non-negative"})
	}
	if r.NumDependents < 0 {
		errs = append(errs, validator.ValidationError{Field: "num_dependents", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========== RESULT DTOs ==========

type DeductionLine struct {
	Amount decimal.Decimal `json:"amount"`
	Rate   decimal.Decimal `json:"rate"`
}

type AFPDeduction struct {
	Amount    decimal.Decimal `json:"amount"`
	TotalRate decimal.Decimal `json:"total_rate"` // base + provider commission
}

type AFCDeduction struct {
	Amount    decimal.Decimal `json:"amount"`
	TotalRate decimal.Decimal `json:"total_rate"` // employee leg only
}

type TaxDeduction struct {
	Amount decimal.Decimal `json:"amount"`
}

type Deductions struct {
	AFP    AFPDeduction    `json:"afp"`
	Health DeductionLine   `json:"health"`
	AFC    AFCDeduction    `json:"afc"`
	Tax    TaxDeduction    `json:"tax"`
	Other  decimal.Decimal `json:"other"`
}

// EmployerAFC - employer unemployment insurance leg. TotalRate and
// TotalAmount combine employee and employer legs for display purposes
// only; the employee leg never affects employer cost.
type EmployerAFC struct {
	Amount      decimal.Decimal `json:"amount"`
	Rate        decimal.Decimal `json:"rate"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	TotalRate   decimal.Decimal `json:"total_rate"`
}

type EmployerCost struct {
	SIS        DeductionLine `json:"sis"`
	AFC        EmployerAFC   `json:"afc"`
	WorkInjury DeductionLine `json:"work_injury"`
}

type SimulateResponse struct {
	NetSalary             decimal.Decimal `json:"net_salary"`
	GrossSalary           decimal.Decimal `json:"gross_salary"`
	TotalTaxableIncome    decimal.Decimal `json:"total_taxable_income"`
	TotalNonTaxableIncome decimal.Decimal `json:"total_non_taxable_income"`
	TotalEmployerCost     decimal.Decimal `json:"total_employer_cost"`
	Deductions            Deductions      `json:"deductions"`
	EmployerCost          EmployerCost    `json:"employer_cost"`
	UsedFallbackReference bool            `json:"used_fallback_reference"`
	SimulationID          *string         `json:"simulation_id,omitempty"`
}

// ========== LIST DTOs ==========

type SimulationSummary struct {
	ID           string          `json:"id"`
	NetSalary    decimal.Decimal `json:"net_salary"`
	GrossSalary  decimal.Decimal `json:"gross_salary"`
	AFPName      string          `json:"afp_name"`
	ContractType string          `json:"contract_type"`
	CreatedAt    string          `json:"created_at"`
}

type ListSimulationsResponse struct {
	Data       []SimulationSummary `json:"data"`
	TotalCount int64               `json:"total_count"`
	Page       int                 `json:"page"`
	Limit      int                 `json:"limit"`
}

type SimulationDetailResponse struct {
	ID                 string             `json:"id"`
	Input              SimulateRequest    `json:"input"`
	Result             SimulateResponse   `json:"result"`
	ParametersSnapshot ParametersSnapshot `json:"parameters_snapshot"`
	CreatedAt          string             `json:"created_at"`
}
