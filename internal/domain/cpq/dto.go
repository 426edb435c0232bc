package cpq

import (
	"github.com/gardops/gardops-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== QUOTE DTOs ==========

type CreateQuoteRequest struct {
	ClientName               string          `json:"client_name"`
	ContractMonths           int             `json:"contract_months"`
	MonthlyHours             decimal.Decimal `json:"monthly_hours"`
	MarginPct                decimal.Decimal `json:"margin_pct"`
	FinancialRatePct         decimal.Decimal `json:"financial_rate_pct"`
	PolicyRatePct            decimal.Decimal `json:"policy_rate_pct"`
	PolicyContractMonths     int             `json:"policy_contract_months"`
	PolicyContractPct        decimal.Decimal `json:"policy_contract_pct"`
	BaseAdditionalCostsTotal decimal.Decimal `json:"base_additional_costs_total"`
}

func (r *CreateQuoteRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ClientName) {
		errs = append(errs, validator.ValidationError{Field: "client_name", Message: "is required"})
	}
	if r.ContractMonths < 0 {
		errs = append(errs, validator.ValidationError{Field: "contract_months", Message: "must be non-negative"})
	}
	if r.MonthlyHours.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "monthly_hours", Message: "must be non-negative"})
	}
	if r.MarginPct.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "margin_pct", Message: "must be non-negative"})
	}
	if r.FinancialRatePct.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "financial_rate_pct", Message: "must be non-negative"})
	}
	if r.PolicyRatePct.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "policy_rate_pct", Message: "must be non-negative"})
	}
	if r.PolicyContractMonths < 0 {
		errs = append(errs, validator.ValidationError{Field: "policy_contract_months", Message: "must be non-negative"})
	}
	if r.PolicyContractPct.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "policy_contract_pct", Message: "must be non-negative"})
	}
	if r.BaseAdditionalCostsTotal.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "base_additional_costs_total", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type QuoteResponse struct {
	ID                       string             `json:"id"`
	ClientName               string             `json:"client_name"`
	ContractMonths           int                `json:"contract_months"`
	MonthlyHours             decimal.Decimal    `json:"monthly_hours"`
	MarginPct                decimal.Decimal    `json:"margin_pct"`
	FinancialRatePct         decimal.Decimal    `json:"financial_rate_pct"`
	PolicyRatePct            decimal.Decimal    `json:"policy_rate_pct"`
	PolicyContractMonths     int                `json:"policy_contract_months"`
	PolicyContractPct        decimal.Decimal    `json:"policy_contract_pct"`
	BaseAdditionalCostsTotal decimal.Decimal    `json:"base_additional_costs_total"`
	Positions                []PositionResponse `json:"positions,omitempty"`
}

// ========== POSITION DTOs ==========

type AddPositionRequest struct {
	QuoteID             string          `json:"-"`
	Name                string          `json:"name"`
	NumGuards           int             `json:"num_guards"`
	BaseSalary          decimal.Decimal `json:"base_salary"`
	NetSalary           decimal.Decimal `json:"net_salary"`
	EmployerCost        decimal.Decimal `json:"employer_cost"`
	MonthlyPositionCost decimal.Decimal `json:"monthly_position_cost"`
}

func (r *AddPositionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if r.NumGuards <= 0 {
		errs = append(errs, validator.ValidationError{Field: "num_guards", Message: "must be positive"})
	}
	if r.BaseSalary.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "base_salary", Message: "must be non-negative"})
	}
	if r.NetSalary.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "net_salary", Message: "must be non-negative"})
	}
	if r.EmployerCost.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "employer_cost", Message: "must be non-negative"})
	}
	if r.MonthlyPositionCost.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "monthly_position_cost", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PositionResponse struct {
	ID                  string          `json:"id"`
	Name                string          `json:"name"`
	NumGuards           int             `json:"num_guards"`
	BaseSalary          decimal.Decimal `json:"base_salary"`
	NetSalary           decimal.Decimal `json:"net_salary"`
	EmployerCost        decimal.Decimal `json:"employer_cost"`
	MonthlyPositionCost decimal.Decimal `json:"monthly_position_cost"`
}

// ========== BREAKDOWN DTOs ==========

// PositionBreakdown - allocator output for one position. MarginDegenerate
// marks the identity fallback used when margin_pct >= 100.
type PositionBreakdown struct {
	PositionID        string          `json:"position_id"`
	Name              string          `json:"name"`
	NumGuards         int             `json:"num_guards"`
	Proportion        decimal.Decimal `json:"proportion"`
	AllocatedOverhead decimal.Decimal `json:"allocated_overhead"`
	TotalCost         decimal.Decimal `json:"total_cost"`
	BaseWithMargin    decimal.Decimal `json:"base_with_margin"`
	PolicyFactor      decimal.Decimal `json:"policy_factor"`
	FinancialCost     decimal.Decimal `json:"financial_cost"`
	PolicyCost        decimal.Decimal `json:"policy_cost"`
	SalePrice         decimal.Decimal `json:"sale_price"`
	HourlyRate        decimal.Decimal `json:"hourly_rate"`
	MarginDegenerate  bool            `json:"margin_degenerate"`
}

type QuoteBreakdownResponse struct {
	QuoteID        string              `json:"quote_id"`
	TotalGuards    int                 `json:"total_guards"`
	TotalCost      decimal.Decimal     `json:"total_cost"`
	TotalSalePrice decimal.Decimal     `json:"total_sale_price"`
	Positions      []PositionBreakdown `json:"positions"`
}
