package cpq

import (
	"time"

	"github.com/shopspring/decimal"
)

// Quote - one staffing quote. Quote-level shared costs and pricing policy
// apply across all of its positions.
type Quote struct {
	ID                       string
	CompanyID                string
	ClientName               string
	ContractMonths           int
	MonthlyHours             decimal.Decimal
	MarginPct                decimal.Decimal
	FinancialRatePct         decimal.Decimal
	PolicyRatePct            decimal.Decimal
	PolicyContractMonths     int
	PolicyContractPct        decimal.Decimal
	BaseAdditionalCostsTotal decimal.Decimal
	CreatedAt                time.Time
	UpdatedAt                time.Time

	Positions []Position
}

// Position - a guard post within a quote. MonthlyPositionCost is the
// per-guard total employer cost times NumGuards, normally sourced from a
// payroll simulation for the post's salary structure.
type Position struct {
	ID                  string
	QuoteID             string
	Name                string
	NumGuards           int
	BaseSalary          decimal.Decimal
	NetSalary           decimal.Decimal
	EmployerCost        decimal.Decimal
	MonthlyPositionCost decimal.Decimal
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
