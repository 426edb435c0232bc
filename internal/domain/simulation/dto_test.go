package simulation

import (
	"testing"

	"github.com/gardops/gardops-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSimulateRequest() SimulateRequest {
	return SimulateRequest{
		BaseSalaryCLP: decimal.NewFromInt(550000),
		NonTaxable: NonTaxableAllowances{
			Transport: decimal.NewFromInt(40000),
			Meal:      decimal.NewFromInt(35000),
		},
		ContractType: ContractIndefinite,
		AFPName:      "modelo",
		HealthSystem: HealthFonasa,
	}
}

func TestSimulateRequest_Validate_Success(t *testing.T) {
	req := validSimulateRequest()
	assert.NoError(t, req.Validate())

	req = validSimulateRequest()
	req.ContractType = ContractFixedTerm
	req.HealthSystem = HealthIsapre
	req.HealthPlanPct = decimal.NewFromFloat(0.085)
	req.Gratification = &GratificationInput{Include: true, OvertimeCLP: decimal.NewFromInt(60000)}
	req.NumDependents = 2
	assert.NoError(t, req.Validate())
}

func TestSimulateRequest_Validate_FieldErrors(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*SimulateRequest)
		field  string
	}{
		{"negative base salary", func(r *SimulateRequest) { r.BaseSalaryCLP = decimal.NewFromInt(-1) }, "base_salary_clp"},
		{"negative taxable allowances", func(r *SimulateRequest) { r.OtherTaxableAllowances = decimal.NewFromInt(-1) }, "other_taxable_allowances"},
		{"negative transport", func(r *SimulateRequest) { r.NonTaxable.Transport = decimal.NewFromInt(-1) }, "non_taxable_allowances.transport"},
		{"bad contract type", func(r *SimulateRequest) { r.ContractType = "temporary" }, "contract_type"},
		{"missing afp", func(r *SimulateRequest) { r.AFPName = " " }, "afp_name"},
		{"bad health system", func(r *SimulateRequest) { r.HealthSystem = "private" }, "health_system"},
		{"negative isapre plan", func(r *SimulateRequest) {
			r.HealthSystem = HealthIsapre
			r.HealthPlanPct = decimal.NewFromFloat(-0.01)
		}, "health_plan_pct"},
		{"negative other deduction", func(r *SimulateRequest) { r.AdditionalDeductions.Other = decimal.NewFromInt(-1) }, "additional_deductions.other"},
		{"negative overtime", func(r *SimulateRequest) {
			r.Gratification = &GratificationInput{Include: true, OvertimeCLP: decimal.NewFromInt(-1)}
		}, "gratification.overtime_clp"},
		{"negative dependents", func(r *SimulateRequest) { r.NumDependents = -1 }, "num_dependents"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			req := validSimulateRequest()
			c.mutate(&req)

			err := req.Validate()
			require.Error(t, err)

			var errs validator.ValidationErrors
			require.ErrorAs(t, err, &errs)
			_, ok := errs.ToMap()[c.field]
			assert.True(t, ok, "expected a validation error on %q, got %v", c.field, errs.ToMap())
		})
	}
}
