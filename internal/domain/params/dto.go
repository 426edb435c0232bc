package params

import (
	"sort"

	"github.com/gardops/gardops-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== PARAMETERS FETCH DTOs ==========

type AFPCommissionResponse struct {
	CommissionRate decimal.Decimal `json:"commission_rate"`
}

type AFPResponse struct {
	BaseRate    decimal.Decimal                  `json:"base_rate"`
	Commissions map[string]AFPCommissionResponse `json:"commissions"`
}

type TaxBracketResponse struct {
	UpperBoundUTM *decimal.Decimal `json:"upper_bound_utm,omitempty"` // nil = open bracket
	Rate          decimal.Decimal  `json:"rate"`
	RebateUTM     decimal.Decimal  `json:"rebate_utm"`
}

type ParameterDataResponse struct {
	AFP        AFPResponse          `json:"afp"`
	Health     HealthRates          `json:"health"`
	AFC        AFCRates             `json:"afc"`
	SIS        SISRates             `json:"sis"`
	WorkInjury WorkInjuryRates      `json:"work_injury"`
	Caps       ContributionCaps     `json:"caps"`
	TaxTable   []TaxBracketResponse `json:"tax_brackets"`
}

type CurrentVersionResponse struct {
	ID            string                `json:"id"`
	EffectiveFrom string                `json:"effective_from"`
	Data          ParameterDataResponse `json:"data"`
}

type ReferencesAtCalculation struct {
	UFCLP        decimal.Decimal `json:"uf_clp"`
	UFDate       string          `json:"uf_date"`
	UTMCLP       decimal.Decimal `json:"utm_clp"`
	UsedFallback bool            `json:"used_fallback_reference"`
}

type ParametersSnapshotResponse struct {
	References ReferencesAtCalculation `json:"references_at_calculation"`
}

type ParametersResponse struct {
	CurrentVersion     CurrentVersionResponse     `json:"current_version"`
	ParametersSnapshot ParametersSnapshotResponse `json:"parameters_snapshot"`
}

// ========== ADMIN IMPORT DTOs ==========

// PublishVersionRequest - a full replacement legal parameter set taking
// effect on the given date. Earlier versions stay untouched so historical
// simulations remain reproducible.
type PublishVersionRequest struct {
	EffectiveFrom string        `json:"effective_from"`
	Data          ParameterData `json:"data"`
}

func (r *PublishVersionRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.EffectiveFrom); !ok {
		errs = append(errs, validator.ValidationError{Field: "effective_from", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if len(r.Data.AFP) == 0 {
		errs = append(errs, validator.ValidationError{Field: "data.afp", Message: "at least one AFP provider is required"})
	}
	for name, rates := range r.Data.AFP {
		if rates.BaseRate.IsNegative() || rates.CommissionRate.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: "data.afp." + name, Message: "rates must be non-negative"})
		}
	}
	// The statutory pension base is a single legal rate; a version with
	// provider-specific base rates is malformed input
	names := r.Data.AFPNames()
	for _, name := range names {
		if !r.Data.AFP[name].BaseRate.Equal(r.Data.AFP[names[0]].BaseRate) {
			errs = append(errs, validator.ValidationError{Field: "data.afp", Message: "base_rate must be uniform across providers"})
			break
		}
	}
	if len(r.Data.TaxBrackets) == 0 {
		errs = append(errs, validator.ValidationError{Field: "data.tax_brackets", Message: "at least one bracket is required"})
	}
	if !r.Data.Caps.PensionUF.IsPositive() || !r.Data.Caps.AFCUF.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "data.caps", Message: "caps must be positive"})
	}
	if !r.Data.MinimumWageCLP.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "data.minimum_wage_clp", Message: "must be positive"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpsertUFRequest struct {
	Date     string          `json:"date"`
	ValueCLP decimal.Decimal `json:"value_clp"`
}

func (r *UpsertUFRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if !r.ValueCLP.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "value_clp", Message: "must be positive"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpsertUTMRequest struct {
	Month    string          `json:"month"`
	ValueCLP decimal.Decimal `json:"value_clp"`
}

func (r *UpsertUTMRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidMonth(r.Month); !ok {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be a valid month (YYYY-MM)"})
	}
	if !r.ValueCLP.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "value_clp", Message: "must be positive"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// AFPNames returns the provider names of a version, sorted for stable output.
func (d ParameterData) AFPNames() []string {
	names := make([]string, 0, len(d.AFP))
	for name := range d.AFP {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ToResponse maps a stored version into the public parameters shape.
func (v ParameterVersion) ToResponse() CurrentVersionResponse {
	// Statutory base is uniform across providers (enforced on publish);
	// derive it from the first provider in sorted order
	commissions := make(map[string]AFPCommissionResponse, len(v.Data.AFP))
	baseRate := decimal.Zero
	for i, name := range v.Data.AFPNames() {
		if i == 0 {
			baseRate = v.Data.AFP[name].BaseRate
		}
		commissions[name] = AFPCommissionResponse{CommissionRate: v.Data.AFP[name].CommissionRate}
	}

	taxTable := make([]TaxBracketResponse, 0, len(v.Data.TaxBrackets))
	for _, b := range v.Data.TaxBrackets {
		row := TaxBracketResponse{Rate: b.Rate, RebateUTM: b.RebateUTM}
		if !b.UpperBoundUTM.IsZero() {
			bound := b.UpperBoundUTM
			row.UpperBoundUTM = &bound
		}
		taxTable = append(taxTable, row)
	}

	return CurrentVersionResponse{
		ID:            v.ID,
		EffectiveFrom: v.EffectiveFrom.Format("2006-01-02"),
		Data: ParameterDataResponse{
			AFP:        AFPResponse{BaseRate: baseRate, Commissions: commissions},
			Health:     v.Data.Health,
			AFC:        v.Data.AFC,
			SIS:        v.Data.SIS,
			WorkInjury: v.Data.WorkInjury,
			Caps:       v.Data.Caps,
			TaxTable:   taxTable,
		},
	}
}
