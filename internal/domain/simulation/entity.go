package simulation

import (
	"time"

	"github.com/gardops/gardops-backend-go/internal/domain/params"
)

// ContractType enum
type ContractType string

const (
	ContractIndefinite ContractType = "indefinite"
	ContractFixedTerm  ContractType = "fixed_term"
)

// HealthSystem enum
type HealthSystem string

const (
	HealthFonasa HealthSystem = "fonasa"
	HealthIsapre HealthSystem = "isapre"
)

// ParametersSnapshot - verbatim copy of the legal constants and reference
// rates a simulation was computed with. Stored alongside the result so
// re-running the same input against the snapshot reproduces the output.
type ParametersSnapshot struct {
	ParameterVersionID string                   `json:"parameter_version_id"`
	EffectiveFrom      string                   `json:"effective_from"`
	Data               params.ParameterData     `json:"data"`
	References         params.ReferenceSnapshot `json:"references_at_calculation"`
}

// Simulation - immutable record pairing a computed breakdown with the
// exact parameter version used. Write-once: corrections are new
// simulations, duplicates are valid and expected.
type Simulation struct {
	ID                 string
	CompanyID          string
	CreatedBy          string
	Input              SimulateRequest
	Result             SimulateResponse
	ParametersSnapshot ParametersSnapshot
	CreatedAt          time.Time
}
