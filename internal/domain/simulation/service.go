package simulation

import (
	"context"

	"github.com/gardops/gardops-backend-go/internal/domain/params"
)

type PayrollService interface {
	// Simulate runs the full payroll computation for the company's
	// current parameter version and optionally persists the snapshot.
	Simulate(ctx context.Context, req SimulateRequest) (SimulateResponse, error)
	GetSimulation(ctx context.Context, id string) (SimulationDetailResponse, error)
	ListSimulations(ctx context.Context, page, limit int) (ListSimulationsResponse, error)
	// GetParameters exposes the effective legal constants plus the
	// reference values a computation run now would use.
	GetParameters(ctx context.Context) (params.ParametersResponse, error)

	// Admin parameter import flow. Role enforcement happens in the
	// HTTP middleware; these only validate and persist.
	ListParameterVersions(ctx context.Context) ([]params.CurrentVersionResponse, error)
	PublishParameterVersion(ctx context.Context, req params.PublishVersionRequest) (params.CurrentVersionResponse, error)
	UpsertUFRate(ctx context.Context, req params.UpsertUFRequest) error
	UpsertUTMRate(ctx context.Context, req params.UpsertUTMRequest) error
}
