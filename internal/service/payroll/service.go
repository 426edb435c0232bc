package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gardops/gardops-backend-go/internal/config"
	"github.com/gardops/gardops-backend-go/internal/domain/params"
	"github.com/gardops/gardops-backend-go/internal/domain/simulation"
	"github.com/gardops/gardops-backend-go/internal/pkg/validator"
	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
)

type PayrollServiceImpl struct {
	paramRepo params.ParameterRepository
	refRepo   params.ReferenceRepository
	simRepo   simulation.SimulationRepository
	fallback  config.ReferenceConfig
}

func NewPayrollService(
	paramRepo params.ParameterRepository,
	refRepo params.ReferenceRepository,
	simRepo simulation.SimulationRepository,
	fallback config.ReferenceConfig,
) simulation.PayrollService {
	return &PayrollServiceImpl{
		paramRepo: paramRepo,
		refRepo:   refRepo,
		simRepo:   simRepo,
		fallback:  fallback,
	}
}

// Helper to get company_id and user_id from JWT context
func getClaimsFromContext(ctx context.Context) (companyID, userID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", "", fmt.Errorf("company_id claim is missing or invalid")
	}

	userID, _ = claims["user_id"].(string)

	return companyID, userID, nil
}

// resolveReferences loads the UF/UTM values in effect at the calculation
// date. A missing rate degrades to the configured approximate constant;
// the snapshot is flagged so the fallback is never silent.
func (s *PayrollServiceImpl) resolveReferences(ctx context.Context, at time.Time) (params.ReferenceSnapshot, error) {
	snapshot := params.ReferenceSnapshot{}

	uf, err := s.refRepo.GetUFAt(ctx, at)
	switch {
	case err == nil:
		snapshot.UFCLP = uf.ValueCLP
		snapshot.UFDate = uf.Date.Format("2006-01-02")
	case errors.Is(err, params.ErrStaleReference):
		slog.Warn("uf rate missing, using configured fallback", "date", at.Format("2006-01-02"))
		snapshot.UFCLP = s.fallback.FallbackUFCLP
		snapshot.UFDate = at.Format("2006-01-02")
		snapshot.UsedFallback = true
	default:
		return params.ReferenceSnapshot{}, err
	}

	month := time.Date(at.Year(), at.Month(), 1, 0, 0, 0, 0, time.UTC)
	utm, err := s.refRepo.GetUTMFor(ctx, month)
	switch {
	case err == nil:
		snapshot.UTMCLP = utm.ValueCLP
		snapshot.UTMMonth = utm.Month.Format("2006-01")
	case errors.Is(err, params.ErrStaleReference):
		slog.Warn("utm rate missing, using configured fallback", "month", month.Format("2006-01"))
		snapshot.UTMCLP = s.fallback.FallbackUTMCLP
		snapshot.UTMMonth = month.Format("2006-01")
		snapshot.UsedFallback = true
	default:
		return params.ReferenceSnapshot{}, err
	}

	return snapshot, nil
}

func (s *PayrollServiceImpl) Simulate(ctx context.Context, req simulation.SimulateRequest) (simulation.SimulateResponse, error) {
	if err := req.Validate(); err != nil {
		return simulation.SimulateResponse{}, err
	}

	companyID, userID, err := getClaimsFromContext(ctx)
	if err != nil {
		return simulation.SimulateResponse{}, err
	}

	now := time.Now().UTC()
	version, err := s.paramRepo.GetVersionForDate(ctx, now)
	if err != nil {
		return simulation.SimulateResponse{}, err
	}

	if _, ok := version.Data.AFP[strings.ToLower(req.AFPName)]; !ok {
		return simulation.SimulateResponse{}, validator.ValidationErrors{
			{Field: "afp_name", Message: "unknown AFP provider: " + req.AFPName},
		}
	}

	refs, err := s.resolveReferences(ctx, now)
	if err != nil {
		return simulation.SimulateResponse{}, err
	}

	result, err := Compute(req, version.Data, refs)
	if err != nil {
		return simulation.SimulateResponse{}, err
	}

	if !req.SaveSimulation {
		return result, nil
	}

	sim := simulation.Simulation{
		ID:        uuid.NewString(),
		CompanyID: companyID,
		CreatedBy: userID,
		Input:     req,
		Result:    result,
		ParametersSnapshot: simulation.ParametersSnapshot{
			ParameterVersionID: version.ID,
			EffectiveFrom:      version.EffectiveFrom.Format("2006-01-02"),
			Data:               version.Data,
			References:         refs,
		},
	}

	created, err := s.simRepo.Create(ctx, sim)
	if err != nil {
		return simulation.SimulateResponse{}, fmt.Errorf("%w: %v", simulation.ErrSnapshotPersist, err)
	}

	result.SimulationID = &created.ID
	return result, nil
}

func (s *PayrollServiceImpl) GetSimulation(ctx context.Context, id string) (simulation.SimulationDetailResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return simulation.SimulationDetailResponse{}, err
	}

	sim, err := s.simRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return simulation.SimulationDetailResponse{}, err
	}

	return simulation.SimulationDetailResponse{
		ID:                 sim.ID,
		Input:              sim.Input,
		Result:             sim.Result,
		ParametersSnapshot: sim.ParametersSnapshot,
		CreatedAt:          sim.CreatedAt.Format(time.RFC3339),
	}, nil
}

func (s *PayrollServiceImpl) ListSimulations(ctx context.Context, page, limit int) (simulation.ListSimulationsResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return simulation.ListSimulationsResponse{}, err
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	sims, total, err := s.simRepo.ListByCompany(ctx, companyID, page, limit)
	if err != nil {
		return simulation.ListSimulationsResponse{}, err
	}

	summaries := make([]simulation.SimulationSummary, 0, len(sims))
	for _, sim := range sims {
		summaries = append(summaries, simulation.SimulationSummary{
			ID:           sim.ID,
			NetSalary:    sim.Result.NetSalary,
			GrossSalary:  sim.Result.GrossSalary,
			AFPName:      sim.Input.AFPName,
			ContractType: string(sim.Input.ContractType),
			CreatedAt:    sim.CreatedAt.Format(time.RFC3339),
		})
	}

	return simulation.ListSimulationsResponse{
		Data:       summaries,
		TotalCount: total,
		Page:       page,
		Limit:      limit,
	}, nil
}

func (s *PayrollServiceImpl) ListParameterVersions(ctx context.Context) ([]params.CurrentVersionResponse, error) {
	versions, err := s.paramRepo.ListVersions(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]params.CurrentVersionResponse, 0, len(versions))
	for _, v := range versions {
		result = append(result, v.ToResponse())
	}
	return result, nil
}

func (s *PayrollServiceImpl) PublishParameterVersion(ctx context.Context, req params.PublishVersionRequest) (params.CurrentVersionResponse, error) {
	if err := req.Validate(); err != nil {
		return params.CurrentVersionResponse{}, err
	}

	effectiveFrom, _ := time.Parse("2006-01-02", req.EffectiveFrom)
	version := params.ParameterVersion{
		EffectiveFrom: effectiveFrom,
		Data:          req.Data,
	}

	created, err := s.paramRepo.CreateVersion(ctx, version)
	if err != nil {
		return params.CurrentVersionResponse{}, err
	}

	slog.Info("parameter version published",
		"version_id", created.ID,
		"effective_from", req.EffectiveFrom,
	)
	return created.ToResponse(), nil
}

func (s *PayrollServiceImpl) UpsertUFRate(ctx context.Context, req params.UpsertUFRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	date, _ := time.Parse("2006-01-02", req.Date)
	return s.refRepo.UpsertUF(ctx, params.UFRate{Date: date, ValueCLP: req.ValueCLP})
}

func (s *PayrollServiceImpl) UpsertUTMRate(ctx context.Context, req params.UpsertUTMRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	month, _ := time.Parse("2006-01", req.Month)
	return s.refRepo.UpsertUTM(ctx, params.UTMRate{Month: month, ValueCLP: req.ValueCLP})
}

func (s *PayrollServiceImpl) GetParameters(ctx context.Context) (params.ParametersResponse, error) {
	if _, _, err := getClaimsFromContext(ctx); err != nil {
		return params.ParametersResponse{}, err
	}

	now := time.Now().UTC()
	version, err := s.paramRepo.GetVersionForDate(ctx, now)
	if err != nil {
		return params.ParametersResponse{}, err
	}

	refs, err := s.resolveReferences(ctx, now)
	if err != nil {
		return params.ParametersResponse{}, err
	}

	return params.ParametersResponse{
		CurrentVersion: version.ToResponse(),
		ParametersSnapshot: params.ParametersSnapshotResponse{
			References: params.ReferencesAtCalculation{
				UFCLP:        refs.UFCLP,
				UFDate:       refs.UFDate,
				UTMCLP:       refs.UTMCLP,
				UsedFallback: refs.UsedFallback,
			},
		},
	}, nil
}
