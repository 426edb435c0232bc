package payroll

import (
	"context"
	"testing"
	"time"

	"github.com/gardops/gardops-backend-go/internal/config"
	"github.com/gardops/gardops-backend-go/internal/domain/params"
	"github.com/gardops/gardops-backend-go/internal/domain/simulation"
	"github.com/gardops/gardops-backend-go/internal/fixtures"
	"github.com/go-chi/jwtauth/v5"
	jwxjwt "github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ===== STUBS =====

type stubParameterRepo struct {
	version params.ParameterVersion
	err     error
}

func (s *stubParameterRepo) GetVersionForDate(_ context.Context, _ time.Time) (params.ParameterVersion, error) {
	return s.version, s.err
}

func (s *stubParameterRepo) CreateVersion(_ context.Context, v params.ParameterVersion) (params.ParameterVersion, error) {
	return v, nil
}

func (s *stubParameterRepo) ListVersions(_ context.Context) ([]params.ParameterVersion, error) {
	return []params.ParameterVersion{s.version}, nil
}

type stubReferenceRepo struct {
	uf     params.UFRate
	ufErr  error
	utm    params.UTMRate
	utmErr error
}

func (s *stubReferenceRepo) GetUFAt(_ context.Context, _ time.Time) (params.UFRate, error) {
	return s.uf, s.ufErr
}

func (s *stubReferenceRepo) GetUTMFor(_ context.Context, _ time.Time) (params.UTMRate, error) {
	return s.utm, s.utmErr
}

func (s *stubReferenceRepo) UpsertUF(_ context.Context, _ params.UFRate) error { return nil }
func (s *stubReferenceRepo) UpsertUTM(_ context.Context, _ params.UTMRate) error { return nil }

type stubSimulationRepo struct {
	created *simulation.Simulation
	err     error
}

func (s *stubSimulationRepo) Create(_ context.Context, sim simulation.Simulation) (simulation.Simulation, error) {
	if s.err != nil {
		return simulation.Simulation{}, s.err
	}
	s.created = &sim
	return sim, nil
}

func (s *stubSimulationRepo) GetByID(_ context.Context, _, _ string) (simulation.Simulation, error) {
	return simulation.Simulation{}, simulation.ErrSimulationNotFound
}

func (s *stubSimulationRepo) ListByCompany(_ context.Context, _ string, _, _ int) ([]simulation.Simulation, int64, error) {
	return nil, 0, nil
}

func testFallbackConfig() config.ReferenceConfig {
	return config.ReferenceConfig{
		FallbackUFCLP:  decimal.NewFromFloat(39703.50),
		FallbackUTMCLP: decimal.NewFromInt(69611),
	}
}

func newTestService(paramRepo params.ParameterRepository, refRepo params.ReferenceRepository, simRepo simulation.SimulationRepository) *PayrollServiceImpl {
	return &PayrollServiceImpl{
		paramRepo: paramRepo,
		refRepo:   refRepo,
		simRepo:   simRepo,
		fallback:  testFallbackConfig(),
	}
}

func claimsContext(t *testing.T, companyID, userID string) context.Context {
	t.Helper()
	tok := jwxjwt.New()
	require.NoError(t, tok.Set("company_id", companyID))
	require.NoError(t, tok.Set("user_id", userID))
	return jwtauth.NewContext(context.Background(), tok, nil)
}

// ===== REFERENCE RESOLUTION =====

func TestResolveReferences_FreshRates(t *testing.T) {
	t.Parallel()
	at := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	refRepo := &stubReferenceRepo{
		uf:  params.UFRate{Date: at, ValueCLP: decimal.NewFromFloat(39820.10)},
		utm: params.UTMRate{Month: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), ValueCLP: decimal.NewFromInt(69900)},
	}
	svc := newTestService(&stubParameterRepo{}, refRepo, &stubSimulationRepo{})

	snapshot, err := svc.resolveReferences(context.Background(), at)
	require.NoError(t, err)

	assert.True(t, snapshot.UFCLP.Equal(decimal.NewFromFloat(39820.10)))
	assert.True(t, snapshot.UTMCLP.Equal(decimal.NewFromInt(69900)))
	assert.Equal(t, "2026-01-15", snapshot.UFDate)
	assert.Equal(t, "2026-01", snapshot.UTMMonth)
	assert.False(t, snapshot.UsedFallback)
}

func TestResolveReferences_StaleRatesUseConfiguredFallback(t *testing.T) {
	t.Parallel()
	refRepo := &stubReferenceRepo{
		ufErr:  params.ErrStaleReference,
		utmErr: params.ErrStaleReference,
	}
	svc := newTestService(&stubParameterRepo{}, refRepo, &stubSimulationRepo{})

	at := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	snapshot, err := svc.resolveReferences(context.Background(), at)
	require.NoError(t, err)

	assert.True(t, snapshot.UFCLP.Equal(decimal.NewFromFloat(39703.50)))
	assert.True(t, snapshot.UTMCLP.Equal(decimal.NewFromInt(69611)))
	assert.True(t, snapshot.UsedFallback)
}

func TestResolveReferences_MissingUTMMonthIsFlagged(t *testing.T) {
	t.Parallel()
	// UF present, UTM missing for the month: the computation proceeds on
	// the configured constant and says so, it never borrows another
	// month's value silently
	refRepo := &stubReferenceRepo{
		uf:     params.UFRate{Date: time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), ValueCLP: decimal.NewFromFloat(39820.10)},
		utmErr: params.ErrStaleReference,
	}
	svc := newTestService(&stubParameterRepo{}, refRepo, &stubSimulationRepo{})

	snapshot, err := svc.resolveReferences(context.Background(), time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.True(t, snapshot.UFCLP.Equal(decimal.NewFromFloat(39820.10)))
	assert.True(t, snapshot.UTMCLP.Equal(decimal.NewFromInt(69611)))
	assert.Equal(t, "2026-01", snapshot.UTMMonth)
	assert.True(t, snapshot.UsedFallback)
}

// ===== SIMULATE =====

func TestSimulate_StaleReferencesFlagInResponse(t *testing.T) {
	t.Parallel()
	paramRepo := &stubParameterRepo{version: fixtures.DefaultParameterVersion()}
	refRepo := &stubReferenceRepo{ufErr: params.ErrStaleReference, utmErr: params.ErrStaleReference}
	simRepo := &stubSimulationRepo{}
	svc := newTestService(paramRepo, refRepo, simRepo)

	req := simulation.SimulateRequest{
		BaseSalaryCLP:  decimal.NewFromInt(550000),
		ContractType:   simulation.ContractIndefinite,
		AFPName:        "modelo",
		HealthSystem:   simulation.HealthFonasa,
		SaveSimulation: true,
	}

	result, err := svc.Simulate(claimsContext(t, "c-1", "u-1"), req)
	require.NoError(t, err)

	assert.True(t, result.UsedFallbackReference)
	require.NotNil(t, result.SimulationID)

	// The persisted snapshot carries the substituted constants and flag
	require.NotNil(t, simRepo.created)
	assert.Equal(t, "c-1", simRepo.created.CompanyID)
	assert.True(t, simRepo.created.ParametersSnapshot.References.UsedFallback)
	assert.True(t, simRepo.created.ParametersSnapshot.References.UTMCLP.Equal(decimal.NewFromInt(69611)))
}

func TestSimulate_SnapshotPersistFailure(t *testing.T) {
	t.Parallel()
	paramRepo := &stubParameterRepo{version: fixtures.DefaultParameterVersion()}
	refRepo := &stubReferenceRepo{
		uf:  params.UFRate{Date: time.Now().UTC(), ValueCLP: decimal.NewFromFloat(39703.50)},
		utm: params.UTMRate{Month: time.Now().UTC(), ValueCLP: decimal.NewFromInt(69611)},
	}
	simRepo := &stubSimulationRepo{err: assert.AnError}
	svc := newTestService(paramRepo, refRepo, simRepo)

	req := simulation.SimulateRequest{
		BaseSalaryCLP:  decimal.NewFromInt(550000),
		ContractType:   simulation.ContractIndefinite,
		AFPName:        "modelo",
		HealthSystem:   simulation.HealthFonasa,
		SaveSimulation: true,
	}

	_, err := svc.Simulate(claimsContext(t, "c-1", "u-1"), req)
	assert.ErrorIs(t, err, simulation.ErrSnapshotPersist)
}
