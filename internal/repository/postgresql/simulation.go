package postgresql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gardops/gardops-backend-go/internal/domain/simulation"
	"github.com/gardops/gardops-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type simulationRepository struct {
	db *database.DB
}

func NewSimulationRepository(db *database.DB) simulation.SimulationRepository {
	return &simulationRepository{db: db}
}

// Create inserts a snapshot row. Simulations are write-once: there is no
// update or delete statement anywhere in this repository.
func (r *simulationRepository) Create(ctx context.Context, sim simulation.Simulation) (simulation.Simulation, error) {
	q := GetQuerier(ctx, r.db)

	input, err := json.Marshal(sim.Input)
	if err != nil {
		return simulation.Simulation{}, fmt.Errorf("failed to encode simulation input: %w", err)
	}
	result, err := json.Marshal(sim.Result)
	if err != nil {
		return simulation.Simulation{}, fmt.Errorf("failed to encode simulation result: %w", err)
	}
	snapshot, err := json.Marshal(sim.ParametersSnapshot)
	if err != nil {
		return simulation.Simulation{}, fmt.Errorf("failed to encode parameters snapshot: %w", err)
	}

	query := `
		INSERT INTO payroll_simulations (id, company_id, created_by, input, result, parameters_snapshot)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err = q.QueryRow(ctx, query, sim.ID, sim.CompanyID, sim.CreatedBy, input, result, snapshot).
		Scan(&sim.ID, &sim.CreatedAt)
	if err != nil {
		return simulation.Simulation{}, fmt.Errorf("failed to create simulation: %w", err)
	}

	return sim, nil
}

func (r *simulationRepository) GetByID(ctx context.Context, id string, companyID string) (simulation.Simulation, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, created_by, input, result, parameters_snapshot, created_at
		FROM payroll_simulations
		WHERE id = $1 AND company_id = $2
	`

	var sim simulation.Simulation
	var input, result, snapshot []byte
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&sim.ID, &sim.CompanyID, &sim.CreatedBy, &input, &result, &snapshot, &sim.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return simulation.Simulation{}, simulation.ErrSimulationNotFound
		}
		return simulation.Simulation{}, fmt.Errorf("failed to get simulation: %w", err)
	}

	if err := json.Unmarshal(input, &sim.Input); err != nil {
		return simulation.Simulation{}, fmt.Errorf("failed to decode simulation input: %w", err)
	}
	if err := json.Unmarshal(result, &sim.Result); err != nil {
		return simulation.Simulation{}, fmt.Errorf("failed to decode simulation result: %w", err)
	}
	if err := json.Unmarshal(snapshot, &sim.ParametersSnapshot); err != nil {
		return simulation.Simulation{}, fmt.Errorf("failed to decode parameters snapshot: %w", err)
	}

	return sim, nil
}

func (r *simulationRepository) ListByCompany(ctx context.Context, companyID string, page, limit int) ([]simulation.Simulation, int64, error) {
	q := GetQuerier(ctx, r.db)

	var total int64
	countQuery := `SELECT COUNT(*) FROM payroll_simulations WHERE company_id = $1`
	if err := q.QueryRow(ctx, countQuery, companyID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count simulations: %w", err)
	}

	query := `
		SELECT id, company_id, created_by, input, result, created_at
		FROM payroll_simulations
		WHERE company_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := q.Query(ctx, query, companyID, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list simulations: %w", err)
	}
	defer rows.Close()

	var sims []simulation.Simulation
	for rows.Next() {
		var sim simulation.Simulation
		var input, result []byte
		if err := rows.Scan(&sim.ID, &sim.CompanyID, &sim.CreatedBy, &input, &result, &sim.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan simulation: %w", err)
		}
		if err := json.Unmarshal(input, &sim.Input); err != nil {
			return nil, 0, fmt.Errorf("failed to decode simulation input: %w", err)
		}
		if err := json.Unmarshal(result, &sim.Result); err != nil {
			return nil, 0, fmt.Errorf("failed to decode simulation result: %w", err)
		}
		sims = append(sims, sim)
	}

	return sims, total, rows.Err()
}
