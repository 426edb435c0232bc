package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gardops/gardops-backend-go/internal/domain/params"
	"github.com/gardops/gardops-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type parameterRepository struct {
	db *database.DB
}

func NewParameterRepository(db *database.DB) params.ParameterRepository {
	return &parameterRepository{db: db}
}

func (r *parameterRepository) GetVersionForDate(ctx context.Context, date time.Time) (params.ParameterVersion, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, effective_from, data, created_at
		FROM parameter_versions
		WHERE effective_from <= $1
		ORDER BY effective_from DESC
		LIMIT 1
	`

	var v params.ParameterVersion
	var data []byte
	err := q.QueryRow(ctx, query, date).Scan(&v.ID, &v.EffectiveFrom, &data, &v.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return params.ParameterVersion{}, params.ErrParameterVersionNotFound
		}
		return params.ParameterVersion{}, fmt.Errorf("failed to get parameter version: %w", err)
	}

	if err := json.Unmarshal(data, &v.Data); err != nil {
		return params.ParameterVersion{}, fmt.Errorf("failed to decode parameter data: %w", err)
	}

	return v, nil
}

func (r *parameterRepository) CreateVersion(ctx context.Context, version params.ParameterVersion) (params.ParameterVersion, error) {
	q := GetQuerier(ctx, r.db)

	data, err := json.Marshal(version.Data)
	if err != nil {
		return params.ParameterVersion{}, fmt.Errorf("failed to encode parameter data: %w", err)
	}

	query := `
		INSERT INTO parameter_versions (id, effective_from, data)
		VALUES (gen_random_uuid(), $1, $2)
		RETURNING id, effective_from, created_at
	`

	var v params.ParameterVersion
	err = q.QueryRow(ctx, query, version.EffectiveFrom, data).Scan(&v.ID, &v.EffectiveFrom, &v.CreatedAt)
	if err != nil {
		return params.ParameterVersion{}, fmt.Errorf("failed to create parameter version: %w", err)
	}
	v.Data = version.Data

	return v, nil
}

func (r *parameterRepository) ListVersions(ctx context.Context) ([]params.ParameterVersion, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, effective_from, data, created_at
		FROM parameter_versions
		ORDER BY effective_from DESC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list parameter versions: %w", err)
	}
	defer rows.Close()

	var versions []params.ParameterVersion
	for rows.Next() {
		var v params.ParameterVersion
		var data []byte
		if err := rows.Scan(&v.ID, &v.EffectiveFrom, &data, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan parameter version: %w", err)
		}
		if err := json.Unmarshal(data, &v.Data); err != nil {
			return nil, fmt.Errorf("failed to decode parameter data: %w", err)
		}
		versions = append(versions, v)
	}

	return versions, rows.Err()
}
