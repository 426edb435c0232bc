package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/gardops/gardops-backend-go/internal/domain/params"
	"github.com/gardops/gardops-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type referenceRepository struct {
	db *database.DB
}

func NewReferenceRepository(db *database.DB) params.ReferenceRepository {
	return &referenceRepository{db: db}
}

func (r *referenceRepository) GetUFAt(ctx context.Context, date time.Time) (params.UFRate, error) {
	q := GetQuerier(ctx, r.db)

	// UF is a daily index; fall back to the most recent earlier date
	query := `
		SELECT rate_date, value_clp
		FROM uf_rates
		WHERE rate_date <= $1
		ORDER BY rate_date DESC
		LIMIT 1
	`

	var rate params.UFRate
	err := q.QueryRow(ctx, query, date).Scan(&rate.Date, &rate.ValueCLP)
	if err != nil {
		if err == pgx.ErrNoRows {
			return params.UFRate{}, params.ErrStaleReference
		}
		return params.UFRate{}, fmt.Errorf("failed to get uf rate: %w", err)
	}

	return rate, nil
}

func (r *referenceRepository) GetUTMFor(ctx context.Context, month time.Time) (params.UTMRate, error) {
	q := GetQuerier(ctx, r.db)

	// UTM is published per calendar month and must match exactly; unlike
	// UF there is no earlier-value substitution. A missing month surfaces
	// as ErrStaleReference so the caller's fallback path engages.
	query := `
		SELECT month, value_clp
		FROM utm_rates
		WHERE month = $1
	`

	var rate params.UTMRate
	err := q.QueryRow(ctx, query, month).Scan(&rate.Month, &rate.ValueCLP)
	if err != nil {
		if err == pgx.ErrNoRows {
			return params.UTMRate{}, params.ErrStaleReference
		}
		return params.UTMRate{}, fmt.Errorf("failed to get utm rate: %w", err)
	}

	return rate, nil
}

func (r *referenceRepository) UpsertUF(ctx context.Context, rate params.UFRate) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO uf_rates (rate_date, value_clp)
		VALUES ($1, $2)
		ON CONFLICT (rate_date) DO UPDATE SET value_clp = EXCLUDED.value_clp
	`

	if _, err := q.Exec(ctx, query, rate.Date, rate.ValueCLP); err != nil {
		return fmt.Errorf("failed to upsert uf rate: %w", err)
	}
	return nil
}

func (r *referenceRepository) UpsertUTM(ctx context.Context, rate params.UTMRate) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO utm_rates (month, value_clp)
		VALUES ($1, $2)
		ON CONFLICT (month) DO UPDATE SET value_clp = EXCLUDED.value_clp
	`

	if _, err := q.Exec(ctx, query, rate.Month, rate.ValueCLP); err != nil {
		return fmt.Errorf("failed to upsert utm rate: %w", err)
	}
	return nil
}
