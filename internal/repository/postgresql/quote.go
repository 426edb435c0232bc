package postgresql

import (
	"context"
	"fmt"

	"github.com/gardops/gardops-backend-go/internal/domain/cpq"
	"github.com/gardops/gardops-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type quoteRepository struct {
	db *database.DB
}

func NewQuoteRepository(db *database.DB) cpq.QuoteRepository {
	return &quoteRepository{db: db}
}

const quoteColumns = `id, company_id, client_name, contract_months, monthly_hours, margin_pct,
	financial_rate_pct, policy_rate_pct, policy_contract_months, policy_contract_pct,
	base_additional_costs_total, created_at, updated_at`

func scanQuote(row pgx.Row) (cpq.Quote, error) {
	var q cpq.Quote
	err := row.Scan(
		&q.ID, &q.CompanyID, &q.ClientName, &q.ContractMonths, &q.MonthlyHours, &q.MarginPct,
		&q.FinancialRatePct, &q.PolicyRatePct, &q.PolicyContractMonths, &q.PolicyContractPct,
		&q.BaseAdditionalCostsTotal, &q.CreatedAt, &q.UpdatedAt,
	)
	return q, err
}

func (r *quoteRepository) CreateQuote(ctx context.Context, quote cpq.Quote) (cpq.Quote, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO cpq_quotes (
			id, company_id, client_name, contract_months, monthly_hours, margin_pct,
			financial_rate_pct, policy_rate_pct, policy_contract_months, policy_contract_pct,
			base_additional_costs_total
		) VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + quoteColumns

	created, err := scanQuote(q.QueryRow(ctx, query,
		quote.CompanyID, quote.ClientName, quote.ContractMonths, quote.MonthlyHours, quote.MarginPct,
		quote.FinancialRatePct, quote.PolicyRatePct, quote.PolicyContractMonths, quote.PolicyContractPct,
		quote.BaseAdditionalCostsTotal,
	))
	if err != nil {
		return cpq.Quote{}, fmt.Errorf("failed to create quote: %w", err)
	}

	return created, nil
}

func (r *quoteRepository) GetQuoteByID(ctx context.Context, id string, companyID string) (cpq.Quote, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + quoteColumns + ` FROM cpq_quotes WHERE id = $1 AND company_id = $2`

	quote, err := scanQuote(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return cpq.Quote{}, cpq.ErrQuoteNotFound
		}
		return cpq.Quote{}, fmt.Errorf("failed to get quote: %w", err)
	}

	positions, err := r.listPositions(ctx, quote.ID)
	if err != nil {
		return cpq.Quote{}, err
	}
	quote.Positions = positions

	return quote, nil
}

func (r *quoteRepository) ListQuotes(ctx context.Context, companyID string, page, limit int) ([]cpq.Quote, int64, error) {
	q := GetQuerier(ctx, r.db)

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM cpq_quotes WHERE company_id = $1`, companyID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count quotes: %w", err)
	}

	query := `SELECT ` + quoteColumns + `
		FROM cpq_quotes
		WHERE company_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := q.Query(ctx, query, companyID, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list quotes: %w", err)
	}
	defer rows.Close()

	var quotes []cpq.Quote
	for rows.Next() {
		quote, err := scanQuote(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan quote: %w", err)
		}
		quotes = append(quotes, quote)
	}

	return quotes, total, rows.Err()
}

const positionColumns = `id, quote_id, name, num_guards, base_salary, net_salary,
	employer_cost, monthly_position_cost, created_at, updated_at`

func scanPosition(row pgx.Row) (cpq.Position, error) {
	var p cpq.Position
	err := row.Scan(
		&p.ID, &p.QuoteID, &p.Name, &p.NumGuards, &p.BaseSalary, &p.NetSalary,
		&p.EmployerCost, &p.MonthlyPositionCost, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

func (r *quoteRepository) listPositions(ctx context.Context, quoteID string) ([]cpq.Position, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + positionColumns + ` FROM cpq_positions WHERE quote_id = $1 ORDER BY created_at`

	rows, err := q.Query(ctx, query, quoteID)
	if err != nil {
		return nil, fmt.Errorf("failed to list positions: %w", err)
	}
	defer rows.Close()

	var positions []cpq.Position
	for rows.Next() {
		p, err := scanPosition(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan position: %w", err)
		}
		positions = append(positions, p)
	}

	return positions, rows.Err()
}

func (r *quoteRepository) AddPosition(ctx context.Context, position cpq.Position, companyID string) (cpq.Position, error) {
	q := GetQuerier(ctx, r.db)

	// The quote ownership check rides along in the INSERT so a foreign
	// quote id cannot be targeted even with a valid position payload.
	query := `
		INSERT INTO cpq_positions (id, quote_id, name, num_guards, base_salary, net_salary, employer_cost, monthly_position_cost)
		SELECT gen_random_uuid(), q.id, $3, $4, $5, $6, $7, $8
		FROM cpq_quotes q
		WHERE q.id = $1 AND q.company_id = $2
		RETURNING ` + positionColumns

	created, err := scanPosition(q.QueryRow(ctx, query,
		position.QuoteID, companyID, position.Name, position.NumGuards,
		position.BaseSalary, position.NetSalary, position.EmployerCost, position.MonthlyPositionCost,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return cpq.Position{}, cpq.ErrQuoteNotFound
		}
		return cpq.Position{}, fmt.Errorf("failed to add position: %w", err)
	}

	return created, nil
}

func (r *quoteRepository) GetPositionByID(ctx context.Context, id string, quoteID string, companyID string) (cpq.Position, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT p.id, p.quote_id, p.name, p.num_guards, p.base_salary, p.net_salary,
			p.employer_cost, p.monthly_position_cost, p.created_at, p.updated_at
		FROM cpq_positions p
		JOIN cpq_quotes q ON q.id = p.quote_id
		WHERE p.id = $1 AND p.quote_id = $2 AND q.company_id = $3
	`

	position, err := scanPosition(q.QueryRow(ctx, query, id, quoteID, companyID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return cpq.Position{}, cpq.ErrPositionNotFound
		}
		return cpq.Position{}, fmt.Errorf("failed to get position: %w", err)
	}

	return position, nil
}

func (r *quoteRepository) DeletePosition(ctx context.Context, id string, quoteID string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM cpq_positions p
		USING cpq_quotes q
		WHERE p.id = $1 AND p.quote_id = $2 AND q.id = p.quote_id AND q.company_id = $3
	`

	tag, err := q.Exec(ctx, query, id, quoteID, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete position: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return cpq.ErrPositionNotFound
	}

	return nil
}
