package cpq

import (
	"context"
	"fmt"

	"github.com/gardops/gardops-backend-go/internal/domain/cpq"
	"github.com/gardops/gardops-backend-go/internal/pkg/database"
	"github.com/gardops/gardops-backend-go/internal/repository/postgresql"
	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
)

type CpqServiceImpl struct {
	db        *database.DB
	quoteRepo cpq.QuoteRepository
}

func NewCpqService(db *database.DB, quoteRepo cpq.QuoteRepository) cpq.CpqService {
	return &CpqServiceImpl{db: db, quoteRepo: quoteRepo}
}

func getCompanyFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", fmt.Errorf("company_id claim is missing or invalid")
	}

	return companyID, nil
}

func toQuoteResponse(q cpq.Quote) cpq.QuoteResponse {
	resp := cpq.QuoteResponse{
		ID:                       q.ID,
		ClientName:               q.ClientName,
		ContractMonths:           q.ContractMonths,
		MonthlyHours:             q.MonthlyHours,
		MarginPct:                q.MarginPct,
		FinancialRatePct:         q.FinancialRatePct,
		PolicyRatePct:            q.PolicyRatePct,
		PolicyContractMonths:     q.PolicyContractMonths,
		PolicyContractPct:        q.PolicyContractPct,
		BaseAdditionalCostsTotal: q.BaseAdditionalCostsTotal,
	}
	for _, p := range q.Positions {
		resp.Positions = append(resp.Positions, toPositionResponse(p))
	}
	return resp
}

func toPositionResponse(p cpq.Position) cpq.PositionResponse {
	return cpq.PositionResponse{
		ID:                  p.ID,
		Name:                p.Name,
		NumGuards:           p.NumGuards,
		BaseSalary:          p.BaseSalary,
		NetSalary:           p.NetSalary,
		EmployerCost:        p.EmployerCost,
		MonthlyPositionCost: p.MonthlyPositionCost,
	}
}

func (s *CpqServiceImpl) CreateQuote(ctx context.Context, req cpq.CreateQuoteRequest) (cpq.QuoteResponse, error) {
	if err := req.Validate(); err != nil {
		return cpq.QuoteResponse{}, err
	}

	companyID, err := getCompanyFromContext(ctx)
	if err != nil {
		return cpq.QuoteResponse{}, err
	}

	quote := cpq.Quote{
		CompanyID:                companyID,
		ClientName:               req.ClientName,
		ContractMonths:           req.ContractMonths,
		MonthlyHours:             req.MonthlyHours,
		MarginPct:                req.MarginPct,
		FinancialRatePct:         req.FinancialRatePct,
		PolicyRatePct:            req.PolicyRatePct,
		PolicyContractMonths:     req.PolicyContractMonths,
		PolicyContractPct:        req.PolicyContractPct,
		BaseAdditionalCostsTotal: req.BaseAdditionalCostsTotal,
	}

	created, err := s.quoteRepo.CreateQuote(ctx, quote)
	if err != nil {
		return cpq.QuoteResponse{}, err
	}

	return toQuoteResponse(created), nil
}

func (s *CpqServiceImpl) GetQuote(ctx context.Context, id string) (cpq.QuoteResponse, error) {
	companyID, err := getCompanyFromContext(ctx)
	if err != nil {
		return cpq.QuoteResponse{}, err
	}

	quote, err := s.quoteRepo.GetQuoteByID(ctx, id, companyID)
	if err != nil {
		return cpq.QuoteResponse{}, err
	}

	return toQuoteResponse(quote), nil
}

func (s *CpqServiceImpl) ListQuotes(ctx context.Context, page, limit int) ([]cpq.QuoteResponse, int64, error) {
	companyID, err := getCompanyFromContext(ctx)
	if err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	quotes, total, err := s.quoteRepo.ListQuotes(ctx, companyID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]cpq.QuoteResponse, 0, len(quotes))
	for _, q := range quotes {
		result = append(result, toQuoteResponse(q))
	}

	return result, total, nil
}

func (s *CpqServiceImpl) AddPosition(ctx context.Context, req cpq.AddPositionRequest) (cpq.PositionResponse, error) {
	if err := req.Validate(); err != nil {
		return cpq.PositionResponse{}, err
	}

	companyID, err := getCompanyFromContext(ctx)
	if err != nil {
		return cpq.PositionResponse{}, err
	}

	// The quote must exist and belong to the caller's company
	if _, err := s.quoteRepo.GetQuoteByID(ctx, req.QuoteID, companyID); err != nil {
		return cpq.PositionResponse{}, err
	}

	position := cpq.Position{
		QuoteID:             req.QuoteID,
		Name:                req.Name,
		NumGuards:           req.NumGuards,
		BaseSalary:          req.BaseSalary,
		NetSalary:           req.NetSalary,
		EmployerCost:        req.EmployerCost,
		MonthlyPositionCost: req.MonthlyPositionCost,
	}

	created, err := s.quoteRepo.AddPosition(ctx, position, companyID)
	if err != nil {
		return cpq.PositionResponse{}, err
	}

	return toPositionResponse(created), nil
}

func (s *CpqServiceImpl) ClonePosition(ctx context.Context, quoteID, positionID string) (cpq.PositionResponse, error) {
	companyID, err := getCompanyFromContext(ctx)
	if err != nil {
		return cpq.PositionResponse{}, err
	}

	// Read and re-insert atomically so the source cannot be deleted in
	// between
	var created cpq.Position
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		source, err := s.quoteRepo.GetPositionByID(txCtx, positionID, quoteID, companyID)
		if err != nil {
			return err
		}

		clone := cpq.Position{
			QuoteID:             source.QuoteID,
			Name:                source.Name + " (copia)",
			NumGuards:           source.NumGuards,
			BaseSalary:          source.BaseSalary,
			NetSalary:           source.NetSalary,
			EmployerCost:        source.EmployerCost,
			MonthlyPositionCost: source.MonthlyPositionCost,
		}

		created, err = s.quoteRepo.AddPosition(txCtx, clone, companyID)
		return err
	})
	if err != nil {
		return cpq.PositionResponse{}, err
	}

	return toPositionResponse(created), nil
}

func (s *CpqServiceImpl) DeletePosition(ctx context.Context, quoteID, positionID string) error {
	companyID, err := getCompanyFromContext(ctx)
	if err != nil {
		return err
	}

	return s.quoteRepo.DeletePosition(ctx, positionID, quoteID, companyID)
}

func (s *CpqServiceImpl) GetBreakdown(ctx context.Context, quoteID string) (cpq.QuoteBreakdownResponse, error) {
	companyID, err := getCompanyFromContext(ctx)
	if err != nil {
		return cpq.QuoteBreakdownResponse{}, err
	}

	quote, err := s.quoteRepo.GetQuoteByID(ctx, quoteID, companyID)
	if err != nil {
		return cpq.QuoteBreakdownResponse{}, err
	}

	return AllocateQuote(quote), nil
}
