package cpq

import "context"

// QuoteRepository defines data access for quotes and their positions.
// All methods take companyID to prevent cross-company data access.
type QuoteRepository interface {
	CreateQuote(ctx context.Context, quote Quote) (Quote, error)
	GetQuoteByID(ctx context.Context, id string, companyID string) (Quote, error)
	ListQuotes(ctx context.Context, companyID string, page, limit int) ([]Quote, int64, error)

	AddPosition(ctx context.Context, position Position, companyID string) (Position, error)
	GetPositionByID(ctx context.Context, id string, quoteID string, companyID string) (Position, error)
	DeletePosition(ctx context.Context, id string, quoteID string, companyID string) error
}
