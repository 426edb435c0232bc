package cpq

import "context"

type CpqService interface {
	CreateQuote(ctx context.Context, req CreateQuoteRequest) (QuoteResponse, error)
	GetQuote(ctx context.Context, id string) (QuoteResponse, error)
	ListQuotes(ctx context.Context, page, limit int) ([]QuoteResponse, int64, error)

	AddPosition(ctx context.Context, req AddPositionRequest) (PositionResponse, error)
	ClonePosition(ctx context.Context, quoteID, positionID string) (PositionResponse, error)
	DeletePosition(ctx context.Context, quoteID, positionID string) error

	// GetBreakdown runs the cost allocator over the quote's positions.
	GetBreakdown(ctx context.Context, quoteID string) (QuoteBreakdownResponse, error)
}
