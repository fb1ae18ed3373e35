package service

import (
	"context"
	"fmt"

	"github.com/efreitasn/papertrade/internal/domain"
)

// StockService serves the stock catalog.
type StockService struct {
	stocks domain.StockStore
}

// NewStockService creates a new StockService.
func NewStockService(stocks domain.StockStore) *StockService {
	return &StockService{stocks: stocks}
}

// List returns every stock sorted by symbol.
func (s *StockService) List(ctx context.Context) ([]domain.Stock, error) {
	return s.stocks.List(ctx)
}

// Get returns one stock. The symbol is matched case-insensitively.
func (s *StockService) Get(ctx context.Context, symbol string) (*domain.Stock, error) {
	symbol = domain.NormalizeSymbol(symbol)
	if !domain.ValidSymbol(symbol) {
		return nil, &domain.ValidationError{
			Message: fmt.Sprintf("symbol must match ^[A-Z]{1,10}$, got %q", symbol),
		}
	}
	return s.stocks.Get(ctx, symbol)
}
