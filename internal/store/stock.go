package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/efreitasn/papertrade/internal/domain"
	"github.com/google/btree"
)

func stockLess(a, b *domain.Stock) bool {
	return a.Symbol < b.Symbol
}

// StockStore is a thread-safe in-memory catalog of stocks ordered by
// symbol.
type StockStore struct {
	mu     sync.RWMutex
	stocks *btree.BTreeG[*domain.Stock]
}

// NewStockStore creates an empty StockStore.
func NewStockStore() *StockStore {
	const degree = 8
	return &StockStore{
		stocks: btree.NewG[*domain.Stock](degree, stockLess),
	}
}

// Seed inserts every stock of the catalog. It stops at the first error.
func (s *StockStore) Seed(ctx context.Context, catalog []domain.Stock) error {
	for i := range catalog {
		if err := s.Insert(ctx, &catalog[i]); err != nil {
			return fmt.Errorf("seed %s: %w", catalog[i].Symbol, err)
		}
	}
	return nil
}

// Insert adds a stock to the catalog. It returns
// domain.ErrStockAlreadyExists if the symbol is already present.
func (s *StockStore) Insert(ctx context.Context, st *domain.Stock) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	if !domain.ValidSymbol(st.Symbol) {
		return &domain.ValidationError{Message: fmt.Sprintf("symbol must match ^[A-Z]{1,10}$, got %q", st.Symbol)}
	}
	if st.Price <= 0 {
		return &domain.ValidationError{Message: fmt.Sprintf("price must be > 0 for symbol %s", st.Symbol)}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stocks.Has(st) {
		return domain.ErrStockAlreadyExists
	}
	c := *st
	s.stocks.ReplaceOrInsert(&c)
	return nil
}

// Get returns a copy of the stock with the given symbol, or
// domain.ErrStockNotFound.
func (s *StockStore) Get(ctx context.Context, symbol string) (*domain.Stock, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.stocks.Get(&domain.Stock{Symbol: symbol})
	if !ok {
		return nil, domain.ErrStockNotFound
	}
	c := *st
	return &c, nil
}

// List returns a copy of the whole catalog sorted by symbol.
func (s *StockStore) List(ctx context.Context) ([]domain.Stock, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Stock, 0, s.stocks.Len())
	s.stocks.Ascend(func(st *domain.Stock) bool {
		out = append(out, *st)
		return true
	})
	return out, nil
}

// UpdatePrice sets the current price and daily change of a stock.
func (s *StockStore) UpdatePrice(ctx context.Context, symbol string, price, dailyChange int64, at time.Time) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	if price <= 0 {
		return &domain.ValidationError{Message: fmt.Sprintf("price must be > 0 for symbol %s", symbol)}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.stocks.Get(&domain.Stock{Symbol: symbol})
	if !ok {
		return domain.ErrStockNotFound
	}
	st.Price = price
	st.DailyChange = dailyChange
	st.UpdatedAt = at
	return nil
}

var _ domain.StockStore = (*StockStore)(nil)
