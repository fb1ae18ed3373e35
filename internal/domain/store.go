package domain

import (
	"context"
	"time"
)

// AccountStore persists accounts. Get returns a copy; callers change the
// copy and write it back with Commit.
type AccountStore interface {
	Create(ctx context.Context, a *Account) error
	Get(ctx context.Context, id string) (*Account, error)
	GetByUsername(ctx context.Context, username string) (*Account, error)

	// Commit atomically replaces the account and appends txn, but only if
	// the stored version still equals expectedVersion. Otherwise it returns
	// ErrVersionConflict and writes nothing.
	Commit(ctx context.Context, a *Account, expectedVersion int64, txn *Transaction) error
}

// StockStore persists the stock catalog.
type StockStore interface {
	Insert(ctx context.Context, s *Stock) error
	Get(ctx context.Context, symbol string) (*Stock, error)
	List(ctx context.Context) ([]Stock, error)

	// UpdatePrice sets the price and daily change of one stock.
	UpdatePrice(ctx context.Context, symbol string, price, dailyChange int64, at time.Time) error
}

// TransactionReader lists an account's transactions newest first.
// A limit of 0 returns every matching transaction.
type TransactionReader interface {
	ListByAccount(ctx context.Context, accountID string, page, limit int) ([]*Transaction, int, error)
}
