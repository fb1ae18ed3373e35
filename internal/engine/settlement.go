package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/efreitasn/papertrade/internal/domain"
)

// StockLookup is the read side of the stock catalog needed for settlement.
type StockLookup interface {
	Get(ctx context.Context, symbol string) (*domain.Stock, error)
}

// Result is the outcome of a successful settlement.
type Result struct {
	Account     *domain.Account
	Transaction *domain.Transaction
}

// Settlement validates buys and sells and applies them to accounts.
//
// At most one settlement per account is in flight at a time: the
// per-account lock is held across load, validate and commit. The commit
// itself is conditional on the account version that was loaded, so a
// writer outside this engine can never be overwritten with a stale
// balance; such a conflict is retried from a fresh read.
type Settlement struct {
	accounts domain.AccountStore
	stocks   StockLookup
	locks    *keyedMutex
	attempts int
	now      func() time.Time
	logger   *slog.Logger
}

// NewSettlement creates a settlement engine. attempts is the number of
// times a commit is tried when it loses a version race (minimum 1).
func NewSettlement(accounts domain.AccountStore, stocks StockLookup, attempts int, logger *slog.Logger) *Settlement {
	if attempts < 1 {
		attempts = 1
	}
	return &Settlement{
		accounts: accounts,
		stocks:   stocks,
		locks:    newKeyedMutex(),
		attempts: attempts,
		now:      time.Now,
		logger:   logger,
	}
}

// Buy purchases shares of symbol for the account at the stock's current
// price. It fails with domain.ErrInsufficientFunds when cash < price × shares.
func (s *Settlement) Buy(ctx context.Context, accountID, symbol string, shares int64) (*Result, error) {
	return s.settle(ctx, domain.SideBuy, accountID, symbol, shares)
}

// Sell sells shares of symbol from the account at the stock's current
// price. It fails with domain.ErrInsufficientShares when the account holds
// fewer than shares, including when it holds none.
func (s *Settlement) Sell(ctx context.Context, accountID, symbol string, shares int64) (*Result, error) {
	return s.settle(ctx, domain.SideSell, accountID, symbol, shares)
}

func (s *Settlement) settle(ctx context.Context, side domain.Side, accountID, symbol string, shares int64) (*Result, error) {
	if shares < 1 {
		return nil, &domain.ValidationError{Message: "shares must be >= 1"}
	}
	symbol = domain.NormalizeSymbol(symbol)

	unlock := s.locks.Lock(accountID)
	defer unlock()

	for attempt := 1; ; attempt++ {
		res, err := s.apply(ctx, side, accountID, symbol, shares)
		if !errors.Is(err, domain.ErrVersionConflict) {
			if err == nil {
				s.logger.Info("trade settled",
					slog.String("account_id", accountID),
					slog.String("side", string(side)),
					slog.String("symbol", symbol),
					slog.Int64("shares", shares),
					slog.Int64("price_cents", res.Transaction.Price),
				)
			}
			return res, err
		}
		if attempt >= s.attempts {
			return nil, fmt.Errorf("%w: account %s changed during settlement", domain.ErrPersistence, accountID)
		}
		s.logger.Debug("settlement version conflict, retrying",
			slog.String("account_id", accountID),
			slog.Int("attempt", attempt),
		)
	}
}

// apply runs one read-validate-commit pass. A failed validation returns
// before anything is written.
func (s *Settlement) apply(ctx context.Context, side domain.Side, accountID, symbol string, shares int64) (*Result, error) {
	acct, err := s.accounts.Get(ctx, accountID)
	if err != nil {
		return nil, storeError(err)
	}
	stock, err := s.stocks.Get(ctx, symbol)
	if err != nil {
		return nil, storeError(err)
	}

	if stock.Price <= 0 {
		return nil, fmt.Errorf("%w: stock %s has no valid price", domain.ErrPersistence, symbol)
	}
	if shares > math.MaxInt64/stock.Price {
		return nil, &domain.ValidationError{Message: "shares is too large"}
	}
	total := stock.Price * shares
	expected := acct.Version

	switch side {
	case domain.SideBuy:
		if acct.Cash < total {
			return nil, domain.ErrInsufficientFunds
		}
		acct.Cash -= total
		acct.AddShares(symbol, shares)
	case domain.SideSell:
		if acct.SharesOf(symbol) < shares {
			return nil, domain.ErrInsufficientShares
		}
		if acct.Cash > math.MaxInt64-total {
			return nil, &domain.ValidationError{Message: "sale would exceed the maximum cash balance"}
		}
		acct.Cash += total
		acct.AddShares(symbol, -shares)
	}

	now := s.now()
	acct.UpdatedAt = now
	txn := &domain.Transaction{
		TransactionID: uuid.New().String(),
		AccountID:     accountID,
		Symbol:        symbol,
		Side:          side,
		Shares:        shares,
		Price:         stock.Price,
		Total:         total,
		ExecutedAt:    now,
	}

	if err := s.accounts.Commit(ctx, acct, expected, txn); err != nil {
		return nil, storeError(err)
	}
	return &Result{Account: acct, Transaction: txn}, nil
}

// storeError passes domain errors through and classifies anything else
// coming out of a store as a persistence failure.
func storeError(err error) error {
	switch {
	case domain.IsNotFound(err),
		errors.Is(err, domain.ErrVersionConflict),
		errors.Is(err, domain.ErrPersistence):
		return err
	}
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		return err
	}
	return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
}
