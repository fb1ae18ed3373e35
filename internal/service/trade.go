package service

import (
	"context"
	"fmt"
	"math"

	"github.com/efreitasn/papertrade/internal/domain"
	"github.com/efreitasn/papertrade/internal/engine"
)

const (
	maxHistoryLimit = 1000
	maxHistoryPage  = math.MaxInt / maxHistoryLimit
)

// TradeRequest is the input for a buy or sell.
type TradeRequest struct {
	AccountID string
	Symbol    string
	Shares    int64
}

// HistoryPage is one page of an account's transactions, newest first.
type HistoryPage struct {
	Transactions []*domain.Transaction
	Total        int
	Page         int
	Limit        int // 0 means every transaction was returned
}

// TradeService validates trade requests, hands them to the settlement
// engine and serves transaction history.
type TradeService struct {
	settlement *engine.Settlement
	accounts   domain.AccountStore
	history    domain.TransactionReader
}

// NewTradeService creates a new TradeService.
func NewTradeService(settlement *engine.Settlement, accounts domain.AccountStore, history domain.TransactionReader) *TradeService {
	return &TradeService{
		settlement: settlement,
		accounts:   accounts,
		history:    history,
	}
}

// Buy settles a purchase.
func (s *TradeService) Buy(ctx context.Context, req TradeRequest) (*engine.Result, error) {
	if err := validateTrade(req); err != nil {
		return nil, err
	}
	return s.settlement.Buy(ctx, req.AccountID, req.Symbol, req.Shares)
}

// Sell settles a sale.
func (s *TradeService) Sell(ctx context.Context, req TradeRequest) (*engine.Result, error) {
	if err := validateTrade(req); err != nil {
		return nil, err
	}
	return s.settlement.Sell(ctx, req.AccountID, req.Symbol, req.Shares)
}

func validateTrade(req TradeRequest) error {
	if req.AccountID == "" {
		return &domain.ValidationError{Message: "accountId is required"}
	}
	if req.Symbol == "" {
		return &domain.ValidationError{Message: "symbol is required"}
	}
	if req.Shares < 1 {
		return &domain.ValidationError{Message: "shares must be >= 1"}
	}
	return nil
}

// History returns a page of the account's transactions, newest first.
// page is 1-based; a limit of 0 returns the whole history.
func (s *TradeService) History(ctx context.Context, accountID string, page, limit int) (*HistoryPage, error) {
	if page < 1 || page > maxHistoryPage {
		return nil, &domain.ValidationError{
			Message: fmt.Sprintf("page must be between 1 and %d", maxHistoryPage),
		}
	}
	if limit < 0 || limit > maxHistoryLimit {
		return nil, &domain.ValidationError{
			Message: fmt.Sprintf("limit must be between 0 and %d", maxHistoryLimit),
		}
	}

	if _, err := s.accounts.Get(ctx, accountID); err != nil {
		return nil, err
	}

	txns, total, err := s.history.ListByAccount(ctx, accountID, page, limit)
	if err != nil {
		return nil, err
	}
	return &HistoryPage{
		Transactions: txns,
		Total:        total,
		Page:         page,
		Limit:        limit,
	}, nil
}
