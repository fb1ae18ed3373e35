package handler

import (
	"time"

	"github.com/efreitasn/papertrade/internal/domain"
)

const timeFormat = "2006-01-02T15:04:05Z"

// holdingResponse is a single portfolio entry.
type holdingResponse struct {
	Symbol string `json:"symbol"`
	Shares int64  `json:"shares"`
}

// accountResponse is the public view of an account. The password hash is
// never serialized.
type accountResponse struct {
	ID        string            `json:"id"`
	Username  string            `json:"username"`
	Cash      float64           `json:"cash"`
	Portfolio []holdingResponse `json:"portfolio"`
	CreatedAt string            `json:"createdAt"`
}

// transactionResponse is a single entry of an account's history.
type transactionResponse struct {
	ID        string  `json:"id"`
	AccountID string  `json:"accountId"`
	Symbol    string  `json:"symbol"`
	Type      string  `json:"type"`
	Shares    int64   `json:"shares"`
	Price     float64 `json:"price"`
	Total     float64 `json:"total"`
	Timestamp string  `json:"timestamp"`
}

func newAccountResponse(a *domain.Account) accountResponse {
	portfolio := a.Portfolio()
	holdings := make([]holdingResponse, len(portfolio))
	for i, h := range portfolio {
		holdings[i] = holdingResponse{Symbol: h.Symbol, Shares: h.Shares}
	}
	return accountResponse{
		ID:        a.AccountID,
		Username:  a.Username,
		Cash:      domain.CentsToDollars(a.Cash),
		Portfolio: holdings,
		CreatedAt: formatTime(a.CreatedAt),
	}
}

func newTransactionResponse(t *domain.Transaction) transactionResponse {
	return transactionResponse{
		ID:        t.TransactionID,
		AccountID: t.AccountID,
		Symbol:    t.Symbol,
		Type:      string(t.Side),
		Shares:    t.Shares,
		Price:     domain.CentsToDollars(t.Price),
		Total:     domain.CentsToDollars(t.Total),
		Timestamp: formatTime(t.ExecutedAt),
	}
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeFormat)
}
