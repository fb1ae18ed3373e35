package domain

import "time"

// Side indicates whether a transaction bought or sold shares.
type Side string

const (
	SideBuy  Side = "buy"
	SideSell Side = "sell"
)

// Transaction is an immutable record of one settled trade.
type Transaction struct {
	TransactionID string
	AccountID     string
	Symbol        string
	Side          Side
	Shares        int64
	Price         int64 // cents, the stock price at settlement
	Total         int64 // cents, Price × Shares
	ExecutedAt    time.Time
	Seq           uint64 // assigned by the log, strictly increasing in commit order
}
