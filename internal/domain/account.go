package domain

import (
	"sort"
	"time"
)

// Account is a user's cash balance and share holdings. Stores hand out
// copies; an Account value is only ever changed by the settlement engine
// and written back with Commit.
type Account struct {
	AccountID    string
	Username     string
	PasswordHash []byte
	Cash         int64            // cents
	Holdings     map[string]int64 // symbol → shares, always > 0
	Version      int64            // incremented on every commit
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Holding is a (symbol, shares) pair owned by an account.
type Holding struct {
	Symbol string
	Shares int64
}

// NewAccount returns an account with the given starting cash and no holdings.
func NewAccount(id, username string, passwordHash []byte, cash int64, now time.Time) *Account {
	return &Account{
		AccountID:    id,
		Username:     username,
		PasswordHash: passwordHash,
		Cash:         cash,
		Holdings:     make(map[string]int64),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Clone returns a deep copy of the account.
func (a *Account) Clone() *Account {
	c := *a
	c.Holdings = make(map[string]int64, len(a.Holdings))
	for sym, n := range a.Holdings {
		c.Holdings[sym] = n
	}
	if a.PasswordHash != nil {
		c.PasswordHash = append([]byte(nil), a.PasswordHash...)
	}
	return &c
}

// SharesOf returns the number of shares held for symbol, 0 if none.
func (a *Account) SharesOf(symbol string) int64 {
	return a.Holdings[symbol]
}

// AddShares adjusts the holding for symbol by delta. A holding that
// reaches zero is removed rather than kept as a zero entry.
func (a *Account) AddShares(symbol string, delta int64) {
	n := a.Holdings[symbol] + delta
	if n <= 0 {
		delete(a.Holdings, symbol)
		return
	}
	a.Holdings[symbol] = n
}

// Portfolio returns the holdings sorted by symbol.
func (a *Account) Portfolio() []Holding {
	out := make([]Holding, 0, len(a.Holdings))
	for sym, n := range a.Holdings {
		out = append(out, Holding{Symbol: sym, Shares: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Symbol < out[j].Symbol })
	return out
}
