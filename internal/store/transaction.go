package store

import (
	"context"
	"math"
	"sync"

	"github.com/efreitasn/papertrade/internal/domain"
	"github.com/google/btree"
)

// txnItem is a TransactionLog index entry ordered by (account, seq).
type txnItem struct {
	accountID string
	seq       uint64
	txn       *domain.Transaction
}

func txnLess(a, b txnItem) bool {
	if a.accountID != b.accountID {
		return a.accountID < b.accountID
	}
	return a.seq < b.seq
}

// TransactionLog is a thread-safe, append-only in-memory log of settled
// transactions indexed by account and commit sequence.
type TransactionLog struct {
	mu     sync.RWMutex
	tree   *btree.BTreeG[txnItem]
	counts map[string]int // account_id → number of transactions
	seq    uint64
}

// NewTransactionLog creates an empty TransactionLog.
func NewTransactionLog() *TransactionLog {
	const degree = 32
	return &TransactionLog{
		tree:   btree.NewG[txnItem](degree, txnLess),
		counts: make(map[string]int),
	}
}

// append assigns the next sequence number to t and stores a copy.
func (l *TransactionLog) append(t *domain.Transaction) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.seq++
	t.Seq = l.seq
	c := *t
	l.tree.ReplaceOrInsert(txnItem{accountID: c.AccountID, seq: c.Seq, txn: &c})
	l.counts[c.AccountID]++
}

// ListByAccount returns an account's transactions newest first, i.e. in
// reverse commit order. Pagination is 1-based; a limit of 0 returns all.
// It also returns the total number of transactions for the account.
func (l *TransactionLog) ListByAccount(ctx context.Context, accountID string, page, limit int) ([]*domain.Transaction, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	total := l.counts[accountID]
	if page < 1 {
		page = 1
	}
	result := make([]*domain.Transaction, 0)
	skip := 0
	if limit > 0 {
		// Comparing page counts first keeps (page-1)*limit from overflowing.
		if page-1 > total/limit {
			return result, total, nil
		}
		skip = (page - 1) * limit
	}
	if skip >= total {
		return result, total, nil
	}

	hi := txnItem{accountID: accountID, seq: math.MaxUint64}
	lo := txnItem{accountID: accountID, seq: 0}
	l.tree.DescendRange(hi, lo, func(it txnItem) bool {
		if skip > 0 {
			skip--
			return true
		}
		c := *it.txn
		result = append(result, &c)
		return limit == 0 || len(result) < limit
	})

	return result, total, nil
}

// Len returns the total number of transactions in the log.
func (l *TransactionLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.tree.Len()
}

var _ domain.TransactionReader = (*TransactionLog)(nil)
