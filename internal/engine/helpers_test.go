package engine

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/efreitasn/papertrade/internal/domain"
	"github.com/efreitasn/papertrade/internal/store"
)

// tb is the subset of testing.TB that *rapid.T also implements.
type tb interface {
	Helper()
	Fatalf(format string, args ...any)
}

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type testLedger struct {
	engine   *Settlement
	accounts *store.AccountStore
	stocks   *store.StockStore
	log      *store.TransactionLog
}

func newTestLedger() *testLedger {
	log := store.NewTransactionLog()
	accounts := store.NewAccountStore(log)
	stocks := store.NewStockStore()
	return &testLedger{
		engine:   NewSettlement(accounts, stocks, 3, discardLogger),
		accounts: accounts,
		stocks:   stocks,
		log:      log,
	}
}

func (l *testLedger) addAccount(t tb, id string, cash int64, holdings map[string]int64) {
	t.Helper()
	a := domain.NewAccount(id, "user-"+id, nil, cash, time.Now())
	for sym, n := range holdings {
		a.Holdings[sym] = n
	}
	if err := l.accounts.Create(context.Background(), a); err != nil {
		t.Fatalf("create account %s: %v", id, err)
	}
}

func (l *testLedger) addStock(t tb, symbol string, price int64) {
	t.Helper()
	st := &domain.Stock{Symbol: symbol, Name: symbol + " Corp.", Sector: "Test", Price: price}
	if err := l.stocks.Insert(context.Background(), st); err != nil {
		t.Fatalf("insert stock %s: %v", symbol, err)
	}
}

func (l *testLedger) setPrice(t tb, symbol string, price int64) {
	t.Helper()
	if err := l.stocks.UpdatePrice(context.Background(), symbol, price, 0, time.Now()); err != nil {
		t.Fatalf("set price %s: %v", symbol, err)
	}
}

func (l *testLedger) account(t tb, id string) *domain.Account {
	t.Helper()
	a, err := l.accounts.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("get account %s: %v", id, err)
	}
	return a
}

func (l *testLedger) history(t tb, id string) []*domain.Transaction {
	t.Helper()
	txns, _, err := l.log.ListByAccount(context.Background(), id, 1, 0)
	if err != nil {
		t.Fatalf("history %s: %v", id, err)
	}
	return txns
}

// recordingPublisher records every snapshot it is handed.
type recordingPublisher struct {
	mu        sync.Mutex
	snapshots [][]domain.Stock
}

func (p *recordingPublisher) Publish(stocks []domain.Stock) {
	p.mu.Lock()
	defer p.mu.Unlock()
	c := make([]domain.Stock, len(stocks))
	copy(c, stocks)
	p.snapshots = append(p.snapshots, c)
}

func (p *recordingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.snapshots)
}

func (p *recordingPublisher) last() []domain.Stock {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.snapshots) == 0 {
		return nil
	}
	return p.snapshots[len(p.snapshots)-1]
}
