package service

import (
	"io"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/efreitasn/papertrade/internal/domain"
	"github.com/efreitasn/papertrade/internal/engine"
	"github.com/efreitasn/papertrade/internal/store"
)

type testServices struct {
	accounts *AccountService
	trades   *TradeService
	stocks   *StockService
	tokens   *TokenIssuer

	accountStore *store.AccountStore
	stockStore   *store.StockStore
	log          *store.TransactionLog
}

func newTestServices() *testServices {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	log := store.NewTransactionLog()
	as := store.NewAccountStore(log)
	ss := store.NewStockStore()
	tokens := NewTokenIssuer("test-secret", time.Hour)

	accounts := NewAccountService(as, tokens, 1000000)
	accounts.hashCost = bcrypt.MinCost

	return &testServices{
		accounts:     accounts,
		trades:       NewTradeService(engine.NewSettlement(as, ss, 3, logger), as, log),
		stocks:       NewStockService(ss),
		tokens:       tokens,
		accountStore: as,
		stockStore:   ss,
		log:          log,
	}
}

func testCatalog() []domain.Stock {
	return []domain.Stock{
		{Symbol: "TECH", Name: "Tech Innovations Inc.", Sector: "Technology", Price: 10000},
		{Symbol: "OIL", Name: "Global Oil Co.", Sector: "Energy", Price: 5000},
	}
}
