package engine

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"

	"github.com/efreitasn/papertrade/internal/domain"
)

// moveScale is the resolution of a drawn price move: 1e-7.
const moveScale = 7

// SnapshotPublisher receives the full catalog once per tick.
type SnapshotPublisher interface {
	Publish(stocks []domain.Stock)
}

// RandSource draws uniform integers in [0, n). *rand.Rand from
// math/rand/v2 satisfies it.
type RandSource interface {
	Int64N(n int64) int64
}

// SimulatorConfig configures the price random walk.
type SimulatorConfig struct {
	Interval time.Duration
	Floor    int64           // cents, lowest price a tick may produce
	MaxMove  decimal.Decimal // e.g. 0.05 for moves within [-5%, +5%]
}

// Simulator is the single writer of stock prices. On every tick it moves
// each price by a uniform random percentage and publishes the resulting
// catalog as one snapshot.
type Simulator struct {
	cfg       SimulatorConfig
	stocks    domain.StockStore
	publisher SnapshotPublisher
	logger    *slog.Logger
	now       func() time.Time

	rngMu sync.Mutex
	rng   RandSource
	bound int64 // MaxMove in units of 1e-7

	running atomic.Bool
}

// NewSimulator creates a Simulator. publisher may be nil.
func NewSimulator(cfg SimulatorConfig, stocks domain.StockStore, publisher SnapshotPublisher, rng RandSource, logger *slog.Logger) *Simulator {
	return &Simulator{
		cfg:       cfg,
		stocks:    stocks,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
		rng:       rng,
		bound:     cfg.MaxMove.Shift(moveScale).IntPart(),
	}
}

// Run ticks at the configured interval until ctx is cancelled. Each tick
// runs in its own goroutine; a tick that fires while the previous one is
// still running is skipped rather than queued. Run returns only after the
// tick in progress, if any, has finished.
func (s *Simulator) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	var wg sync.WaitGroup
	s.logger.Info("price simulator started", slog.Duration("interval", s.cfg.Interval))
	for {
		select {
		case <-ctx.Done():
			wg.Wait()
			s.logger.Info("price simulator stopped")
			return nil
		case <-ticker.C:
			wg.Add(1)
			go func() {
				defer wg.Done()
				s.tryTick(ctx)
			}()
		}
	}
}

// tryTick runs a tick unless one is already in progress. It reports
// whether the tick ran.
func (s *Simulator) tryTick(ctx context.Context) bool {
	if !s.running.CompareAndSwap(false, true) {
		s.logger.Debug("previous tick still running, skipping")
		return false
	}
	defer s.running.Store(false)

	tickCtx, cancel := context.WithTimeout(ctx, s.cfg.Interval)
	defer cancel()

	_, _ = s.Tick(tickCtx)
	return true
}

// Tick moves every stock's price once and publishes the catalog. A stock
// whose update fails keeps its previous values in the snapshot and the
// tick carries on with the rest. Only a failure to read the catalog
// aborts the tick, in which case nothing is published.
func (s *Simulator) Tick(ctx context.Context) ([]domain.Stock, error) {
	stocks, err := s.stocks.List(ctx)
	if err != nil {
		s.logger.Error("price tick: list stocks failed", slog.String("error", err.Error()))
		return nil, err
	}

	now := s.now()
	snapshot := make([]domain.Stock, 0, len(stocks))
	for _, st := range stocks {
		price, change := s.nextPrice(st.Price)
		if err := s.stocks.UpdatePrice(ctx, st.Symbol, price, change, now); err != nil {
			s.logger.Warn("price tick: update failed, stock skipped",
				slog.String("symbol", st.Symbol),
				slog.String("error", err.Error()),
			)
			snapshot = append(snapshot, st)
			continue
		}
		st.Price = price
		st.DailyChange = change
		st.UpdatedAt = now
		snapshot = append(snapshot, st)
	}

	if s.publisher != nil {
		s.publisher.Publish(snapshot)
	}
	return snapshot, nil
}

// nextPrice applies one random move to old and returns the new price and
// its difference from old, both in cents.
func (s *Simulator) nextPrice(old int64) (price, change int64) {
	factor := decimal.NewFromInt(1).Add(s.drawMove())
	price = domain.DecimalToCents(domain.CentsToDecimal(old).Mul(factor))
	if price < s.cfg.Floor {
		price = s.cfg.Floor
	}
	return price, price - old
}

// drawMove returns a uniform fraction in the closed interval
// [-MaxMove, +MaxMove].
func (s *Simulator) drawMove() decimal.Decimal {
	if s.bound <= 0 {
		return decimal.Zero
	}
	s.rngMu.Lock()
	k := s.rng.Int64N(2*s.bound+1) - s.bound
	s.rngMu.Unlock()
	return decimal.New(k, -moveScale)
}
