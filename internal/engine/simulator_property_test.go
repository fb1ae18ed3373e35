package engine

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/efreitasn/papertrade/internal/domain"
	"github.com/efreitasn/papertrade/internal/store"
	"pgregory.net/rapid"
)

// A single move never exceeds the configured percentage (allowing the
// half cent lost to rounding) and never drops below the floor.
func TestProperty_MoveStaysWithinBoundAndFloor(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		old := rapid.Int64Range(1, 100000000).Draw(t, "old")
		floor := rapid.Int64Range(1, 500).Draw(t, "floor")
		seed := rapid.Uint64().Draw(t, "seed")

		cfg := SimulatorConfig{Floor: floor, MaxMove: decimal.RequireFromString("0.05")}
		sim := NewSimulator(cfg, store.NewStockStore(), nil, rand.New(rand.NewPCG(seed, seed^0x9e3779b9)), discardLogger)

		price, change := sim.nextPrice(old)
		if price < floor {
			t.Fatalf("price %d below floor %d", price, floor)
		}
		if change != price-old {
			t.Fatalf("change %d != price %d - old %d", change, price, old)
		}
		if price > floor {
			diff := change
			if diff < 0 {
				diff = -diff
			}
			// |new - old| <= old × 0.05 + 0.5 cent
			if 20*diff > old+10 {
				t.Fatalf("move from %d to %d exceeds 5%%", old, price)
			}
		}
	})
}

// Every tick publishes exactly one snapshot that matches what was stored.
func TestProperty_SnapshotMatchesStore(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ss := store.NewStockStore()
		n := rapid.IntRange(1, 10).Draw(t, "n")
		for i := 0; i < n; i++ {
			sym := string(rune('A'+i)) + "X"
			price := rapid.Int64Range(1, 1000000).Draw(t, "price")
			if err := ss.Insert(context.Background(), &domain.Stock{Symbol: sym, Name: sym, Price: price}); err != nil {
				t.Fatalf("insert: %v", err)
			}
		}

		pub := &recordingPublisher{}
		sim := NewSimulator(testSimConfig(), ss, pub, rand.New(rand.NewPCG(7, 11)), discardLogger)

		ticks := rapid.IntRange(1, 5).Draw(t, "ticks")
		for i := 0; i < ticks; i++ {
			if _, err := sim.Tick(context.Background()); err != nil {
				t.Fatalf("Tick: %v", err)
			}
		}
		if pub.count() != ticks {
			t.Fatalf("published %d snapshots, want %d", pub.count(), ticks)
		}

		stored, _ := ss.List(context.Background())
		snap := pub.last()
		if len(snap) != len(stored) {
			t.Fatalf("snapshot has %d stocks, store has %d", len(snap), len(stored))
		}
		for i := range stored {
			if snap[i].Symbol != stored[i].Symbol || snap[i].Price != stored[i].Price || snap[i].DailyChange != stored[i].DailyChange {
				t.Fatalf("snapshot[%d] = %+v, store = %+v", i, snap[i], stored[i])
			}
		}
	})
}
