// Package broadcast fans price snapshots out to connected observers.
package broadcast

import (
	"log/slog"
	"sync"
	"time"

	"github.com/efreitasn/papertrade/internal/domain"
)

// Observer receives encoded events from the Hub. Deliver must not block:
// it returns false when the message could not be queued, and the Hub then
// drops the observer.
type Observer interface {
	ID() string
	Deliver(msg []byte) bool
}

// dropper is implemented by observers holding resources that must be
// released once the Hub has dropped them.
type dropper interface {
	Dropped()
}

// Hub is the registry of currently connected observers. Joining does not
// replay anything; an observer only sees publishes made after it joined.
type Hub struct {
	mu        sync.RWMutex
	observers map[string]Observer
	logger    *slog.Logger
	now       func() time.Time
}

// NewHub creates an empty Hub.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		observers: make(map[string]Observer),
		logger:    logger,
		now:       time.Now,
	}
}

// Join registers o. An observer with the same ID replaces the old one.
func (h *Hub) Join(o Observer) {
	h.mu.Lock()
	h.observers[o.ID()] = o
	n := len(h.observers)
	h.mu.Unlock()

	h.logger.Info("broadcast: observer joined",
		slog.String("observer_id", o.ID()),
		slog.Int("observers", n),
	)
}

// Leave removes the observer with the given ID. Unknown IDs are ignored.
func (h *Hub) Leave(id string) {
	h.mu.Lock()
	_, ok := h.observers[id]
	delete(h.observers, id)
	n := len(h.observers)
	h.mu.Unlock()

	if ok {
		h.logger.Info("broadcast: observer left",
			slog.String("observer_id", id),
			slog.Int("observers", n),
		)
	}
}

// Count returns the number of connected observers.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.observers)
}

// Publish encodes the snapshot once and hands it to every observer
// connected at the time of the call. It never waits on a slow observer;
// an observer that cannot take the snapshot is removed from the Hub.
func (h *Hub) Publish(stocks []domain.Stock) {
	msg, err := EncodeSnapshot(stocks, h.now())
	if err != nil {
		h.logger.Error("broadcast: encode snapshot failed", slog.String("error", err.Error()))
		return
	}

	h.mu.RLock()
	targets := make([]Observer, 0, len(h.observers))
	for _, o := range h.observers {
		targets = append(targets, o)
	}
	h.mu.RUnlock()

	delivered := 0
	for _, o := range targets {
		if o.Deliver(msg) {
			delivered++
			continue
		}
		h.drop(o)
	}
	h.logger.Debug("broadcast: snapshot published",
		slog.Int("stocks", len(stocks)),
		slog.Int("delivered", delivered),
		slog.Int("observers", len(targets)),
	)
}

// drop removes o unless its ID has since been taken by another observer.
func (h *Hub) drop(o Observer) {
	h.mu.Lock()
	cur, ok := h.observers[o.ID()]
	removed := ok && cur == o
	if removed {
		delete(h.observers, o.ID())
	}
	n := len(h.observers)
	h.mu.Unlock()

	if !removed {
		return
	}
	h.logger.Warn("broadcast: dropping slow observer",
		slog.String("observer_id", o.ID()),
		slog.Int("observers", n),
	)
	if d, ok := o.(dropper); ok {
		d.Dropped()
	}
}
