package broadcast

import (
	"encoding/json"
	"time"

	"github.com/efreitasn/papertrade/internal/domain"
)

// EventStockPricesUpdate names the event pushed after every price tick.
const EventStockPricesUpdate = "stock_prices_update"

// StockPayload is the wire view of a stock. Money is in dollars.
type StockPayload struct {
	Symbol       string    `json:"symbol"`
	Name         string    `json:"name"`
	Sector       string    `json:"sector"`
	CurrentPrice float64   `json:"currentPrice"`
	DailyChange  float64   `json:"dailyChange"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Event is the envelope pushed to every observer.
type Event struct {
	Event  string         `json:"event"`
	Data   []StockPayload `json:"data"`
	SentAt time.Time      `json:"sentAt"`
}

// NewStockPayload converts a domain stock to its wire view.
func NewStockPayload(st domain.Stock) StockPayload {
	return StockPayload{
		Symbol:       st.Symbol,
		Name:         st.Name,
		Sector:       st.Sector,
		CurrentPrice: domain.CentsToDollars(st.Price),
		DailyChange:  domain.CentsToDollars(st.DailyChange),
		UpdatedAt:    st.UpdatedAt,
	}
}

// EncodeSnapshot builds the stock_prices_update event for stocks.
func EncodeSnapshot(stocks []domain.Stock, sentAt time.Time) ([]byte, error) {
	data := make([]StockPayload, len(stocks))
	for i, st := range stocks {
		data[i] = NewStockPayload(st)
	}
	return json.Marshal(Event{
		Event:  EventStockPricesUpdate,
		Data:   data,
		SentAt: sentAt.UTC(),
	})
}
