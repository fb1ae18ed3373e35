package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/efreitasn/papertrade/internal/broadcast"
	"github.com/efreitasn/papertrade/internal/service"
)

// StockHandler serves the stock catalog. Stocks are rendered with the
// same payload the push channel uses.
type StockHandler struct {
	stockSvc *service.StockService
}

// NewStockHandler creates a new StockHandler.
func NewStockHandler(stockSvc *service.StockService) *StockHandler {
	return &StockHandler{stockSvc: stockSvc}
}

// List handles GET /stocks.
func (h *StockHandler) List(w http.ResponseWriter, r *http.Request) {
	stocks, err := h.stockSvc.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	resp := make([]broadcast.StockPayload, len(stocks))
	for i, st := range stocks {
		resp[i] = broadcast.NewStockPayload(st)
	}
	WriteJSON(w, http.StatusOK, resp)
}

// Get handles GET /stocks/{symbol}.
func (h *StockHandler) Get(w http.ResponseWriter, r *http.Request) {
	st, err := h.stockSvc.Get(r.Context(), chi.URLParam(r, "symbol"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, broadcast.NewStockPayload(*st))
}
