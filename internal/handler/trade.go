package handler

import (
	"context"
	"net/http"

	"github.com/efreitasn/papertrade/internal/engine"
	"github.com/efreitasn/papertrade/internal/service"
)

// TradeHandler handles HTTP requests for buy and sell.
type TradeHandler struct {
	tradeSvc *service.TradeService
}

// NewTradeHandler creates a new TradeHandler.
func NewTradeHandler(tradeSvc *service.TradeService) *TradeHandler {
	return &TradeHandler{tradeSvc: tradeSvc}
}

// tradeRequest is the JSON request body for POST /trade/buy and
// POST /trade/sell.
type tradeRequest struct {
	AccountID string `json:"accountId"`
	Symbol    string `json:"symbol"`
	Shares    int64  `json:"shares"`
}

// tradeResponse is the JSON response of a settled trade.
type tradeResponse struct {
	Message     string              `json:"message"`
	Account     accountResponse     `json:"account"`
	Transaction transactionResponse `json:"transaction"`
}

// Buy handles POST /trade/buy.
func (h *TradeHandler) Buy(w http.ResponseWriter, r *http.Request) {
	h.trade(w, r, h.tradeSvc.Buy, "Stock purchased successfully")
}

// Sell handles POST /trade/sell.
func (h *TradeHandler) Sell(w http.ResponseWriter, r *http.Request) {
	h.trade(w, r, h.tradeSvc.Sell, "Stock sold successfully")
}

func (h *TradeHandler) trade(
	w http.ResponseWriter,
	r *http.Request,
	settle func(context.Context, service.TradeRequest) (*engine.Result, error),
	message string,
) {
	var req tradeRequest
	if err := ParseJSON(w, r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	if err := authorize(r, req.AccountID); err != nil {
		writeDomainError(w, err)
		return
	}

	res, err := settle(r.Context(), service.TradeRequest{
		AccountID: req.AccountID,
		Symbol:    req.Symbol,
		Shares:    req.Shares,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, tradeResponse{
		Message:     message,
		Account:     newAccountResponse(res.Account),
		Transaction: newTransactionResponse(res.Transaction),
	})
}
