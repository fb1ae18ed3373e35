package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/efreitasn/papertrade/internal/service"
)

// AccountHandler serves account profiles and transaction history.
type AccountHandler struct {
	accountSvc *service.AccountService
	tradeSvc   *service.TradeService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountSvc *service.AccountService, tradeSvc *service.TradeService) *AccountHandler {
	return &AccountHandler{
		accountSvc: accountSvc,
		tradeSvc:   tradeSvc,
	}
}

// historyResponse is the JSON response for GET /accounts/{account_id}/history.
type historyResponse struct {
	Transactions []transactionResponse `json:"transactions"`
	Total        int                   `json:"total"`
	Page         int                   `json:"page"`
	Limit        int                   `json:"limit"`
}

// Get handles GET /accounts/{account_id}.
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "account_id")
	if err := authorize(r, accountID); err != nil {
		writeDomainError(w, err)
		return
	}

	acct, err := h.accountSvc.Get(r.Context(), accountID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, newAccountResponse(acct))
}

// History handles GET /accounts/{account_id}/history.
func (h *AccountHandler) History(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "account_id")
	if err := authorize(r, accountID); err != nil {
		writeDomainError(w, err)
		return
	}

	page := 1
	if p := r.URL.Query().Get("page"); p != "" {
		var err error
		page, err = strconv.Atoi(p)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "validation_error", "page must be a valid integer")
			return
		}
	}

	// Without a limit the whole history is returned.
	limit := 0
	if l := r.URL.Query().Get("limit"); l != "" {
		var err error
		limit, err = strconv.Atoi(l)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "validation_error", "limit must be a valid integer")
			return
		}
	}

	hist, err := h.tradeSvc.History(r.Context(), accountID, page, limit)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	txns := make([]transactionResponse, len(hist.Transactions))
	for i, t := range hist.Transactions {
		txns[i] = newTransactionResponse(t)
	}

	WriteJSON(w, http.StatusOK, historyResponse{
		Transactions: txns,
		Total:        hist.Total,
		Page:         hist.Page,
		Limit:        hist.Limit,
	})
}
