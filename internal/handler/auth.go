package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/jwtauth"

	"github.com/efreitasn/papertrade/internal/domain"
	"github.com/efreitasn/papertrade/internal/service"
)

type ctxKey int

const subjectKey ctxKey = iota

// AuthHandler handles registration and login.
type AuthHandler struct {
	accountSvc *service.AccountService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(accountSvc *service.AccountService) *AuthHandler {
	return &AuthHandler{accountSvc: accountSvc}
}

// credentialsRequest is the JSON request body for POST /auth/register and
// POST /auth/login.
type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// authResponse is returned by register and login.
type authResponse struct {
	Message string          `json:"message"`
	Account accountResponse `json:"account"`
	Token   string          `json:"token"`
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := ParseJSON(w, r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	res, err := h.accountSvc.Register(r.Context(), service.Credentials{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, authResponse{
		Message: "User registered successfully",
		Account: newAccountResponse(res.Account),
		Token:   res.Token,
	})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := ParseJSON(w, r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	res, err := h.accountSvc.Login(r.Context(), service.Credentials{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, authResponse{
		Message: "Login successful",
		Account: newAccountResponse(res.Account),
		Token:   res.Token,
	})
}

// requireToken rejects requests whose bearer token failed verification
// and stores the token subject for authorize. It must run after
// jwtauth.Verifier.
func requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, _, err := jwtauth.FromContext(r.Context())
		if err != nil || token == nil || token.Subject() == "" {
			WriteError(w, http.StatusUnauthorized, "unauthorized", "A valid bearer token is required")
			return
		}
		ctx := context.WithValue(r.Context(), subjectKey, token.Subject())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// authorize checks that the authenticated subject, if any, owns
// accountID. Without authentication every account is accessible.
func authorize(r *http.Request, accountID string) error {
	sub, ok := r.Context().Value(subjectKey).(string)
	if ok && sub != accountID {
		return domain.ErrForbidden
	}
	return nil
}
