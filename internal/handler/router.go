package handler

import (
	"bufio"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth"
	"github.com/rs/cors"

	"github.com/efreitasn/papertrade/internal/service"
)

// Services groups the application services the router dispatches to.
type Services struct {
	Accounts *service.AccountService
	Trades   *service.TradeService
	Stocks   *service.StockService
	Tokens   *service.TokenIssuer
}

// Options controls the optional parts of the router.
type Options struct {
	// AuthRequired makes trade, profile and history routes require a
	// bearer token whose subject owns the addressed account.
	AuthRequired bool
	CORSOrigins  []string
	// PushHandler serves GET /ws when set.
	PushHandler http.Handler
}

// NewRouter creates a chi router with all routes registered, panic
// recovery, CORS, request logging, and Content-Type validation middleware.
func NewRouter(svc Services, opts Options, logger *slog.Logger) chi.Router {
	r := chi.NewRouter()

	// Global middleware.
	r.Use(middleware.Recoverer)
	r.Use(requestLogging(logger))
	r.Use(cors.New(cors.Options{
		AllowedOrigins: opts.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:         86400,
	}).Handler)
	r.Use(contentTypeJSON)

	authH := NewAuthHandler(svc.Accounts)
	tradeH := NewTradeHandler(svc.Trades)
	accountH := NewAccountHandler(svc.Accounts, svc.Trades)
	stockH := NewStockHandler(svc.Stocks)

	// Health check.
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Push channel.
	if opts.PushHandler != nil {
		r.Method(http.MethodGet, "/ws", opts.PushHandler)
	}

	// Auth routes.
	r.Post("/auth/register", authH.Register)
	r.Post("/auth/login", authH.Login)

	// Stock routes.
	r.Get("/stocks", stockH.List)
	r.Get("/stocks/{symbol}", stockH.Get)

	// Account-scoped routes.
	r.Group(func(r chi.Router) {
		if opts.AuthRequired {
			r.Use(jwtauth.Verifier(svc.Tokens.JWTAuth()))
			r.Use(requireToken)
		}
		r.Post("/trade/buy", tradeH.Buy)
		r.Post("/trade/sell", tradeH.Sell)
		r.Get("/accounts/{account_id}", accountH.Get)
		r.Get("/accounts/{account_id}/history", accountH.History)
	})

	return r
}

// requestLogging returns middleware that logs each request's method, path,
// status code, and duration using slog.
func requestLogging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(ww, r)
			logger.Info("request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

// statusWriter wraps http.ResponseWriter to capture the status code.
type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.status = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}

// Hijack lets the WebSocket upgrade take over the connection.
func (w *statusWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	w.status = http.StatusSwitchingProtocols
	w.wroteHeader = true
	return http.NewResponseController(w.ResponseWriter).Hijack()
}

func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// contentTypeJSON is middleware that validates Content-Type for POST, PUT, and
// PATCH requests. If the Content-Type header doesn't start with
// "application/json", it returns 400 Bad Request before the handler runs.
func contentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost || r.Method == http.MethodPut || r.Method == http.MethodPatch {
			ct := r.Header.Get("Content-Type")
			if ct == "" || !strings.HasPrefix(ct, "application/json") {
				WriteError(w, http.StatusBadRequest, "invalid_request",
					"Content-Type must be application/json")
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
