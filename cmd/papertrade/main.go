package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/efreitasn/papertrade/internal/broadcast"
	"github.com/efreitasn/papertrade/internal/config"
	"github.com/efreitasn/papertrade/internal/domain"
	"github.com/efreitasn/papertrade/internal/engine"
	"github.com/efreitasn/papertrade/internal/handler"
	"github.com/efreitasn/papertrade/internal/service"
	"github.com/efreitasn/papertrade/internal/store"
)

func main() {
	healthcheck := flag.Bool("healthcheck", false, "Run health check against running server")
	flag.Parse()

	// Handle -healthcheck flag: HTTP GET to localhost:PORT/healthz, exit 0/1.
	if *healthcheck {
		port := os.Getenv("PORT")
		if port == "" {
			port = "8080"
		}
		resp, err := http.Get(fmt.Sprintf("http://localhost:%s/healthz", port))
		if err != nil || resp.StatusCode != http.StatusOK {
			os.Exit(1)
		}
		os.Exit(0)
	}

	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Set up slog logger with configured level.
	var logLevel slog.Level
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("server stopped")
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Stores.
	txnLog := store.NewTransactionLog()
	accountStore := store.NewAccountStore(txnLog)
	stockStore := store.NewStockStore()
	if err := stockStore.Seed(ctx, domain.SeedCatalog()); err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}

	// Broadcast channel and its observers.
	hub := broadcast.NewHub(logger)
	var relay *broadcast.RedisRelay
	if cfg.RedisURL != "" {
		rdb, err := broadcast.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return err
		}
		defer rdb.Close()
		relay = broadcast.NewRedisRelay(rdb, cfg.RedisChannel, logger)
		hub.Join(relay)
	}

	// Engine.
	settlement := engine.NewSettlement(accountStore, stockStore, cfg.SettleRetries, logger)
	seed := uint64(time.Now().UnixNano())
	simulator := engine.NewSimulator(engine.SimulatorConfig{
		Interval: cfg.TickInterval,
		Floor:    cfg.PriceFloor,
		MaxMove:  cfg.MaxPriceMove,
	}, stockStore, hub, rand.New(rand.NewPCG(seed, seed>>1)), logger)

	// Services.
	tokens := service.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	services := handler.Services{
		Accounts: service.NewAccountService(accountStore, tokens, cfg.StartingCash),
		Trades:   service.NewTradeService(settlement, accountStore, txnLog),
		Stocks:   service.NewStockService(stockStore),
		Tokens:   tokens,
	}

	// Router.
	router := handler.NewRouter(services, handler.Options{
		AuthRequired: cfg.AuthRequired,
		CORSOrigins:  cfg.CORSOrigins,
		PushHandler:  broadcast.NewWSHandler(hub, cfg.CORSOrigins, logger),
	}, logger)

	// Configure HTTP server.
	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("server starting",
			slog.String("addr", addr),
			slog.Bool("auth_required", cfg.AuthRequired),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		return simulator.Run(gctx)
	})

	if relay != nil {
		g.Go(func() error {
			return relay.Run(gctx)
		})
	}

	// Graceful shutdown once a signal arrives or any component fails.
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown error", slog.String("error", err.Error()))
		}
		return nil
	})

	return g.Wait()
}
