package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/efreitasn/papertrade/internal/domain"
)

// devJWTSecret signs tokens when JWT_SECRET is unset and auth is optional.
const devJWTSecret = "papertrade-dev-secret"

// Config holds all runtime configuration for the trading service.
type Config struct {
	Port     int
	LogLevel string

	TickInterval  time.Duration
	PriceFloor    int64 // cents
	MaxPriceMove  decimal.Decimal
	StartingCash  int64 // cents
	SettleRetries int

	JWTSecret    string
	TokenTTL     time.Duration
	AuthRequired bool

	CORSOrigins []string

	RedisURL     string
	RedisChannel string

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// Load reads configuration from environment variables, applies defaults,
// and validates values. It returns an error for any invalid value.
//
// Variables are first loaded from envFiles, or from ./.env when none are
// given; a missing ./.env is not an error. Variables already set in the
// environment take precedence over file values.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		_ = godotenv.Load()
	} else if err := godotenv.Load(envFiles...); err != nil {
		return nil, fmt.Errorf("load env file: %w", err)
	}

	port, err := getInt("PORT", 8080)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}
	if port < 1 || port > 65535 {
		return nil, fmt.Errorf("invalid PORT: %d out of range", port)
	}

	logLevel := getStr("LOG_LEVEL", "info")
	if !isValidLogLevel(logLevel) {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %q, must be one of: debug, info, warn, error", logLevel)
	}

	tickInterval, err := getDuration("TICK_INTERVAL", 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid TICK_INTERVAL: %w", err)
	}
	if tickInterval <= 0 {
		return nil, fmt.Errorf("invalid TICK_INTERVAL: must be > 0")
	}

	priceFloor, err := getCents("PRICE_FLOOR", "0.01")
	if err != nil {
		return nil, fmt.Errorf("invalid PRICE_FLOOR: %w", err)
	}
	if priceFloor <= 0 {
		return nil, fmt.Errorf("invalid PRICE_FLOOR: must be > 0")
	}

	maxMove, err := decimal.NewFromString(getStr("MAX_PRICE_MOVE", "0.05"))
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_PRICE_MOVE: %w", err)
	}
	if !maxMove.IsPositive() || maxMove.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return nil, fmt.Errorf("invalid MAX_PRICE_MOVE: %s, must be between 0 and 1", maxMove)
	}

	startingCash, err := getCents("STARTING_CASH", "10000.00")
	if err != nil {
		return nil, fmt.Errorf("invalid STARTING_CASH: %w", err)
	}
	if startingCash < 0 {
		return nil, fmt.Errorf("invalid STARTING_CASH: must be >= 0")
	}

	settleRetries, err := getInt("SETTLE_RETRIES", 3)
	if err != nil {
		return nil, fmt.Errorf("invalid SETTLE_RETRIES: %w", err)
	}
	if settleRetries < 1 {
		return nil, fmt.Errorf("invalid SETTLE_RETRIES: must be >= 1")
	}

	authRequired, err := getBool("AUTH_REQUIRED", false)
	if err != nil {
		return nil, fmt.Errorf("invalid AUTH_REQUIRED: %w", err)
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		if authRequired {
			return nil, fmt.Errorf("JWT_SECRET is required when AUTH_REQUIRED is true")
		}
		jwtSecret = devJWTSecret
	}

	tokenTTL, err := getDuration("TOKEN_TTL", 30*24*time.Hour)
	if err != nil {
		return nil, fmt.Errorf("invalid TOKEN_TTL: %w", err)
	}
	if tokenTTL <= 0 {
		return nil, fmt.Errorf("invalid TOKEN_TTL: must be > 0")
	}

	readTimeout, err := getDuration("READ_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid READ_TIMEOUT: %w", err)
	}

	writeTimeout, err := getDuration("WRITE_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid WRITE_TIMEOUT: %w", err)
	}

	idleTimeout, err := getDuration("IDLE_TIMEOUT", 60*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid IDLE_TIMEOUT: %w", err)
	}

	shutdownTimeout, err := getDuration("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid SHUTDOWN_TIMEOUT: %w", err)
	}

	return &Config{
		Port:            port,
		LogLevel:        logLevel,
		TickInterval:    tickInterval,
		PriceFloor:      priceFloor,
		MaxPriceMove:    maxMove,
		StartingCash:    startingCash,
		SettleRetries:   settleRetries,
		JWTSecret:       jwtSecret,
		TokenTTL:        tokenTTL,
		AuthRequired:    authRequired,
		CORSOrigins:     getList("CORS_ORIGINS", "http://localhost:3000"),
		RedisURL:        os.Getenv("REDIS_URL"),
		RedisChannel:    getStr("REDIS_CHANNEL", "stock_prices_update"),
		ReadTimeout:     readTimeout,
		WriteTimeout:    writeTimeout,
		IdleTimeout:     idleTimeout,
		ShutdownTimeout: shutdownTimeout,
	}, nil
}

func getStr(key, defaultVal string) string {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	return v
}

func getInt(key string, defaultVal int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal, nil
	}
	return strconv.Atoi(v)
}

func getBool(key string, defaultVal bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal, nil
	}
	return strconv.ParseBool(v)
}

func getDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal, nil
	}
	return time.ParseDuration(v)
}

// getCents parses a dollar amount with at most two decimal places.
func getCents(key, defaultVal string) (int64, error) {
	return domain.ParseCents(getStr(key, defaultVal))
}

// getList splits a comma separated value, dropping empty entries.
func getList(key, defaultVal string) []string {
	var out []string
	for _, part := range strings.Split(getStr(key, defaultVal), ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func isValidLogLevel(level string) bool {
	switch level {
	case "debug", "info", "warn", "error":
		return true
	}
	return false
}
