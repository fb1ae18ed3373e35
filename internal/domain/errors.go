package domain

import "errors"

// Sentinel errors for domain-level error handling.
// The handler layer maps these to HTTP status codes.
var (
	ErrAccountNotFound    = errors.New("account_not_found")
	ErrStockNotFound      = errors.New("stock_not_found")
	ErrStockAlreadyExists = errors.New("stock_already_exists")
	ErrInsufficientFunds  = errors.New("insufficient_funds")
	ErrInsufficientShares = errors.New("insufficient_shares")
	ErrPersistence        = errors.New("persistence_failure")
	ErrVersionConflict    = errors.New("version_conflict")
	ErrUsernameTaken      = errors.New("username_taken")
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrForbidden          = errors.New("forbidden")
)

// IsNotFound reports whether err means an unknown account or symbol.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrAccountNotFound) || errors.Is(err, ErrStockNotFound)
}

// ValidationError represents a request validation failure.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
