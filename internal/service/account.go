package service

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/efreitasn/papertrade/internal/domain"
)

var usernameRegex = regexp.MustCompile(`^[A-Za-z0-9_.-]{3,32}$`)

const (
	minPasswordLength = 6
	maxPasswordLength = 72 // bcrypt ignores anything longer
)

// Credentials is the input for registration and login.
type Credentials struct {
	Username string
	Password string
}

// AuthResult is an account together with a freshly issued token.
type AuthResult struct {
	Account *domain.Account
	Token   string
}

// AccountService handles registration, login and profile lookups.
type AccountService struct {
	accounts     domain.AccountStore
	tokens       *TokenIssuer
	startingCash int64
	hashCost     int
	now          func() time.Time
}

// NewAccountService creates a new AccountService. New accounts are
// credited startingCash cents.
func NewAccountService(accounts domain.AccountStore, tokens *TokenIssuer, startingCash int64) *AccountService {
	return &AccountService{
		accounts:     accounts,
		tokens:       tokens,
		startingCash: startingCash,
		hashCost:     bcrypt.DefaultCost,
		now:          time.Now,
	}
}

// Register validates the credentials, creates an account with the
// starting cash and no holdings, and issues a token for it.
func (s *AccountService) Register(ctx context.Context, c Credentials) (*AuthResult, error) {
	if !usernameRegex.MatchString(c.Username) {
		return nil, &domain.ValidationError{
			Message: "username must match ^[A-Za-z0-9_.-]{3,32}$",
		}
	}
	if len(c.Password) < minPasswordLength {
		return nil, &domain.ValidationError{
			Message: "password must be at least 6 characters",
		}
	}
	if len(c.Password) > maxPasswordLength {
		return nil, &domain.ValidationError{
			Message: "password must be at most 72 bytes",
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(c.Password), s.hashCost)
	if err != nil {
		return nil, err
	}

	acct := domain.NewAccount(uuid.New().String(), c.Username, hash, s.startingCash, s.now())
	// Returns ErrUsernameTaken if the username is registered.
	if err := s.accounts.Create(ctx, acct); err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(acct.AccountID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Account: acct, Token: token}, nil
}

// Login checks the credentials and issues a token. Unknown usernames and
// wrong passwords both yield domain.ErrInvalidCredentials.
func (s *AccountService) Login(ctx context.Context, c Credentials) (*AuthResult, error) {
	acct, err := s.accounts.GetByUsername(ctx, c.Username)
	if errors.Is(err, domain.ErrAccountNotFound) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword(acct.PasswordHash, []byte(c.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(acct.AccountID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Account: acct, Token: token}, nil
}

// Get returns the account with the given ID.
func (s *AccountService) Get(ctx context.Context, accountID string) (*domain.Account, error) {
	return s.accounts.Get(ctx, accountID)
}
