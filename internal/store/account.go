package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/efreitasn/papertrade/internal/domain"
)

// AccountStore is a thread-safe in-memory document store for accounts,
// keyed by account_id with a secondary index by username. Every read
// returns a copy, so a caller's changes only become visible through Commit.
type AccountStore struct {
	mu         sync.RWMutex
	accounts   map[string]*domain.Account
	byUsername map[string]string // username → account_id
	log        *TransactionLog
}

// NewAccountStore creates an empty AccountStore that appends settled
// transactions to log.
func NewAccountStore(log *TransactionLog) *AccountStore {
	return &AccountStore{
		accounts:   make(map[string]*domain.Account),
		byUsername: make(map[string]string),
		log:        log,
	}
}

// Create adds an account to the store. It returns
// domain.ErrUsernameTaken if the username is already registered.
func (s *AccountStore) Create(ctx context.Context, a *domain.Account) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byUsername[a.Username]; exists {
		return domain.ErrUsernameTaken
	}
	if _, exists := s.accounts[a.AccountID]; exists {
		return fmt.Errorf("%w: duplicate account id %s", domain.ErrPersistence, a.AccountID)
	}
	s.accounts[a.AccountID] = a.Clone()
	s.byUsername[a.Username] = a.AccountID
	return nil
}

// Get retrieves a copy of an account by ID. It returns
// domain.ErrAccountNotFound if the account does not exist.
func (s *AccountStore) Get(ctx context.Context, id string) (*domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return a.Clone(), nil
}

// GetByUsername retrieves a copy of an account by username.
func (s *AccountStore) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byUsername[username]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return s.accounts[id].Clone(), nil
}

// Commit replaces the stored account with a and appends txn to the
// transaction log as one step. The write only happens if the stored
// version equals expectedVersion; on success a.Version is advanced.
func (s *AccountStore) Commit(ctx context.Context, a *domain.Account, expectedVersion int64, txn *domain.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.accounts[a.AccountID]
	if !ok {
		return domain.ErrAccountNotFound
	}
	if stored.Version != expectedVersion {
		return domain.ErrVersionConflict
	}
	// Last point at which a cancelled request may still abort.
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}

	a.Version = expectedVersion + 1
	if txn != nil {
		s.log.append(txn)
	}
	s.accounts[a.AccountID] = a.Clone()
	return nil
}

var _ domain.AccountStore = (*AccountStore)(nil)
