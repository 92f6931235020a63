package memory

import (
	"context"
	"sync"

	authflow "github.com/inflowhq/authflow"
)

// Store is an in-memory account store. The zero value is not usable; construct
// it with [NewStore].
//
// Store instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Store struct {
	mu      sync.RWMutex
	byEmail map[string]*authflow.Account
	nextID  int64
}

// NewStore describes the newstore operation and its observable behavior.
//
// NewStore does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewStore() *Store {
	return &Store{byEmail: make(map[string]*authflow.Account)}
}

// FindByEmail describes the findbyemail operation and its observable behavior.
//
// FindByEmail may return an error when input validation, dependency calls, or security checks fail.
func (s *Store) FindByEmail(_ context.Context, email string) (*authflow.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, ok := s.byEmail[email]
	if !ok {
		return nil, authflow.ErrAccountNotFound
	}
	cp := *account
	return &cp, nil
}

// FindByPhone describes the findbyphone operation and its observable behavior.
//
// FindByPhone may return an error when input validation, dependency calls, or security checks fail.
func (s *Store) FindByPhone(_ context.Context, phone string) (*authflow.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, account := range s.byEmail {
		if account.Phone == phone {
			cp := *account
			return &cp, nil
		}
	}
	return nil, authflow.ErrAccountNotFound
}

// FindByEmailAndResetCode describes the findbyemailandresetcode operation and its observable behavior.
//
// An empty stored code means no reset window is active, so an empty input can
// never match.
func (s *Store) FindByEmailAndResetCode(_ context.Context, email, code string) (*authflow.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, ok := s.byEmail[email]
	if !ok || account.ResetCode == "" || account.ResetCode != code {
		return nil, authflow.ErrAccountNotFound
	}
	cp := *account
	return &cp, nil
}

// Insert describes the insert operation and its observable behavior.
//
// Insert assigns the account identifier and writes it back to the argument.
// A duplicate email fails with [authflow.ErrEmailExists].
func (s *Store) Insert(_ context.Context, account *authflow.Account) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byEmail[account.Email]; ok {
		return 0, authflow.ErrEmailExists
	}

	s.nextID++
	account.ID = s.nextID
	cp := *account
	s.byEmail[account.Email] = &cp
	return account.ID, nil
}

// Update describes the update operation and its observable behavior.
//
// The account is located by identifier; an email change re-indexes the entry
// and fails with [authflow.ErrEmailExists] when the new email is taken.
func (s *Store) Update(_ context.Context, account *authflow.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var prevEmail string
	var found bool
	for email, existing := range s.byEmail {
		if existing.ID == account.ID {
			prevEmail = email
			found = true
			break
		}
	}
	if !found {
		return authflow.ErrAccountNotFound
	}

	if account.Email != prevEmail {
		if _, taken := s.byEmail[account.Email]; taken {
			return authflow.ErrEmailExists
		}
		delete(s.byEmail, prevEmail)
	}

	cp := *account
	s.byEmail[account.Email] = &cp
	return nil
}

// Len reports the number of stored accounts.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byEmail)
}
