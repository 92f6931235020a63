package authflow

import (
	"context"
	"time"
)

// Account is the persisted identity record managed through an [AccountStore].
//
// Account instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Account struct {
	ID           int64
	FirstName    string
	Email        string
	Phone        string
	PasswordHash string
	// ResetCode is empty unless a reset window is active, i.e. between a
	// successful ForgotPassword and the next successful ResetPassword or
	// overwrite by a newer request. Stores must never match an empty code.
	ResetCode string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RegisterRequest is the input for [Engine.Register].
type RegisterRequest struct {
	FirstName string
	Email     string
	Phone     string
	Password  string
}

// Result is the uniform business outcome of every engine operation. Key is the
// stable, enumerable outcome identifier; Message is its catalog display text.
//
// Result instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Result struct {
	Success bool
	Key     MessageKey
	Message string

	// Token is reserved for a future session layer and is never populated by
	// the current engine.
	Token string
}

// AccountStore is the persistence collaborator the engine reads and writes
// accounts through. Lookups return [ErrAccountNotFound] when no account
// matches; Insert returns [ErrEmailExists] when the store's unique constraint
// on email rejects the row.
type AccountStore interface {
	FindByEmail(ctx context.Context, email string) (*Account, error)

	// FindByPhone is reserved: part of the store contract, unused by the
	// current engine logic.
	FindByPhone(ctx context.Context, phone string) (*Account, error)

	// FindByEmailAndResetCode matches on exact, case-sensitive equality of
	// both fields. An account without an active reset code never matches.
	FindByEmailAndResetCode(ctx context.Context, email, code string) (*Account, error)

	// Insert persists a new account and returns the store-assigned identifier.
	Insert(ctx context.Context, account *Account) (int64, error)

	Update(ctx context.Context, account *Account) error
}

// Notifier delivers a message to an address. The engine awaits the call and
// surfaces its failure, but attaches no retry or timeout policy of its own.
type Notifier interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// Hasher is the credential-hashing collaborator. Hash must be deterministic:
// the engine authenticates by comparing the stored hash against a freshly
// computed one byte-for-byte.
type Hasher interface {
	Hash(plaintext string) (string, error)
}

// CodeSource produces reset codes. It exists so tests can supply a
// deterministic stub instead of patching a process-global random source.
type CodeSource interface {
	// ResetCode returns the decimal string form of a uniformly drawn integer
	// in [min, max].
	ResetCode(min, max int) (string, error)
}
