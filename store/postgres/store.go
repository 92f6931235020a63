package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"

	authflow "github.com/inflowhq/authflow"
)

// Store is a PostgreSQL-backed account store.
//
// Store instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Store struct {
	db *sql.DB
}

// NewStore creates a [Store] over the given database handle. The handle is
// not closed by the store.
//
// NewStore does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

const accountColumns = `id, first_name, email, phone, password_hash, reset_code, created_at, updated_at`

// FindByEmail describes the findbyemail operation and its observable behavior.
//
// FindByEmail may return an error when input validation, dependency calls, or security checks fail.
func (s *Store) FindByEmail(ctx context.Context, email string) (*authflow.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE email = $1`
	return s.queryOne(ctx, query, email)
}

// FindByPhone describes the findbyphone operation and its observable behavior.
//
// FindByPhone may return an error when input validation, dependency calls, or security checks fail.
func (s *Store) FindByPhone(ctx context.Context, phone string) (*authflow.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE phone = $1 ORDER BY id LIMIT 1`
	return s.queryOne(ctx, query, phone)
}

// FindByEmailAndResetCode describes the findbyemailandresetcode operation and its observable behavior.
//
// Absent codes are stored as NULL, so an empty input can never match a row;
// the explicit guard keeps the contract independent of SQL NULL comparison
// rules.
func (s *Store) FindByEmailAndResetCode(ctx context.Context, email, code string) (*authflow.Account, error) {
	if code == "" {
		return nil, authflow.ErrAccountNotFound
	}
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE email = $1 AND reset_code = $2`
	return s.queryOne(ctx, query, email, code)
}

// Insert describes the insert operation and its observable behavior.
//
// Insert assigns the account identifier from the sequence and writes it back
// to the argument. The unique constraint on email surfaces as
// [authflow.ErrEmailExists].
func (s *Store) Insert(ctx context.Context, account *authflow.Account) (int64, error) {
	query := `INSERT INTO accounts (first_name, email, phone, password_hash, reset_code, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          RETURNING id`

	err := s.db.QueryRowContext(ctx, query,
		account.FirstName,
		account.Email,
		account.Phone,
		account.PasswordHash,
		nullableCode(account.ResetCode),
		account.CreatedAt,
		account.UpdatedAt,
	).Scan(&account.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, authflow.ErrEmailExists
		}
		return 0, fmt.Errorf("insert account: %w", err)
	}

	return account.ID, nil
}

// Update describes the update operation and its observable behavior.
//
// The row is located by identifier. An email change that collides with
// another account surfaces as [authflow.ErrEmailExists].
func (s *Store) Update(ctx context.Context, account *authflow.Account) error {
	query := `UPDATE accounts
	          SET first_name = $2, email = $3, phone = $4, password_hash = $5, reset_code = $6, updated_at = $7
	          WHERE id = $1`

	res, err := s.db.ExecContext(ctx, query,
		account.ID,
		account.FirstName,
		account.Email,
		account.Phone,
		account.PasswordHash,
		nullableCode(account.ResetCode),
		account.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return authflow.ErrEmailExists
		}
		return fmt.Errorf("update account: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	if affected == 0 {
		return authflow.ErrAccountNotFound
	}
	return nil
}

func (s *Store) queryOne(ctx context.Context, query string, args ...interface{}) (*authflow.Account, error) {
	account := &authflow.Account{}
	var resetCode sql.NullString

	err := s.db.QueryRowContext(ctx, query, args...).Scan(
		&account.ID,
		&account.FirstName,
		&account.Email,
		&account.Phone,
		&account.PasswordHash,
		&resetCode,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, authflow.ErrAccountNotFound
		}
		return nil, fmt.Errorf("query account: %w", err)
	}

	if resetCode.Valid {
		account.ResetCode = resetCode.String
	}
	return account, nil
}

// nullableCode maps the empty string to NULL so "no active reset window" is
// unambiguous at the schema level.
func nullableCode(code string) sql.NullString {
	return sql.NullString{String: code, Valid: code != ""}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
