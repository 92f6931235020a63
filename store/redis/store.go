package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	authflow "github.com/inflowhq/authflow"
)

// ErrCorruptAccount is returned when a stored account hash cannot be decoded.
var ErrCorruptAccount = errors.New("corrupt account record")

const (
	insertStatusEmailTaken int64 = 0
)

const insertAccountScript = `
if redis.call("EXISTS", KEYS[1]) == 1 then
  return 0
end
local id = redis.call("INCR", KEYS[2])
redis.call("SET", KEYS[1], id)
redis.call("SET", ARGV[9] .. ARGV[3], id)
redis.call("HSET", ARGV[8] .. id,
  "id", id,
  "first_name", ARGV[1],
  "email", ARGV[2],
  "phone", ARGV[3],
  "password_hash", ARGV[4],
  "reset_code", ARGV[5],
  "created_at", ARGV[6],
  "updated_at", ARGV[7])
return id
`

var insertAccountLua = redis.NewScript(insertAccountScript)

const (
	updateStatusNotFound   int64 = 0
	updateStatusEmailTaken int64 = -1
	updateStatusUpdated    int64 = 1
)

const updateAccountScript = `
if redis.call("EXISTS", KEYS[1]) == 0 then
  return 0
end
local old_email = redis.call("HGET", KEYS[1], "email")
local old_phone = redis.call("HGET", KEYS[1], "phone")
if old_email ~= ARGV[2] then
  if redis.call("EXISTS", KEYS[2]) == 1 then
    return -1
  end
  redis.call("SET", KEYS[2], ARGV[1])
  redis.call("DEL", ARGV[9] .. old_email)
end
if old_phone ~= ARGV[4] then
  redis.call("DEL", ARGV[10] .. old_phone)
  redis.call("SET", ARGV[10] .. ARGV[4], ARGV[1])
end
redis.call("HSET", KEYS[1],
  "first_name", ARGV[3],
  "email", ARGV[2],
  "phone", ARGV[4],
  "password_hash", ARGV[5],
  "reset_code", ARGV[6],
  "created_at", ARGV[7],
  "updated_at", ARGV[8])
return 1
`

var updateAccountLua = redis.NewScript(updateAccountScript)

// Store is a Redis-backed account store.
//
// Store instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Store struct {
	redis  redis.UniversalClient
	prefix string
}

// NewStore creates a [Store] backed by the given Redis client. prefix sets
// the Redis key namespace.
//
// NewStore does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewStore(client redis.UniversalClient, prefix string) *Store {
	if prefix == "" {
		prefix = "af"
	}
	return &Store{redis: client, prefix: prefix}
}

func (s *Store) accountKey(id int64) string {
	return s.accountKeyPrefix() + strconv.FormatInt(id, 10)
}

func (s *Store) accountKeyPrefix() string { return s.prefix + ":account:" }
func (s *Store) emailKeyPrefix() string   { return s.prefix + ":email:" }
func (s *Store) phoneKeyPrefix() string   { return s.prefix + ":phone:" }
func (s *Store) idCounterKey() string     { return s.prefix + ":account:id" }

func (s *Store) emailKey(email string) string { return s.emailKeyPrefix() + email }
func (s *Store) phoneKey(phone string) string { return s.phoneKeyPrefix() + phone }

// FindByEmail describes the findbyemail operation and its observable behavior.
//
// FindByEmail may return an error when input validation, dependency calls, or security checks fail.
func (s *Store) FindByEmail(ctx context.Context, email string) (*authflow.Account, error) {
	id, err := s.redis.Get(ctx, s.emailKey(email)).Int64()
	if errors.Is(err, redis.Nil) {
		return nil, authflow.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("resolve email index: %w", err)
	}
	return s.loadAccount(ctx, id)
}

// FindByPhone describes the findbyphone operation and its observable behavior.
//
// FindByPhone may return an error when input validation, dependency calls, or security checks fail.
func (s *Store) FindByPhone(ctx context.Context, phone string) (*authflow.Account, error) {
	id, err := s.redis.Get(ctx, s.phoneKey(phone)).Int64()
	if errors.Is(err, redis.Nil) {
		return nil, authflow.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("resolve phone index: %w", err)
	}
	return s.loadAccount(ctx, id)
}

// FindByEmailAndResetCode describes the findbyemailandresetcode operation and its observable behavior.
//
// An empty input code never matches: the empty string encodes code absence in
// the stored hash.
func (s *Store) FindByEmailAndResetCode(ctx context.Context, email, code string) (*authflow.Account, error) {
	if code == "" {
		return nil, authflow.ErrAccountNotFound
	}

	account, err := s.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if account.ResetCode != code {
		return nil, authflow.ErrAccountNotFound
	}
	return account, nil
}

// Insert describes the insert operation and its observable behavior.
//
// Insert assigns the account identifier from a Redis counter and writes it
// back to the argument. A taken email fails with [authflow.ErrEmailExists].
func (s *Store) Insert(ctx context.Context, account *authflow.Account) (int64, error) {
	res, err := insertAccountLua.Run(ctx, s.redis,
		[]string{s.emailKey(account.Email), s.idCounterKey()},
		account.FirstName,
		account.Email,
		account.Phone,
		account.PasswordHash,
		account.ResetCode,
		strconv.FormatInt(account.CreatedAt.UnixMilli(), 10),
		strconv.FormatInt(account.UpdatedAt.UnixMilli(), 10),
		s.accountKeyPrefix(),
		s.phoneKeyPrefix(),
	).Int64()
	if err != nil {
		return 0, fmt.Errorf("insert account: %w", err)
	}
	if res == insertStatusEmailTaken {
		return 0, authflow.ErrEmailExists
	}

	account.ID = res
	return res, nil
}

// Update describes the update operation and its observable behavior.
//
// The account is located by identifier. An email change re-points the email
// index atomically and fails with [authflow.ErrEmailExists] when the new email
// is taken.
func (s *Store) Update(ctx context.Context, account *authflow.Account) error {
	res, err := updateAccountLua.Run(ctx, s.redis,
		[]string{s.accountKey(account.ID), s.emailKey(account.Email)},
		strconv.FormatInt(account.ID, 10),
		account.Email,
		account.FirstName,
		account.Phone,
		account.PasswordHash,
		account.ResetCode,
		strconv.FormatInt(account.CreatedAt.UnixMilli(), 10),
		strconv.FormatInt(account.UpdatedAt.UnixMilli(), 10),
		s.emailKeyPrefix(),
		s.phoneKeyPrefix(),
	).Int64()
	if err != nil {
		return fmt.Errorf("update account: %w", err)
	}

	switch res {
	case updateStatusNotFound:
		return authflow.ErrAccountNotFound
	case updateStatusEmailTaken:
		return authflow.ErrEmailExists
	case updateStatusUpdated:
		return nil
	default:
		return fmt.Errorf("update account: unexpected script status %d", res)
	}
}

func (s *Store) loadAccount(ctx context.Context, id int64) (*authflow.Account, error) {
	fields, err := s.redis.HGetAll(ctx, s.accountKey(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("load account %d: %w", id, err)
	}
	if len(fields) == 0 {
		// Dangling index entry; treat as absent.
		return nil, authflow.ErrAccountNotFound
	}
	return decodeAccount(fields)
}

func decodeAccount(fields map[string]string) (*authflow.Account, error) {
	id, err := strconv.ParseInt(fields["id"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad id %q", ErrCorruptAccount, fields["id"])
	}
	createdAt, err := strconv.ParseInt(fields["created_at"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad created_at %q", ErrCorruptAccount, fields["created_at"])
	}
	updatedAt, err := strconv.ParseInt(fields["updated_at"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad updated_at %q", ErrCorruptAccount, fields["updated_at"])
	}

	return &authflow.Account{
		ID:           id,
		FirstName:    fields["first_name"],
		Email:        fields["email"],
		Phone:        fields["phone"],
		PasswordHash: fields["password_hash"],
		ResetCode:    fields["reset_code"],
		CreatedAt:    time.UnixMilli(createdAt),
		UpdatedAt:    time.UnixMilli(updatedAt),
	}, nil
}
