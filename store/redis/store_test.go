package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	authflow "github.com/inflowhq/authflow"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis run failed: %v", err)
	}
	t.Cleanup(mr.Close)

	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return NewStore(rdb, "af")
}

func newAccount(email string) *authflow.Account {
	now := time.Now().Truncate(time.Millisecond)
	return &authflow.Account{
		FirstName:    "Ana",
		Email:        email,
		Phone:        "0900000000",
		PasswordHash: "hash",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestInsertAndFindRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	account := newAccount("a@x.com")
	id, err := s.Insert(ctx, account)
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if id == 0 || account.ID != id {
		t.Fatalf("expected the assigned id written back, got id=%d account.ID=%d", id, account.ID)
	}

	got, err := s.FindByEmail(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("FindByEmail failed: %v", err)
	}
	if got.ID != id || got.FirstName != "Ana" || got.PasswordHash != "hash" {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if !got.CreatedAt.Equal(account.CreatedAt) {
		t.Fatalf("CreatedAt = %v, want %v", got.CreatedAt, account.CreatedAt)
	}

	byPhone, err := s.FindByPhone(ctx, "0900000000")
	if err != nil {
		t.Fatalf("FindByPhone failed: %v", err)
	}
	if byPhone.ID != id {
		t.Fatalf("phone index resolved id %d, want %d", byPhone.ID, id)
	}
}

func TestInsertDuplicateEmail(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.Insert(ctx, newAccount("a@x.com")); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if _, err := s.Insert(ctx, newAccount("a@x.com")); !errors.Is(err, authflow.ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
}

func TestInsertAssignsMonotonicIDs(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first, err := s.Insert(ctx, newAccount("a@x.com"))
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	second, err := s.Insert(ctx, newAccount("b@x.com"))
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if second <= first {
		t.Fatalf("expected monotonic ids, got %d then %d", first, second)
	}
}

func TestFindByEmailUnknown(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.FindByEmail(context.Background(), "nobody@x.com"); !errors.Is(err, authflow.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestFindByEmailAndResetCode(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	account := newAccount("a@x.com")
	if _, err := s.Insert(ctx, account); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	// No active code: nothing matches, the empty string included.
	if _, err := s.FindByEmailAndResetCode(ctx, "a@x.com", ""); !errors.Is(err, authflow.ErrAccountNotFound) {
		t.Fatalf("expected no match for empty code, got %v", err)
	}

	account.ResetCode = "654321"
	account.UpdatedAt = time.Now().Truncate(time.Millisecond)
	if err := s.Update(ctx, account); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	got, err := s.FindByEmailAndResetCode(ctx, "a@x.com", "654321")
	if err != nil {
		t.Fatalf("FindByEmailAndResetCode failed: %v", err)
	}
	if got.ResetCode != "654321" {
		t.Fatalf("ResetCode = %q", got.ResetCode)
	}

	if _, err := s.FindByEmailAndResetCode(ctx, "a@x.com", "000000"); !errors.Is(err, authflow.ErrAccountNotFound) {
		t.Fatalf("expected no match for wrong code, got %v", err)
	}
}

func TestUpdate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	account := newAccount("a@x.com")
	if _, err := s.Insert(ctx, account); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	account.PasswordHash = "rotated"
	account.ResetCode = ""
	if err := s.Update(ctx, account); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	got, err := s.FindByEmail(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("FindByEmail failed: %v", err)
	}
	if got.PasswordHash != "rotated" || got.ResetCode != "" {
		t.Fatalf("update not applied: %+v", got)
	}

	missing := newAccount("ghost@x.com")
	missing.ID = 999
	if err := s.Update(ctx, missing); !errors.Is(err, authflow.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestUpdateEmailReindex(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a := newAccount("a@x.com")
	b := newAccount("b@x.com")
	b.Phone = "0900000001"
	if _, err := s.Insert(ctx, a); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if _, err := s.Insert(ctx, b); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	a.Email = "b@x.com"
	if err := s.Update(ctx, a); !errors.Is(err, authflow.ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists on taken email, got %v", err)
	}

	a.Email = "c@x.com"
	if err := s.Update(ctx, a); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if _, err := s.FindByEmail(ctx, "a@x.com"); !errors.Is(err, authflow.ErrAccountNotFound) {
		t.Fatalf("expected the old email index removed, got %v", err)
	}
	got, err := s.FindByEmail(ctx, "c@x.com")
	if err != nil {
		t.Fatalf("FindByEmail failed: %v", err)
	}
	if got.ID != a.ID {
		t.Fatalf("new email resolved id %d, want %d", got.ID, a.ID)
	}
}

func TestStoreSatisfiesEngineContract(t *testing.T) {
	var _ authflow.AccountStore = (*Store)(nil)
}
