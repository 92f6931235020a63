package authflow

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"
)

// Engine is the authentication decision core. Construct it through [Builder];
// the zero value is not usable.
//
// Engine instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Engine struct {
	config       Config
	store        AccountStore
	notifier     Notifier
	passwordHash Hasher
	codes        CodeSource
	metrics      *Metrics
}

// MetricsSnapshot describes the metricssnapshot operation and its observable behavior.
//
// MetricsSnapshot does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil {
		return MetricsSnapshot{Counters: map[MetricID]uint64{}}
	}
	return e.metrics.Snapshot()
}

func (e *Engine) metricInc(id MetricID) {
	if e == nil {
		return
	}
	e.metrics.Inc(id)
}

func (e *Engine) ready() bool {
	return e != nil && e.store != nil && e.passwordHash != nil
}

// Register describes the register operation and its observable behavior.
//
// The pipeline order is fixed and short-circuits: email format, existing
// account, password strength, then hash + insert. A malformed email never
// reaches the store. The existence check is best-effort; a concurrent insert
// that wins the race is reported by the store's unique constraint and mapped
// to the same EmailExists outcome.
//
// Register may return an error when dependency calls fail; business rejections
// are returned as an unsuccessful [Result] with a nil error.
func (e *Engine) Register(ctx context.Context, req RegisterRequest) (Result, error) {
	if !e.ready() {
		return Result{}, ErrEngineNotReady
	}

	if !validEmail(req.Email) {
		e.metricInc(MetricRegisterRejected)
		return failure(KeyInvalidEmail), nil
	}

	_, err := e.store.FindByEmail(ctx, req.Email)
	switch {
	case err == nil:
		e.metricInc(MetricRegisterRejected)
		return failure(KeyEmailExists), nil
	case !errors.Is(err, ErrAccountNotFound):
		return Result{}, errors.Join(ErrStoreUnavailable, err)
	}

	if !validPassword(req.Password, e.config.PasswordPolicy) {
		e.metricInc(MetricRegisterRejected)
		return failure(KeyWeakPassword), nil
	}

	hash, err := e.passwordHash.Hash(req.Password)
	if err != nil {
		return Result{}, err
	}

	now := time.Now()
	account := &Account{
		FirstName:    req.FirstName,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := e.store.Insert(ctx, account); err != nil {
		if errors.Is(err, ErrEmailExists) {
			e.metricInc(MetricRegisterRejected)
			return failure(KeyEmailExists), nil
		}
		return Result{}, errors.Join(ErrStoreUnavailable, err)
	}

	e.metricInc(MetricRegisterSuccess)
	return success(KeyRegisterSuccess), nil
}

// Login describes the login operation and its observable behavior.
//
// A missing account and a wrong password produce the identical
// InvalidCredentials outcome; the caller cannot tell which factor failed. No
// session or token is minted — [Result.Token] stays empty on success.
//
// Login may return an error when dependency calls fail; business rejections
// are returned as an unsuccessful [Result] with a nil error.
func (e *Engine) Login(ctx context.Context, email, password string) (Result, error) {
	if !e.ready() {
		return Result{}, ErrEngineNotReady
	}

	account, err := e.store.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, ErrAccountNotFound) {
		return Result{}, errors.Join(ErrStoreUnavailable, err)
	}

	if account != nil {
		hash, err := e.passwordHash.Hash(password)
		if err != nil {
			return Result{}, err
		}
		if subtle.ConstantTimeCompare([]byte(hash), []byte(account.PasswordHash)) == 1 {
			e.metricInc(MetricLoginSuccess)
			return success(KeyLoginSuccess), nil
		}
	}

	e.metricInc(MetricLoginFailure)
	return failure(KeyInvalidCredentials), nil
}

func success(key MessageKey) Result {
	return Result{Success: true, Key: key, Message: key.Message()}
}

func failure(key MessageKey) Result {
	return Result{Success: false, Key: key, Message: key.Message()}
}
