package authflow

import "errors"

var (
	// ErrEngineNotReady is an exported constant or variable used by the authentication engine.
	ErrEngineNotReady = errors.New("engine not initialized")
	// ErrAccountNotFound is an exported constant or variable used by the authentication engine.
	//
	// Stores return it (possibly wrapped) from lookups that match no account.
	ErrAccountNotFound = errors.New("account not found")
	// ErrEmailExists is an exported constant or variable used by the authentication engine.
	//
	// Stores return it (possibly wrapped) from Insert when the unique
	// constraint on email rejects the row.
	ErrEmailExists = errors.New("account email already exists")
	// ErrStoreUnavailable is an exported constant or variable used by the authentication engine.
	//
	// Wraps any store failure that is not a business outcome.
	ErrStoreUnavailable = errors.New("account store unavailable")
	// ErrNotifyFailed is an exported constant or variable used by the authentication engine.
	//
	// Returned by ForgotPassword when the store update succeeded but the
	// notification could not be delivered. The reset code remains persisted;
	// the request is not rolled back.
	ErrNotifyFailed = errors.New("reset code persisted but notification delivery failed")
)
