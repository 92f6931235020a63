package authflow

import (
	"errors"

	"github.com/inflowhq/authflow/internal"
	"github.com/inflowhq/authflow/password"
)

// Builder defines a public type used by authflow APIs.
//
// Builder instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Builder struct {
	config   Config
	store    AccountStore
	notifier Notifier
	hasher   Hasher
	codes    CodeSource

	built bool
}

// New describes the new operation and its observable behavior.
//
// New does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func New() *Builder {
	return &Builder{
		config: DefaultConfig(),
	}
}

// WithConfig describes the withconfig operation and its observable behavior.
//
// WithConfig does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cfg
	return b
}

// WithStore describes the withstore operation and its observable behavior.
//
// WithStore does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithStore(store AccountStore) *Builder {
	b.store = store
	return b
}

// WithNotifier describes the withnotifier operation and its observable behavior.
//
// WithNotifier does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithNotifier(n Notifier) *Builder {
	b.notifier = n
	return b
}

// WithHasher describes the withhasher operation and its observable behavior.
//
// WithHasher does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithHasher(h Hasher) *Builder {
	b.hasher = h
	return b
}

// WithCodeSource describes the withcodesource operation and its observable behavior.
//
// WithCodeSource does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithCodeSource(cs CodeSource) *Builder {
	b.codes = cs
	return b
}

// WithMetricsEnabled describes the withmetricsenabled operation and its observable behavior.
//
// WithMetricsEnabled does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// Build describes the build operation and its observable behavior.
//
// Build may return an error when input validation, dependency calls, or security checks fail.
// Build does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := b.config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if b.store == nil {
		return nil, errors.New("account store required")
	}
	if b.notifier == nil {
		return nil, errors.New("notifier required")
	}

	hasher := b.hasher
	if hasher == nil {
		hasher = password.NewDigest()
	}

	codes := b.codes
	if codes == nil {
		codes = cryptoCodeSource{}
	}

	engine := &Engine{
		config:       cfg,
		store:        b.store,
		notifier:     b.notifier,
		passwordHash: hasher,
		codes:        codes,
		metrics:      NewMetrics(cfg.Metrics),
	}

	b.built = true

	return engine, nil
}

// cryptoCodeSource is the default CodeSource, backed by crypto/rand.
type cryptoCodeSource struct{}

func (cryptoCodeSource) ResetCode(min, max int) (string, error) {
	return internal.ResetCodeBetween(min, max)
}
