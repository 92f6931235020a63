package authflow

import "errors"

// Config defines a public type used by authflow APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	PasswordPolicy PasswordPolicyConfig
	Reset          ResetConfig
	Metrics        MetricsConfig
}

/*
====================================
PASSWORD POLICY CONFIG
====================================
*/

// PasswordPolicyConfig defines a public type used by authflow APIs.
//
// The defaults encode the registration policy exactly: length >= 8, at least
// one uppercase ASCII letter, one lowercase ASCII letter, and one decimal
// digit. There is deliberately no special-character rule, no Unicode class
// rule, and no maximum length.
type PasswordPolicyConfig struct {
	MinLength    int
	RequireUpper bool
	RequireLower bool
	RequireDigit bool
}

/*
====================================
RESET CONFIG
====================================
*/

// ResetConfig defines a public type used by authflow APIs.
//
// ResetConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type ResetConfig struct {
	// CodeMin and CodeMax bound the generated reset code, inclusive. The
	// defaults cover exactly the six-digit integers with no leading zero.
	CodeMin int
	CodeMax int

	// MailSubject is the subject line of the reset-code notification.
	MailSubject string

	// EnforcePasswordPolicy re-checks the new password against
	// PasswordPolicyConfig during ResetPassword. Default on. Disabling it
	// restores the legacy behavior where a reset accepts any password.
	EnforcePasswordPolicy bool
}

/*
====================================
METRICS CONFIG
====================================
*/

// MetricsConfig defines a public type used by authflow APIs.
//
// MetricsConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsConfig struct {
	Enabled bool
}

// DefaultConfig describes the defaultconfig operation and its observable behavior.
//
// DefaultConfig does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func DefaultConfig() Config {
	return Config{
		PasswordPolicy: PasswordPolicyConfig{
			MinLength:    8,
			RequireUpper: true,
			RequireLower: true,
			RequireDigit: true,
		},
		Reset: ResetConfig{
			CodeMin:               100000,
			CodeMax:               999999,
			MailSubject:           "Password Reset Code",
			EnforcePasswordPolicy: true,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

// Validate describes the validate operation and its observable behavior.
//
// Validate may return an error when input validation, dependency calls, or security checks fail.
// Validate does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c Config) Validate() error {
	if c.PasswordPolicy.MinLength < 1 {
		return errors.New("password policy min length must be >= 1")
	}
	if c.Reset.CodeMin < 1 {
		return errors.New("reset code range must start at >= 1")
	}
	if c.Reset.CodeMax < c.Reset.CodeMin {
		return errors.New("reset code range max must be >= min")
	}
	if c.Reset.MailSubject == "" {
		return errors.New("reset mail subject must not be empty")
	}
	return nil
}
