package authflow

import "testing"

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig must validate: %v", err)
	}
}

func TestDefaultConfigValues(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.PasswordPolicy.MinLength != 8 {
		t.Errorf("MinLength = %d", cfg.PasswordPolicy.MinLength)
	}
	if !cfg.PasswordPolicy.RequireUpper || !cfg.PasswordPolicy.RequireLower || !cfg.PasswordPolicy.RequireDigit {
		t.Error("expected upper, lower and digit classes required by default")
	}
	if cfg.Reset.CodeMin != 100000 || cfg.Reset.CodeMax != 999999 {
		t.Errorf("reset code range = [%d, %d]", cfg.Reset.CodeMin, cfg.Reset.CodeMax)
	}
	if !cfg.Reset.EnforcePasswordPolicy {
		t.Error("expected reset password policy enforcement on by default")
	}
	if !cfg.Metrics.Enabled {
		t.Error("expected metrics enabled by default")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantValid bool
	}{
		{
			name:      "defaults",
			mutate:    func(*Config) {},
			wantValid: true,
		},
		{
			name: "single-value code range",
			mutate: func(c *Config) {
				c.Reset.CodeMin = 42
				c.Reset.CodeMax = 42
			},
			wantValid: true,
		},
		{
			name: "zero min length",
			mutate: func(c *Config) {
				c.PasswordPolicy.MinLength = 0
			},
			wantValid: false,
		},
		{
			name: "zero code min",
			mutate: func(c *Config) {
				c.Reset.CodeMin = 0
			},
			wantValid: false,
		},
		{
			name: "inverted code range",
			mutate: func(c *Config) {
				c.Reset.CodeMin = 999999
				c.Reset.CodeMax = 100000
			},
			wantValid: false,
		},
		{
			name: "empty mail subject",
			mutate: func(c *Config) {
				c.Reset.MailSubject = ""
			},
			wantValid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantValid && err != nil {
				t.Fatalf("expected valid, got %v", err)
			}
			if !tt.wantValid && err == nil {
				t.Fatal("expected a validation error")
			}
		})
	}
}
