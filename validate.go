package authflow

import "strings"

// validEmail checks the standard addr-spec shape: a single "@" with a
// non-empty local part, a domain containing at least one interior dot, and no
// embedded whitespace. It is a format gate, not an RFC 5322 parser.
func validEmail(email string) bool {
	if email == "" || strings.ContainsAny(email, " \t\r\n") {
		return false
	}

	at := strings.IndexByte(email, '@')
	if at <= 0 || at != strings.LastIndexByte(email, '@') {
		return false
	}

	domain := email[at+1:]
	if domain == "" {
		return false
	}

	if strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return false
	}
	if !strings.Contains(domain, ".") {
		return false
	}

	return true
}

// validPassword enforces the registration strength policy over ASCII classes.
// Bytes outside the three tracked classes count toward length only.
func validPassword(pw string, policy PasswordPolicyConfig) bool {
	if len(pw) < policy.MinLength {
		return false
	}

	var upper, lower, digit bool
	for i := 0; i < len(pw); i++ {
		switch c := pw[i]; {
		case c >= 'A' && c <= 'Z':
			upper = true
		case c >= 'a' && c <= 'z':
			lower = true
		case c >= '0' && c <= '9':
			digit = true
		}
	}

	if policy.RequireUpper && !upper {
		return false
	}
	if policy.RequireLower && !lower {
		return false
	}
	if policy.RequireDigit && !digit {
		return false
	}
	return true
}
