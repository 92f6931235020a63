package authflow

import "fmt"

// MessageKey identifies a business outcome in the message catalog. The set is
// closed: every engine operation resolves to exactly one of these keys.
//
// MessageKey instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MessageKey uint8

const (
	// KeyInvalidEmail is an exported constant or variable used by the authentication engine.
	KeyInvalidEmail MessageKey = iota
	// KeyEmailExists is an exported constant or variable used by the authentication engine.
	KeyEmailExists
	// KeyWeakPassword is an exported constant or variable used by the authentication engine.
	KeyWeakPassword
	// KeyRegisterSuccess is an exported constant or variable used by the authentication engine.
	KeyRegisterSuccess
	// KeyInvalidCredentials is an exported constant or variable used by the authentication engine.
	KeyInvalidCredentials
	// KeyEmailNotFound is an exported constant or variable used by the authentication engine.
	KeyEmailNotFound
	// KeyResetCodeSent is an exported constant or variable used by the authentication engine.
	KeyResetCodeSent
	// KeyInvalidResetCode is an exported constant or variable used by the authentication engine.
	KeyInvalidResetCode
	// KeyVerifySuccess is an exported constant or variable used by the authentication engine.
	KeyVerifySuccess
	// KeyResetPasswordSuccess is an exported constant or variable used by the authentication engine.
	KeyResetPasswordSuccess
	// KeyLoginSuccess is an exported constant or variable used by the authentication engine.
	KeyLoginSuccess

	messageKeyCount
)

var messageKeyNames = [messageKeyCount]string{
	KeyInvalidEmail:         "InvalidEmail",
	KeyEmailExists:          "EmailExists",
	KeyWeakPassword:         "WeakPassword",
	KeyRegisterSuccess:      "RegisterSuccess",
	KeyInvalidCredentials:   "InvalidCredentials",
	KeyEmailNotFound:        "EmailNotFound",
	KeyResetCodeSent:        "ResetCodeSent",
	KeyInvalidResetCode:     "InvalidResetCode",
	KeyVerifySuccess:        "VerifySuccess",
	KeyResetPasswordSuccess: "ResetPasswordSuccess",
	KeyLoginSuccess:         "LoginSuccess",
}

// messageCatalog decouples outcome identity from display text. KeyResetCodeSent
// is the only entry with a formatting parameter (the target email).
var messageCatalog = [messageKeyCount]string{
	KeyInvalidEmail:         "Invalid email format",
	KeyEmailExists:          "Email already exists",
	KeyWeakPassword:         "Password must have 8 characters, uppercase, lowercase and numbers",
	KeyRegisterSuccess:      "Register success",
	KeyInvalidCredentials:   "Invalid credentials",
	KeyEmailNotFound:        "Email not found",
	KeyResetCodeSent:        "Reset code sent to %s",
	KeyInvalidResetCode:     "Invalid reset code",
	KeyVerifySuccess:        "Validation successfully",
	KeyResetPasswordSuccess: "Password reset successfully",
	KeyLoginSuccess:         "Login success",
}

// String returns the stable identifier of the key, suitable for API payloads
// and log fields.
func (k MessageKey) String() string {
	if k >= messageKeyCount {
		return "Unknown"
	}
	return messageKeyNames[k]
}

// Message returns the catalog display text for the key.
func (k MessageKey) Message() string {
	if k >= messageKeyCount {
		return ""
	}
	return messageCatalog[k]
}

// Format returns the catalog display text with the given arguments applied to
// its formatting verbs. Keys without verbs ignore the arguments.
func (k MessageKey) Format(args ...interface{}) string {
	if k >= messageKeyCount {
		return ""
	}
	if len(args) == 0 {
		return messageCatalog[k]
	}
	return fmt.Sprintf(messageCatalog[k], args...)
}
