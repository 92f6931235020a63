// Package smtp provides an SMTP-backed [authflow.Notifier] built on
// wneessen/go-mail.
//
// # What this package must NOT do
//
//   - Compose message bodies — the engine owns the reset mail template.
//   - Retry deliveries; the engine reports a failed send as a partial failure.
package smtp
