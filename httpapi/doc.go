// Package httpapi mounts the authentication engine behind a Fiber HTTP API.
//
// The five operations live under /api/auth. Every response carries the same
// JSON envelope: success flag, stable outcome key, and display message.
// Business rejections map to 400 (404 for a reset request on an unknown
// email), a failed reset notification maps to 502 because the code was
// already persisted, and any other dependency failure maps to 500.
//
// # What this package must NOT do
//
//   - Re-implement validation or outcome decisions — the engine owns them.
//   - Leak operational error details to clients; those go to the log only.
package httpapi
