// Package internal contains helper utilities that are intentionally private to
// authflow, currently secure reset-code generation.
//
// # What this package must NOT do
//
//   - Export types that appear in the public authflow API.
//   - Be imported by any package outside the authflow module.
package internal
