// Package password provides deterministic credential hashers satisfying the
// engine's Hasher contract: equal plaintexts always produce equal hashes, so
// authentication is a byte-for-byte comparison of stored and recomputed
// values.
//
// [Digest] is the canonical hasher (SHA-256 + base64), bit-compatible with the
// original Inflow service. [Argon2] is a memory-hard alternative that keeps
// determinism by substituting a deployment-wide pepper for the per-hash salt.
// Neither variant stores per-account salts; rotating the algorithm or pepper
// invalidates existing hashes and requires a password reset.
package password
