// Package redis provides a Redis-backed [authflow.AccountStore].
//
// Each account lives in a hash at <prefix>:account:<id> with email and phone
// index keys pointing at the id. Insert and Update run as Lua scripts so the
// email uniqueness check and the write are atomic.
//
// # What this package must NOT do
//
//   - Expire account keys — accounts have no TTL.
//   - Interpret reset codes; matching semantics live in the store contract only.
package redis
