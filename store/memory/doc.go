// Package memory provides an in-process [authflow.AccountStore] backed by a
// mutex-guarded map. It is the default store for examples and tests; nothing
// survives process restart.
//
// # What this package must NOT do
//
//   - Persist anything to disk.
//   - Hand out pointers into its own map — accounts are copied on the way in and out.
package memory
