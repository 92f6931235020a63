// Package postgres provides a PostgreSQL-backed [authflow.AccountStore] over
// database/sql with the pgx driver.
//
// Schema management is embedded: [RunMigrations] applies the goose migrations
// shipped with the package. The accounts table carries a unique constraint on
// email, which backs the duplicate-registration race mapping.
//
// # What this package must NOT do
//
//   - Open or own the *sql.DB lifecycle — callers pass a ready handle.
//   - Match empty reset codes; absence is stored as SQL NULL.
package postgres
