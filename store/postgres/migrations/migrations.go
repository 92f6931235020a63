// Package migrations embeds the goose SQL migrations for the accounts schema.
package migrations

import "embed"

// Migrations is an exported constant or variable used by the authentication engine.
//
//go:embed *.sql
var Migrations embed.FS
