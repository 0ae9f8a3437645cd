// Package migrations ships the schema with the binaries that apply it.
package migrations

import "embed"

// Postgres holds the golang-migrate files under postgres/.
//
//go:embed postgres/*.sql
var Postgres embed.FS

const PostgresDir = "postgres"
