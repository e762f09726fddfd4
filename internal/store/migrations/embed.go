// Package migrations embeds the SQL schema migrations for minda.db.
package migrations

import "embed"

// FS holds the versioned up/down migration files.
//
//go:embed *.sql
var FS embed.FS
