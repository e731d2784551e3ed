// Package migrations embeds the SQL schema migrations applied at startup.
package migrations

import "embed"

// Dir is the directory inside FS holding the migration files.
const Dir = "sql"

//go:embed sql/*.sql
var FS embed.FS
