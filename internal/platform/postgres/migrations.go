package postgres

import "embed"

// MigrationsFS embeds the schema migrations so the binary can apply
// them without a checkout on disk.
//
//go:embed migrations/*.sql
var MigrationsFS embed.FS
