package db

import "embed"

// migrationsFS holds one migration directory per goose dialect.
//
//go:embed migrations
var migrationsFS embed.FS
