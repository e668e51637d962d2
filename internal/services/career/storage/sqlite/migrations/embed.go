package migrations

import "embed"

// FS contains embedded SQLite migrations for career storage.
//
//go:embed *.sql
var FS embed.FS
