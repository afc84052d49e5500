package migrations

import "embed"

// FS contains the host store schema migrations, shared by PostgreSQL and SQLite.
//
//go:embed *.sql
var FS embed.FS
