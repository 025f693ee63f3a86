// Package migrations carries the schema migration files for the
// result store, applied in ascending filename order.
package migrations

import "embed"

// FS holds every *.up.sql migration, embedded at compile time.
//
//go:embed *.sql
var FS embed.FS
