// Package migrations embeds the fleet schema migrations so the goose
// programmatic API can apply them in tests and at server bootstrap.
package migrations

import "embed"

// FS holds all *.sql migration files embedded at compile time. Pass it to
// goose.NewProvider so migrations never depend on a filesystem path at
// runtime.
//
//go:embed *.sql
var FS embed.FS
