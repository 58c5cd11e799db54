// Package migrations embeds the versioned schema migration scripts.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
