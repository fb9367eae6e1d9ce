// Package sqlite embeds the goose migrations of the local state database.
package sqlite

import "embed"

//go:embed *.sql
var Migrations embed.FS
