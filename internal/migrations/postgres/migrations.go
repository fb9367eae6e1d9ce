// Package postgres embeds the goose migrations of the image metadata store.
package postgres

import "embed"

//go:embed *.sql
var Migrations embed.FS
