// Package migrations holds the goose SQL migrations of the game database.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
