// Package migrations embeds the SQL schema migrations of the sqlite driver.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
