// Package migrations embeds the remote mirror schema.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
