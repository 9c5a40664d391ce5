// Package migrations embeds the snapshot schema migrations so the binary
// needs no files on disk next to it.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
