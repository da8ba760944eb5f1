// Package migrations embeds the versioned schema files so binaries can
// migrate without the source tree.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
