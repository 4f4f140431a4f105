// Package migrations holds the versioned SQL schema of the pricing database.
package migrations

import "embed"

// FS contains every *.sql migration in this directory
//
//go:embed *.sql
var FS embed.FS
