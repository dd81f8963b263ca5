// Package migrations holds the PostgreSQL schema for the campaign store.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS

// Version is the schema version the service expects after migrating.
const Version = 1
