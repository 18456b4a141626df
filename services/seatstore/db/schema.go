package db

import (
	_ "embed"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var Schema string

// valid CHECK constraint values for seat_terms
var (
	ValidStartReasons = map[string]bool{
		"appointed": true,
		"elected":   true,
		"succeeded": true,
	}
	ValidEndReasons = map[string]bool{
		"appointed_elsewhere": true,
		"died":                true,
		"lost_election":       true,
		"removed":             true,
		"resigned":            true,
		"term_expired":        true,
	}
)
