// Package sqlite provides the SQLite SQL dialect definition.
package sqlite

import "github.com/leapstack-labs/querykit/pkg/core"

// Config is the SQLite dialect configuration.
var Config = &core.DialectConfig{
	Name:        core.DatabaseSQLite,
	DisplayName: "SQLite",
	Identifiers: core.IdentifierConfig{
		Quote:    `"`,
		QuoteEnd: `"`,
	},
	Keywords: []string{
		"AUTOINCREMENT", "PRAGMA", "WITHOUT ROWID", "GLOB", "VACUUM",
	},
}
