// Package postgres provides the PostgreSQL SQL dialect definition.
package postgres

import "github.com/leapstack-labs/querykit/pkg/core"

// Config is the PostgreSQL dialect configuration.
var Config = &core.DialectConfig{
	Name:        core.DatabasePostgreSQL,
	DisplayName: "PostgreSQL",
	Identifiers: core.IdentifierConfig{
		Quote:    `"`,
		QuoteEnd: `"`,
	},
	Keywords: []string{
		"RETURNING", "JSONB", "ILIKE", "SERIAL",
		"ON CONFLICT", "DO NOTHING", "LATERAL",
	},
}
