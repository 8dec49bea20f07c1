// Package mssql provides the Microsoft SQL Server dialect definition.
package mssql

import "github.com/leapstack-labs/querykit/pkg/core"

// Config is the SQL Server dialect configuration.
// Identifiers are bracket-quoted: [name].
var Config = &core.DialectConfig{
	Name:        core.DatabaseMSSQL,
	DisplayName: "SQL Server",
	Identifiers: core.IdentifierConfig{
		Quote:    "[",
		QuoteEnd: "]",
	},
	Keywords: []string{
		"TOP", "IDENTITY", "NVARCHAR", "GETDATE", "OUTPUT", "MERGE",
	},
}
