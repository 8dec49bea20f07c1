// Package mysql provides the MySQL SQL dialect definition.
//
// MySQL quotes identifiers with backticks and adds its table options and
// upsert syntax to the keyword set.
package mysql

import "github.com/leapstack-labs/querykit/pkg/core"

// Config is the MySQL dialect configuration.
var Config = &core.DialectConfig{
	Name:        core.DatabaseMySQL,
	DisplayName: "MySQL",
	Identifiers: core.IdentifierConfig{
		Quote:    "`",
		QuoteEnd: "`",
	},
	Keywords: []string{
		"AUTO_INCREMENT", "ON DUPLICATE KEY UPDATE",
		// Table options
		"ENGINE", "CHARSET", "UNSIGNED",
		"REPLACE", "IGNORE",
	},
}
