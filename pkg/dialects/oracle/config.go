// Package oracle provides the Oracle SQL dialect definition.
package oracle

import "github.com/leapstack-labs/querykit/pkg/core"

// Config is the Oracle dialect configuration.
var Config = &core.DialectConfig{
	Name:        core.DatabaseOracle,
	DisplayName: "Oracle",
	Identifiers: core.IdentifierConfig{
		Quote:         `"`,
		QuoteEnd:      `"`,
		Normalization: core.NormUppercase, // unquoted names are stored upper-case
	},
	Keywords: []string{
		"ROWNUM", "SYSDATE", "VARCHAR2", "NUMBER", "DUAL",
		"CONNECT BY", "FETCH FIRST",
	},
}
