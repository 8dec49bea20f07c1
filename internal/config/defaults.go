// Package config holds the query defaults and config file discovery shared by
// the CLI and the HTTP server.
package config

import (
	"github.com/leapstack-labs/querykit/internal/engine"
	"github.com/leapstack-labs/querykit/pkg/core"
)

// Default configuration values.
const (
	DefaultQueryType   = core.QuerySelect
	DefaultDatabase    = core.DatabaseMySQL
	DefaultIndentSize  = 2
	DefaultAddr        = "127.0.0.1:8765"
	DefaultConcurrency = engine.DefaultConcurrency
)

// DefaultQuery returns the query configuration used when nothing else is set:
// formatted, upper-cased SELECT output for MySQL with every extra disabled.
func DefaultQuery() core.Config {
	return core.Config{
		QueryType:         DefaultQueryType,
		Database:          DefaultDatabase,
		FormatOutput:      true,
		UppercaseKeywords: true,
		IndentSize:        DefaultIndentSize,
	}
}

// ApplyDefaults fills the enumerated fields and indent size of c when they
// are unset. Boolean flags are left alone since false is a valid choice.
func ApplyDefaults(c *core.Config) {
	if c == nil {
		return
	}
	if c.QueryType == "" {
		c.QueryType = DefaultQueryType
	}
	if c.Database == "" {
		c.Database = DefaultDatabase
	}
	if c.IndentSize == 0 {
		c.IndentSize = DefaultIndentSize
	}
}
