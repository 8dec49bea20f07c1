// Package config provides configuration management for the querykit CLI.
//
// Settings are layered with koanf: built-in defaults, then querykit.yaml,
// then QUERYKIT_ environment variables, then command-line flags.
package config

import (
	"fmt"

	"github.com/leapstack-labs/querykit/pkg/core"
)

// Config holds all CLI configuration options.
type Config struct {
	QueryType         string `koanf:"query_type"`
	Database          string `koanf:"database"`
	FormatOutput      bool   `koanf:"format_output"`
	IncludeComments   bool   `koanf:"include_comments"`
	ValidateSyntax    bool   `koanf:"validate_syntax"`
	GenerateExamples  bool   `koanf:"generate_examples"`
	EscapeIdentifiers bool   `koanf:"escape_identifiers"`
	UppercaseKeywords bool   `koanf:"uppercase_keywords"`
	IndentSize        int    `koanf:"indent_size"`

	Verbose      bool         `koanf:"verbose"`
	OutputFormat string       `koanf:"output"`
	Concurrency  int          `koanf:"concurrency"`
	Server       ServerConfig `koanf:"server"`
}

// ServerConfig holds configuration for the HTTP API server.
type ServerConfig struct {
	Addr string `koanf:"addr"`
}

// Default output mode: TTY=text, non-TTY=markdown.
const DefaultOutput = "auto"

// Query converts the loaded settings into a validated engine config.
func (c *Config) Query() (core.Config, error) {
	kind, ok := core.ParseQueryType(c.QueryType)
	if !ok {
		return core.Config{}, fmt.Errorf("%w: %q", core.ErrUnsupportedQueryType, c.QueryType)
	}
	db, ok := core.ParseDatabase(c.Database)
	if !ok {
		return core.Config{}, fmt.Errorf("%w: %q", core.ErrUnknownDatabase, c.Database)
	}

	q := core.Config{
		QueryType:         kind,
		Database:          db,
		FormatOutput:      c.FormatOutput,
		IncludeComments:   c.IncludeComments,
		ValidateSyntax:    c.ValidateSyntax,
		GenerateExamples:  c.GenerateExamples,
		EscapeIdentifiers: c.EscapeIdentifiers,
		UppercaseKeywords: c.UppercaseKeywords,
		IndentSize:        c.IndentSize,
	}
	if err := q.Validate(); err != nil {
		return core.Config{}, err
	}
	return q, nil
}
