package testutil

import "github.com/leapstack-labs/querykit/pkg/core"

// NewConfig returns a complete query config for kind and db with output
// formatting and keyword casing enabled and every optional extra disabled.
func NewConfig(kind core.QueryType, db core.Database) core.Config {
	return core.Config{
		QueryType:         kind,
		Database:          db,
		FormatOutput:      true,
		UppercaseKeywords: true,
		IndentSize:        2,
	}
}

// ConfigOption adjusts a test config.
type ConfigOption func(*core.Config)

// WithComments enables the banner and analysis comments.
func WithComments() ConfigOption {
	return func(c *core.Config) { c.IncludeComments = true }
}

// WithExamples enables the example footer.
func WithExamples() ConfigOption {
	return func(c *core.Config) { c.GenerateExamples = true }
}

// WithEscaping enables identifier quoting.
func WithEscaping() ConfigOption {
	return func(c *core.Config) { c.EscapeIdentifiers = true }
}

// Unformatted disables formatting and keyword casing.
func Unformatted() ConfigOption {
	return func(c *core.Config) {
		c.FormatOutput = false
		c.UppercaseKeywords = false
	}
}

// Config builds a test config from NewConfig and opts.
func Config(kind core.QueryType, db core.Database, opts ...ConfigOption) core.Config {
	cfg := NewConfig(kind, db)
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
