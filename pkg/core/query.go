package core

import (
	"fmt"
	"strings"
)

// =============================================================================
// QueryType
// =============================================================================

// QueryType is the kind of statement the engine should produce.
type QueryType string

// Supported query types.
const (
	QuerySelect QueryType = "select"
	QueryInsert QueryType = "insert"
	QueryUpdate QueryType = "update"
	QueryDelete QueryType = "delete"
	QueryCreate QueryType = "create"
	// QueryCustom passes existing SQL through untouched by the builders.
	QueryCustom QueryType = "custom"
)

// QueryTypes lists every supported query type in display order.
var QueryTypes = []QueryType{QuerySelect, QueryInsert, QueryUpdate, QueryDelete, QueryCreate, QueryCustom}

// Keyword returns the canonical leading SQL keyword for the query type.
// Custom queries have no fixed keyword and return "".
func (q QueryType) Keyword() string {
	switch q {
	case QuerySelect, QueryInsert, QueryUpdate, QueryDelete, QueryCreate:
		return strings.ToUpper(string(q))
	default:
		return ""
	}
}

// ParseQueryType converts a string to a QueryType.
// Returns the query type and true if valid, or "" and false if invalid.
func ParseQueryType(s string) (QueryType, bool) {
	q := QueryType(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range QueryTypes {
		if q == known {
			return q, true
		}
	}
	return "", false
}

// =============================================================================
// Database
// =============================================================================

// Database is the target SQL dialect family.
type Database string

// Supported databases.
const (
	DatabaseMySQL      Database = "mysql"
	DatabasePostgreSQL Database = "postgresql"
	DatabaseSQLite     Database = "sqlite"
	DatabaseMSSQL      Database = "mssql"
	DatabaseOracle     Database = "oracle"
	DatabaseGeneric    Database = "generic"
)

// Databases lists every supported database in display order.
var Databases = []Database{DatabaseMySQL, DatabasePostgreSQL, DatabaseSQLite, DatabaseMSSQL, DatabaseOracle, DatabaseGeneric}

// ParseDatabase converts a string to a Database.
// Returns the database and true if valid, or "" and false if invalid.
func ParseDatabase(s string) (Database, bool) {
	d := Database(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Databases {
		if d == known {
			return d, true
		}
	}
	return "", false
}

// =============================================================================
// Config
// =============================================================================

// Config is the per-invocation query builder configuration.
// All fields are required; the engine never fills in defaults.
type Config struct {
	QueryType         QueryType `json:"queryType" koanf:"query_type" yaml:"query_type"`
	Database          Database  `json:"database" koanf:"database" yaml:"database"`
	FormatOutput      bool      `json:"formatOutput" koanf:"format_output" yaml:"format_output"`
	IncludeComments   bool      `json:"includeComments" koanf:"include_comments" yaml:"include_comments"`
	ValidateSyntax    bool      `json:"validateSyntax" koanf:"validate_syntax" yaml:"validate_syntax"`
	GenerateExamples  bool      `json:"generateExamples" koanf:"generate_examples" yaml:"generate_examples"`
	EscapeIdentifiers bool      `json:"escapeIdentifiers" koanf:"escape_identifiers" yaml:"escape_identifiers"`
	UppercaseKeywords bool      `json:"uppercaseKeywords" koanf:"uppercase_keywords" yaml:"uppercase_keywords"`
	IndentSize        int       `json:"indentSize" koanf:"indent_size" yaml:"indent_size"`
}

// Validate checks that every enumerated field holds a known value.
func (c Config) Validate() error {
	if _, ok := ParseQueryType(string(c.QueryType)); !ok {
		return fmt.Errorf("%w: %q", ErrUnsupportedQueryType, c.QueryType)
	}
	if _, ok := ParseDatabase(string(c.Database)); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownDatabase, c.Database)
	}
	if c.IndentSize <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidIndentSize, c.IndentSize)
	}
	return nil
}

// =============================================================================
// Analysis
// =============================================================================

// Complexity is a coarse structural classification of a query.
type Complexity string

// Complexity levels, ordered from least to most complex.
const (
	ComplexitySimple   Complexity = "simple"
	ComplexityModerate Complexity = "moderate"
	ComplexityComplex  Complexity = "complex"
)

// Rank returns the ordinal of the complexity level (simple = 0).
func (c Complexity) Rank() int {
	switch c {
	case ComplexityModerate:
		return 1
	case ComplexityComplex:
		return 2
	default:
		return 0
	}
}

// QueryInfo is the static analysis result for rendered SQL text.
type QueryInfo struct {
	// Type is the leading statement keyword (SELECT, INSERT, ...) or "unknown".
	Type string `json:"type"`
	// Tables lists table names in discovery order; duplicates are kept.
	Tables []string `json:"tables"`
	// Columns is reserved and always empty.
	Columns       []string   `json:"columns"`
	HasJoins      bool       `json:"hasJoins"`
	HasSubqueries bool       `json:"hasSubqueries"`
	Complexity    Complexity `json:"complexity"`
}

// =============================================================================
// ToolResult
// =============================================================================

// ToolResult is the envelope returned by the engine for every invocation.
// Output, Query and QueryInfo are only meaningful when Success is true;
// Error is only set when Success is false.
type ToolResult struct {
	Success     bool       `json:"success"`
	Output      string     `json:"output,omitempty"`
	Error       string     `json:"error,omitempty"`
	Query       string     `json:"query,omitempty"`
	QueryInfo   *QueryInfo `json:"queryInfo,omitempty"`
	Suggestions []string   `json:"suggestions,omitempty"`
}

// Failure builds an unsuccessful ToolResult carrying err's message.
func Failure(err error) ToolResult {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	if msg == "" {
		msg = ErrBuildFailed.Error()
	}
	return ToolResult{Success: false, Error: msg}
}
