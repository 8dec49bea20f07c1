// Package core defines the shared language of the querykit system.
//
// This package contains:
//   - Query configuration (Config, QueryType, Database)
//   - Analysis results (QueryInfo, Complexity)
//   - The engine result envelope (ToolResult)
//   - Pure dialect data (DialectConfig, IdentifierConfig)
//
// The Golden Rule: pkg/core imports ONLY the standard library.
// All other packages depend on core, not the reverse.
package core
