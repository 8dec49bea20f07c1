package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/leapstack-labs/querykit/internal/cli/config"
	"github.com/leapstack-labs/querykit/pkg/core"
)

// ConfigField represents a configuration field definition.
type ConfigField struct {
	Key         string
	Type        string
	Default     string
	Description string
}

// getConfigSchema returns the settings read from querykit.yaml, in file order.
// Defaults come from the loader so the page cannot drift from the code.
func getConfigSchema() []ConfigField {
	d := config.Default()
	kinds := make([]string, 0, len(core.QueryTypes))
	for _, k := range core.QueryTypes {
		kinds = append(kinds, string(k))
	}
	dbs := make([]string, 0, len(core.Databases))
	for _, db := range core.Databases {
		dbs = append(dbs, string(db))
	}

	return []ConfigField{
		{Key: "query_type", Type: "string", Default: d.QueryType, Description: "Statement to build: " + strings.Join(kinds, ", ")},
		{Key: "database", Type: "string", Default: d.Database, Description: "Target dialect: " + strings.Join(dbs, ", ")},
		{Key: "format_output", Type: "bool", Default: strconv.FormatBool(d.FormatOutput), Description: "Break clauses onto lines and indent"},
		{Key: "uppercase_keywords", Type: "bool", Default: strconv.FormatBool(d.UppercaseKeywords), Description: "Upper-case keywords while formatting"},
		{Key: "indent_size", Type: "int", Default: strconv.Itoa(d.IndentSize), Description: "Spaces per indent level"},
		{Key: "include_comments", Type: "bool", Default: strconv.FormatBool(d.IncludeComments), Description: "Prepend a comment banner and append an analysis block"},
		{Key: "generate_examples", Type: "bool", Default: strconv.FormatBool(d.GenerateExamples), Description: "Append an example statement"},
		{Key: "escape_identifiers", Type: "bool", Default: strconv.FormatBool(d.EscapeIdentifiers), Description: "Quote table and column names for the dialect"},
		{Key: "validate_syntax", Type: "bool", Default: strconv.FormatBool(d.ValidateSyntax), Description: "Accepted and ignored"},
		{Key: "output", Type: "string", Default: d.OutputFormat, Description: "CLI output mode: auto, text, markdown, json"},
		{Key: "verbose", Type: "bool", Default: strconv.FormatBool(d.Verbose), Description: "Debug logging to stderr"},
		{Key: "concurrency", Type: "int", Default: strconv.Itoa(d.Concurrency), Description: "Worker limit for batch builds"},
		{Key: "server.addr", Type: "string", Default: d.Server.Addr, Description: "Listen address for querykit serve"},
	}
}

// envName returns the environment variable for a config key.
func envName(key string) string {
	return config.EnvPrefix + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// generateConfigDocs generates the configuration reference page.
func generateConfigDocs(outDir string) error {
	log.Printf("Generating config docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	w := NewMarkdownWriter()
	w.Frontmatter("Configuration", "querykit configuration reference")
	w.GeneratedMarker()

	w.Header(1, "Configuration")
	w.Paragraph("querykit reads `querykit.yaml` (or `querykit.yml`) from the current directory or the nearest parent. " +
		"Settings are layered: built-in defaults, then the file, then environment variables, then command-line flags.")

	w.Header(2, "Settings")
	var rows [][]string
	for _, f := range getConfigSchema() {
		def := f.Default
		if def == "" {
			def = "-"
		}
		rows = append(rows, []string{InlineCode(f.Key), f.Type, InlineCode(def), InlineCode(envName(f.Key)), f.Description})
	}
	w.Table([]string{"Key", "Type", "Default", "Environment", "Description"}, rows)

	w.Header(2, "Example")
	w.CodeBlock("yaml", `query_type: select
database: postgresql
escape_identifiers: true
indent_size: 4
server:
  addr: "127.0.0.1:8765"`)

	if err := os.WriteFile(filepath.Join(outDir, "configuration.md"), w.Bytes(), 0600); err != nil {
		return err
	}
	log.Printf("  Generated configuration.md")
	return nil
}
