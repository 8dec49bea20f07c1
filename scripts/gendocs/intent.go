package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/leapstack-labs/querykit/internal/engine"
	"github.com/leapstack-labs/querykit/pkg/core"
	"github.com/leapstack-labs/querykit/pkg/intent"
)

// intentSamples are rendered through the engine so the page shows real output.
var intentSamples = map[core.QueryType]string{
	core.QuerySelect: "select: id, name\nfrom: users\nwhere: active = 1\norder by: name\nlimit: 10",
	core.QueryInsert: "table: products\ncolumns: name, price\nvalues: ('Mouse', 29.99)",
	core.QueryUpdate: "table: users\nset: status = 'inactive'\nwhere: last_login < '2024-01-01'",
	core.QueryDelete: "table: sessions\nwhere: expires_at < CURRENT_TIMESTAMP",
	core.QueryCreate: "table: audit_log\ncolumns: id INT NOT NULL, action VARCHAR(50)\nprimary key: id",
}

// sampleConfig renders the samples for PostgreSQL with formatting on.
var sampleConfig = core.Config{
	Database:          core.DatabasePostgreSQL,
	FormatOutput:      true,
	UppercaseKeywords: true,
	IndentSize:        2,
}

// generateIntentDocs generates the intent line reference from the parser's
// alias tables.
func generateIntentDocs(outDir string) error {
	log.Printf("Generating intent docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	w := NewMarkdownWriter()
	w.Frontmatter("Intent lines", "Line prefixes accepted for each query type")
	w.GeneratedMarker()

	w.Header(1, "Intent lines")
	w.Paragraph("Each non-empty line is matched, ignoring case, against the prefixes of the query type " +
		"in the order listed; the first match wins. The value is the text after the prefix, or the " +
		"whole line for verbatim prefixes. Lines starting with `#` or `--` are comments and lines " +
		"that match nothing are ignored. Custom queries take SQL as written and have no prefixes.")

	for _, kind := range core.QueryTypes {
		aliases := intent.Aliases(kind)
		if len(aliases) == 0 {
			continue
		}

		w.Header(2, title.String(string(kind)))
		rows := make([][]string, 0, len(aliases))
		for _, a := range aliases {
			rows = append(rows, []string{InlineCode(a.Prefix), string(a.Field), yesNo(a.Verbatim)})
		}
		w.Table([]string{"Prefix", "Field", "Verbatim"}, rows)

		sample, ok := intentSamples[kind]
		if !ok {
			continue
		}
		cfg := sampleConfig
		cfg.QueryType = kind
		res := engine.Process(sample, cfg)
		if !res.Success {
			return fmt.Errorf("sample for %s failed: %s", kind, res.Error)
		}
		w.CodeBlock("text", sample)
		w.CodeBlock("sql", res.Query)
	}

	if err := os.WriteFile(filepath.Join(outDir, "intent.md"), w.Bytes(), 0600); err != nil {
		return err
	}
	log.Printf("  Generated intent.md")
	return nil
}
