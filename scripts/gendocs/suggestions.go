package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/leapstack-labs/querykit/pkg/core"
	"github.com/leapstack-labs/querykit/pkg/lint"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var title = cases.Title(language.English)

// generateSuggestionDocs generates the suggestions reference page.
func generateSuggestionDocs(outDir string) error {
	log.Printf("Generating suggestion docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	w := NewMarkdownWriter()
	w.Frontmatter("Suggestions", "Improvement tips attached to build results")
	w.GeneratedMarker()

	w.Header(1, "Suggestions")
	w.Paragraph("Every successful build carries the suggestions for its query type. Create and custom queries carry none.")

	for _, kind := range core.QueryTypes {
		tips := lint.Catalog(kind)
		if len(tips) == 0 {
			continue
		}
		w.Header(2, title.String(string(kind)))
		var rows [][]string
		for _, s := range tips {
			rows = append(rows, []string{InlineCode(s.ID), s.Group, cleanDescription(s.Text)})
		}
		w.Table([]string{"ID", "Group", "Suggestion"}, rows)
	}

	if err := os.WriteFile(filepath.Join(outDir, "suggestions.md"), w.Bytes(), 0600); err != nil {
		return err
	}
	log.Printf("  Generated suggestions.md")
	return nil
}
