package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/leapstack-labs/querykit/pkg/dialect"
	_ "github.com/leapstack-labs/querykit/pkg/dialects" // register built-in dialects
)

// generateDialectDocs generates the dialect reference page.
func generateDialectDocs(outDir string) error {
	log.Printf("Generating dialect docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	infos := dialect.Describe()

	w := NewMarkdownWriter()
	w.Frontmatter("Dialects", "Identifier quoting and keywords per database")
	w.GeneratedMarker()

	w.Header(1, "Dialects")
	w.Paragraph(fmt.Sprintf("querykit supports **%d** databases. With `escape_identifiers` set, plain and dotted identifiers are quoted part by part; other expressions are left as written.", len(infos)))

	var rows [][]string
	for _, info := range infos {
		rows = append(rows, []string{
			InlineCode(string(info.Name)),
			info.DisplayName,
			InlineCode(dialect.Escape("user_id", info.Name)),
			yesNo(info.Uppercase),
		})
	}
	w.Table([]string{"Name", "Database", "Quoted", "Upper-cases names"}, rows)

	for _, info := range infos {
		if len(info.Additions) == 0 {
			continue
		}
		w.Header(2, info.DisplayName)
		w.Paragraph("Keywords recognized in addition to the common set:")
		codes := make([]string, 0, len(info.Additions))
		for _, kw := range info.Additions {
			codes = append(codes, InlineCode(kw))
		}
		w.BulletList(codes)
	}

	if err := os.WriteFile(filepath.Join(outDir, "dialects.md"), w.Bytes(), 0600); err != nil {
		return err
	}
	log.Printf("  Generated dialects.md")
	return nil
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
