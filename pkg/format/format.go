// Package format normalizes keyword casing and reflows SQL text into
// multi-line, indented output.
//
// Formatting works on the token stream from pkg/token, never on raw text, so
// string literals, quoted identifiers and comments are left alone and the
// result depends only on the tokens. Formatting already formatted text is a
// no-op.
package format

import (
	"strings"

	"github.com/leapstack-labs/querykit/pkg/dialect"
	"github.com/leapstack-labs/querykit/pkg/token"
)

// Defaults applied to zero Options fields.
const (
	DefaultIndentSize = 2
	DefaultLineWidth  = 80
	// hangingIndent prefixes AND/OR continuation lines regardless of IndentSize.
	hangingIndent = "  "
)

// Options controls formatting.
type Options struct {
	// Dialect supplies the keyword table and bracket quoting. Nil disables
	// keyword casing.
	Dialect *dialect.Dialect
	// UppercaseKeywords enables the casing pass.
	UppercaseKeywords bool
	// IndentSize is the number of spaces per subquery level and for comma
	// continuation lines.
	IndentSize int
	// LineWidth is the clause width above which top-level commas wrap.
	LineWidth int
}

func (o Options) withDefaults() Options {
	if o.IndentSize <= 0 {
		o.IndentSize = DefaultIndentSize
	}
	if o.LineWidth <= 0 {
		o.LineWidth = DefaultLineWidth
	}
	return o
}

// SQL formats sql. The casing pass runs only when opts.UppercaseKeywords is
// set; line breaking always runs. The result is trimmed.
func SQL(sql string, opts Options) string {
	opts = opts.withDefaults()

	var lex token.Options
	if opts.Dialect != nil {
		lex.Brackets = opts.Dialect.UsesBrackets()
	}
	toks := token.Scan(sql, lex)
	if len(toks) == 0 {
		return ""
	}
	if opts.UppercaseKeywords && opts.Dialect != nil {
		UppercaseKeywords(toks, opts.Dialect)
	}
	return strings.TrimSpace(layout(toks, opts))
}

// Keywords upper-cases the keywords in sql without changing its layout.
func Keywords(sql string, d *dialect.Dialect) string {
	if d == nil {
		return sql
	}
	orig := token.Scan(sql, token.Options{Brackets: d.UsesBrackets()})
	toks := append([]token.Token(nil), orig...)
	UppercaseKeywords(toks, d)

	var b strings.Builder
	last := 0
	for i, t := range toks {
		b.WriteString(sql[last:t.Offset])
		b.WriteString(t.Text)
		last = t.Offset + len(orig[i].Text)
	}
	b.WriteString(sql[last:])
	return b.String()
}
