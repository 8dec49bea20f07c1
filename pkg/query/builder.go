// Package query holds the typed intermediate builders, one per statement
// kind, and renders them to single-line SQL.
//
// Builders store clause text as written by the caller. Predicate, join,
// assignment and conflict text is treated as opaque SQL and is never
// escaped; only identifier-bearing fields go through the dialect's quoting
// when escaping is enabled.
package query

import (
	"strconv"
	"strings"

	"github.com/leapstack-labs/querykit/pkg/core"
	"github.com/leapstack-labs/querykit/pkg/dialect"
)

// Builder is a typed intermediate representation of a single statement.
type Builder interface {
	// Kind returns the query type the builder renders.
	Kind() core.QueryType
	// Render returns the statement as a single line of SQL.
	Render(r Renderer) (string, error)
}

// Renderer carries the rendering options shared by all builders.
type Renderer struct {
	// Dialect supplies identifier quoting. A nil dialect never quotes.
	Dialect *dialect.Dialect
	// EscapeIdentifiers enables quoting of identifier-bearing fields.
	EscapeIdentifiers bool
}

// NewRenderer returns a Renderer for d.
func NewRenderer(d *dialect.Dialect, escape bool) Renderer {
	return Renderer{Dialect: d, EscapeIdentifiers: escape}
}

// Render renders b with r.
func Render(b Builder, r Renderer) (string, error) {
	return b.Render(r)
}

// clauses accumulates space-separated SQL fragments.
type clauses struct {
	parts []string
}

func (c *clauses) add(parts ...string) {
	c.parts = append(c.parts, parts...)
}

// addList appends keyword followed by items joined with sep, unless items is empty.
func (c *clauses) addList(keyword string, items []string, sep string) {
	if len(items) == 0 {
		return
	}
	c.parts = append(c.parts, keyword, strings.Join(items, sep))
}

func (c *clauses) String() string {
	return strings.Join(c.parts, " ")
}

// notANumber is rendered for a LIMIT or OFFSET value with no leading integer.
const notANumber = "NaN"

// countValue renders a LIMIT or OFFSET value from its leading integer,
// ignoring trailing text ("10 rows" renders 10). A value without one renders
// NaN so the defect stays visible in the output instead of failing the build.
func countValue(raw string) string {
	raw = strings.TrimSpace(raw)
	end := 0
	if end < len(raw) && (raw[end] == '+' || raw[end] == '-') {
		end++
	}
	digits := end
	for end < len(raw) && raw[end] >= '0' && raw[end] <= '9' {
		end++
	}
	if end == digits {
		return notANumber
	}
	n, err := strconv.ParseInt(raw[:end], 10, 64)
	if err != nil {
		// Out of range for int64; keep the digits as written.
		return strings.TrimPrefix(raw[:end], "+")
	}
	return strconv.FormatInt(n, 10)
}
