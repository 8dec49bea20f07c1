// Package intent parses the line-oriented intent grammar into typed query
// builders.
//
// Each non-empty line is matched against an ordered alias table for the
// requested query kind; the first matching alias decides which builder field
// the rest of the line feeds. Lines that match nothing are ignored, so
// parsing never fails on content. A missing table simply renders as an empty
// identifier.
package intent

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/leapstack-labs/querykit/pkg/core"
	"github.com/leapstack-labs/querykit/pkg/query"
	"github.com/leapstack-labs/querykit/pkg/token"
)

// joinKeyword matches a value that already starts with a join keyword.
var joinKeyword = regexp.MustCompile(`(?i)^((natural\s+)?(inner|left|right|full|cross)(\s+outer)?\s+)?join\b`)

// Entry is one classified intent line.
type Entry struct {
	Field Field
	Value string
	Line  int // 1-based source line
}

// Scan classifies every line of raw against table. Blank lines, comment
// lines (# or --) and unrecognized lines are skipped.
func Scan(raw string, table []Alias) []Entry {
	var entries []Entry
	for i, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "--") {
			continue
		}
		a, ok := Classify(line, table)
		if !ok {
			continue
		}
		entries = append(entries, Entry{Field: a.Field, Value: a.Value(line), Line: i + 1})
	}
	return entries
}

// Parse converts raw intent text into the builder for kind. It returns
// core.ErrUnsupportedQueryType for kinds without an intent grammar (custom).
func Parse(raw string, kind core.QueryType) (query.Builder, error) {
	table := Aliases(kind)
	if table == nil {
		return nil, fmt.Errorf("%w: %q has no intent grammar", core.ErrUnsupportedQueryType, kind)
	}
	entries := Scan(raw, table)

	switch kind {
	case core.QuerySelect:
		return buildSelect(entries), nil
	case core.QueryInsert:
		return buildInsert(entries), nil
	case core.QueryUpdate:
		return buildUpdate(entries), nil
	case core.QueryDelete:
		return buildDelete(entries), nil
	default:
		return buildCreate(entries), nil
	}
}

func buildSelect(entries []Entry) *query.SelectBuilder {
	b := &query.SelectBuilder{}
	for _, e := range entries {
		switch e.Field {
		case FieldColumns:
			b.Select = appendColumns(b.Select, e.Value)
		case FieldTable:
			b.From = e.Value
		case FieldJoin:
			b.Joins = appendNonEmpty(b.Joins, joinClause(e.Value))
		case FieldWhere:
			b.Where = appendNonEmpty(b.Where, e.Value)
		case FieldGroupBy:
			b.GroupBy = append(b.GroupBy, splitList(e.Value)...)
		case FieldHaving:
			b.Having = appendNonEmpty(b.Having, e.Value)
		case FieldOrderBy:
			b.OrderBy = append(b.OrderBy, splitList(e.Value)...)
		case FieldLimit:
			b.Limit = e.Value
		case FieldOffset:
			b.Offset = e.Value
		}
	}
	return b
}

func buildInsert(entries []Entry) *query.InsertBuilder {
	b := &query.InsertBuilder{}
	for _, e := range entries {
		switch e.Field {
		case FieldTable:
			b.Table = e.Value
		case FieldColumns:
			b.Columns = append(b.Columns, splitList(e.Value)...)
		case FieldValues:
			if row, ok := parseRow(e.Value); ok {
				b.Values = append(b.Values, row)
			}
		case FieldOnConflict:
			b.OnConflict = e.Value
		}
	}
	return b
}

func buildUpdate(entries []Entry) *query.UpdateBuilder {
	b := &query.UpdateBuilder{}
	for _, e := range entries {
		switch e.Field {
		case FieldTable:
			b.Table = e.Value
		case FieldSet:
			b.Set = appendNonEmpty(b.Set, e.Value)
		case FieldJoin:
			b.Joins = appendNonEmpty(b.Joins, joinClause(e.Value))
		case FieldWhere:
			b.Where = appendNonEmpty(b.Where, e.Value)
		}
	}
	return b
}

func buildDelete(entries []Entry) *query.DeleteBuilder {
	b := &query.DeleteBuilder{}
	for _, e := range entries {
		switch e.Field {
		case FieldTable:
			b.Table = e.Value
		case FieldJoin:
			b.Joins = appendNonEmpty(b.Joins, joinClause(e.Value))
		case FieldWhere:
			b.Where = appendNonEmpty(b.Where, e.Value)
		}
	}
	return b
}

func buildCreate(entries []Entry) *query.CreateTableBuilder {
	b := &query.CreateTableBuilder{}
	for _, e := range entries {
		switch e.Field {
		case FieldTable:
			b.Table = e.Value
		case FieldColumns:
			b.Columns = append(b.Columns, splitList(e.Value)...)
		case FieldPrimaryKey:
			b.PrimaryKey = append(b.PrimaryKey, splitList(strings.Trim(e.Value, "()"))...)
		case FieldOptions:
			b.Options = e.Value
		case FieldIfNotExists:
			b.IfNotExists = true
		}
	}
	return b
}

// splitList splits on top-level commas and drops empty entries.
func splitList(value string) []string {
	var out []string
	for _, part := range token.Split(value) {
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// appendColumns adds SELECT output expressions. An empty first entry
// collapses the whole field to *.
func appendColumns(cols []string, value string) []string {
	parts := token.Split(value)
	if parts[0] == "" {
		return []string{"*"}
	}
	return append(cols, splitList(value)...)
}

// parseRow parses a parenthesized value tuple. Values that are not wrapped
// in parentheses are rejected.
func parseRow(value string) ([]string, bool) {
	if len(value) < 2 || value[0] != '(' || value[len(value)-1] != ')' {
		return nil, false
	}
	return splitList(value[1 : len(value)-1]), true
}

// joinClause prefixes JOIN when the value is only a table and condition.
func joinClause(value string) string {
	if value == "" || joinKeyword.MatchString(value) {
		return value
	}
	return "JOIN " + value
}

func appendNonEmpty(list []string, value string) []string {
	if value == "" {
		return list
	}
	return append(list, value)
}
