package lint

import (
	"regexp"
	"strings"

	"github.com/leapstack-labs/querykit/pkg/core"
)

// identPattern matches a possibly quoted, possibly dotted identifier.
const identPattern = "(?:[`\"\\[]?[\\w$]+[`\"\\]]?)(?:\\.(?:[`\"\\[]?[\\w$]+[`\"\\]]?))*"

var (
	leadingKeyword = regexp.MustCompile(`(?i)^\s*(SELECT|INSERT|UPDATE|DELETE|CREATE)\b`)
	fromTable      = regexp.MustCompile(`(?i)\bFROM\s+(` + identPattern + `)`)
	joinTable      = regexp.MustCompile(`(?i)\bJOIN\s+(` + identPattern + `)`)
	subquery       = regexp.MustCompile(`(?i)\(\s*SELECT\b`)
	aggregation    = regexp.MustCompile(`(?i)\b(COUNT|SUM|AVG|MIN|MAX)\b|\bGROUP\s+BY\b`)
	window         = regexp.MustCompile(`(?i)\bOVER\s*\(`)

	unquote = strings.NewReplacer("`", "", `"`, "", "[", "", "]", "")
)

// notTables are words that can follow FROM when the table is missing.
var notTables = map[string]bool{
	"WHERE": true, "JOIN": true, "INNER": true, "LEFT": true, "RIGHT": true,
	"FULL": true, "CROSS": true, "GROUP": true, "ORDER": true, "HAVING": true,
	"LIMIT": true, "OFFSET": true, "UNION": true, "SELECT": true,
}

// Features are the structural features detected in SQL text.
type Features struct {
	Joins       bool
	Subqueries  bool
	Aggregation bool
	Window      bool
}

// Detect scans sql for structural features.
//
// Joins is a case-insensitive substring test for JOIN, so an identifier such
// as "joined_at" counts as a join.
func Detect(sql string) Features {
	return Features{
		Joins:       strings.Contains(strings.ToUpper(sql), "JOIN"),
		Subqueries:  subquery.MatchString(sql),
		Aggregation: aggregation.MatchString(sql),
		Window:      window.MatchString(sql),
	}
}

// Complexity classifies the detected features.
func (f Features) Complexity() core.Complexity {
	switch {
	case f.Window || (f.Joins && f.Subqueries):
		return core.ComplexityComplex
	case f.Joins || f.Subqueries || f.Aggregation:
		return core.ComplexityModerate
	default:
		return core.ComplexitySimple
	}
}

// Analyze extracts the statement type, referenced tables and structural
// features from rendered SQL.
func Analyze(sql string) core.QueryInfo {
	f := Detect(sql)
	return core.QueryInfo{
		Type:          StatementType(sql),
		Tables:        Tables(sql),
		Columns:       []string{},
		HasJoins:      f.Joins,
		HasSubqueries: f.Subqueries,
		Complexity:    f.Complexity(),
	}
}

// StatementType returns the upper-cased leading statement keyword, or
// "unknown".
func StatementType(sql string) string {
	m := leadingKeyword.FindStringSubmatch(sql)
	if m == nil {
		return "unknown"
	}
	return strings.ToUpper(m[1])
}

// Tables returns the table after the first FROM followed by an identifier,
// then the table after every JOIN, in order of appearance. Quote characters
// are stripped and duplicates are kept.
func Tables(sql string) []string {
	tables := []string{}
	for _, m := range fromTable.FindAllStringSubmatch(sql, -1) {
		if notTables[strings.ToUpper(m[1])] {
			continue
		}
		tables = append(tables, unquote.Replace(m[1]))
		break
	}
	for _, m := range joinTable.FindAllStringSubmatch(sql, -1) {
		tables = append(tables, unquote.Replace(m[1]))
	}
	return tables
}
