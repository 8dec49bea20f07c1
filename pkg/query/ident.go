package query

import (
	"regexp"
	"strings"
)

var (
	plainIdent = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_$]*$`)
	// orderSuffix matches a trailing sort direction and NULLS placement.
	orderSuffix = regexp.MustCompile(`(?i)\s+(ASC|DESC)(\s+NULLS\s+(FIRST|LAST))?$|\s+NULLS\s+(FIRST|LAST)$`)
	// aliasSuffix matches a trailing "AS alias".
	aliasSuffix = regexp.MustCompile(`(?i)^(.*?)\s+AS\s+([A-Za-z_][A-Za-z0-9_$]*)$`)
)

// Ident quotes a table or column reference. Dotted names are quoted per
// part and a trailing ".*" is kept. Anything that is not a plain or dotted
// identifier (expressions, literals, already-quoted names) is returned as is.
func (r Renderer) Ident(name string) string {
	if !r.EscapeIdentifiers || r.Dialect == nil || name == "" {
		return name
	}
	parts := strings.Split(name, ".")
	for i, p := range parts {
		if p == "*" && i == len(parts)-1 && i > 0 {
			continue
		}
		if !plainIdent.MatchString(p) {
			return name
		}
	}
	for i, p := range parts {
		if p != "*" {
			parts[i] = r.Dialect.QuoteIdentifier(p)
		}
	}
	return strings.Join(parts, ".")
}

// Column quotes a projection entry. An "AS alias" suffix is quoted too.
func (r Renderer) Column(expr string) string {
	if m := aliasSuffix.FindStringSubmatch(expr); m != nil {
		return r.Ident(m[1]) + " AS " + r.Ident(m[2])
	}
	return r.Ident(expr)
}

// OrderTerm quotes an ORDER BY entry, keeping the direction outside the quotes.
func (r Renderer) OrderTerm(expr string) string {
	loc := orderSuffix.FindStringIndex(expr)
	if loc == nil {
		return r.Ident(expr)
	}
	return r.Ident(expr[:loc[0]]) + expr[loc[0]:]
}

func (r Renderer) mapList(items []string, fn func(string) string) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = fn(it)
	}
	return out
}
