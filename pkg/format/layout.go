package format

import (
	"strings"

	"github.com/leapstack-labs/querykit/pkg/token"
	"github.com/mattn/go-runewidth"
)

type breakKind int

const (
	noBreak      breakKind = iota
	clauseBreak            // newline before a clause keyword
	logicalBreak           // newline plus hanging indent before AND/OR
	commentBreak           // newline after a line comment
)

// item is a token with its layout decisions.
type item struct {
	tok   token.Token
	brk   breakKind
	level int // subquery nesting depth
	// clauseComma marks a comma separating items of a clause (not nested in
	// ordinary parentheses).
	clauseComma bool
	wrap        bool // break after this comma
}

// frame is one level of parentheses. The root frame is a statement.
type frame struct {
	subquery bool
	between  bool // an AND is owed to BETWEEN
}

// joinModifiers may precede JOIN; the break goes before the first of them.
var joinModifiers = map[string]bool{
	"INNER": true, "LEFT": true, "RIGHT": true, "FULL": true,
	"CROSS": true, "NATURAL": true, "OUTER": true,
}

// clauseKeywords break onto a new line in statement or subquery context.
var clauseKeywords = map[string]bool{
	"SELECT": true, "FROM": true, "WHERE": true, "HAVING": true,
	"LIMIT": true, "UNION": true, "JOIN": true,
}

func layout(toks []token.Token, opts Options) string {
	items := plan(toks)
	wrapCommas(items, opts)
	return render(items, opts)
}

// plan assigns break kinds and nesting levels.
func plan(toks []token.Token) []item {
	items := make([]item, len(toks))
	stack := []frame{{subquery: true}}
	level := 0

	for i, t := range toks {
		// brk may already hold a commentBreak set by the previous token.
		items[i].tok = t
		items[i].level = level
		top := &stack[len(stack)-1]
		clauseCtx := top.subquery

		switch t.Kind {
		case token.LParen:
			sub := isSubqueryStart(toks, i+1)
			stack = append(stack, frame{subquery: sub})
			if sub {
				level++
			}
			continue
		case token.RParen:
			if len(stack) > 1 {
				if stack[len(stack)-1].subquery {
					level--
				}
				stack = stack[:len(stack)-1]
			}
			items[i].level = level
			continue
		case token.Comma:
			items[i].clauseComma = clauseCtx
			continue
		case token.LineComment:
			if i+1 < len(toks) {
				items[i+1].brk = commentBreak
			}
			continue
		case token.Word:
		default:
			continue
		}

		// Parts of a qualified name (t.from) stay glued to the dot.
		if qualified(toks, i) {
			continue
		}
		word := strings.ToUpper(t.Text)
		if word == "BETWEEN" {
			top.between = true
		}
		if !clauseCtx {
			continue
		}

		var brk breakKind
		switch {
		case word == "AND" && top.between:
			top.between = false
		case word == "AND" || word == "OR":
			brk = logicalBreak
		case word == "GROUP" || word == "ORDER":
			if nextWordIs(toks, i+1, "BY") {
				brk = clauseBreak
			}
		case joinModifiers[word]:
			if !prevWordIn(toks, i, joinModifiers) && startsJoin(toks, i) {
				brk = clauseBreak
			}
		case word == "JOIN":
			if !prevWordIn(toks, i, joinModifiers) {
				brk = clauseBreak
			}
		case word == "FROM":
			if !prevWordIn(toks, i, map[string]bool{"DELETE": true}) {
				brk = clauseBreak
			}
		case clauseKeywords[word]:
			brk = clauseBreak
		}
		// A line comment already forced the newline.
		if brk != noBreak && items[i].brk != commentBreak {
			items[i].brk = brk
		}
	}
	return items
}

// wrapCommas breaks after clause commas in every line whose single-line
// width exceeds the limit.
func wrapCommas(items []item, opts Options) {
	start := 0
	for start < len(items) {
		end := start + 1
		for end < len(items) && items[end].brk == noBreak {
			end++
		}
		if lineWidth(items[start:end], opts) > opts.LineWidth {
			for i := start; i < end; i++ {
				if items[i].clauseComma && i+1 < len(items) && items[i+1].brk == noBreak {
					items[i].wrap = true
				}
			}
		}
		start = end
	}
}

// lineWidth measures a run of items laid out on one line.
func lineWidth(line []item, opts Options) int {
	var b strings.Builder
	b.WriteString(lineIndent(line[0], opts))
	for i, it := range line {
		if i > 0 {
			b.WriteString(separator(line[i-1].tok, it.tok))
		}
		b.WriteString(it.tok.Text)
	}
	return runewidth.StringWidth(b.String())
}

func lineIndent(it item, opts Options) string {
	indent := strings.Repeat(" ", it.level*opts.IndentSize)
	if it.brk == logicalBreak {
		indent += hangingIndent
	}
	return indent
}

func render(items []item, opts Options) string {
	var b strings.Builder
	for i, it := range items {
		switch {
		case i == 0:
		case it.brk != noBreak:
			b.WriteByte('\n')
			b.WriteString(lineIndent(it, opts))
		case items[i-1].wrap:
			b.WriteByte('\n')
			b.WriteString(strings.Repeat(" ", items[i-1].level*opts.IndentSize+opts.IndentSize))
		default:
			b.WriteString(separator(items[i-1].tok, it.tok))
		}
		b.WriteString(it.tok.Text)
	}
	return b.String()
}

// separator returns the spacing between two tokens on the same line.
// Commas and parentheses are normalized; everything else keeps the source
// spacing collapsed to a single space.
func separator(prev, cur token.Token) string {
	switch {
	case prev.Kind == token.Comma:
		return " "
	case cur.Kind == token.Comma, cur.Kind == token.RParen, prev.Kind == token.LParen:
		return ""
	case cur.IsComment(), prev.Kind == token.BlockComment:
		return " "
	case cur.SpaceBefore:
		return " "
	default:
		return ""
	}
}

// isSubqueryStart reports whether the first non-comment token at i opens a query.
func isSubqueryStart(toks []token.Token, i int) bool {
	for ; i < len(toks); i++ {
		if toks[i].IsComment() {
			continue
		}
		return toks[i].IsWord("SELECT") || toks[i].IsWord("WITH")
	}
	return false
}

func nextWordIs(toks []token.Token, i int, w string) bool {
	return i < len(toks) && toks[i].IsWord(w)
}

func prevWordIn(toks []token.Token, i int, set map[string]bool) bool {
	return i > 0 && toks[i-1].Kind == token.Word && set[strings.ToUpper(toks[i-1].Text)]
}

// startsJoin reports whether the join modifiers starting at i lead to JOIN.
func startsJoin(toks []token.Token, i int) bool {
	for ; i < len(toks) && toks[i].Kind == token.Word; i++ {
		w := strings.ToUpper(toks[i].Text)
		if w == "JOIN" {
			return true
		}
		if !joinModifiers[w] {
			return false
		}
	}
	return false
}
