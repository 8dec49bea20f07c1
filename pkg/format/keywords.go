package format

import (
	"github.com/leapstack-labs/querykit/pkg/dialect"
	"github.com/leapstack-labs/querykit/pkg/token"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var upper = cases.Upper(language.Und)

// UppercaseKeywords rewrites, in place, every word token that starts a
// keyword of d. Multi-word keywords must be adjacent word tokens. Words that
// are part of a qualified name (a.b) are not keywords.
func UppercaseKeywords(toks []token.Token, d *dialect.Dialect) {
	maxWords := d.MaxKeywordWords()
	words := make([]string, 0, maxWords)

	for i := 0; i < len(toks); {
		if toks[i].Kind != token.Word || qualified(toks, i) {
			i++
			continue
		}

		words = words[:0]
		for j := i; j < len(toks) && len(words) < maxWords; j++ {
			if toks[j].Kind != token.Word || qualified(toks, j) {
				break
			}
			words = append(words, toks[j].Text)
		}

		n := d.MatchKeyword(words)
		if n == 0 {
			i++
			continue
		}
		for j := i; j < i+n; j++ {
			toks[j].Text = upper.String(toks[j].Text)
		}
		i += n
	}
}

// qualified reports whether the word at i is joined to a neighbour by a dot.
func qualified(toks []token.Token, i int) bool {
	isDot := func(j int) bool {
		return j >= 0 && j < len(toks) && toks[j].Kind == token.Operator && toks[j].Text == "."
	}
	return (isDot(i-1) && !toks[i].SpaceBefore) || (isDot(i+1) && !toks[i+1].SpaceBefore)
}
