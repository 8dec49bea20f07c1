// Package token splits SQL text into a flat stream of lexical tokens.
//
// The lexer is deliberately shallow: it recognizes words, literals, quoted
// identifiers, comments and punctuation so that formatters can reflow text
// without breaking string literals or comments. It does not build a syntax
// tree and does not know which words are keywords.
package token

import "strings"

// Kind classifies a lexical token.
type Kind int

// Token kinds.
const (
	Word         Kind = iota // identifiers and keywords: users, SELECT, @var, $1
	Number                   // 123, 45.67, 1e10
	String                   // 'hello'
	QuotedIdent              // "name", `name`, [name]
	LineComment              // -- comment (without the trailing newline)
	BlockComment             // /* comment */
	LParen                   // (
	RParen                   // )
	Comma                    // ,
	Operator                 // =, <>, ::, ., ;, *, ...
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case Word:
		return "word"
	case Number:
		return "number"
	case String:
		return "string"
	case QuotedIdent:
		return "quoted_ident"
	case LineComment:
		return "line_comment"
	case BlockComment:
		return "block_comment"
	case LParen:
		return "lparen"
	case RParen:
		return "rparen"
	case Comma:
		return "comma"
	case Operator:
		return "operator"
	default:
		return "unknown"
	}
}

// Token is a single lexical unit of SQL text.
type Token struct {
	Kind Kind
	Text string
	// SpaceBefore is true when whitespace separated this token from the previous one.
	SpaceBefore bool
	// Offset is the 0-based byte offset of the token in the source.
	Offset int
}

// IsWord reports whether the token is a word equal to w, ignoring case.
func (t Token) IsWord(w string) bool {
	return t.Kind == Word && strings.EqualFold(t.Text, w)
}

// IsComment reports whether the token is a line or block comment.
func (t Token) IsComment() bool {
	return t.Kind == LineComment || t.Kind == BlockComment
}

// IsQuoted reports whether the token text is protected from rewriting
// (string literals and quoted identifiers).
func (t Token) IsQuoted() bool {
	return t.Kind == String || t.Kind == QuotedIdent
}
