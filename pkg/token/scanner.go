package token

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Options controls dialect-dependent lexing.
type Options struct {
	// Brackets treats [name] as a quoted identifier (SQL Server).
	Brackets bool
}

// Scan splits sql into tokens. Whitespace is not emitted; it is recorded in
// Token.SpaceBefore of the following token. Unterminated literals and
// comments run to the end of the input.
func Scan(sql string, opts Options) []Token {
	s := &scanner{src: sql, opts: opts}
	return s.run()
}

type scanner struct {
	src   string
	pos   int
	opts  Options
	space bool
	out   []Token
}

func (s *scanner) run() []Token {
	for s.pos < len(s.src) {
		r, size := utf8.DecodeRuneInString(s.src[s.pos:])
		if unicode.IsSpace(r) {
			s.space = true
			s.pos += size
			continue
		}

		start := s.pos
		switch {
		case r == '-' && s.peekByte(1) == '-':
			s.pos = s.indexFrom("\n")
			s.emit(LineComment, start)
		case r == '/' && s.peekByte(1) == '*':
			end := strings.Index(s.src[s.pos+2:], "*/")
			if end < 0 {
				s.pos = len(s.src)
			} else {
				s.pos += 2 + end + 2
			}
			s.emit(BlockComment, start)
		case r == '\'':
			s.scanQuoted('\'', '\'')
			s.emit(String, start)
		case r == '"':
			s.scanQuoted('"', '"')
			s.emit(QuotedIdent, start)
		case r == '`':
			s.scanQuoted('`', '`')
			s.emit(QuotedIdent, start)
		case r == '[' && s.opts.Brackets:
			s.scanQuoted('[', ']')
			s.emit(QuotedIdent, start)
		case r == '(':
			s.pos++
			s.emit(LParen, start)
		case r == ')':
			s.pos++
			s.emit(RParen, start)
		case r == ',':
			s.pos++
			s.emit(Comma, start)
		case isDigit(r) || (r == '.' && isDigit(rune(s.peekByte(1)))):
			s.scanNumber()
			s.emit(Number, start)
		case isWordStart(r):
			s.scanWord()
			s.emit(Word, start)
		default:
			s.scanOperator()
			s.emit(Operator, start)
		}
	}
	return s.out
}

func (s *scanner) emit(k Kind, start int) {
	s.out = append(s.out, Token{
		Kind:        k,
		Text:        s.src[start:s.pos],
		SpaceBefore: s.space && len(s.out) > 0,
		Offset:      start,
	})
	s.space = false
}

func (s *scanner) peekByte(n int) byte {
	if s.pos+n < len(s.src) {
		return s.src[s.pos+n]
	}
	return 0
}

// indexFrom returns the absolute offset of sep at or after pos, or len(src).
func (s *scanner) indexFrom(sep string) int {
	if i := strings.Index(s.src[s.pos:], sep); i >= 0 {
		return s.pos + i
	}
	return len(s.src)
}

// scanQuoted consumes a quoted run. A doubled closing quote is an escaped
// quote; a backslash escapes the next byte inside string literals.
func (s *scanner) scanQuoted(open, closing byte) {
	s.pos++ // opening quote
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		if c == '\\' && open == '\'' && s.pos+1 < len(s.src) {
			s.pos += 2
			continue
		}
		s.pos++
		if c == closing {
			if s.pos < len(s.src) && s.src[s.pos] == closing {
				s.pos++
				continue
			}
			return
		}
	}
}

func (s *scanner) scanNumber() {
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		switch {
		case isDigit(rune(c)), c == '.':
			s.pos++
		case (c == 'e' || c == 'E') && s.pos+1 < len(s.src):
			next := s.src[s.pos+1]
			if isDigit(rune(next)) {
				s.pos++
			} else if (next == '+' || next == '-') && s.pos+2 < len(s.src) && isDigit(rune(s.src[s.pos+2])) {
				s.pos += 2
			} else {
				return
			}
		default:
			return
		}
	}
}

func (s *scanner) scanWord() {
	for s.pos < len(s.src) {
		r, size := utf8.DecodeRuneInString(s.src[s.pos:])
		if !isWordPart(r) {
			return
		}
		s.pos += size
	}
}

// scanOperator consumes a run of operator characters, stopping before
// anything that starts a comment.
func (s *scanner) scanOperator() {
	first := true
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		if !first && (!isOperatorByte(c) ||
			(c == '-' && s.peekByte(1) == '-') ||
			(c == '/' && s.peekByte(1) == '*')) {
			return
		}
		if first && !isOperatorByte(c) {
			// Unknown character: emit it alone.
			_, size := utf8.DecodeRuneInString(s.src[s.pos:])
			s.pos += size
			return
		}
		s.pos++
		first = false
	}
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isWordStart(r rune) bool {
	return r == '_' || r == '@' || r == '$' || r == '#' || unicode.IsLetter(r)
}

func isWordPart(r rune) bool {
	return isWordStart(r) || unicode.IsDigit(r)
}

func isOperatorByte(c byte) bool {
	return strings.IndexByte("=<>!|:+-*/%&^~.;?", c) >= 0
}
