// Package dialect provides SQL dialect configuration: identifier quoting and
// the keyword table used for case normalization.
//
// Concrete dialects are registered from pkg/dialects/*/ packages; import
// pkg/dialects to register all of them.
package dialect

import (
	"sort"
	"strings"

	"github.com/leapstack-labs/querykit/pkg/core"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var upper = cases.Upper(language.Und)

// Dialect represents a SQL dialect configuration.
// A built Dialect is immutable and safe for concurrent use.
type Dialect struct {
	Name        core.Database
	DisplayName string
	Identifiers core.IdentifierConfig

	// additions are the dialect's own keywords, in declaration order.
	additions []string

	// phrases maps the first word of every keyword (upper-cased) to the
	// word sequences starting with it, longest first.
	phrases  map[string][][]string
	maxWords int
}

// Config returns the pure data configuration for this dialect.
func (d *Dialect) Config() *core.DialectConfig {
	return &core.DialectConfig{
		Name:        d.Name,
		DisplayName: d.DisplayName,
		Identifiers: d.Identifiers,
		Keywords:    append([]string(nil), d.additions...),
	}
}

// GetName returns the dialect name.
func (d *Dialect) GetName() string {
	return string(d.Name)
}

// Additions returns the keywords this dialect layers on the common set.
func (d *Dialect) Additions() []string {
	return append([]string(nil), d.additions...)
}

// Keywords returns every keyword known to the dialect (common set plus
// additions), sorted.
func (d *Dialect) Keywords() []string {
	var kws []string
	for _, seqs := range d.phrases {
		for _, seq := range seqs {
			kws = append(kws, strings.Join(seq, " "))
		}
	}
	sort.Strings(kws)
	return kws
}

// MaxKeywordWords returns the word count of the longest keyword.
func (d *Dialect) MaxKeywordWords() int {
	return d.maxWords
}

// MatchKeyword reports how many of the leading words form a keyword of this
// dialect. Words are compared case-insensitively and the longest keyword
// wins. It returns 0 when words does not start with a keyword.
func (d *Dialect) MatchKeyword(words []string) int {
	if len(words) == 0 {
		return 0
	}
	for _, seq := range d.phrases[upper.String(words[0])] {
		if len(seq) > len(words) {
			continue
		}
		ok := true
		for i := 1; i < len(seq); i++ {
			if !strings.EqualFold(seq[i], words[i]) {
				ok = false
				break
			}
		}
		if ok {
			return len(seq)
		}
	}
	return 0
}

// IsKeyword reports whether word on its own is a keyword.
func (d *Dialect) IsKeyword(word string) bool {
	for _, seq := range d.phrases[upper.String(word)] {
		if len(seq) == 1 {
			return true
		}
	}
	return false
}

// NormalizeName normalizes an identifier according to dialect rules.
func (d *Dialect) NormalizeName(name string) string {
	switch d.Identifiers.Normalization {
	case core.NormUppercase:
		return upper.String(name)
	default:
		return name
	}
}

// QuoteIdentifier quotes an identifier using the dialect's quote characters.
// Empty names are returned unchanged, as is everything when the dialect has
// no quote character. Embedded closing quotes are doubled.
func (d *Dialect) QuoteIdentifier(name string) string {
	if name == "" || d.Identifiers.Quote == "" {
		return name
	}
	name = d.NormalizeName(name)
	end := d.Identifiers.QuoteEnd
	if end == "" {
		end = d.Identifiers.Quote
	}
	escaped := strings.ReplaceAll(name, end, end+end)
	return d.Identifiers.Quote + escaped + end
}

// UnquoteIdentifier strips the dialect's quote characters from name and
// undoes doubled closing quotes. Unquoted names are returned unchanged.
func (d *Dialect) UnquoteIdentifier(name string) string {
	q, end := d.Identifiers.Quote, d.Identifiers.QuoteEnd
	if q == "" {
		return name
	}
	if end == "" {
		end = q
	}
	if len(name) < len(q)+len(end) || !strings.HasPrefix(name, q) || !strings.HasSuffix(name, end) {
		return name
	}
	inner := name[len(q) : len(name)-len(end)]
	return strings.ReplaceAll(inner, end+end, end)
}

// UsesBrackets reports whether the dialect quotes identifiers with [ ].
func (d *Dialect) UsesBrackets() bool {
	return d.Identifiers.Quote == "["
}

// ---------- Builder ----------

// Builder provides a fluent API for constructing dialects.
type Builder struct {
	dialect *Dialect
	common  bool
}

// NewDialect creates a new dialect builder with the given name.
// The dialect starts with no quoting and the common keyword set.
func NewDialect(name core.Database) *Builder {
	return &Builder{
		dialect: &Dialect{Name: name, DisplayName: string(name)},
		common:  true,
	}
}

// New creates a builder from a dialect configuration.
func New(cfg *core.DialectConfig) *Builder {
	b := NewDialect(cfg.Name)
	b.dialect.Identifiers = cfg.Identifiers
	if cfg.DisplayName != "" {
		b.dialect.DisplayName = cfg.DisplayName
	}
	return b.WithKeywords(cfg.Keywords...)
}

// DisplayName sets the human readable dialect name.
func (b *Builder) DisplayName(name string) *Builder {
	b.dialect.DisplayName = name
	return b
}

// Identifiers sets the identifier quoting configuration.
func (b *Builder) Identifiers(quote, quoteEnd string, norm core.NormalizationStrategy) *Builder {
	b.dialect.Identifiers = core.IdentifierConfig{
		Quote:         quote,
		QuoteEnd:      quoteEnd,
		Normalization: norm,
	}
	return b
}

// WithKeywords adds dialect-specific keywords.
func (b *Builder) WithKeywords(kws ...string) *Builder {
	b.dialect.additions = append(b.dialect.additions, kws...)
	return b
}

// WithoutCommonKeywords drops the common keyword set.
func (b *Builder) WithoutCommonKeywords() *Builder {
	b.common = false
	return b
}

// Build returns the constructed dialect.
func (b *Builder) Build() *Dialect {
	d := b.dialect
	d.phrases = make(map[string][][]string)
	d.maxWords = 0

	seen := make(map[string]struct{})
	add := func(kw string) {
		words := strings.Fields(upper.String(kw))
		if len(words) == 0 {
			return
		}
		key := strings.Join(words, " ")
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		d.phrases[words[0]] = append(d.phrases[words[0]], words)
		if len(words) > d.maxWords {
			d.maxWords = len(words)
		}
	}
	if b.common {
		for _, kw := range CommonKeywords {
			add(kw)
		}
	}
	for _, kw := range d.additions {
		add(kw)
	}
	for _, seqs := range d.phrases {
		sort.SliceStable(seqs, func(i, j int) bool { return len(seqs[i]) > len(seqs[j]) })
	}
	return d
}
