package lint

import (
	"github.com/leapstack-labs/querykit/pkg/core"
)

// Suggestion is one static improvement tip.
type Suggestion struct {
	ID    string         `json:"id"`
	Kind  core.QueryType `json:"kind"`
	Group string         `json:"group"`
	Text  string         `json:"text"`
}

// catalog is ordered by kind, then by ID.
var catalog = []Suggestion{
	{ID: "SEL01", Kind: core.QuerySelect, Group: "performance", Text: "Consider adding indexes on columns used in WHERE and JOIN clauses"},
	{ID: "SEL02", Kind: core.QuerySelect, Group: "performance", Text: "Avoid SELECT * in production queries; list only the columns you need"},
	{ID: "SEL03", Kind: core.QuerySelect, Group: "performance", Text: "Use LIMIT to restrict the number of returned rows"},
	{ID: "SEL04", Kind: core.QuerySelect, Group: "diagnostics", Text: "Run EXPLAIN to inspect the query execution plan"},

	{ID: "INS01", Kind: core.QueryInsert, Group: "performance", Text: "Use batch inserts when adding many rows"},
	{ID: "INS02", Kind: core.QueryInsert, Group: "correctness", Text: "Validate data types and constraints before inserting"},
	{ID: "INS03", Kind: core.QueryInsert, Group: "safety", Text: "Wrap related inserts in a transaction"},
	{ID: "INS04", Kind: core.QueryInsert, Group: "correctness", Text: "Use an upsert (ON CONFLICT / ON DUPLICATE KEY) to handle duplicates"},

	{ID: "UPD01", Kind: core.QueryUpdate, Group: "safety", Text: "Always include a WHERE clause to avoid updating every row"},
	{ID: "UPD02", Kind: core.QueryUpdate, Group: "safety", Text: "Back up the affected data before running large updates"},
	{ID: "UPD03", Kind: core.QueryUpdate, Group: "diagnostics", Text: "Preview the affected rows with a SELECT using the same WHERE clause"},
	{ID: "UPD04", Kind: core.QueryUpdate, Group: "safety", Text: "Run the update inside a transaction so it can be rolled back"},

	{ID: "DEL01", Kind: core.QueryDelete, Group: "safety", Text: "Always include a WHERE clause to avoid deleting every row"},
	{ID: "DEL02", Kind: core.QueryDelete, Group: "safety", Text: "Consider soft deletes (a deleted_at column) instead of removing rows"},
	{ID: "DEL03", Kind: core.QueryDelete, Group: "diagnostics", Text: "Preview the rows to delete with a SELECT using the same WHERE clause"},
	{ID: "DEL04", Kind: core.QueryDelete, Group: "correctness", Text: "Check foreign key constraints and cascading deletes first"},
}

// SuggestionsFor returns the tips for kind. Kinds without tips (create,
// custom) return an empty, non-nil slice.
func SuggestionsFor(kind core.QueryType) []string {
	tips := []string{}
	for _, s := range catalog {
		if s.Kind == kind {
			tips = append(tips, s.Text)
		}
	}
	return tips
}

// Catalog returns every suggestion, optionally filtered to kinds.
func Catalog(kinds ...core.QueryType) []Suggestion {
	if len(kinds) == 0 {
		return append([]Suggestion(nil), catalog...)
	}
	var out []Suggestion
	for _, s := range catalog {
		for _, k := range kinds {
			if s.Kind == k {
				out = append(out, s)
				break
			}
		}
	}
	return out
}

// GetByID returns a suggestion by its ID.
func GetByID(id string) (Suggestion, bool) {
	for _, s := range catalog {
		if s.ID == id {
			return s, true
		}
	}
	return Suggestion{}, false
}
