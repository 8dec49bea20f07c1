package dialect

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/leapstack-labs/querykit/pkg/core"
)

// Dialect registry
var (
	dialectsMu sync.RWMutex
	dialects   = make(map[core.Database]*Dialect)
)

// ErrDialectRequired is returned when a dialect is required but not provided.
var ErrDialectRequired = errors.New("dialect is required")

// Get returns a dialect by name.
func Get(name core.Database) (*Dialect, bool) {
	dialectsMu.RLock()
	defer dialectsMu.RUnlock()
	d, ok := dialects[core.Database(strings.ToLower(string(name)))]
	return d, ok
}

// Lookup returns a registered dialect, or an error wrapping
// core.ErrUnknownDatabase when none is registered under name.
func Lookup(name core.Database) (*Dialect, error) {
	if name == "" {
		return nil, ErrDialectRequired
	}
	d, ok := Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", core.ErrUnknownDatabase, name)
	}
	return d, nil
}

// Register registers a dialect in the global registry.
// Called by dialect implementations in their init() functions.
func Register(d *Dialect) {
	dialectsMu.Lock()
	defer dialectsMu.Unlock()
	dialects[core.Database(strings.ToLower(string(d.Name)))] = d
}

// List returns all registered dialect names (sorted).
func List() []core.Database {
	dialectsMu.RLock()
	defer dialectsMu.RUnlock()
	names := make([]core.Database, 0, len(dialects))
	for name := range dialects {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// Escape quotes identifier for db. Unregistered databases leave the
// identifier unchanged, and the empty identifier is never quoted.
func Escape(identifier string, db core.Database) string {
	d, ok := Get(db)
	if !ok {
		return identifier
	}
	return d.QuoteIdentifier(identifier)
}

// Info summarizes a registered dialect for listings.
type Info struct {
	Name        core.Database `json:"name"`
	DisplayName string        `json:"displayName"`
	Quote       string        `json:"quote,omitempty"`
	QuoteEnd    string        `json:"quoteEnd,omitempty"`
	Uppercase   bool          `json:"uppercase"`
	Additions   []string      `json:"additions"`
}

// Describe returns an Info for every registered dialect, sorted by name.
func Describe() []Info {
	names := List()
	infos := make([]Info, 0, len(names))
	for _, name := range names {
		d, ok := Get(name)
		if !ok {
			continue
		}
		infos = append(infos, Info{
			Name:        d.Name,
			DisplayName: d.DisplayName,
			Quote:       d.Identifiers.Quote,
			QuoteEnd:    d.Identifiers.QuoteEnd,
			Uppercase:   d.Identifiers.Normalization == core.NormUppercase,
			Additions:   append([]string{}, d.Additions()...),
		})
	}
	return infos
}
