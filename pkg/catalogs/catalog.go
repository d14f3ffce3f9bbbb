// Package catalogs provides the static model catalog: an immutable, ordered
// set of built-in model entries with display metadata, icons and grouping.
//
// Entries keep their declaration order. Keys are compared case-insensitively
// and must be unique after normalization.
//
// Example usage:
//
//	// Load the catalog bundled with the binary
//	catalog, err := catalogs.New(catalogs.WithEmbedded())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, entry := range catalog.Entries() {
//	    fmt.Printf("Model: %s (%s)\n", entry.Key, entry.DisplayLabel())
//	}
//
//	// Load an override catalog from a directory containing models.yaml
//	catalog, err = catalogs.New(catalogs.WithPath("./catalog"))
package catalogs

import (
	"github.com/qisthidev/Antigravity-Manager/pkg/errors"
	"github.com/qisthidev/Antigravity-Manager/pkg/modelkey"
)

// Catalog is an immutable ordered collection of entries. A nil *Catalog
// behaves as an empty catalog.
type Catalog struct {
	entries     []Entry
	byKey       map[string]int
	byProtected map[string]int
}

// New creates a catalog from the given options.
// WithEmbedded() = bundled catalog
// WithPath(dir) = models.yaml in dir
// WithEntries(...) = in-memory entries.
func New(opt Option, opts ...Option) (*Catalog, error) {
	options, err := defaultOptions().apply(append([]Option{opt}, opts...)...)
	if err != nil {
		return nil, err
	}

	entries := options.entries
	if options.readFS != nil {
		loaded, err := loadFS(options.readFS, options.fileName)
		if err != nil {
			return nil, err
		}
		entries = append(loaded, entries...)
	}

	return NewFromEntries(entries)
}

// NewFromEntries builds a catalog from entries in declaration order.
func NewFromEntries(entries []Entry) (*Catalog, error) {
	c := &Catalog{
		entries:     make([]Entry, 0, len(entries)),
		byKey:       make(map[string]int, len(entries)),
		byProtected: make(map[string]int),
	}

	for _, e := range entries {
		if e.Key == "" {
			return nil, errors.NewValidationError("key", e.Label, "catalog entry key is required")
		}
		if e.Label == "" {
			return nil, errors.NewValidationError("label", e.Key, "catalog entry label is required")
		}
		key := modelkey.Normalize(e.Key)
		if _, exists := c.byKey[key]; exists {
			return nil, errors.NewValidationError("key", e.Key, "duplicate catalog key")
		}
		c.byKey[key] = len(c.entries)
		if e.ProtectedKey != "" {
			pk := modelkey.Normalize(e.ProtectedKey)
			if _, exists := c.byProtected[pk]; !exists {
				c.byProtected[pk] = len(c.entries)
			}
		}
		c.entries = append(c.entries, e)
	}

	return c, nil
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}

// Entries returns a copy of the entries in declaration order.
func (c *Catalog) Entries() []Entry {
	if c == nil {
		return nil
	}
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Get returns the entry whose key matches, ignoring case.
func (c *Catalog) Get(key string) (Entry, bool) {
	if c == nil {
		return Entry{}, false
	}
	i, ok := c.byKey[modelkey.Normalize(key)]
	if !ok {
		return Entry{}, false
	}
	return c.entries[i], true
}

// Lookup resolves a reported model name against catalog keys first and
// protected-key aliases second, ignoring case.
func (c *Catalog) Lookup(name string) (Entry, bool) {
	if e, ok := c.Get(name); ok {
		return e, true
	}
	if c == nil {
		return Entry{}, false
	}
	i, ok := c.byProtected[modelkey.Normalize(name)]
	if !ok {
		return Entry{}, false
	}
	return c.entries[i], true
}

// IsKnown reports whether name is a catalog key or protected key.
func (c *Catalog) IsKnown(name string) bool {
	_, ok := c.Lookup(name)
	return ok
}
