package reconciler

import (
	"github.com/qisthidev/Antigravity-Manager/pkg/accounts"
	"github.com/qisthidev/Antigravity-Manager/pkg/catalogs"
	"github.com/qisthidev/Antigravity-Manager/pkg/limits"
)

// DynamicGroup classifies reported models that have no catalog entry.
const DynamicGroup = "Dynamic"

// Source tells where a reconciled entry came from.
type Source int

const (
	// SourceDynamic entries were reported by at least one account.
	SourceDynamic Source = iota
	// SourceStatic entries come from the catalog alone.
	SourceStatic
)

// String returns the source name.
func (s Source) String() string {
	switch s {
	case SourceDynamic:
		return "dynamic"
	case SourceStatic:
		return "static"
	default:
		return "unknown"
	}
}

// Entry is one reconciled model identity.
type Entry struct {
	ID         string                // Raw reported name for dynamic entries, catalog key for static ones
	Name       string                // Best display label
	Desc       string                // Description, same as Name
	Group      string                // Catalog group, DefaultGroup or DynamicGroup
	Icon       catalogs.IconProvider // Catalog icon or placeholder
	Source     Source                // Dynamic or static
	CatalogKey string                // Matched catalog key, empty when unmatched
	Quota      *accounts.ModelQuota  // Reported quota data for dynamic entries
}

// Matched reports whether the entry resolved to a catalog entry.
func (e Entry) Matched() bool {
	return e.CatalogKey != ""
}

// MaxOutputTokens resolves the entry's output token limit.
func (e Entry) MaxOutputTokens() int {
	var dynamic *int
	if e.Quota != nil {
		dynamic = e.Quota.MaxOutputTokens
	}
	return limits.OutputTokens(e.ID, dynamic)
}

// IDs returns the entry ids in order.
func IDs(entries []Entry) []string {
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	return ids
}

// Contains reports whether an entry has exactly id.
func Contains(entries []Entry, id string) bool {
	for _, e := range entries {
		if e.ID == id {
			return true
		}
	}
	return false
}
