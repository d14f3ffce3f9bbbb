// Package pins edits the set of pinned model ids shown first in quota views.
//
// The set is never driven empty by a user action: removing the last pinned
// id is refused. Pinned ids that reconciliation no longer produces stay
// visible as orphaned options so they can still be unpinned.
package pins

import "slices"

// Config is the persisted pin set.
type Config struct {
	Models []string `json:"models" yaml:"models"`
}

// Contains reports whether id is pinned, by exact match.
func (c Config) Contains(id string) bool {
	return slices.Contains(c.Models, id)
}

// Len returns the number of pinned ids.
func (c Config) Len() int {
	return len(c.Models)
}

// Clone returns a copy that shares no memory with c.
func (c Config) Clone() Config {
	return Config{Models: slices.Clone(c.Models)}
}

// Outcome is the result of a toggle.
type Outcome int

const (
	// OutcomeAdded means the id was appended.
	OutcomeAdded Outcome = iota
	// OutcomeRemoved means the id was removed.
	OutcomeRemoved
	// OutcomeRefused means removing the id would have emptied the set.
	OutcomeRefused
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeAdded:
		return "added"
	case OutcomeRemoved:
		return "removed"
	case OutcomeRefused:
		return "refused"
	default:
		return "unknown"
	}
}

// Changed reports whether the outcome modified the set.
func (o Outcome) Changed() bool {
	return o == OutcomeAdded || o == OutcomeRemoved
}

// Toggle adds id when absent and removes every copy of it when present.
// A removal that would leave no other pinned id is refused and cfg is
// returned unchanged. cfg is never modified.
func Toggle(cfg Config, id string) (Config, Outcome) {
	if !cfg.Contains(id) {
		next := make([]string, 0, len(cfg.Models)+1)
		next = append(next, cfg.Models...)
		return Config{Models: append(next, id)}, OutcomeAdded
	}
	next := make([]string, 0, len(cfg.Models)-1)
	for _, m := range cfg.Models {
		if m != id {
			next = append(next, m)
		}
	}
	if len(next) == 0 {
		return cfg, OutcomeRefused
	}
	return Config{Models: next}, OutcomeRemoved
}
