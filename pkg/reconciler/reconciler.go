// Package reconciler merges the static model catalog with the models
// reported by accounts into one de-duplicated, ordered list.
//
// Reported models come first in first-seen order. They take their label from
// the reported display name and their icon and group from the matching catalog
// entry, if any. Catalog entries no account reports follow in catalog order,
// skipping thinking variants and entries whose label is already shown.
package reconciler

import (
	"github.com/qisthidev/Antigravity-Manager/pkg/accounts"
	"github.com/qisthidev/Antigravity-Manager/pkg/catalogs"
	"github.com/qisthidev/Antigravity-Manager/pkg/i18n"
	"github.com/qisthidev/Antigravity-Manager/pkg/modelkey"
)

// Reconciler reconciles with a fixed set of options.
type Reconciler struct {
	options *options
}

// New creates a Reconciler.
func New(opts ...Option) *Reconciler {
	return &Reconciler{options: defaultOptions().apply(opts...)}
}

// Reconcile is shorthand for New(opts...).Reconcile(catalog, list).
func Reconcile(catalog *catalogs.Catalog, list []accounts.Account, opts ...Option) []Entry {
	return New(opts...).Reconcile(catalog, list)
}

// Reconcile returns dynamic entries followed by static entries. It never
// mutates its inputs and returns the same list for the same inputs.
func (r *Reconciler) Reconcile(catalog *catalogs.Catalog, list []accounts.Account) []Entry {
	state := &pass{
		translator: r.options.translator,
		emitted:    make(map[string]struct{}),
		labels:     make(map[string]struct{}),
	}

	observations := collect(list)
	result := make([]Entry, 0, len(observations)+catalog.Len())

	for _, obs := range observations {
		if modelkey.IsThinkingVariant(obs.key) {
			continue
		}
		result = append(result, state.dynamicEntry(catalog, obs))
	}
	dynamicCount := len(result)

	for _, ce := range catalog.Entries() {
		if e, ok := state.staticEntry(ce); ok {
			result = append(result, e)
		}
	}

	r.options.logger.Debug().
		Int("reported", len(observations)).
		Int("dynamic", dynamicCount).
		Int("static", len(result)-dynamicCount).
		Msg("Reconciled models")

	return result
}

// pass holds the bookkeeping of a single reconciliation.
type pass struct {
	translator i18n.Translator
	emitted    map[string]struct{} // normalized keys already emitted
	labels     map[string]struct{} // normalized display labels already used
}

func (p *pass) dynamicEntry(catalog *catalogs.Catalog, obs observation) Entry {
	quota := obs.quota
	p.emitted[obs.key] = struct{}{}

	ce, matched := catalog.Lookup(obs.key)
	if !matched {
		name := firstNonEmpty(quota.DisplayName, quota.Name)
		p.labels[modelkey.Normalize(name)] = struct{}{}
		return Entry{
			ID:     quota.Name,
			Name:   name,
			Desc:   name,
			Group:  DynamicGroup,
			Icon:   catalogs.PlaceholderIcon{},
			Source: SourceDynamic,
			Quota:  &quota,
		}
	}

	// A protected-key alias lends classification only; the catalog key
	// itself stays available as a static entry.
	if obs.key == modelkey.Normalize(ce.Key) {
		p.labels[ce.LabelKey()] = struct{}{}
	}

	name := firstNonEmpty(quota.DisplayName, p.localizedLabel(ce), quota.Name)
	p.labels[modelkey.Normalize(name)] = struct{}{}
	return Entry{
		ID:         quota.Name,
		Name:       name,
		Desc:       name,
		Group:      ce.GroupName(),
		Icon:       ce.IconProvider(),
		Source:     SourceDynamic,
		CatalogKey: ce.Key,
		Quota:      &quota,
	}
}

func (p *pass) staticEntry(ce catalogs.Entry) (Entry, bool) {
	key := modelkey.Normalize(ce.Key)
	if _, done := p.emitted[key]; done {
		return Entry{}, false
	}
	if modelkey.IsThinkingVariant(key) {
		return Entry{}, false
	}
	labelKey := ce.LabelKey()
	if _, used := p.labels[labelKey]; used {
		return Entry{}, false
	}
	p.labels[labelKey] = struct{}{}
	p.emitted[key] = struct{}{}

	name := p.localizedLabel(ce)
	return Entry{
		ID:         ce.Key,
		Name:       name,
		Desc:       name,
		Group:      ce.GroupName(),
		Icon:       ce.IconProvider(),
		Source:     SourceStatic,
		CatalogKey: ce.Key,
	}, true
}

func (p *pass) localizedLabel(ce catalogs.Entry) string {
	if ce.I18nKey == "" {
		return ce.Label
	}
	return p.translator.Translate(ce.I18nKey, ce.Label)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
