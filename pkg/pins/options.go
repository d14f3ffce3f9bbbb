package pins

import (
	"github.com/qisthidev/Antigravity-Manager/pkg/accounts"
	"github.com/qisthidev/Antigravity-Manager/pkg/catalogs"
	"github.com/qisthidev/Antigravity-Manager/pkg/i18n"
	"github.com/qisthidev/Antigravity-Manager/pkg/modelkey"
	"github.com/qisthidev/Antigravity-Manager/pkg/reconciler"
)

const (
	unknownKey      = "common.unknown"
	unknownFallback = "Unknown"
)

// Option is one selectable model in the pin editor.
type Option struct {
	ID       string
	Name     string
	Desc     string
	Group    string
	Icon     catalogs.IconProvider
	Selected bool
	Orphaned bool // pinned but not produced by reconciliation
}

type buildOptions struct {
	translator i18n.Translator
}

// BuildOption configures BuildOptions.
type BuildOption func(*buildOptions)

// WithTranslator resolves the localized fallback labels.
func WithTranslator(t i18n.Translator) BuildOption {
	return func(o *buildOptions) {
		if t != nil {
			o.translator = t
		}
	}
}

// BuildOptions returns one option per reconciled entry followed by one
// option per pinned id missing from entries, in pinned order.
func BuildOptions(entries []reconciler.Entry, cfg Config, list []accounts.Account, catalog *catalogs.Catalog, opts ...BuildOption) []Option {
	o := &buildOptions{translator: i18n.Nop{}}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}

	result := make([]Option, 0, len(entries)+len(cfg.Models))
	present := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		present[e.ID] = struct{}{}
		result = append(result, Option{
			ID:       e.ID,
			Name:     e.Name,
			Desc:     e.Desc,
			Group:    e.Group,
			Icon:     e.Icon,
			Selected: cfg.Contains(e.ID),
		})
	}

	for _, id := range cfg.Models {
		if _, ok := present[id]; ok {
			continue
		}
		present[id] = struct{}{}
		result = append(result, orphanOption(id, list, catalog, o.translator))
	}

	return result
}

func orphanOption(id string, list []accounts.Account, catalog *catalogs.Catalog, tr i18n.Translator) Option {
	opt := Option{
		ID:       id,
		Name:     id,
		Group:    reconciler.DynamicGroup,
		Icon:     catalogs.PlaceholderIcon{},
		Selected: true,
		Orphaned: true,
	}

	ce, inCatalog := catalog.Get(id)
	if inCatalog {
		opt.Group = ce.GroupName()
		opt.Icon = ce.IconProvider()
	}

	switch name := reportedDisplayName(list, id); {
	case name != "":
		opt.Desc = name
	case inCatalog:
		opt.Desc = ce.DisplayLabel()
	default:
		opt.Desc = tr.Translate(unknownKey, unknownFallback)
	}
	if opt.Desc == "" {
		opt.Desc = unknownFallback
	}
	return opt
}

// reportedDisplayName returns the first non-empty display name any account
// reports for id, ignoring case.
func reportedDisplayName(list []accounts.Account, id string) string {
	key := modelkey.Normalize(id)
	for _, a := range list {
		for _, m := range a.QuotaModels() {
			if m.DisplayName != "" && modelkey.Normalize(m.Name) == key {
				return m.DisplayName
			}
		}
	}
	return ""
}
