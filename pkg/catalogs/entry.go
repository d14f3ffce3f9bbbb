package catalogs

import "github.com/qisthidev/Antigravity-Manager/pkg/modelkey"

// DefaultGroup is used for entries that declare no group.
const DefaultGroup = "Other"

// Entry describes one built-in model.
type Entry struct {
	Key          string `json:"key" yaml:"key"`                                         // Canonical model key, compared case-insensitively
	Label        string `json:"label" yaml:"label"`                                     // Display label
	ShortLabel   string `json:"short_label,omitempty" yaml:"short_label,omitempty"`     // Preferred label for identity and compact display
	Group        string `json:"group,omitempty" yaml:"group,omitempty"`                 // Classification, DefaultGroup when empty
	Icon         Icon   `json:"icon,omitempty" yaml:"icon,omitempty"`                   // Icon reference
	ProtectedKey string `json:"protected_key,omitempty" yaml:"protected_key,omitempty"` // Alias key also treated as known
	I18nKey      string `json:"i18n_key,omitempty" yaml:"i18n_key,omitempty"`           // Localization key for the label
	I18nDescKey  string `json:"i18n_desc_key,omitempty" yaml:"i18n_desc_key,omitempty"` // Localization key for the description
}

// DisplayLabel returns the short label when set, otherwise the label.
func (e Entry) DisplayLabel() string {
	if e.ShortLabel != "" {
		return e.ShortLabel
	}
	return e.Label
}

// LabelKey returns the normalized display label used for collision checks.
func (e Entry) LabelKey() string {
	return modelkey.Normalize(e.DisplayLabel())
}

// GroupName returns the entry group or DefaultGroup.
func (e Entry) GroupName() string {
	if e.Group == "" {
		return DefaultGroup
	}
	return e.Group
}

// IconProvider returns the renderable icon for this entry.
func (e Entry) IconProvider() IconProvider {
	return CatalogIcon{Name: e.Icon}
}
