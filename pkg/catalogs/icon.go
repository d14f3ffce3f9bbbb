package catalogs

// Icon names an icon in the host application's icon set.
type Icon string

// PlaceholderIconName is rendered for models without a catalog entry.
const PlaceholderIconName Icon = "bot"

// IconProvider is anything that can render a model icon.
type IconProvider interface {
	Render() string
}

// CatalogIcon is the icon declared by a catalog entry.
type CatalogIcon struct {
	Name Icon
}

// Render returns the icon name, or the placeholder when the entry declares none.
func (i CatalogIcon) Render() string {
	if i.Name == "" {
		return string(PlaceholderIconName)
	}
	return string(i.Name)
}

// PlaceholderIcon is the generic icon for unknown models.
type PlaceholderIcon struct{}

// Render returns the placeholder icon name.
func (PlaceholderIcon) Render() string {
	return string(PlaceholderIconName)
}

var (
	_ IconProvider = CatalogIcon{}
	_ IconProvider = PlaceholderIcon{}
)
