package i18n

import (
	"io"
	"io/fs"
	"path"

	"github.com/goccy/go-yaml"
	"golang.org/x/text/language"

	"github.com/qisthidev/Antigravity-Manager/internal/embedded"
	"github.com/qisthidev/Antigravity-Manager/pkg/errors"
)

// DefaultLocale is the default locale of bundles built by this package.
var DefaultLocale = language.English

type localeDocument struct {
	Locale   string            `yaml:"locale"`
	Messages map[string]string `yaml:"messages"`
}

// LoadYAML reads one locale document into the bundle.
func (b *Bundle) LoadYAML(r io.Reader, name string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return errors.WrapIO("read", name, err)
	}

	var doc localeDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return errors.WrapParse("yaml", name, err)
	}
	if doc.Locale == "" {
		return errors.NewValidationError("locale", name, "locale document must name its locale")
	}
	tag, err := language.Parse(doc.Locale)
	if err != nil {
		return errors.NewParseError("locale", name, "invalid locale tag", err)
	}
	return b.Add(tag, doc.Messages)
}

// LoadFS reads every *.yaml locale document in dir of fsys.
func (b *Bundle) LoadFS(fsys fs.FS, dir string) error {
	matches, err := fs.Glob(fsys, path.Join(dir, "*.yaml"))
	if err != nil {
		return errors.WrapIO("glob", dir, err)
	}
	for _, name := range matches {
		f, err := fsys.Open(name)
		if err != nil {
			return errors.WrapIO("open", name, err)
		}
		err = b.LoadYAML(f, name)
		_ = f.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

// LoadEmbedded returns a bundle with the locales shipped in the binary.
func LoadEmbedded() (*Bundle, error) {
	b := NewBundle(DefaultLocale)
	if err := b.LoadFS(embedded.FS, "locales"); err != nil {
		return nil, errors.WrapResource("load", "locale", "embedded", err)
	}
	return b, nil
}
