// Package settings reads and writes the application settings document.
package settings

import (
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"

	"github.com/qisthidev/Antigravity-Manager/pkg/catalogs"
	"github.com/qisthidev/Antigravity-Manager/pkg/errors"
	"github.com/qisthidev/Antigravity-Manager/pkg/modelkey"
	"github.com/qisthidev/Antigravity-Manager/pkg/pins"
)

// FileName is the settings document inside the data directory.
const FileName = "settings.yaml"

// Settings is the persisted application settings document.
type Settings struct {
	Locale            string      `yaml:"locale,omitempty"`
	PinnedQuotaModels pins.Config `yaml:"pinned_quota_models"`
}

// Default returns settings with the pin set seeded from the first catalog
// entry that is not a thinking variant.
func Default(catalog *catalogs.Catalog) Settings {
	s := Settings{PinnedQuotaModels: pins.Config{Models: []string{}}}
	for _, e := range catalog.Entries() {
		if modelkey.IsThinkingVariant(e.Key) {
			continue
		}
		s.PinnedQuotaModels.Models = append(s.PinnedQuotaModels.Models, e.Key)
		break
	}
	return s
}

// Load reads path. A missing file yields Default(catalog). A stored empty
// pin set is kept as is.
func Load(path string, catalog *catalogs.Catalog) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(catalog), nil
		}
		return Settings{}, errors.WrapIO("read", path, err)
	}

	s := Default(catalog)
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, errors.WrapParse("yaml", path, err)
	}
	if s.PinnedQuotaModels.Models == nil {
		s.PinnedQuotaModels.Models = []string{}
	}
	return s, nil
}

// Save writes s to path, replacing the file atomically.
func Save(path string, s Settings) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return errors.WrapParse("yaml", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.WrapIO("create", filepath.Dir(path), err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".settings-*.yaml")
	if err != nil {
		return errors.WrapIO("create", path, err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return errors.WrapIO("write", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return errors.WrapIO("write", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.WrapIO("rename", path, err)
	}
	return nil
}
