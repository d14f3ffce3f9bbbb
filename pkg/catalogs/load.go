package catalogs

import (
	"bytes"
	"io"
	"io/fs"

	"github.com/goccy/go-yaml"

	"github.com/qisthidev/Antigravity-Manager/pkg/errors"
)

// document is the on-disk catalog layout. A list keeps declaration order.
type document struct {
	Models []Entry `yaml:"models"`
}

// Parse decodes a catalog document and builds a catalog from it.
func Parse(r io.Reader) (*Catalog, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.WrapIO("read", "catalog", err)
	}
	entries, err := decode(data, "")
	if err != nil {
		return nil, err
	}
	return NewFromEntries(entries)
}

func loadFS(fsys fs.FS, name string) ([]Entry, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, errors.WrapIO("read", name, err)
	}
	return decode(data, name)
}

func decode(data []byte, name string) ([]Entry, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &errors.ValidationError{Message: "empty catalog document"}
	}

	var doc document
	if err := yaml.UnmarshalWithOptions(data, &doc, yaml.DisallowUnknownField()); err != nil {
		return nil, errors.WrapParse("yaml", name, err)
	}
	if doc.Models == nil {
		doc.Models = []Entry{}
	}
	return doc.Models, nil
}
