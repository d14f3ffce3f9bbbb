package catalogs

import (
	"io/fs"
	"os"

	"github.com/qisthidev/Antigravity-Manager/internal/embedded"
	"github.com/qisthidev/Antigravity-Manager/pkg/errors"
)

// DefaultFileName is the catalog document read from a catalog directory.
const DefaultFileName = "models.yaml"

type options struct {
	readFS   fs.FS
	fileName string
	entries  []Entry
}

func defaultOptions() *options {
	return &options{fileName: DefaultFileName}
}

func (o *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	if o.readFS == nil && o.entries == nil {
		return nil, &errors.ConfigError{Component: "catalog", Message: "no catalog source configured"}
	}
	return o, nil
}

// Option configures catalog construction.
type Option func(*options) error

// WithFS reads the catalog document from fsys.
func WithFS(fsys fs.FS) Option {
	return func(o *options) error {
		if fsys == nil {
			return &errors.ConfigError{Component: "catalog", Message: "nil filesystem"}
		}
		o.readFS = fsys
		return nil
	}
}

// WithPath reads the catalog document from a directory.
func WithPath(path string) Option {
	return func(o *options) error {
		info, err := os.Stat(path)
		if err != nil {
			return errors.WrapIO("stat", path, err)
		}
		if !info.IsDir() {
			return errors.NewValidationError("path", path, "catalog path must be a directory")
		}
		o.readFS = os.DirFS(path)
		return nil
	}
}

// WithEmbedded reads the catalog bundled with the binary.
func WithEmbedded() Option {
	return func(o *options) error {
		sub, err := fs.Sub(embedded.FS, "catalog")
		if err != nil {
			return errors.WrapResource("open", "embedded catalog", "", err)
		}
		o.readFS = sub
		return nil
	}
}

// WithFileName overrides the document name read from the filesystem.
func WithFileName(name string) Option {
	return func(o *options) error {
		o.fileName = name
		return nil
	}
}

// WithEntries appends in-memory entries after any loaded ones.
func WithEntries(entries ...Entry) Option {
	return func(o *options) error {
		if o.entries == nil {
			o.entries = make([]Entry, 0, len(entries))
		}
		o.entries = append(o.entries, entries...)
		return nil
	}
}
