// Package modelview serves reconciled model lists to pickers and the pin
// editor. It derives its output from the current account snapshot and
// recomputes it whenever the snapshot version changes.
package modelview

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/qisthidev/Antigravity-Manager/pkg/accounts"
	"github.com/qisthidev/Antigravity-Manager/pkg/catalogs"
	"github.com/qisthidev/Antigravity-Manager/pkg/i18n"
	"github.com/qisthidev/Antigravity-Manager/pkg/logging"
	"github.com/qisthidev/Antigravity-Manager/pkg/pins"
	"github.com/qisthidev/Antigravity-Manager/pkg/reconciler"
)

type options struct {
	translator i18n.Translator
	logger     *zerolog.Logger
}

// Option configures a View.
type Option func(*options)

// WithTranslator localizes catalog labels and fallback descriptions.
func WithTranslator(t i18n.Translator) Option {
	return func(o *options) {
		if t != nil {
			o.translator = t
		}
	}
}

// WithLogger sets the view logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// View is a cached reconciliation over a store and a catalog.
type View struct {
	store      accounts.Store
	catalog    *catalogs.Catalog
	translator i18n.Translator
	reconciler *reconciler.Reconciler
	logger     *zerolog.Logger

	mu      sync.Mutex
	cached  []reconciler.Entry
	version uint64
	valid   bool
}

// New creates a view. When the store holds no accounts it requests one
// refresh; the view picks up the result on a later read.
func New(ctx context.Context, store accounts.Store, catalog *catalogs.Catalog, opts ...Option) *View {
	o := &options{translator: i18n.Nop{}, logger: logging.FromContext(ctx)}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}

	v := &View{
		store:      store,
		catalog:    catalog,
		translator: o.translator,
		reconciler: reconciler.New(reconciler.WithTranslator(o.translator), reconciler.WithLogger(o.logger)),
		logger:     o.logger,
	}
	store.OnChange(func(accounts.Snapshot) { v.invalidate() })

	if len(store.Accounts()) == 0 {
		v.logger.Debug().Msg("No accounts loaded, requesting refresh")
		store.FetchAccounts(ctx)
	}
	return v
}

func (v *View) invalidate() {
	v.mu.Lock()
	v.valid = false
	v.cached = nil
	v.mu.Unlock()
}

// Models returns the reconciled entries for the current snapshot.
func (v *View) Models() []reconciler.Entry {
	entries, _ := v.current()
	return entries
}

// Options returns the pin editor options for cfg over the current snapshot.
func (v *View) Options(cfg pins.Config) []pins.Option {
	entries, snap := v.current()
	return pins.BuildOptions(entries, cfg, snap.Accounts, v.catalog, pins.WithTranslator(v.translator))
}

// Version returns the snapshot version the cached entries belong to.
func (v *View) Version() uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.version
}

func (v *View) current() ([]reconciler.Entry, accounts.Snapshot) {
	snap := v.store.Snapshot()

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.valid && v.version == snap.Version {
		return clone(v.cached), snap
	}

	entries := v.reconciler.Reconcile(v.catalog, snap.Accounts)
	v.cached = entries
	v.version = snap.Version
	v.valid = true
	return clone(entries), snap
}

func clone(entries []reconciler.Entry) []reconciler.Entry {
	out := make([]reconciler.Entry, len(entries))
	copy(out, entries)
	return out
}
