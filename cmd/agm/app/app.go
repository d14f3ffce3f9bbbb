// Package app provides the application context and dependency management
// for the agm CLI. It centralizes configuration, logging and the lazily
// created catalog, translator and account store shared by all commands.
package app

import (
	"context"
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"

	"github.com/qisthidev/Antigravity-Manager/internal/cmd/output"
	"github.com/qisthidev/Antigravity-Manager/internal/settings"
	"github.com/qisthidev/Antigravity-Manager/internal/sources/gemini"
	"github.com/qisthidev/Antigravity-Manager/pkg/accounts"
	"github.com/qisthidev/Antigravity-Manager/pkg/catalogs"
	"github.com/qisthidev/Antigravity-Manager/pkg/errors"
	"github.com/qisthidev/Antigravity-Manager/pkg/i18n"
	"github.com/qisthidev/Antigravity-Manager/pkg/modelview"
)

// App represents the agm application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger
	out    io.Writer

	// Lazily initialized dependencies
	mu         sync.Mutex
	catalog    *catalogs.Catalog
	translator i18n.Translator
	store      *accounts.FileStore
}

// New creates a new App instance with the given version information.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
		out:     os.Stdout,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// Out returns the writer commands print to.
func (a *App) Out() io.Writer {
	return a.out
}

// OutputFormat returns the requested output format, detected from the
// terminal when none was given.
func (a *App) OutputFormat() output.Format {
	return output.DetectFormat(a.config.Format)
}

// Catalog returns the model catalog, loading it on first use. A configured
// catalog path replaces the embedded catalog.
func (a *App) Catalog() (*catalogs.Catalog, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.catalogLocked()
}

func (a *App) catalogLocked() (*catalogs.Catalog, error) {
	if a.catalog != nil {
		return a.catalog, nil
	}

	source := catalogs.WithEmbedded()
	if a.config.CatalogPath != "" {
		source = catalogs.WithPath(a.config.CatalogPath)
	}
	catalog, err := catalogs.New(source)
	if err != nil {
		return nil, errors.WrapResource("load", "catalog", a.config.CatalogPath, err)
	}

	a.logger.Debug().Int("entries", catalog.Len()).Msg("Loaded model catalog")
	a.catalog = catalog
	return catalog, nil
}

// Settings loads the settings document.
func (a *App) Settings() (settings.Settings, error) {
	catalog, err := a.Catalog()
	if err != nil {
		return settings.Settings{}, err
	}
	return settings.Load(a.config.SettingsPath(), catalog)
}

// SaveSettings writes the settings document.
func (a *App) SaveSettings(s settings.Settings) error {
	return settings.Save(a.config.SettingsPath(), s)
}

// Translator returns the localizer for the configured locale, falling back
// to the locale stored in settings.
func (a *App) Translator() (i18n.Translator, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.translator != nil {
		return a.translator, nil
	}

	bundle, err := i18n.LoadEmbedded()
	if err != nil {
		return nil, errors.WrapResource("load", "locales", "", err)
	}
	if a.config.LocalePath != "" {
		if err := bundle.LoadFS(os.DirFS(a.config.LocalePath), "."); err != nil {
			return nil, errors.WrapResource("load", "locales", a.config.LocalePath, err)
		}
	}

	locale := a.config.Locale
	if locale == "" {
		catalog, err := a.catalogLocked()
		if err != nil {
			return nil, err
		}
		if s, err := settings.Load(a.config.SettingsPath(), catalog); err == nil {
			locale = s.Locale
		} else {
			a.logger.Warn().Err(err).Msg("Ignoring unreadable settings for locale")
		}
	}

	localizer := bundle.Localizer(locale)
	a.logger.Debug().Str("locale", localizer.Tag().String()).Msg("Selected locale")
	a.translator = localizer
	return localizer, nil
}

// Accounts returns the account store over the data directory, loading it
// on first use.
func (a *App) Accounts(ctx context.Context) (*accounts.FileStore, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.store != nil {
		return a.store, nil
	}

	store, err := accounts.NewFileStore(a.config.AccountsDir(), accounts.WithLogger(a.logger))
	if err != nil {
		return nil, err
	}
	if _, err := store.Load(ctx); err != nil {
		return nil, errors.WrapResource("load", "accounts", a.config.AccountsDir(), err)
	}
	a.store = store
	return store, nil
}

// View returns a model view over store.
func (a *App) View(ctx context.Context, store accounts.Store) (*modelview.View, error) {
	catalog, err := a.Catalog()
	if err != nil {
		return nil, err
	}
	translator, err := a.Translator()
	if err != nil {
		return nil, err
	}
	return modelview.New(ctx, store, catalog,
		modelview.WithTranslator(translator),
		modelview.WithLogger(a.logger),
	), nil
}

// Gemini returns a Gemini model source using the configured API key.
func (a *App) Gemini(ctx context.Context) (*gemini.Source, error) {
	return gemini.New(ctx,
		gemini.WithAPIKey(a.config.GeminiAPIKey),
		gemini.WithLogger(a.logger),
	)
}

// Shutdown waits for in-flight account refreshes, or until ctx is done.
func (a *App) Shutdown(ctx context.Context) error {
	a.mu.Lock()
	store := a.store
	a.mu.Unlock()
	if store == nil {
		return nil
	}

	done := make(chan struct{})
	go func() {
		store.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithOutput sets the writer commands print to.
func WithOutput(w io.Writer) Option {
	return func(a *App) error {
		a.out = w
		return nil
	}
}

// WithCatalog sets a preloaded catalog.
func WithCatalog(catalog *catalogs.Catalog) Option {
	return func(a *App) error {
		a.catalog = catalog
		return nil
	}
}
