package accounts

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/qisthidev/Antigravity-Manager/pkg/logging"
)

// Snapshot is an immutable view of the accounts at one point in time.
// Version increases with every publish.
type Snapshot struct {
	Version  uint64
	Accounts []Account
}

// Store supplies account snapshots and background refreshes.
type Store interface {
	// Accounts returns the current snapshot's accounts.
	Accounts() []Account
	// Snapshot returns the current snapshot.
	Snapshot() Snapshot
	// FetchAccounts starts an asynchronous refresh and returns immediately.
	FetchAccounts(ctx context.Context)
	// OnChange registers a callback run after each new snapshot is published.
	OnChange(fn ChangeHook)
}

// FetchFunc produces a fresh account list.
type FetchFunc func(ctx context.Context) ([]Account, error)

type options struct {
	logger   *zerolog.Logger
	fetcher  FetchFunc
	debounce time.Duration
}

func defaultOptions() *options {
	return &options{logger: logging.Default(), debounce: DefaultWatchDebounce}
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
	return o, nil
}

// Option configures a store.
type Option func(*options) error

// WithLogger sets the store logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) error {
		if logger != nil {
			o.logger = logger
		}
		return nil
	}
}

// WithFetcher sets the function used by FetchAccounts on a MemoryStore.
func WithFetcher(fn FetchFunc) Option {
	return func(o *options) error {
		o.fetcher = fn
		return nil
	}
}

// WithWatchDebounce sets how long a FileStore waits for file events to settle.
func WithWatchDebounce(d time.Duration) Option {
	return func(o *options) error {
		if d > 0 {
			o.debounce = d
		}
		return nil
	}
}

// publisher holds the current snapshot and the hooks shared by all stores.
type publisher struct {
	hooks
	mu       sync.RWMutex
	snapshot Snapshot
	logger   *zerolog.Logger
	fetches  sync.WaitGroup
}

func (p *publisher) Accounts() []Account {
	return p.Snapshot().Accounts
}

func (p *publisher) Snapshot() Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.snapshot
}

// publish replaces the snapshot with a copy of list and notifies hooks.
func (p *publisher) publish(list []Account) Snapshot {
	accounts := make([]Account, len(list))
	copy(accounts, list)

	p.mu.Lock()
	old := p.snapshot
	next := Snapshot{Version: old.Version + 1, Accounts: accounts}
	p.snapshot = next
	p.mu.Unlock()

	p.logger.Debug().
		Uint64("version", next.Version).
		Int("accounts", len(accounts)).
		Msg("Published account snapshot")

	p.trigger(old, next)
	return next
}

// refresh runs fetch in the background and publishes its result.
func (p *publisher) refresh(ctx context.Context, fetch FetchFunc) {
	p.fetches.Add(1)
	go func() {
		defer p.fetches.Done()
		list, err := fetch(ctx)
		if err != nil {
			p.logger.Warn().Err(err).Msg("Account refresh failed")
			return
		}
		if ctx.Err() != nil {
			return
		}
		p.publish(list)
	}()
}

// Wait blocks until in-flight refreshes have finished.
func (p *publisher) Wait() {
	p.fetches.Wait()
}
