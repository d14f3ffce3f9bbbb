package accounts

import (
	"context"
)

// MemoryStore keeps accounts in memory. FetchAccounts runs the configured
// fetcher, if any.
type MemoryStore struct {
	publisher
	fetcher FetchFunc
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates a store seeded with accounts.
func NewMemoryStore(initial []Account, opts ...Option) (*MemoryStore, error) {
	o, err := defaultOptions().apply(opts...)
	if err != nil {
		return nil, err
	}
	s := &MemoryStore{fetcher: o.fetcher}
	s.logger = o.logger
	s.snapshot = Snapshot{Accounts: append([]Account(nil), initial...)}
	return s, nil
}

// Set publishes a new snapshot with accounts.
func (s *MemoryStore) Set(accounts []Account) Snapshot {
	return s.publish(accounts)
}

// FetchAccounts starts the fetcher in the background.
func (s *MemoryStore) FetchAccounts(ctx context.Context) {
	if s.fetcher == nil {
		s.logger.Debug().Msg("No account fetcher configured")
		return
	}
	s.refresh(ctx, s.fetcher)
}
