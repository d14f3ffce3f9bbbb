package accounts

import (
	"reflect"
	"sync"
)

// Hook function types for account events
type (
	// ChangeHook is called with every newly published snapshot
	ChangeHook func(snapshot Snapshot)

	// AccountAddedHook is called when an account appears in a snapshot
	AccountAddedHook func(account Account)

	// AccountUpdatedHook is called when an account changes between snapshots
	AccountUpdatedHook func(old, new Account)

	// AccountRemovedHook is called when an account disappears from a snapshot
	AccountRemovedHook func(account Account)
)

// hooks manages event callbacks for snapshot changes
type hooks struct {
	mu               sync.RWMutex
	onChange         []ChangeHook
	onAccountAdded   []AccountAddedHook
	onAccountUpdated []AccountUpdatedHook
	onAccountRemoved []AccountRemovedHook
}

// OnChange registers a callback for every published snapshot
func (h *hooks) OnChange(fn ChangeHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onChange = append(h.onChange, fn)
}

// OnAccountAdded registers a callback for when accounts are added
func (h *hooks) OnAccountAdded(fn AccountAddedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onAccountAdded = append(h.onAccountAdded, fn)
}

// OnAccountUpdated registers a callback for when accounts are updated
func (h *hooks) OnAccountUpdated(fn AccountUpdatedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onAccountUpdated = append(h.onAccountUpdated, fn)
}

// OnAccountRemoved registers a callback for when accounts are removed
func (h *hooks) OnAccountRemoved(fn AccountRemovedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onAccountRemoved = append(h.onAccountRemoved, fn)
}

// trigger compares two snapshots and runs the registered hooks
func (h *hooks) trigger(old, next Snapshot) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	oldByID := make(map[string]Account, len(old.Accounts))
	for _, a := range old.Accounts {
		oldByID[a.ID] = a
	}
	nextByID := make(map[string]struct{}, len(next.Accounts))

	for _, a := range next.Accounts {
		nextByID[a.ID] = struct{}{}
		if prev, exists := oldByID[a.ID]; exists {
			if !reflect.DeepEqual(prev, a) {
				for _, hook := range h.onAccountUpdated {
					hook(prev, a)
				}
			}
			continue
		}
		for _, hook := range h.onAccountAdded {
			hook(a)
		}
	}

	for _, a := range old.Accounts {
		if _, exists := nextByID[a.ID]; !exists {
			for _, hook := range h.onAccountRemoved {
				hook(a)
			}
		}
	}

	for _, hook := range h.onChange {
		hook(next)
	}
}
