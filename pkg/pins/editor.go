package pins

import "sync"

// ChangeHook receives the pin set after a toggle changed it.
type ChangeHook func(cfg Config)

// Editor holds a pin set and applies toggles to it.
type Editor struct {
	mu       sync.Mutex
	cfg      Config
	onChange []ChangeHook
}

// NewEditor creates an editor over a copy of cfg. An empty set is accepted.
func NewEditor(cfg Config) *Editor {
	return &Editor{cfg: cfg.Clone()}
}

// Config returns a copy of the current set.
func (e *Editor) Config() Config {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cfg.Clone()
}

// OnChange registers fn to run after every toggle that changed the set.
func (e *Editor) OnChange(fn ChangeHook) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onChange = append(e.onChange, fn)
}

// Toggle applies Toggle to the held set. Refused toggles notify nobody.
func (e *Editor) Toggle(id string) Outcome {
	e.mu.Lock()
	next, outcome := Toggle(e.cfg, id)
	if !outcome.Changed() {
		e.mu.Unlock()
		return outcome
	}
	e.cfg = next
	hooks := append([]ChangeHook(nil), e.onChange...)
	e.mu.Unlock()

	for _, fn := range hooks {
		fn(next.Clone())
	}
	return outcome
}
