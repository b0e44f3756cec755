package compliance

import (
	"sort"
	"sync"
)

// Registry resolves the check names used in rule configuration.
type Registry struct {
	mu         sync.RWMutex
	checks     map[string]Check
	positional map[string]bool
}

// NewRegistry returns a registry holding the built-in checks.
func NewRegistry() *Registry {
	r := &Registry{checks: builtinChecks(), positional: make(map[string]bool)}
	for _, name := range positionChecks {
		r.positional[name] = true
	}
	return r
}

// Register adds or replaces a named check.
func (r *Registry) Register(name string, check Check) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checks[name] = check
	delete(r.positional, name)
}

// RegisterPositional adds or replaces a check whose predicate reads the
// cumulative balance sheet of Evidence.Position.
func (r *Registry) RegisterPositional(name string, check Check) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checks[name] = check
	r.positional[name] = true
}

// NeedsPosition reports whether the named check reads Evidence.Position.
func (r *Registry) NeedsPosition(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.positional[name]
}

// Lookup returns the check registered under name.
func (r *Registry) Lookup(name string) (Check, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.checks[name]
	return c, ok
}

// Names lists the registered check names in order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.checks))
	for name := range r.checks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
