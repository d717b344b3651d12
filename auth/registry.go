package auth

import (
	"fmt"
	"maps"
	"slices"
	"sync"
)

// Registry holds named Checkers so routes can refer to an auth scheme by
// name ("secret", "jwt") instead of carrying the checker around. It is safe
// for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	checkers map[string]Checker
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{checkers: make(map[string]Checker)}
}

// Register adds c under name. Names are unique and non-empty.
func (r *Registry) Register(name string, c Checker) error {
	if name == "" {
		return fmt.Errorf("auth: checker name is empty")
	}
	if c == nil {
		return fmt.Errorf("auth: checker %q is nil", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.checkers[name]; exists {
		return fmt.Errorf("auth: checker %q already registered", name)
	}
	r.checkers[name] = c
	return nil
}

// RegisterValidator registers BearerValidator(v) under name.
func (r *Registry) RegisterValidator(name string, v TokenValidator) error {
	if v == nil {
		return fmt.Errorf("auth: validator %q is nil", name)
	}
	return r.Register(name, BearerValidator(v))
}

// Checker returns the checker registered under name.
func (r *Registry) Checker(name string) (Checker, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.checkers[name]
	if !ok {
		return nil, fmt.Errorf("auth: checker %q not registered", name)
	}
	return c, nil
}

// AnyOf returns a Checker that authorizes a request when any of the named
// checkers does, trying them in order. A request rejected by all of them
// gets the first checker's rejection.
func (r *Registry) AnyOf(names ...string) (Checker, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("auth: AnyOf needs at least one checker")
	}
	checkers := make([]Checker, 0, len(names))
	for _, name := range names {
		c, err := r.Checker(name)
		if err != nil {
			return nil, err
		}
		checkers = append(checkers, c)
	}

	return CheckerFunc(func(req Request) AuthResult {
		var first AuthResult
		for i, c := range checkers {
			res := c.Check(req)
			if res.IsAuthorized {
				return res
			}
			if i == 0 {
				first = res
			}
		}
		return first
	}), nil
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.checkers))
}
