/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package redisnatives

import (
	"fmt"
	"sync"
)

// Registry is a thread-safe collection of named Factory configurations,
// so one process can keep several creation policies (for example
// "sessions" and "jobs") side by side.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]*Factory
}

// NewRegistry creates and returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]*Factory),
	}
}

// Register stores the provided Factory under the given name.
func (r *Registry) Register(name string, f *Factory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("factory with name %q already registered", name)
	}
	r.factories[name] = f
	return nil
}

// Get retrieves the Factory associated with the given name.
func (r *Registry) Get(name string) (*Factory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("factory with name %q not found", name)
	}
	return f, nil
}

// Names returns the registered factory names in no particular order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	return names
}
