package shape

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

var (
	// ErrShaperAlreadyRegistered is returned when a name is registered twice.
	ErrShaperAlreadyRegistered = errors.New("shaping engine already registered")
	// ErrUnknownShaper is returned by New for names nobody registered.
	ErrUnknownShaper = errors.New("unknown shaping engine")
)

// Factory creates a fresh, unloaded shaper instance.
type Factory func() Shaper

type shaperRegistration struct {
	name    string
	factory Factory
	order   int
}

type shaperRegistry struct {
	mu        sync.RWMutex
	entries   []shaperRegistration
	nextOrder int
}

func newShaperRegistry() *shaperRegistry {
	return &shaperRegistry{}
}

func (r *shaperRegistry) register(name string, factory Factory) error {
	if factory == nil {
		return fmt.Errorf("cannot register nil shaping engine factory")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("cannot register shaping engine with empty name")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, entry := range r.entries {
		if entry.name == name {
			return fmt.Errorf("%w: %q", ErrShaperAlreadyRegistered, name)
		}
	}
	r.entries = append(r.entries, shaperRegistration{
		name:    name,
		factory: factory,
		order:   r.nextOrder,
	})
	r.nextOrder++
	return nil
}

func (r *shaperRegistry) clear() {
	r.mu.Lock()
	r.entries = nil
	r.nextOrder = 0
	r.mu.Unlock()
}

func (r *shaperRegistry) create(name string) (Shaper, error) {
	name = strings.TrimSpace(name)
	r.mu.RLock()
	var factory Factory
	for _, entry := range r.entries {
		if entry.name == name {
			factory = entry.factory
			break
		}
	}
	r.mu.RUnlock()

	if factory == nil {
		return nil, fmt.Errorf("%w: %q (known: %s)", ErrUnknownShaper, name, strings.Join(r.names(), ", "))
	}
	s := factory()
	if s == nil {
		return nil, fmt.Errorf("shaping engine %q: factory returned nil", name)
	}
	tracer().Debugf("created shaping engine %q", name)
	return s, nil
}

// names returns registered names in registration order.
func (r *shaperRegistry) names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entries := append([]shaperRegistration(nil), r.entries...)
	sort.Slice(entries, func(i, j int) bool { return entries[i].order < entries[j].order })
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.name
	}
	return names
}

var defaultShaperRegistry = newShaperRegistry()

// Register makes a shaping engine available under name. Adapters call it
// from their init functions.
func Register(name string, factory Factory) error {
	return defaultShaperRegistry.register(name, factory)
}

// MustRegister is like Register but panics on error.
func MustRegister(name string, factory Factory) {
	if err := Register(name, factory); err != nil {
		panic(err)
	}
}

// New creates an unloaded instance of the engine registered under name.
func New(name string) (Shaper, error) {
	return defaultShaperRegistry.create(name)
}

// Names lists the registered engines in registration order.
func Names() []string {
	return defaultShaperRegistry.names()
}

// IsRegistered reports whether an engine is known under name.
func IsRegistered(name string) bool {
	name = strings.TrimSpace(name)
	for _, n := range Names() {
		if n == name {
			return true
		}
	}
	return false
}
