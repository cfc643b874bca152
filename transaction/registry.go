package transaction

import (
	"fmt"
	"sort"
	"sync"
)

// Registry maps keys to descriptors. It is populated once at startup and
// sealed; lookups after that are safe from any goroutine.
type Registry struct {
	descriptors map[Key]Descriptor
	sealed      bool
	mu          sync.RWMutex
}

func NewRegistry() *Registry {
	return &Registry{
		descriptors: make(map[Key]Descriptor),
	}
}

// Register adds a descriptor to the registry
func (r *Registry) Register(d Descriptor) error {
	if err := d.check(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed {
		return fmt.Errorf("failed to register %s: %w", d.Name, ErrRegistrySealed)
	}
	if existing, ok := r.descriptors[d.Key]; ok {
		return fmt.Errorf("failed to register %s: %w: %s is %s", d.Name, ErrDuplicateKind, d.Key, existing.Name)
	}

	r.descriptors[d.Key] = d.clone()
	return nil
}

// Seal makes the registry read-only.
func (r *Registry) Seal() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sealed = true
}

// Sealed reports whether Seal was called.
func (r *Registry) Sealed() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sealed
}

// Lookup retrieves a copy of the descriptor registered for (group, type)
func (r *Registry) Lookup(group Group, typ Type) (Descriptor, error) {
	key := NewKey(group, typ)

	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.descriptors[key]
	if !ok {
		return Descriptor{}, &NotFoundError{Key: key}
	}
	return d.clone(), nil
}

// MustLookup is Lookup for keys that are known to be registered. It panics
// otherwise.
func (r *Registry) MustLookup(group Group, typ Type) Descriptor {
	d, err := r.Lookup(group, typ)
	if err != nil {
		panic(err)
	}
	return d
}

// Kinds returns all registered descriptors ordered by key
func (r *Registry) Kinds() []Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]Descriptor, 0, len(r.descriptors))
	for _, d := range r.descriptors {
		kinds = append(kinds, d.clone())
	}
	sort.Slice(kinds, func(i, j int) bool {
		return kinds[i].Key.Less(kinds[j].Key)
	})
	return kinds
}
