package tabmodel

import "slices"

// Registry is an ordered set of distinct observers.
// Notify iterates over a snapshot, so observers may add or remove observers
// while being notified. Observers removed mid-round are skipped.
type Registry[T comparable] struct {
	items []T
}

// Add registers o. Returns false if it was already registered.
func (r *Registry[T]) Add(o T) bool {
	if slices.Contains(r.items, o) {
		return false
	}
	r.items = append(r.items, o)
	return true
}

// Remove unregisters o. Returns false if it was not registered.
func (r *Registry[T]) Remove(o T) bool {
	i := slices.Index(r.items, o)
	if i < 0 {
		return false
	}
	r.items = slices.Delete(r.items, i, i+1)
	return true
}

// Has reports whether o is registered.
func (r *Registry[T]) Has(o T) bool {
	return slices.Contains(r.items, o)
}

// Len returns the number of registered observers.
func (r *Registry[T]) Len() int {
	return len(r.items)
}

// Notify calls fn for every observer in insertion order.
func (r *Registry[T]) Notify(fn func(T)) {
	if len(r.items) == 0 {
		return
	}
	snapshot := slices.Clone(r.items)
	for _, o := range snapshot {
		if !r.Has(o) {
			continue
		}
		fn(o)
	}
}

// Supplier holds an observable value. Observers run after every change.
type Supplier[T comparable] struct {
	value     T
	observers []*supplierObserver[T]
}

type supplierObserver[T comparable] struct {
	fn func(T)
}

// NewSupplier creates a supplier holding initial.
func NewSupplier[T comparable](initial T) *Supplier[T] {
	return &Supplier[T]{value: initial}
}

// Get returns the current value.
func (s *Supplier[T]) Get() T {
	return s.value
}

// Observe registers fn and returns a function that unregisters it.
func (s *Supplier[T]) Observe(fn func(T)) (cancel func()) {
	o := &supplierObserver[T]{fn: fn}
	s.observers = append(s.observers, o)
	return func() {
		if i := slices.Index(s.observers, o); i >= 0 {
			s.observers = slices.Delete(s.observers, i, i+1)
		}
	}
}

// set stores v and notifies observers when it changed.
func (s *Supplier[T]) set(v T) {
	if s.value == v {
		return
	}
	s.value = v
	snapshot := slices.Clone(s.observers)
	for _, o := range snapshot {
		if !slices.Contains(s.observers, o) {
			continue
		}
		o.fn(v)
	}
}
