// Package pkg is a package that provides utilities for mutapath.
package pkg

// OrderedMap is a generic map that remembers insertion order. Iteration and
// Keys always follow the order in which keys were first set, which keeps
// generated documents and chain-to-example mappings deterministic.
type OrderedMap[K comparable, V any] interface {
	Len() int
	Get(key K) (V, bool)
	Set(key K, value V)
	Keys() []K
	Range(f func(key K, value V) error) error
}

type orderedMapImpl[K comparable, V any] struct {
	keys   []K
	values map[K]V
}

// NewOrderedMap creates an empty OrderedMap.
func NewOrderedMap[K comparable, V any]() OrderedMap[K, V] {
	return &orderedMapImpl[K, V]{
		values: make(map[K]V),
	}
}

// Len implements OrderedMap.
func (o *orderedMapImpl[K, V]) Len() int {
	return len(o.keys)
}

// Get implements OrderedMap.
func (o *orderedMapImpl[K, V]) Get(key K) (V, bool) {
	value, ok := o.values[key]
	return value, ok
}

// Set implements OrderedMap. Setting an existing key replaces its value but
// keeps its original position.
func (o *orderedMapImpl[K, V]) Set(key K, value V) {
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}

	o.values[key] = value
}

// Keys implements OrderedMap.
func (o *orderedMapImpl[K, V]) Keys() []K {
	keys := make([]K, len(o.keys))
	copy(keys, o.keys)

	return keys
}

// Range implements OrderedMap. Iteration stops at the first error, which is
// returned.
func (o *orderedMapImpl[K, V]) Range(f func(key K, value V) error) error {
	for _, key := range o.keys {
		if err := f(key, o.values[key]); err != nil {
			return err
		}
	}

	return nil
}
