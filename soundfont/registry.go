package soundfont

// Registry maps keys to the first value declared for them and remembers the
// declaration order.
type Registry[K comparable, V any] struct {
	values map[K]V
	keys   []K
}

func NewRegistry[K comparable, V any]() *Registry[K, V] {
	return &Registry[K, V]{values: make(map[K]V)}
}

// Declare stores value under key unless key is already declared. It returns
// the value stored under key and whether this call stored it.
func (registry *Registry[K, V]) Declare(key K, value V) (V, bool) {
	if existing, ok := registry.values[key]; ok {
		return existing, false
	}

	registry.values[key] = value
	registry.keys = append(registry.keys, key)
	return value, true
}

func (registry *Registry[K, V]) Lookup(key K) (V, bool) {
	value, ok := registry.values[key]
	return value, ok
}

func (registry *Registry[K, V]) Len() int {
	return len(registry.keys)
}

// Keys lists the declared keys in declaration order.
func (registry *Registry[K, V]) Keys() []K {
	return registry.keys
}
