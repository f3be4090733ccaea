package port

// Cache is a bounded key-value store. Implementations are safe for
// concurrent use.
type Cache[K comparable, V any] interface {
	// Get retrieves a value by key. Returns the value and true if found,
	// or the zero value and false if not found.
	Get(key K) (V, bool)

	// Set stores a value for the given key, possibly evicting another.
	Set(key K, value V)

	// Len returns the number of items currently in the cache.
	Len() int

	// Clear drops every entry.
	Clear()
}
