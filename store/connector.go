// Package store is a path-addressed observable state store. Paths are dot separated
// ("user.name"); subscribers are notified with the path of every mutation.
package store

// Connector is the storage behind a Store.
type Connector interface {
	Set(path string, value any) error
	Remove(path string) error
	// Find returns the value at path. The boolean is false when nothing is stored there,
	// which is distinct from a stored zero value.
	Find(path string) (any, bool)
	Clear()
	All() map[string]any
}

// ConnectorFactory builds a connector seeded with the initial state.
type ConnectorFactory func(initial map[string]any) (Connector, error)

// MemoryConnector is the default ConnectorFactory.
func MemoryConnector(initial map[string]any) (Connector, error) {
	return NewMemory(initial)
}
