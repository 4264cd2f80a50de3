package store

import (
	"fmt"
	"sync"

	"github.com/goccy/go-json"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

const emptyDocument = "{}"

var _ Connector = (*Memory)(nil)

// Memory keeps the state as a JSON document. Paths use the gjson path syntax, so keys
// containing '.', '*' or '?' must be escaped with a backslash.
type Memory struct {
	mu  sync.RWMutex
	doc string
}

// NewMemory returns a connector holding initial.
func NewMemory(initial map[string]any) (*Memory, error) {
	if initial == nil {
		return &Memory{doc: emptyDocument}, nil
	}

	raw, err := json.Marshal(initial)
	if err != nil {
		return nil, fmt.Errorf("failed to encode the initial state: %w", err)
	}

	return &Memory{doc: string(raw)}, nil
}

// Set stores value at path, creating the intermediate objects.
func (m *Memory) Set(path string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode the value of %s: %w", path, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	doc, err := sjson.SetRaw(m.doc, path, string(raw))
	if err != nil {
		return fmt.Errorf("failed to set %s: %w", path, err)
	}

	m.doc = doc

	return nil
}

// Remove deletes path. Removing an absent path is not an error.
func (m *Memory) Remove(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc, err := sjson.Delete(m.doc, path)
	if err != nil {
		return fmt.Errorf("failed to remove %s: %w", path, err)
	}

	m.doc = doc

	return nil
}

// Find returns the value at path decoded into Go values: objects become
// map[string]any, arrays []any and numbers float64.
func (m *Memory) Find(path string) (any, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := gjson.Get(m.doc, path)
	if !result.Exists() {
		return nil, false
	}

	return result.Value(), true
}

func (m *Memory) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.doc = emptyDocument
}

// All returns a copy of the whole state.
func (m *Memory) All() map[string]any {
	m.mu.RLock()
	doc := m.doc
	m.mu.RUnlock()

	state := make(map[string]any)
	if err := json.Unmarshal([]byte(doc), &state); err != nil {
		return map[string]any{}
	}

	return state
}

// JSON returns the document.
func (m *Memory) JSON() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.doc
}
