package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newShire(t *testing.T) *Memory {
	t.Helper()

	m, err := NewMemory(map[string]any{
		"user":  map[string]any{"name": "bilbo", "age": 111},
		"ring":  false,
		"count": 0,
		"empty": "",
	})
	require.NoError(t, err)

	return m
}

func TestMemoryFindDistinguishesAbsentFromFalsy(t *testing.T) {
	t.Parallel()

	m := newShire(t)

	for uc, tc := range map[string]struct {
		path     string
		expected any
		found    bool
	}{
		"false":          {path: "ring", expected: false, found: true},
		"zero":           {path: "count", expected: float64(0), found: true},
		"empty string":   {path: "empty", expected: "", found: true},
		"nested":         {path: "user.name", expected: "bilbo", found: true},
		"object":         {path: "user", expected: map[string]any{"name": "bilbo", "age": float64(111)}, found: true},
		"absent":         {path: "user.missing"},
		"absent parent":  {path: "nope.deeper"},
		"through scalar": {path: "ring.deeper"},
	} {
		t.Run(uc, func(t *testing.T) {
			t.Parallel()

			value, found := m.Find(tc.path)

			assert.Equal(t, tc.found, found)
			assert.Equal(t, tc.expected, value)
		})
	}
}

func TestMemorySetCreatesIntermediateObjects(t *testing.T) {
	t.Parallel()

	m := newShire(t)

	require.NoError(t, m.Set("user.address.city", "Hobbiton"))
	require.NoError(t, m.Set(`files.readme\.md`, []string{"a", "b"}))

	value, found := m.Find("user.address")
	require.True(t, found)
	assert.Equal(t, map[string]any{"city": "Hobbiton"}, value)

	files, found := m.Find("files")
	require.True(t, found)
	assert.Equal(t, map[string]any{"readme.md": []any{"a", "b"}}, files)

	name, _ := m.Find("user.name")
	assert.Equal(t, "bilbo", name)
}

func TestMemorySetRejectsUnencodableValues(t *testing.T) {
	t.Parallel()

	m := newShire(t)

	err := m.Set("channel", make(chan int))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to encode the value of channel")

	_, found := m.Find("channel")
	assert.False(t, found)
}

func TestMemoryRemoveAndClear(t *testing.T) {
	t.Parallel()

	m := newShire(t)

	require.NoError(t, m.Remove("user.age"))
	require.NoError(t, m.Remove("not.there"))

	_, found := m.Find("user.age")
	assert.False(t, found)
	assert.Equal(t, map[string]any{"name": "bilbo"}, m.All()["user"])

	m.Clear()

	assert.Equal(t, map[string]any{}, m.All())
	assert.JSONEq(t, "{}", m.JSON())
}

func TestNewMemoryWithoutInitialState(t *testing.T) {
	t.Parallel()

	m, err := NewMemory(nil)
	require.NoError(t, err)

	assert.Equal(t, map[string]any{}, m.All())

	_, err = NewMemory(map[string]any{"bad": func() {}})
	require.Error(t, err)
}
