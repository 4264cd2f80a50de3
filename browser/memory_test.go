package browser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vcrobe/hobbit/history"
)

func TestMemoryPushStateDoesNotDispatch(t *testing.T) {
	t.Parallel()

	w := NewMemory("https://x.com/test")

	fired := 0
	w.AddEventListener(history.EventPopState, func() { fired++ })

	w.PushState(map[string]string{"color": "red"}, "/block/red")

	assert.Equal(t, "https://x.com/block/red", w.Href())
	assert.Equal(t, map[string]string{"color": "red"}, w.State())
	assert.Equal(t, 2, w.Len())
	assert.Zero(t, fired)
}

func TestMemoryReplaceStateKeepsStackSize(t *testing.T) {
	t.Parallel()

	w := NewMemory("https://x.com/test")

	w.ReplaceState(map[string]string{"a": "b"}, "/other")

	assert.Equal(t, 1, w.Len())
	assert.Equal(t, "https://x.com/other", w.Href())
	assert.Equal(t, map[string]string{"a": "b"}, w.State())
}

func TestMemoryBackAndForward(t *testing.T) {
	t.Parallel()

	w := NewMemory("https://x.com/one")
	w.PushState(nil, "/two")
	w.PushState(nil, "/three")

	var events []string
	w.AddEventListener(history.EventPopState, func() { events = append(events, history.EventPopState) })
	w.AddEventListener(history.EventHashChange, func() { events = append(events, history.EventHashChange) })

	require.True(t, w.Back())
	assert.Equal(t, "https://x.com/two", w.Href())

	require.True(t, w.Back())
	assert.False(t, w.Back())
	assert.Equal(t, "https://x.com/one", w.Href())
	assert.Nil(t, w.State())

	require.True(t, w.Forward())
	assert.Equal(t, "https://x.com/two", w.Href())

	// pushing drops the forward entries
	w.PushState(nil, "/four")
	assert.False(t, w.Forward())
	assert.Equal(t, 3, w.Len())

	assert.Equal(t, []string{history.EventPopState, history.EventPopState, history.EventPopState}, events)
}

func TestMemoryHashNavigation(t *testing.T) {
	t.Parallel()

	w := NewMemory("https://x.com/#!/test")

	var events []string
	w.AddEventListener(history.EventPopState, func() { events = append(events, history.EventPopState) })
	w.AddEventListener(history.EventHashChange, func() { events = append(events, history.EventHashChange) })

	w.SetHash("#!/other")
	assert.Equal(t, "https://x.com/#!/other", w.Href())
	assert.Equal(t, []string{history.EventPopState, history.EventHashChange}, events)

	events = nil

	require.True(t, w.Back())
	assert.Equal(t, "https://x.com/#!/test", w.Href())
	assert.Equal(t, []string{history.EventPopState, history.EventHashChange}, events)
}

func TestMemorySetHref(t *testing.T) {
	t.Parallel()

	w := NewMemory("https://x.com/test", WithoutHistoryAPI())
	assert.False(t, w.SupportsHistory())

	hashChanges := 0
	w.AddEventListener(history.EventHashChange, func() { hashChanges++ })

	w.SetHref("/block/red")
	assert.Equal(t, []string{"https://x.com/block/red"}, w.Loads())
	assert.Zero(t, hashChanges)

	w.SetHref("#!/inside")
	assert.Equal(t, "https://x.com/block/red#!/inside", w.Href())
	assert.Len(t, w.Loads(), 1)
	assert.Equal(t, 1, hashChanges)
}

func TestMemoryRemoveListener(t *testing.T) {
	t.Parallel()

	w := NewMemory("/one")
	w.PushState(nil, "/two")

	first, second := 0, 0
	removeFirst := w.AddEventListener(history.EventPopState, func() { first++ })
	w.AddEventListener(history.EventPopState, func() { second++ })
	require.Equal(t, 2, w.Listeners(history.EventPopState))

	removeFirst()
	removeFirst()

	w.Back()

	assert.Equal(t, 1, w.Listeners(history.EventPopState))
	assert.Zero(t, first)
	assert.Equal(t, 1, second)
	assert.Equal(t, "http://localhost/one", w.Href())
}
