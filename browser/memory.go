// Package browser provides the windows the history manager runs against: the real
// browser window in wasm builds and an in-memory window for tests, server renders and
// tooling.
package browser

import (
	"maps"
	"net/url"
	"sync"

	"github.com/vcrobe/hobbit/console"
	"github.com/vcrobe/hobbit/history"
)

var _ history.Window = (*Memory)(nil)

type entry struct {
	href  string
	state map[string]string
}

type listener struct {
	id uint64
	fn func()
}

// Memory is a window kept entirely in memory. It keeps a back/forward stack like a
// browser tab and dispatches popstate and hashchange the way a browser does: never for
// pushState or replaceState, always when moving through the stack.
type Memory struct {
	mu              sync.Mutex
	entries         []entry
	pos             int
	supportsHistory bool
	listeners       map[string][]listener
	nextID          uint64
	loads           []string
}

type MemoryOption func(*Memory)

// WithoutHistoryAPI makes the window report no pushState support, like a legacy browser.
func WithoutHistoryAPI() MemoryOption {
	return func(m *Memory) {
		m.supportsHistory = false
	}
}

// NewMemory opens a window on href. Relative hrefs resolve against http://localhost/.
func NewMemory(href string, opts ...MemoryOption) *Memory {
	m := &Memory{
		supportsHistory: true,
		listeners:       make(map[string][]listener),
	}

	for _, opt := range opts {
		opt(m)
	}

	m.entries = []entry{{href: resolve("http://localhost/", href)}}

	return m
}

func resolve(current, ref string) string {
	base, err := url.Parse(current)
	if err != nil {
		return ref
	}

	target, err := url.Parse(ref)
	if err != nil {
		console.Warn("[Memory] invalid URL", ref, err.Error())

		return current
	}

	return base.ResolveReference(target).String()
}

// sameDocument reports whether a and b only differ in their fragment.
func sameDocument(a, b string) bool {
	ua, errA := url.Parse(a)
	ub, errB := url.Parse(b)

	if errA != nil || errB != nil {
		return false
	}

	ua.Fragment, ua.RawFragment = "", ""
	ub.Fragment, ub.RawFragment = "", ""

	return ua.String() == ub.String()
}

func fragment(href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}

	return u.EscapedFragment()
}

func (m *Memory) Href() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.entries[m.pos].href
}

// SetHref navigates like assigning window.location.href: a fragment-only change stays
// in the document and fires hashchange, anything else is recorded as a page load.
func (m *Memory) SetHref(ref string) {
	m.mu.Lock()
	current := m.entries[m.pos].href
	target := resolve(current, ref)
	m.push(entry{href: target})

	inDocument := sameDocument(current, target)
	if !inDocument {
		m.loads = append(m.loads, target)
	}
	m.mu.Unlock()

	if inDocument && fragment(current) != fragment(target) {
		m.dispatch(history.EventHashChange)
	}
}

// SetHash simulates the user editing the fragment in the address bar.
func (m *Memory) SetHash(hash string) {
	m.mu.Lock()
	current := m.entries[m.pos].href
	target := resolve(current, hash)
	m.push(entry{href: target})
	m.mu.Unlock()

	m.dispatch(history.EventPopState)

	if fragment(current) != fragment(target) {
		m.dispatch(history.EventHashChange)
	}
}

func (m *Memory) SupportsHistory() bool {
	return m.supportsHistory
}

func (m *Memory) PushState(state map[string]string, ref string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.push(entry{href: resolve(m.entries[m.pos].href, ref), state: maps.Clone(state)})
}

func (m *Memory) ReplaceState(state map[string]string, ref string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[m.pos] = entry{href: resolve(m.entries[m.pos].href, ref), state: maps.Clone(state)}
}

// push truncates the forward entries and appends e. Callers hold the lock.
func (m *Memory) push(e entry) {
	m.entries = append(m.entries[:m.pos+1], e)
	m.pos = len(m.entries) - 1
}

func (m *Memory) State() map[string]string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return maps.Clone(m.entries[m.pos].state)
}

func (m *Memory) AddEventListener(event string, fn func()) func() {
	m.mu.Lock()
	m.nextID++
	id := m.nextID
	m.listeners[event] = append(m.listeners[event], listener{id: id, fn: fn})
	m.mu.Unlock()

	var once sync.Once

	return func() {
		once.Do(func() {
			m.mu.Lock()
			defer m.mu.Unlock()

			registered := m.listeners[event]
			for i, l := range registered {
				if l.id == id {
					m.listeners[event] = append(registered[:i:i], registered[i+1:]...)

					break
				}
			}
		})
	}
}

// Back moves one entry back, as the browser back button does.
func (m *Memory) Back() bool { return m.Go(-1) }

// Forward moves one entry forward.
func (m *Memory) Forward() bool { return m.Go(1) }

// Go moves delta entries through the stack and dispatches popstate, plus hashchange
// when the fragment differs. It returns false when the move is out of range.
func (m *Memory) Go(delta int) bool {
	m.mu.Lock()
	target := m.pos + delta

	if delta == 0 || target < 0 || target >= len(m.entries) {
		m.mu.Unlock()

		return false
	}

	from := m.entries[m.pos].href
	m.pos = target
	to := m.entries[m.pos].href
	m.mu.Unlock()

	m.dispatch(history.EventPopState)

	if fragment(from) != fragment(to) {
		m.dispatch(history.EventHashChange)
	}

	return true
}

// Len returns the number of entries in the stack.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.entries)
}

// Loads returns the URLs of the full page loads requested through SetHref.
func (m *Memory) Loads() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	loads := make([]string, len(m.loads))
	copy(loads, m.loads)

	return loads
}

// Listeners returns the number of listeners registered for event.
func (m *Memory) Listeners(event string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.listeners[event])
}

func (m *Memory) dispatch(event string) {
	m.mu.Lock()
	registered := make([]listener, len(m.listeners[event]))
	copy(registered, m.listeners[event])
	m.mu.Unlock()

	for _, l := range registered {
		l.fn()
	}
}
