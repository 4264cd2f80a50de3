package store

import (
	"strings"
	"sync"

	"github.com/vcrobe/hobbit/console"
	"github.com/vcrobe/hobbit/signals"
)

// RootPath is the path notified by Reset. It overlaps every path.
const RootPath = ""

// Subscriber receives the path of every mutation.
type Subscriber interface {
	Notify(path string)
}

// SubscriberFunc adapts a function to Subscriber.
type SubscriberFunc func(path string)

func (f SubscriberFunc) Notify(path string) { f(path) }

type subscription struct {
	id         uint64
	subscriber Subscriber
}

// Store is the application state. It is safe for concurrent use; subscribers run on
// the goroutine that mutated the store, after the mutation is visible.
type Store struct {
	mu        sync.RWMutex
	connector Connector
	subs      []subscription
	nextID    uint64
}

type options struct {
	factory ConnectorFactory
}

type Option func(*options)

// WithConnector replaces the in-memory JSON connector.
func WithConnector(factory ConnectorFactory) Option {
	return func(o *options) {
		if factory != nil {
			o.factory = factory
		}
	}
}

// New creates a store seeded with initial.
func New(initial map[string]any, opts ...Option) (*Store, error) {
	o := options{factory: MemoryConnector}

	for _, opt := range opts {
		opt(&o)
	}

	connector, err := o.factory(initial)
	if err != nil {
		return nil, err
	}

	return &Store{connector: connector}, nil
}

// State returns the whole state.
func (s *Store) State() map[string]any {
	return s.connector.All()
}

// Find returns the value at path and whether one is stored there.
func (s *Store) Find(path string) (any, bool) {
	return s.connector.Find(path)
}

// Set stores value at path and notifies the subscribers.
func (s *Store) Set(path string, value any) error {
	if err := s.connector.Set(path, value); err != nil {
		return err
	}

	s.notify(path)

	return nil
}

// Remove deletes path and notifies the subscribers.
func (s *Store) Remove(path string) error {
	if err := s.connector.Remove(path); err != nil {
		return err
	}

	s.notify(path)

	return nil
}

// Reset clears the state and notifies the subscribers with RootPath.
func (s *Store) Reset() {
	s.connector.Clear()
	s.notify(RootPath)
}

// Subscribe registers sub. The returned func removes it and may be called any number
// of times.
func (s *Store) Subscribe(sub Subscriber) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscription{id: id, subscriber: sub})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		for i, registered := range s.subs {
			if registered.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)

				return
			}
		}
	}
}

// Watch returns a signal holding the value at path, refreshed whenever path, one of
// its parents or one of its children mutates. The signal holds nil while the path is
// absent.
func (s *Store) Watch(path string) (*signals.Signal[any], func()) {
	value, _ := s.Find(path)
	signal := signals.NewSignal(value)

	unsubscribe := s.Subscribe(SubscriberFunc(func(mutated string) {
		if !Overlaps(path, mutated) {
			return
		}

		value, _ := s.Find(path)
		signal.Set(value)
	}))

	return signal, unsubscribe
}

func (s *Store) notify(path string) {
	s.mu.RLock()
	subs := make([]subscription, len(s.subs))
	copy(subs, s.subs)
	s.mu.RUnlock()

	console.Log("[Store] notifying", len(subs), "subscribers of", path)

	for _, sub := range subs {
		sub.subscriber.Notify(path)
	}
}

// Overlaps reports whether a mutation of one path can change the value at the other:
// the paths are equal, or one is a parent of the other.
func Overlaps(a, b string) bool {
	switch {
	case a == b, a == RootPath, b == RootPath:
		return true
	case strings.HasPrefix(a, b+"."), strings.HasPrefix(b, a+"."):
		return true
	default:
		return false
	}
}
