package signals

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetNotifiesSubscribers(t *testing.T) {
	t.Parallel()

	s := NewSignal(1)

	var seen []int
	s.Subscribe(func() { seen = append(seen, s.Get()) })
	s.Subscribe(func() { seen = append(seen, s.Get()*10) })

	s.Set(2)
	s.Update(func(v int) int { return v + 1 })

	assert.Equal(t, 3, s.Get())
	assert.Equal(t, []int{2, 20, 3, 30}, seen)
}

func TestUnsubscribeOutOfOrder(t *testing.T) {
	t.Parallel()

	s := NewSignal("")

	var calls [3]int
	first := s.Subscribe(func() { calls[0]++ })
	second := s.Subscribe(func() { calls[1]++ })
	third := s.Subscribe(func() { calls[2]++ })

	first()
	third()
	first()

	s.Set("x")

	assert.Equal(t, [3]int{0, 1, 0}, calls)
	assert.Equal(t, 1, s.Subscribers())

	second()
	assert.Zero(t, s.Subscribers())
}

func TestUnsubscribeDuringNotification(t *testing.T) {
	t.Parallel()

	s := NewSignal(0)

	calls := 0
	var unsubscribe func()
	unsubscribe = s.Subscribe(func() {
		calls++
		unsubscribe()
	})

	s.Set(1)
	s.Set(2)

	assert.Equal(t, 1, calls)
}

func TestConcurrentSet(t *testing.T) {
	t.Parallel()

	s := NewSignal(0)

	var mu sync.Mutex
	notified := 0
	s.Subscribe(func() {
		mu.Lock()
		notified++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Set(i)
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, notified)
}
