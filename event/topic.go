// Package event provides the synchronous, typed notification channels a session
// uses to connect its components.
package event

// Topic fans a value out to its subscribers in subscription order. Handlers run
// synchronously on the publishing goroutine.
type Topic[T any] struct {
	subscribers []subscriber[T]
	nextID      int
}

type subscriber[T any] struct {
	id int
	fn func(T)
}

// Subscribe registers fn and returns a function that removes it again.
func (t *Topic[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	t.nextID++
	id := t.nextID
	t.subscribers = append(t.subscribers, subscriber[T]{id: id, fn: fn})

	return func() {
		for i, s := range t.subscribers {
			if s.id == id {
				t.subscribers = append(t.subscribers[:i:i], t.subscribers[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers v to every handler subscribed at the time of the call.
func (t *Topic[T]) Publish(v T) {
	subs := t.subscribers
	for _, s := range subs {
		s.fn(v)
	}
}

// Len returns the number of subscribers.
func (t *Topic[T]) Len() int {
	return len(t.subscribers)
}
