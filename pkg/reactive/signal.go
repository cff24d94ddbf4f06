package reactive

import (
	"reflect"
	"sync"
)

// subscriber is one registered change callback.
type subscriber[T any] struct {
	id     uint64
	fn     func(old, new T)
	signal *Signal[T]
}

// Cancel implements Subscription.
func (s *subscriber[T]) Cancel() {
	s.signal.unsubscribe(s.id)
}

// ID implements Subscription.
func (s *subscriber[T]) ID() uint64 {
	return s.id
}

// Signal is an observable value.
type Signal[T any] struct {
	id uint64

	// value is the current signal value.
	value T

	// mu protects value.
	mu sync.RWMutex

	// subs are kept in subscription order; delivery follows it.
	subs  []*subscriber[T]
	subMu sync.RWMutex

	// equal decides whether a Set is a change. Nil means defaultEquals.
	equal func(T, T) bool
}

// NewSignal creates a new signal with the given initial value.
func NewSignal[T any](initial T) *Signal[T] {
	return &Signal[T]{
		id:    nextID(),
		value: initial,
	}
}

// Get returns the current value.
func (s *Signal[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set updates the value and notifies subscribers if it changed.
func (s *Signal[T]) Set(value T) {
	s.mu.Lock()
	old := s.value
	changed := !s.equals(old, value)
	if changed {
		s.value = value
	}
	s.mu.Unlock()

	if changed {
		s.notify(old, value)
	}
}

// Update atomically reads and updates the value.
func (s *Signal[T]) Update(fn func(T) T) {
	s.mu.Lock()
	old := s.value
	value := fn(old)
	changed := !s.equals(old, value)
	if changed {
		s.value = value
	}
	s.mu.Unlock()

	if changed {
		s.notify(old, value)
	}
}

// Touch notifies subscribers with the current value as both old and new.
// Use it after mutating a value in place (a *css.Declarations, for
// example) where Set would see no change.
func (s *Signal[T]) Touch() {
	v := s.Get()
	s.notify(v, v)
}

// OnChange registers fn to be called after every change.
func (s *Signal[T]) OnChange(fn func(old, new T)) Subscription {
	sub := &subscriber[T]{id: nextID(), fn: fn, signal: s}
	s.subMu.Lock()
	s.subs = append(s.subs, sub)
	s.subMu.Unlock()
	return sub
}

// WithEquals returns the signal configured with a custom equality function.
func (s *Signal[T]) WithEquals(fn func(T, T) bool) *Signal[T] {
	s.equal = fn
	return s
}

// ID returns the unique identifier for this signal.
func (s *Signal[T]) ID() uint64 {
	return s.id
}

// SubscriberCount returns the number of live subscriptions.
func (s *Signal[T]) SubscriberCount() int {
	s.subMu.RLock()
	defer s.subMu.RUnlock()
	return len(s.subs)
}

func (s *Signal[T]) unsubscribe(id uint64) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for i, existing := range s.subs {
		if existing.id == id {
			s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
			return
		}
	}
}

// notify copies the subscriber list before calling out so callbacks may
// subscribe or cancel without deadlocking.
func (s *Signal[T]) notify(old, value T) {
	s.subMu.RLock()
	subs := make([]*subscriber[T], len(s.subs))
	copy(subs, s.subs)
	s.subMu.RUnlock()

	for _, sub := range subs {
		sub.fn(old, value)
	}
}

func (s *Signal[T]) equals(a, b T) bool {
	if s.equal != nil {
		return s.equal(a, b)
	}
	return defaultEquals(a, b)
}

// defaultEquals uses == for basic types and reflect.DeepEqual for others.
func defaultEquals[T any](a, b T) bool {
	switch av := any(a).(type) {
	case int:
		bv, ok := any(b).(int)
		return ok && av == bv
	case int64:
		bv, ok := any(b).(int64)
		return ok && av == bv
	case float64:
		bv, ok := any(b).(float64)
		return ok && av == bv
	case string:
		bv, ok := any(b).(string)
		return ok && av == bv
	case bool:
		bv, ok := any(b).(bool)
		return ok && av == bv
	default:
		return reflect.DeepEqual(a, b)
	}
}
