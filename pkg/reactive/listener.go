package reactive

// Subscription is a cancellable registration returned by OnChange.
type Subscription interface {
	// Cancel stops further notifications. Calling it more than once is a
	// no-op.
	Cancel()

	// ID returns a unique identifier for this subscription.
	ID() uint64
}

// Subscriptions collects registrations so an owner can release them all at
// once during teardown.
type Subscriptions []Subscription

// Add appends s.
func (ss *Subscriptions) Add(s Subscription) {
	if s != nil {
		*ss = append(*ss, s)
	}
}

// CancelAll cancels every subscription and empties the set.
func (ss *Subscriptions) CancelAll() {
	for _, s := range *ss {
		s.Cancel()
	}
	*ss = nil
}
