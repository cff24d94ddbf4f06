package element

// finishSubscriber is one OnFinish registration.
type finishSubscriber struct {
	id   uint64
	fn   func(*View)
	view *View
}

// Cancel implements reactive.Subscription.
func (s *finishSubscriber) Cancel() {
	subs := s.view.finish
	for i, existing := range subs {
		if existing == s {
			s.view.finish = append(subs[:i:i], subs[i+1:]...)
			return
		}
	}
}

// ID implements reactive.Subscription.
func (s *finishSubscriber) ID() uint64 {
	return s.id
}
