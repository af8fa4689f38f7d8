package eventdispatch

// Subscription declares one listener binding.
type Subscription struct {
	Event    string
	Listener *Listener
	Priority int
}

// On builds a Subscription. Priority defaults to 0; only the first extra
// value is used.
func On(eventName string, l *Listener, priority ...int) Subscription {
	s := Subscription{Event: eventName, Listener: l}
	if len(priority) > 0 {
		s.Priority = priority[0]
	}
	return s
}

// Subscriber declares a batch of listener bindings.
//
// SubscribedEvents must be free of side effects and return the same
// *Listener values on every call, since RemoveSubscriber matches on them.
// Bindings are registered in slice order, which decides ties between
// equal priorities. Create the listeners once, typically in the
// subscriber's constructor:
//
//	type Mailer struct {
//	    onPlaced *eventdispatch.Listener
//	}
//
//	func NewMailer() *Mailer {
//	    m := &Mailer{}
//	    m.onPlaced = eventdispatch.NewListener("mailer.placed", m.sendConfirmation)
//	    return m
//	}
//
//	func (m *Mailer) SubscribedEvents() []eventdispatch.Subscription {
//	    return []eventdispatch.Subscription{
//	        eventdispatch.On("order.placed", m.onPlaced, -10),
//	    }
//	}
type Subscriber interface {
	SubscribedEvents() []Subscription
}
