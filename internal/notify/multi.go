package notify

// Multi fans an event out to several notifiers in order.
type Multi []Notifier

// Notify delivers the event to every notifier.
func (m Multi) Notify(e Event) {
	for _, n := range m {
		n.Notify(e)
	}
}
