package core

// Transport delivers outbound commands to the chat backend. Implementations
// must preserve the order of Send calls made from one instance's turn.
type Transport interface {
	// Send writes one outbound command to the wire.
	Send(cmd Command) error
}

// LineSource is implemented by transports that also produce inbound raw
// protocol lines. The channel closes when the underlying stream ends.
type LineSource interface {
	Lines() <-chan string
}

// Classifier turns a raw protocol line into a typed Event. ok reports
// whether the line was recognized; unrecognized lines are dropped before
// they reach the core.
type Classifier interface {
	Classify(raw string) (ev Event, ok bool)
}

// ClassifierFunc adapts a plain function to the Classifier interface.
type ClassifierFunc func(raw string) (Event, bool)

// Classify implements Classifier.
func (f ClassifierFunc) Classify(raw string) (Event, bool) { return f(raw) }
