package mqtt

// FakeTransport records published messages and lets tests script connection
// behavior and deliver inbound messages to subscription handlers.
type FakeTransport struct {
	// Connected controls the return value of IsConnected.
	Connected bool

	// ConnectErrs are returned by successive Connect calls; once exhausted,
	// Connect succeeds and sets Connected.
	ConnectErrs []error

	// ConnectCalls counts Connect attempts.
	ConnectCalls int

	// SubscribeError, if set, will be returned by Subscribe.
	SubscribeError error

	// PublishError, if set, will be returned by Publish.
	PublishError error

	// Published contains every message passed to Publish.
	Published []Message

	// Subscriptions maps topics to their registered handlers.
	Subscriptions map[string]func(payload []byte)

	// Closed tracks if Close was called.
	Closed bool
}

// Message is one recorded publish.
type Message struct {
	Topic   string
	Payload string
}

// NewFakeTransport creates a FakeTransport for testing.
func NewFakeTransport() *FakeTransport {
	return &FakeTransport{Subscriptions: make(map[string]func([]byte))}
}

// Connect consumes the next scripted error, succeeding once they run out.
func (f *FakeTransport) Connect() error {
	f.ConnectCalls++
	if len(f.ConnectErrs) > 0 {
		err := f.ConnectErrs[0]
		f.ConnectErrs = f.ConnectErrs[1:]
		if err != nil {
			return err
		}
	}
	f.Connected = true
	return nil
}

// IsConnected reports the scripted connection state.
func (f *FakeTransport) IsConnected() bool {
	return f.Connected
}

// Subscribe records the handler for later delivery via Deliver.
func (f *FakeTransport) Subscribe(topic string, handler func(payload []byte)) error {
	if f.SubscribeError != nil {
		return f.SubscribeError
	}
	f.Subscriptions[topic] = handler
	return nil
}

// Publish records the message.
func (f *FakeTransport) Publish(topic string, payload []byte) error {
	if f.PublishError != nil {
		return f.PublishError
	}
	f.Published = append(f.Published, Message{Topic: topic, Payload: string(payload)})
	return nil
}

// Close marks the transport as closed and disconnected.
func (f *FakeTransport) Close() error {
	f.Closed = true
	f.Connected = false
	return nil
}

// Deliver invokes the handler subscribed to topic, simulating an inbound
// message from the broker. Returns false if nothing is subscribed.
func (f *FakeTransport) Deliver(topic string, payload string) bool {
	handler, ok := f.Subscriptions[topic]
	if !ok {
		return false
	}
	handler([]byte(payload))
	return true
}

// PayloadsFor returns the payloads published to one topic, in order.
func (f *FakeTransport) PayloadsFor(topic string) []string {
	var out []string
	for _, m := range f.Published {
		if m.Topic == topic {
			out = append(out, m.Payload)
		}
	}
	return out
}
