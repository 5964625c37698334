package mqtt

import (
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
)

// PahoTransport is a Transport backed by an MQTT broker.
type PahoTransport struct {
	client paho.Client
}

// NewPahoTransport creates a transport for the given broker. It does not
// connect; the command channel drives Connect through its state machine.
// Auto-reconnect and connect-retry are deliberately off for the same reason.
func NewPahoTransport(broker string) *PahoTransport {
	opts := paho.NewClientOptions().
		AddBroker(broker).
		SetClientID("pump-guard").
		SetAutoReconnect(false).
		SetConnectRetry(false).
		SetKeepAlive(30 * time.Second)

	return &PahoTransport{client: paho.NewClient(opts)}
}

// Connect performs the broker handshake.
func (t *PahoTransport) Connect() error {
	token := t.client.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		return fmt.Errorf("connection timeout")
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("connect to broker: %w", err)
	}
	return nil
}

// IsConnected reports whether the broker connection is up.
func (t *PahoTransport) IsConnected() bool {
	return t.client.IsConnected()
}

// Subscribe registers a handler at QoS 1 so a stop command is not silently
// dropped on a flaky link. The handler runs on paho's router goroutine.
func (t *PahoTransport) Subscribe(topic string, handler func(payload []byte)) error {
	token := t.client.Subscribe(topic, 1, func(_ paho.Client, msg paho.Message) {
		handler(msg.Payload())
	})
	if !token.WaitTimeout(5 * time.Second) {
		return fmt.Errorf("subscribe timeout")
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("subscribe %s: %w", topic, err)
	}
	return nil
}

// Publish sends one message at QoS 0, not retained. Telemetry is
// most-recent-value: a lost sample is replaced five seconds later.
func (t *PahoTransport) Publish(topic string, payload []byte) error {
	token := t.client.Publish(topic, 0, false, payload)
	if !token.WaitTimeout(5 * time.Second) {
		return fmt.Errorf("publish timeout")
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	return nil
}

// Close disconnects from the broker.
func (t *PahoTransport) Close() error {
	t.client.Disconnect(1000) // 1 second timeout
	return nil
}
