// Package mqtt provides the pub/sub side of the pump controller: a Transport
// abstraction over the broker connection, the remote-command channel with its
// explicit reconnect state machine, and the telemetry publisher.
package mqtt

import "strconv"

// Inbound topic: remote stop command, payload "1" (stop) or "0" (clear).
const TopicCommand = "pump/cmd/stop"

// Outbound topics. Independent messages, most-recent-value semantics only;
// nothing is retained or queued.
const (
	TopicLevel         = "pump/tele/level"       // decimal integer percent
	TopicTemperature   = "pump/tele/temperature" // fixed 2-decimal °C
	TopicEmergencyStop = "pump/tele/estop"       // "Yes" / "No"
	TopicHighWater     = "pump/tele/highwater"   // "Yes" / "No"
)

// Transport is the broker connection. The real implementation is paho with
// automatic reconnection disabled: the CommandChannel's state machine owns
// recovery so the backoff policy stays visible and testable.
type Transport interface {
	// Connect performs the broker handshake. Returns error on failure.
	Connect() error

	// IsConnected reports whether the connection is currently up.
	IsConnected() bool

	// Subscribe registers a handler for a topic. The handler is invoked
	// from the transport's own goroutine.
	Subscribe(topic string, handler func(payload []byte)) error

	// Publish sends one message. Returns error if the send fails;
	// failures must not crash the process.
	Publish(topic string, payload []byte) error

	// Close disconnects from the broker.
	Close() error
}

// FormatLevel renders a water level as a decimal integer percent string.
func FormatLevel(pct float64) string {
	return strconv.Itoa(int(pct + 0.5))
}

// FormatTemperature renders a temperature with two decimal places.
func FormatTemperature(c float64) string {
	return strconv.FormatFloat(c, 'f', 2, 64)
}

// FormatFlag renders a fault flag as "Yes" or "No".
func FormatFlag(set bool) string {
	if set {
		return "Yes"
	}
	return "No"
}
