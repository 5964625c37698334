package mqtt

import (
	"log"
	"sync/atomic"
)

// ConnState is the command channel's connection state.
type ConnState int

const (
	StateDisconnected ConnState = iota
	StateConnecting
	StateConnected
)

// String returns the state name for logs and status output.
func (s ConnState) String() string {
	switch s {
	case StateConnecting:
		return "CONNECTING"
	case StateConnected:
		return "CONNECTED"
	default:
		return "DISCONNECTED"
	}
}

// CommandChannel receives the remote stop command and owns reconnection.
//
// The transport delivers inbound messages on its own goroutine, so the last
// decoded command is cached in an atomic; Poll only has to verify the
// connection. Between two polls the most recently received value wins.
type CommandChannel struct {
	transport Transport
	state     ConnState
	stop      atomic.Bool

	// OnInvalidCommand, if set, is called for each ignored payload.
	// Used to feed the invalid-command metric.
	OnInvalidCommand func()
}

// NewCommandChannel creates a channel over the given transport. It starts
// disconnected; the control loop drives Reconnect.
func NewCommandChannel(transport Transport) *CommandChannel {
	return &CommandChannel{transport: transport}
}

// Poll drives per-iteration connection bookkeeping: if the transport dropped
// since the last iteration, the channel falls back to DISCONNECTED so the
// loop reconnects before trusting the command state.
func (c *CommandChannel) Poll() {
	if !c.transport.IsConnected() {
		c.state = StateDisconnected
	}
}

// Connected reports whether the channel considers itself connected.
func (c *CommandChannel) Connected() bool {
	return c.state == StateConnected && c.transport.IsConnected()
}

// State returns the connection state for status output.
func (c *CommandChannel) State() ConnState {
	return c.state
}

// StopRequested returns the latest received stop command. Non-sticky:
// it tracks the last payload exactly.
func (c *CommandChannel) StopRequested() bool {
	return c.stop.Load()
}

// Reconnect runs the DISCONNECTED → CONNECTING → CONNECTED handshake:
// connect, (re)subscribe to the command topic, announce stop=false.
// On any failure the channel returns to DISCONNECTED and the caller backs
// off before retrying; the backoff may block the loop, which is acceptable
// because the safety latches are serviced by their own goroutine.
func (c *CommandChannel) Reconnect() error {
	c.state = StateConnecting

	if err := c.transport.Connect(); err != nil {
		c.state = StateDisconnected
		return err
	}
	if err := c.transport.Subscribe(TopicCommand, c.handleCommand); err != nil {
		c.transport.Close()
		c.state = StateDisconnected
		return err
	}
	// Announce a cleared stop command so a broker-side stale "1" from a
	// previous session does not hold the pump off forever.
	c.stop.Store(false)
	if err := c.transport.Publish(TopicCommand, []byte("0")); err != nil {
		c.transport.Close()
		c.state = StateDisconnected
		return err
	}

	c.state = StateConnected
	return nil
}

// handleCommand decodes an inbound command payload. Runs on the transport's
// goroutine; anything other than "1" or "0" is logged and ignored.
func (c *CommandChannel) handleCommand(payload []byte) {
	switch string(payload) {
	case "1":
		c.stop.Store(true)
	case "0":
		c.stop.Store(false)
	default:
		log.Printf("ignoring malformed command payload %q", payload)
		if c.OnInvalidCommand != nil {
			c.OnInvalidCommand()
		}
	}
}
