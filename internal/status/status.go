// Package status provides a thread-safe status tracker for the pump-guard
// daemon. It is read by the HTTP handlers while the control loop writes it.
package status

import (
	"sync"
	"time"

	"github.com/mhealy/pump-guard/internal/logic"
)

// Config contains daemon configuration for display.
type Config struct {
	LoopMs       int64
	ReconnectMs  int64
	Broker       string
	HTTPAddr     string
	LevelLowPct  float64
	LevelHighPct float64
	TempLimitC   float64
}

// Counts tracks cumulative loop statistics since startup.
type Counts struct {
	Iterations      int
	Publishes       int
	PublishFailures int
	Reconnects      int
}

// Snapshot is a point-in-time view of daemon state.
// It is a value type — safe to use after the lock is released.
type Snapshot struct {
	Measurement   logic.Measurement
	Faults        logic.FaultState
	PumpOn        bool
	MQTTState     string
	MQTTConnected bool
	Counts        Counts
	StartTime     time.Time
	Now           time.Time
	Config        Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds mutable daemon state behind an RWMutex.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewTracker creates a Tracker with the given start time and config.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			StartTime: startTime,
			Config:    cfg,
		},
	}
}

// Update sets the per-iteration state. Called from the loop on every cycle.
func (t *Tracker) Update(m logic.Measurement, faults logic.FaultState, pumpOn bool) {
	t.mu.Lock()
	t.snap.Measurement = m
	t.snap.Faults = faults
	t.snap.PumpOn = pumpOn
	t.snap.Counts.Iterations++
	t.mu.Unlock()
}

// SetMQTT sets the command channel's connection state.
func (t *Tracker) SetMQTT(state string, connected bool) {
	t.mu.Lock()
	t.snap.MQTTState = state
	t.snap.MQTTConnected = connected
	t.mu.Unlock()
}

// AddPublish counts one telemetry publish attempt.
func (t *Tracker) AddPublish(ok bool) {
	t.mu.Lock()
	t.snap.Counts.Publishes++
	if !ok {
		t.snap.Counts.PublishFailures++
	}
	t.mu.Unlock()
}

// AddReconnect counts one reconnect attempt.
func (t *Tracker) AddReconnect() {
	t.mu.Lock()
	t.snap.Counts.Reconnects++
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the daemon state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = time.Now()
	return s
}
