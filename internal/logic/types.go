// Package logic contains pure business logic for pump fault management.
// This package has NO external dependencies (no GPIO, MQTT, OS, or time.Sleep).
// Time is always injectable via time.Time parameters.
package logic

import "time"

// Threshold constants for fault evaluation and pump actuation.
const (
	// HighTempThresholdC trips the sticky high-temperature fault.
	HighTempThresholdC = 32.0

	// LevelHighPct is the hard ceiling: above it the pump never runs.
	LevelHighPct = 90.0

	// LevelLowPct is the refill trigger: below it the pump starts
	// (absent faults). Between the two thresholds the previous
	// decision is held to avoid relay chatter.
	LevelLowPct = 10.0
)

// Measurement is one sample of the sensed environment.
// Produced once per loop iteration; immutable after creation.
type Measurement struct {
	// WaterLevelPct is the tank level in percent, clamped to [0, 100].
	WaterLevelPct float64
	// TemperatureC is the raw temperature reading in °C.
	TemperatureC float64
	// Time is the loop's timestamp for this sample.
	Time time.Time
}

// FaultState holds the four fault flags. HighWater, EmergencyStop and
// HighTemperature are sticky: once true they stay true until process
// restart. RemoteStop tracks the latest remote command exactly.
type FaultState struct {
	HighWater       bool
	EmergencyStop   bool
	HighTemperature bool
	RemoteStop      bool
}

// Any reports whether any fault flag is set.
func (f FaultState) Any() bool {
	return f.HighWater || f.EmergencyStop || f.HighTemperature || f.RemoteStop
}

// Decision is the pump actuation decision for one iteration.
// Derived fresh each cycle; never persisted.
type Decision struct {
	ShouldRun bool
}
