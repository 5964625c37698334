package status

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/mhealy/pump-guard/internal/logic"
)

func testTracker() *Tracker {
	return NewTracker(time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC), Config{
		LoopMs:       5000,
		ReconnectMs:  5000,
		Broker:       "tcp://broker:1883",
		HTTPAddr:     ":8080",
		LevelLowPct:  10,
		LevelHighPct: 90,
		TempLimitC:   32,
	})
}

func TestTrackerUpdate(t *testing.T) {
	tr := testTracker()

	m := logic.Measurement{WaterLevelPct: 42, TemperatureC: 21.5}
	tr.Update(m, logic.FaultState{HighWater: true}, true)

	snap := tr.Snapshot()
	if snap.Measurement.WaterLevelPct != 42 {
		t.Errorf("level: got %.1f, want 42", snap.Measurement.WaterLevelPct)
	}
	if !snap.Faults.HighWater {
		t.Error("high water fault should be set")
	}
	if !snap.PumpOn {
		t.Error("pump should be on")
	}
	if snap.Counts.Iterations != 1 {
		t.Errorf("iterations: got %d, want 1", snap.Counts.Iterations)
	}
}

func TestTrackerCounts(t *testing.T) {
	tr := testTracker()

	tr.AddPublish(true)
	tr.AddPublish(false)
	tr.AddPublish(true)
	tr.AddReconnect()

	snap := tr.Snapshot()
	if snap.Counts.Publishes != 3 {
		t.Errorf("publishes: got %d, want 3", snap.Counts.Publishes)
	}
	if snap.Counts.PublishFailures != 1 {
		t.Errorf("publish failures: got %d, want 1", snap.Counts.PublishFailures)
	}
	if snap.Counts.Reconnects != 1 {
		t.Errorf("reconnects: got %d, want 1", snap.Counts.Reconnects)
	}
}

func TestTrackerSetMQTT(t *testing.T) {
	tr := testTracker()

	tr.SetMQTT("CONNECTED", true)
	snap := tr.Snapshot()
	if snap.MQTTState != "CONNECTED" || !snap.MQTTConnected {
		t.Errorf("mqtt: got %q/%v, want CONNECTED/true", snap.MQTTState, snap.MQTTConnected)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	tr := testTracker()
	snap := tr.Snapshot()

	tr.Update(logic.Measurement{WaterLevelPct: 99}, logic.FaultState{}, true)
	if snap.Measurement.WaterLevelPct == 99 {
		t.Error("snapshot should not observe later updates")
	}
}

func TestFormatJSON(t *testing.T) {
	tr := testTracker()
	tr.Update(logic.Measurement{WaterLevelPct: 42, TemperatureC: 21.46}, logic.FaultState{EmergencyStop: true}, false)
	tr.SetMQTT("CONNECTED", true)

	var parsed StatusJSON
	if err := json.Unmarshal(FormatJSON(tr.Snapshot()), &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if parsed.Status.Pump != "OFF" {
		t.Errorf("pump: got %q, want OFF", parsed.Status.Pump)
	}
	if parsed.Status.WaterLevelPct != 42 {
		t.Errorf("level: got %.1f, want 42", parsed.Status.WaterLevelPct)
	}
	if !parsed.Status.Faults.EmergencyStop {
		t.Error("emergency stop flag should be set")
	}
	if !parsed.Status.Faulted {
		t.Error("faulted should be true with any flag set")
	}
	if !parsed.Status.MQTT.Connected {
		t.Error("mqtt connected should be true")
	}
	if parsed.Status.MQTT.Broker != "tcp://broker:1883" {
		t.Errorf("broker: got %q", parsed.Status.MQTT.Broker)
	}
	if parsed.Status.Config.LevelHighPct != 90 {
		t.Errorf("level high: got %.1f, want 90", parsed.Status.Config.LevelHighPct)
	}
	if parsed.Status.StartTime != "2026-01-01T12:00:00Z" {
		t.Errorf("start time: got %q", parsed.Status.StartTime)
	}
}
