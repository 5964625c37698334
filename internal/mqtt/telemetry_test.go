package mqtt

import (
	"errors"
	"testing"
	"time"

	"github.com/mhealy/pump-guard/internal/logic"
)

func measurement(level, temp float64) logic.Measurement {
	return logic.Measurement{
		WaterLevelPct: level,
		TemperatureC:  temp,
		Time:          time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestPublishSendsFourMessages(t *testing.T) {
	f := NewFakeTransport()
	p := NewTelemetryPublisher(f)

	err := p.Publish(measurement(42.4, 21.456), logic.FaultState{EmergencyStop: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []Message{
		{Topic: TopicLevel, Payload: "42"},
		{Topic: TopicTemperature, Payload: "21.46"},
		{Topic: TopicEmergencyStop, Payload: "Yes"},
		{Topic: TopicHighWater, Payload: "No"},
	}

	if len(f.Published) != len(want) {
		t.Fatalf("expected %d messages, got %d", len(want), len(f.Published))
	}
	for i, w := range want {
		if f.Published[i] != w {
			t.Errorf("message %d: got %+v, want %+v", i, f.Published[i], w)
		}
	}
}

func TestPublishHighWaterFlag(t *testing.T) {
	f := NewFakeTransport()
	p := NewTelemetryPublisher(f)

	if err := p.Publish(measurement(95, 20), logic.FaultState{HighWater: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := f.PayloadsFor(TopicHighWater)
	if len(got) != 1 || got[0] != "Yes" {
		t.Errorf("high-water payload: got %v, want [Yes]", got)
	}
	got = f.PayloadsFor(TopicEmergencyStop)
	if len(got) != 1 || got[0] != "No" {
		t.Errorf("emergency-stop payload: got %v, want [No]", got)
	}
}

func TestPublishFailureReturnsError(t *testing.T) {
	f := NewFakeTransport()
	f.PublishError = errors.New("broker gone")
	p := NewTelemetryPublisher(f)

	err := p.Publish(measurement(50, 20), logic.FaultState{})
	if err == nil {
		t.Fatal("expected error")
	}
	// Nothing queued for later: most-recent-value semantics only.
	if len(f.Published) != 0 {
		t.Errorf("expected no recorded messages, got %d", len(f.Published))
	}
}
