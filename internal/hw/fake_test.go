package hw

import (
	"errors"
	"testing"
)

func TestFakeLevelSensorScriptedReads(t *testing.T) {
	f := NewFakeLevelSensor([]float64{10, 20, 30})

	for i, want := range []float64{10, 20, 30} {
		got, err := f.ReadLevel()
		if err != nil {
			t.Fatalf("read %d: unexpected error: %v", i, err)
		}
		if got != want {
			t.Errorf("read %d: got %.1f, want %.1f", i, got, want)
		}
	}

	// Exhausted: last reading repeats.
	got, err := f.ReadLevel()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 30 {
		t.Errorf("exhausted read: got %.1f, want 30", got)
	}
}

func TestFakeLevelSensorNoSamples(t *testing.T) {
	f := NewFakeLevelSensor(nil)
	if _, err := f.ReadLevel(); err == nil {
		t.Error("expected error with no levels configured")
	}
}

func TestFakeLevelSensorError(t *testing.T) {
	f := NewFakeLevelSensor([]float64{10})
	f.ReadError = errors.New("bus fault")

	if _, err := f.ReadLevel(); err == nil {
		t.Error("expected configured error")
	}
}

func TestFakeTemperatureSensorCountsReads(t *testing.T) {
	f := NewFakeTemperatureSensor([]float64{20.5})

	for i := 0; i < 3; i++ {
		if _, err := f.ReadTemperature(); err != nil {
			t.Fatalf("read %d: unexpected error: %v", i, err)
		}
	}
	if f.Reads != 3 {
		t.Errorf("expected 3 reads recorded, got %d", f.Reads)
	}
}

func TestFakeOutputRecordsHistory(t *testing.T) {
	f := NewFakeOutput()

	if err := f.Set(true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.Set(true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.Set(false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if f.On {
		t.Error("On should track the last level (false)")
	}

	want := []bool{true, true, false}
	if len(f.History) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(f.History))
	}
	for i := range want {
		if f.History[i] != want[i] {
			t.Errorf("history[%d]: got %v, want %v", i, f.History[i], want[i])
		}
	}
}

func TestFakeOutputClose(t *testing.T) {
	f := NewFakeOutput()

	if f.Closed {
		t.Error("should not be closed initially")
	}
	if err := f.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !f.Closed {
		t.Error("should be closed after Close")
	}
}
