package sense

import (
	"errors"
	"testing"
	"time"

	"github.com/mhealy/pump-guard/internal/hw"
)

var testTime = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

func TestReadClampsLevel(t *testing.T) {
	tests := []struct {
		raw  float64
		want float64
	}{
		{-5, 0},
		{0, 0},
		{42.5, 42.5},
		{100, 100},
		{150, 100},
	}

	for _, tt := range tests {
		level := hw.NewFakeLevelSensor([]float64{tt.raw})
		temp := hw.NewFakeTemperatureSensor([]float64{20})
		r := NewReader(level, temp)

		m := r.Read(testTime)
		if m.WaterLevelPct != tt.want {
			t.Errorf("raw %.1f: got %.1f, want %.1f", tt.raw, m.WaterLevelPct, tt.want)
		}
	}
}

func TestReadPassesTemperatureRaw(t *testing.T) {
	level := hw.NewFakeLevelSensor([]float64{50})
	temp := hw.NewFakeTemperatureSensor([]float64{-12.5})
	r := NewReader(level, temp)

	m := r.Read(testTime)
	if m.TemperatureC != -12.5 {
		t.Errorf("temperature: got %.1f, want -12.5 (no clamping)", m.TemperatureC)
	}
}

func TestReadStampsTime(t *testing.T) {
	r := NewReader(hw.NewFakeLevelSensor([]float64{50}), hw.NewFakeTemperatureSensor([]float64{20}))

	m := r.Read(testTime)
	if !m.Time.Equal(testTime) {
		t.Errorf("time: got %v, want %v", m.Time, testTime)
	}
}

func TestReadKeepsLastGoodValueOnError(t *testing.T) {
	level := hw.NewFakeLevelSensor([]float64{60})
	temp := hw.NewFakeTemperatureSensor([]float64{25})
	r := NewReader(level, temp)

	// First read succeeds.
	m := r.Read(testTime)
	if m.WaterLevelPct != 60 || m.TemperatureC != 25 {
		t.Fatalf("first read: got %+v", m)
	}

	// Both sensors fail; the previous values must carry forward.
	level.ReadError = errors.New("spi fault")
	temp.ReadError = errors.New("bus fault")
	m = r.Read(testTime.Add(5 * time.Second))
	if m.WaterLevelPct != 60 {
		t.Errorf("level after error: got %.1f, want 60", m.WaterLevelPct)
	}
	if m.TemperatureC != 25 {
		t.Errorf("temperature after error: got %.1f, want 25", m.TemperatureC)
	}
}

func TestReadNeverFails(t *testing.T) {
	level := hw.NewFakeLevelSensor(nil) // reads always error
	temp := hw.NewFakeTemperatureSensor(nil)
	r := NewReader(level, temp)

	// No panic, zero-valued best effort.
	m := r.Read(testTime)
	if m.WaterLevelPct != 0 || m.TemperatureC != 0 {
		t.Errorf("expected zero best-effort measurement, got %+v", m)
	}
}

func TestReadIssuesConversionEveryIteration(t *testing.T) {
	level := hw.NewFakeLevelSensor([]float64{50})
	temp := hw.NewFakeTemperatureSensor([]float64{20})
	r := NewReader(level, temp)

	for i := 0; i < 4; i++ {
		r.Read(testTime.Add(time.Duration(i) * 5 * time.Second))
	}
	if temp.Reads != 4 {
		t.Errorf("expected a temperature read (with conversion) per iteration, got %d", temp.Reads)
	}
}
