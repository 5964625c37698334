// Package sense normalizes raw hardware signals into typed measurements.
package sense

import (
	"log"
	"time"

	"github.com/mhealy/pump-guard/internal/hw"
	"github.com/mhealy/pump-guard/internal/logic"
)

// Reader produces one Measurement per loop iteration. It never fails:
// a hardware read error is logged and the last good value is carried
// forward, so the fault evaluator always has something to work with.
type Reader struct {
	level hw.LevelSensor
	temp  hw.TemperatureSensor

	lastLevel float64
	lastTemp  float64
}

// NewReader creates a Reader over the given sensors.
func NewReader(level hw.LevelSensor, temp hw.TemperatureSensor) *Reader {
	return &Reader{level: level, temp: temp}
}

// Read samples both sensors. The level is clamped to [0, 100]; the
// temperature is passed through raw. Reading the temperature also issues
// the sensor's conversion request for the next cycle.
func (r *Reader) Read(now time.Time) logic.Measurement {
	if v, err := r.level.ReadLevel(); err != nil {
		log.Printf("level read error: %v", err)
	} else {
		r.lastLevel = clamp(v, 0, 100)
	}

	if v, err := r.temp.ReadTemperature(); err != nil {
		log.Printf("temperature read error: %v", err)
	} else {
		r.lastTemp = v
	}

	return logic.Measurement{
		WaterLevelPct: r.lastLevel,
		TemperatureC:  r.lastTemp,
		Time:          now,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
