// Package hw provides hardware access with abstraction for testing.
// Digital I/O uses the Linux GPIO character device; the water-level ADC and
// temperature sensor use periph.io SPI and 1-Wire buses. Fake implementations
// allow testing without hardware.
package hw

// LevelSensor reads the water level as a percentage.
type LevelSensor interface {
	// ReadLevel returns the raw level in percent. Callers clamp to [0, 100].
	ReadLevel() (float64, error)

	// Close releases the underlying bus.
	Close() error
}

// TemperatureSensor reads the water temperature.
type TemperatureSensor interface {
	// ReadTemperature returns the temperature in °C. Each call also issues
	// the sensor's conversion request for the next cycle.
	ReadTemperature() (float64, error)

	// Close releases the underlying bus.
	Close() error
}

// Output drives a digital output line.
type Output interface {
	// Set drives the line high (true) or low (false).
	// Idempotent; safe to call every iteration.
	Set(on bool) error

	// Close releases the line.
	Close() error
}

// Pins configures the GPIO line offsets (BCM numbering).
type Pins struct {
	HighWater     int // input, pull-up, falling edge = float tripped
	EmergencyStop int // input, pull-up, falling edge = button pressed
	PumpRelay     int // output, high = pump running
	FaultLED      int // output, high = faulted
}

// Default pin assignments (BCM numbering).
const (
	DefaultPinHighWater     = 17
	DefaultPinEmergencyStop = 27
	DefaultPinPumpRelay     = 22
	DefaultPinFaultLED      = 23
)

// DefaultChip is the GPIO character device name on a Raspberry Pi.
const DefaultChip = "gpiochip0"
