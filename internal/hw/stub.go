//go:build !linux

package hw

import "errors"

var errUnsupported = errors.New("hw: not supported on this platform (requires Linux)")

// Init is a no-op on non-Linux platforms.
func Init() error {
	return nil
}

// GPIO is not available on non-Linux platforms.
type GPIO struct{}

// NewGPIO returns an error on non-Linux platforms.
func NewGPIO(chipName string, pins Pins, onHighWater, onEmergencyStop func()) (*GPIO, error) {
	return nil, errUnsupported
}

// Pump is not implemented on non-Linux platforms.
func (g *GPIO) Pump() Output { return nil }

// Fault is not implemented on non-Linux platforms.
func (g *GPIO) Fault() Output { return nil }

// Close is not implemented on non-Linux platforms.
func (g *GPIO) Close() error { return nil }

// MCP3008 is not available on non-Linux platforms.
type MCP3008 struct{}

// NewMCP3008 returns an error on non-Linux platforms.
func NewMCP3008(portName string, channel int) (*MCP3008, error) {
	return nil, errUnsupported
}

// ReadLevel is not implemented on non-Linux platforms.
func (a *MCP3008) ReadLevel() (float64, error) { return 0, errUnsupported }

// Close is not implemented on non-Linux platforms.
func (a *MCP3008) Close() error { return nil }

// DS18B20 is not available on non-Linux platforms.
type DS18B20 struct{}

// NewDS18B20 returns an error on non-Linux platforms.
func NewDS18B20(busName string) (*DS18B20, error) {
	return nil, errUnsupported
}

// ReadTemperature is not implemented on non-Linux platforms.
func (d *DS18B20) ReadTemperature() (float64, error) { return 0, errUnsupported }

// Close is not implemented on non-Linux platforms.
func (d *DS18B20) Close() error { return nil }
