//go:build linux

package hw

import (
	"fmt"

	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
)

// MCP3008 reads the water-level sender through one channel of an MCP3008
// 10-bit ADC on the SPI bus. The sender is scaled so full code (1023)
// means a full tank; the raw count maps linearly to 0–100%.
type MCP3008 struct {
	port    spi.PortCloser
	conn    spi.Conn
	channel int
}

// NewMCP3008 opens the named SPI port ("" for the first available) and
// prepares single-ended reads on the given channel (0–7).
func NewMCP3008(portName string, channel int) (*MCP3008, error) {
	if channel < 0 || channel > 7 {
		return nil, fmt.Errorf("adc channel %d out of range 0-7", channel)
	}

	port, err := spireg.Open(portName)
	if err != nil {
		return nil, fmt.Errorf("open spi port: %w", err)
	}

	conn, err := port.Connect(physic.MegaHertz, spi.Mode0, 8)
	if err != nil {
		port.Close()
		return nil, fmt.Errorf("connect spi: %w", err)
	}

	return &MCP3008{port: port, conn: conn, channel: channel}, nil
}

// ReadLevel performs one single-ended conversion and returns the level in
// percent. Values are not clamped here; the sensor reader handles range.
func (a *MCP3008) ReadLevel() (float64, error) {
	// Start bit, single-ended mode + channel, one clocking byte.
	w := []byte{0x01, byte(0x80 | a.channel<<4), 0x00}
	r := make([]byte, 3)
	if err := a.conn.Tx(w, r); err != nil {
		return 0, fmt.Errorf("adc read: %w", err)
	}

	raw := int(r[1]&0x03)<<8 | int(r[2])
	return float64(raw) * 100.0 / 1023.0, nil
}

// Close releases the SPI port.
func (a *MCP3008) Close() error {
	return a.port.Close()
}
