//go:build linux

package hw

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3/onewire"
	"periph.io/x/conn/v3/onewire/onewirereg"
)

// DS18B20 command bytes.
const (
	cmdSkipROM        = 0xCC
	cmdConvertT       = 0x44
	cmdReadScratchpad = 0xBE
)

// conversionTime is the worst-case 12-bit conversion time per the datasheet.
const conversionTime = 750 * time.Millisecond

// DS18B20 reads a single DS18B20 temperature sensor on the 1-Wire bus.
// The device needs an explicit Convert T request before a value is valid,
// so each read returns the previous cycle's conversion and immediately
// kicks off the next one. With a seconds-scale loop the value is at most
// one iteration old, which is fine for a 32 °C trip threshold.
//
// Skip ROM addressing assumes exactly one device on the bus.
type DS18B20 struct {
	bus onewire.BusCloser
}

// NewDS18B20 opens the named 1-Wire bus ("" for the first available) and
// runs an initial conversion so the first ReadTemperature is valid.
func NewDS18B20(busName string) (*DS18B20, error) {
	bus, err := onewirereg.Open(busName)
	if err != nil {
		return nil, fmt.Errorf("open 1-wire bus: %w", err)
	}

	d := &DS18B20{bus: bus}
	if err := d.convert(); err != nil {
		bus.Close()
		return nil, fmt.Errorf("initial conversion: %w", err)
	}
	time.Sleep(conversionTime)
	return d, nil
}

// ReadTemperature returns the result of the previous conversion in °C and
// requests the next one.
func (d *DS18B20) ReadTemperature() (float64, error) {
	r := make([]byte, 9)
	if err := d.bus.Tx([]byte{cmdSkipROM, cmdReadScratchpad}, r, onewire.WeakPullup); err != nil {
		return 0, fmt.Errorf("read scratchpad: %w", err)
	}
	if crc8(r[:8]) != r[8] {
		return 0, fmt.Errorf("scratchpad crc mismatch")
	}

	raw := int16(r[1])<<8 | int16(r[0])
	temp := float64(raw) / 16.0

	if err := d.convert(); err != nil {
		// The value read is still good; surface the convert failure so the
		// caller can log it, next read will retry the conversion anyway.
		return temp, fmt.Errorf("request conversion: %w", err)
	}
	return temp, nil
}

// convert issues Convert T with strong pullup to support parasite power.
func (d *DS18B20) convert() error {
	return d.bus.Tx([]byte{cmdSkipROM, cmdConvertT}, nil, onewire.StrongPullup)
}

// Close releases the 1-Wire bus.
func (d *DS18B20) Close() error {
	return d.bus.Close()
}

// crc8 computes the Dallas/Maxim CRC-8 over data (polynomial 0x31 reflected).
func crc8(data []byte) byte {
	var crc byte
	for _, b := range data {
		crc ^= b
		for i := 0; i < 8; i++ {
			if crc&0x01 != 0 {
				crc = crc>>1 ^ 0x8C
			} else {
				crc >>= 1
			}
		}
	}
	return crc
}
