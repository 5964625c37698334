//go:build linux

package hw

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
	"periph.io/x/host/v3"
)

// Init initializes the periph host drivers (SPI, 1-Wire). Must be called
// once before opening the ADC or temperature sensor. Safe to call again.
func Init() error {
	_, err := host.Init()
	return err
}

// GPIO owns the daemon's digital lines on one chip: two interrupt inputs
// and two outputs.
type GPIO struct {
	chip      *gpiocdev.Chip
	highWater *gpiocdev.Line
	eStop     *gpiocdev.Line
	pump      *lineOutput
	fault     *lineOutput
}

// NewGPIO opens the chip and requests all four lines. The safety inputs use
// pull-up with falling-edge detection (idle high, active low); the handlers
// are invoked from gpiocdev's event goroutine and must be safe to call
// concurrently with the main loop. Outputs start low (pump off, no fault).
func NewGPIO(chipName string, pins Pins, onHighWater, onEmergencyStop func()) (*GPIO, error) {
	chip, err := gpiocdev.NewChip(chipName)
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	hwLine, err := chip.RequestLine(pins.HighWater,
		gpiocdev.AsInput,
		gpiocdev.WithPullUp,
		gpiocdev.WithFallingEdge,
		gpiocdev.WithEventHandler(func(gpiocdev.LineEvent) { onHighWater() }))
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request high-water pin %d: %w", pins.HighWater, err)
	}

	esLine, err := chip.RequestLine(pins.EmergencyStop,
		gpiocdev.AsInput,
		gpiocdev.WithPullUp,
		gpiocdev.WithFallingEdge,
		gpiocdev.WithEventHandler(func(gpiocdev.LineEvent) { onEmergencyStop() }))
	if err != nil {
		hwLine.Close()
		chip.Close()
		return nil, fmt.Errorf("request emergency-stop pin %d: %w", pins.EmergencyStop, err)
	}

	pumpLine, err := chip.RequestLine(pins.PumpRelay, gpiocdev.AsOutput(0))
	if err != nil {
		esLine.Close()
		hwLine.Close()
		chip.Close()
		return nil, fmt.Errorf("request pump relay pin %d: %w", pins.PumpRelay, err)
	}

	faultLine, err := chip.RequestLine(pins.FaultLED, gpiocdev.AsOutput(0))
	if err != nil {
		pumpLine.Close()
		esLine.Close()
		hwLine.Close()
		chip.Close()
		return nil, fmt.Errorf("request fault indicator pin %d: %w", pins.FaultLED, err)
	}

	return &GPIO{
		chip:      chip,
		highWater: hwLine,
		eStop:     esLine,
		pump:      &lineOutput{line: pumpLine},
		fault:     &lineOutput{line: faultLine},
	}, nil
}

// Pump returns the pump relay output.
func (g *GPIO) Pump() Output { return g.pump }

// Fault returns the fault indicator output.
func (g *GPIO) Fault() Output { return g.fault }

// Close releases the pump (drives the relay low) before closing all lines,
// so the pump never keeps running after the process exits.
func (g *GPIO) Close() error {
	var errs []error

	if g.pump != nil {
		if err := g.pump.Set(false); err != nil {
			errs = append(errs, fmt.Errorf("release pump relay: %w", err))
		}
		if err := g.pump.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close pump relay: %w", err))
		}
	}
	if g.fault != nil {
		if err := g.fault.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close fault indicator: %w", err))
		}
	}
	if g.highWater != nil {
		if err := g.highWater.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close high-water pin: %w", err))
		}
	}
	if g.eStop != nil {
		if err := g.eStop.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close emergency-stop pin: %w", err))
		}
	}
	if g.chip != nil {
		if err := g.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}

// lineOutput adapts a gpiocdev output line to the Output interface.
type lineOutput struct {
	line *gpiocdev.Line
}

func (o *lineOutput) Set(on bool) error {
	v := 0
	if on {
		v = 1
	}
	return o.line.SetValue(v)
}

func (o *lineOutput) Close() error {
	return o.line.Close()
}
