package mqtt

import (
	"errors"
	"fmt"

	"github.com/mhealy/pump-guard/internal/logic"
)

// TelemetryPublisher pushes the current measurements and fault flags through
// the broker as four independent messages. No buffering: a failed publish is
// simply superseded by next iteration's value.
type TelemetryPublisher struct {
	transport Transport
}

// NewTelemetryPublisher creates a publisher over the given transport.
func NewTelemetryPublisher(transport Transport) *TelemetryPublisher {
	return &TelemetryPublisher{transport: transport}
}

// Publish sends level, temperature, emergency-stop and high-water messages.
// All four are attempted even when one fails; the joined error is returned
// so the loop can log it, and the next iteration retries naturally.
func (p *TelemetryPublisher) Publish(m logic.Measurement, faults logic.FaultState) error {
	var errs []error

	if err := p.transport.Publish(TopicLevel, []byte(FormatLevel(m.WaterLevelPct))); err != nil {
		errs = append(errs, fmt.Errorf("level: %w", err))
	}
	if err := p.transport.Publish(TopicTemperature, []byte(FormatTemperature(m.TemperatureC))); err != nil {
		errs = append(errs, fmt.Errorf("temperature: %w", err))
	}
	if err := p.transport.Publish(TopicEmergencyStop, []byte(FormatFlag(faults.EmergencyStop))); err != nil {
		errs = append(errs, fmt.Errorf("emergency-stop: %w", err))
	}
	if err := p.transport.Publish(TopicHighWater, []byte(FormatFlag(faults.HighWater))); err != nil {
		errs = append(errs, fmt.Errorf("high-water: %w", err))
	}

	return errors.Join(errs...)
}
