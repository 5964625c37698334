// Package metrics exposes the controller's state as Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mhealy/pump-guard/internal/logic"
)

// Metrics holds the daemon's Prometheus collectors.
type Metrics struct {
	PumpOn          prometheus.Gauge
	WaterLevel      prometheus.Gauge
	Temperature     prometheus.Gauge
	Faults          *prometheus.GaugeVec
	PublishFailures prometheus.Counter
	Reconnects      prometheus.Counter
	InvalidCommands prometheus.Counter
}

// New creates and registers the collectors on the given registerer.
// Tests pass a private registry.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		PumpOn: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "pump_guard_pump_on",
			Help: "Whether the pump relay is driven (1) or released (0).",
		}),
		WaterLevel: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "pump_guard_water_level_pct",
			Help: "Last measured water level in percent.",
		}),
		Temperature: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "pump_guard_temperature_celsius",
			Help: "Last measured water temperature in °C.",
		}),
		Faults: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "pump_guard_fault",
			Help: "Fault flags (1 = tripped). Sticky flags clear only on restart.",
		}, []string{"fault"}),
		PublishFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pump_guard_publish_failures_total",
			Help: "Telemetry publishes that failed and were retried next iteration.",
		}),
		Reconnects: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pump_guard_reconnects_total",
			Help: "Broker reconnect attempts.",
		}),
		InvalidCommands: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pump_guard_invalid_commands_total",
			Help: "Inbound command payloads that were ignored as malformed.",
		}),
	}

	reg.MustRegister(m.PumpOn, m.WaterLevel, m.Temperature, m.Faults,
		m.PublishFailures, m.Reconnects, m.InvalidCommands)
	return m
}

// Observe records one iteration's state.
func (m *Metrics) Observe(meas logic.Measurement, faults logic.FaultState, pumpOn bool) {
	m.PumpOn.Set(boolGauge(pumpOn))
	m.WaterLevel.Set(meas.WaterLevelPct)
	m.Temperature.Set(meas.TemperatureC)
	m.Faults.WithLabelValues("high_water").Set(boolGauge(faults.HighWater))
	m.Faults.WithLabelValues("emergency_stop").Set(boolGauge(faults.EmergencyStop))
	m.Faults.WithLabelValues("high_temperature").Set(boolGauge(faults.HighTemperature))
	m.Faults.WithLabelValues("remote_stop").Set(boolGauge(faults.RemoteStop))
}

func boolGauge(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
