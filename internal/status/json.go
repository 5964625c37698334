package status

import (
	"encoding/json"
	"time"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Pump          string     `json:"pump"`
	WaterLevelPct float64    `json:"water_level_pct"`
	TemperatureC  float64    `json:"temperature_c"`
	Faults        FaultsJSON `json:"faults"`
	Faulted       bool       `json:"faulted"`
	UptimeSeconds int64      `json:"uptime_seconds"`
	StartTime     string     `json:"start_time"`
	Timestamp     string     `json:"timestamp"`
	MQTT          MQTTStatus `json:"mqtt"`
	Counts        CountsJSON `json:"counts"`
	Config        ConfigJSON `json:"config"`
}

// FaultsJSON is the JSON representation of the fault flags.
type FaultsJSON struct {
	HighWater       bool `json:"high_water"`
	EmergencyStop   bool `json:"emergency_stop"`
	HighTemperature bool `json:"high_temperature"`
	RemoteStop      bool `json:"remote_stop"`
}

// MQTTStatus reports the command channel connection state.
type MQTTStatus struct {
	State     string `json:"state"`
	Connected bool   `json:"connected"`
	Broker    string `json:"broker"`
}

// CountsJSON is the JSON representation of loop counts.
type CountsJSON struct {
	Iterations      int `json:"iterations"`
	Publishes       int `json:"publishes"`
	PublishFailures int `json:"publish_failures"`
	Reconnects      int `json:"reconnects"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	LoopMs       int64   `json:"loop_ms"`
	ReconnectMs  int64   `json:"reconnect_ms"`
	Broker       string  `json:"broker"`
	HTTPAddr     string  `json:"http_addr"`
	LevelLowPct  float64 `json:"level_low_pct"`
	LevelHighPct float64 `json:"level_high_pct"`
	TempLimitC   float64 `json:"temp_limit_c"`
}

// FormatJSON returns the JSON status for the web endpoint.
func FormatJSON(snap Snapshot) []byte {
	pump := "OFF"
	if snap.PumpOn {
		pump = "ON"
	}

	sj := StatusJSON{
		Status: StatusInner{
			Pump:          pump,
			WaterLevelPct: snap.Measurement.WaterLevelPct,
			TemperatureC:  snap.Measurement.TemperatureC,
			Faults: FaultsJSON{
				HighWater:       snap.Faults.HighWater,
				EmergencyStop:   snap.Faults.EmergencyStop,
				HighTemperature: snap.Faults.HighTemperature,
				RemoteStop:      snap.Faults.RemoteStop,
			},
			Faulted:       snap.Faults.Any(),
			UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
			StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
			Timestamp:     snap.Now.UTC().Format(time.RFC3339),
			MQTT: MQTTStatus{
				State:     snap.MQTTState,
				Connected: snap.MQTTConnected,
				Broker:    snap.Config.Broker,
			},
			Counts: CountsJSON{
				Iterations:      snap.Counts.Iterations,
				Publishes:       snap.Counts.Publishes,
				PublishFailures: snap.Counts.PublishFailures,
				Reconnects:      snap.Counts.Reconnects,
			},
			Config: ConfigJSON{
				LoopMs:       snap.Config.LoopMs,
				ReconnectMs:  snap.Config.ReconnectMs,
				Broker:       snap.Config.Broker,
				HTTPAddr:     snap.Config.HTTPAddr,
				LevelLowPct:  snap.Config.LevelLowPct,
				LevelHighPct: snap.Config.LevelHighPct,
				TempLimitC:   snap.Config.TempLimitC,
			},
		},
	}

	data, _ := json.MarshalIndent(sj, "", "  ")
	return data
}
