package logic

// Evaluator folds sensor readings, latched safety interrupts and the remote
// command into the persistent FaultState. It owns the FaultState exclusively;
// consumers only ever see copies.
type Evaluator struct {
	// consume-and-clear functions for the two safety latches.
	// Kept as functions so this package stays free of hardware imports.
	consumeHighWater     func() bool
	consumeEmergencyStop func() bool

	state FaultState
}

// NewEvaluator creates an Evaluator. The two functions must atomically
// return-and-clear their latch flag; they are called exactly once per
// Evaluate so no edge is ever dropped between cycles.
func NewEvaluator(consumeHighWater, consumeEmergencyStop func() bool) *Evaluator {
	return &Evaluator{
		consumeHighWater:     consumeHighWater,
		consumeEmergencyStop: consumeEmergencyStop,
	}
}

// Evaluate runs one fault evaluation cycle and returns the updated state.
// HighWater, EmergencyStop and HighTemperature latch on and never clear;
// an external reset (process restart) is the only way back. RemoteStop
// mirrors the latest remote command and may toggle freely.
func (e *Evaluator) Evaluate(m Measurement, remoteStop bool) FaultState {
	if e.consumeHighWater() {
		e.state.HighWater = true
	}
	if e.consumeEmergencyStop() {
		e.state.EmergencyStop = true
	}
	if m.TemperatureC > HighTempThresholdC {
		e.state.HighTemperature = true
	}
	e.state.RemoteStop = remoteStop
	return e.state
}

// State returns the current fault state without consuming latches.
func (e *Evaluator) State() FaultState {
	return e.state
}
