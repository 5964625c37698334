package logic

// Controller decides whether the pump should run. It carries the previous
// decision across iterations so the band between the low and high thresholds
// acts as hysteresis: no actuation change while the level stays inside it.
type Controller struct {
	lowPct    float64
	highPct   float64
	shouldRun bool
}

// NewController creates a Controller with the given thresholds.
// The pump starts off; a cold start always begins idle.
func NewController(lowPct, highPct float64) *Controller {
	return &Controller{lowPct: lowPct, highPct: highPct}
}

// Decide computes the pump decision for this iteration.
// Faults and overfill always win: any fault flag, or a level above the high
// threshold, forces the pump off. A level below the low threshold with no
// fault turns it on. Anywhere in between, the previous decision stands.
func (c *Controller) Decide(m Measurement, faults FaultState) Decision {
	switch {
	case faults.Any() || m.WaterLevelPct > c.highPct:
		c.shouldRun = false
	case m.WaterLevelPct < c.lowPct:
		c.shouldRun = true
	}
	return Decision{ShouldRun: c.shouldRun}
}

// ShouldRun returns the last decision without recomputing it.
func (c *Controller) ShouldRun() bool {
	return c.shouldRun
}
