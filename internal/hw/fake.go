package hw

import "errors"

// FakeLevelSensor is a test double that returns scripted level readings.
type FakeLevelSensor struct {
	// Levels contains scripted readings in percent. Each ReadLevel call
	// consumes the next one; the last repeats once exhausted.
	Levels []float64

	// ReadError, if set, will be returned by ReadLevel.
	ReadError error

	// Closed tracks if Close was called.
	Closed bool

	index int
}

// NewFakeLevelSensor creates a FakeLevelSensor with the given readings.
func NewFakeLevelSensor(levels []float64) *FakeLevelSensor {
	return &FakeLevelSensor{Levels: levels}
}

// ReadLevel returns the next scripted reading.
func (f *FakeLevelSensor) ReadLevel() (float64, error) {
	if f.ReadError != nil {
		return 0, f.ReadError
	}
	if len(f.Levels) == 0 {
		return 0, errors.New("no levels configured")
	}
	v := f.Levels[f.index]
	if f.index < len(f.Levels)-1 {
		f.index++
	}
	return v, nil
}

// Close marks the sensor as closed.
func (f *FakeLevelSensor) Close() error {
	f.Closed = true
	return nil
}

// FakeTemperatureSensor is a test double that returns scripted temperatures.
type FakeTemperatureSensor struct {
	// Temps contains scripted readings in °C. The last repeats once exhausted.
	Temps []float64

	// ReadError, if set, will be returned by ReadTemperature.
	ReadError error

	// Reads counts ReadTemperature calls, including failed ones. Each call
	// stands in for one conversion request on the real sensor.
	Reads int

	// Closed tracks if Close was called.
	Closed bool

	index int
}

// NewFakeTemperatureSensor creates a FakeTemperatureSensor with the given readings.
func NewFakeTemperatureSensor(temps []float64) *FakeTemperatureSensor {
	return &FakeTemperatureSensor{Temps: temps}
}

// ReadTemperature returns the next scripted reading.
func (f *FakeTemperatureSensor) ReadTemperature() (float64, error) {
	f.Reads++
	if f.ReadError != nil {
		return 0, f.ReadError
	}
	if len(f.Temps) == 0 {
		return 0, errors.New("no temperatures configured")
	}
	v := f.Temps[f.index]
	if f.index < len(f.Temps)-1 {
		f.index++
	}
	return v, nil
}

// Close marks the sensor as closed.
func (f *FakeTemperatureSensor) Close() error {
	f.Closed = true
	return nil
}

// FakeOutput records levels driven onto a digital output.
type FakeOutput struct {
	// History contains every level passed to Set, in order.
	History []bool

	// On is the most recent level.
	On bool

	// SetError, if set, will be returned by Set.
	SetError error

	// Closed tracks if Close was called.
	Closed bool
}

// NewFakeOutput creates a FakeOutput.
func NewFakeOutput() *FakeOutput {
	return &FakeOutput{}
}

// Set records the driven level.
func (f *FakeOutput) Set(on bool) error {
	if f.SetError != nil {
		return f.SetError
	}
	f.History = append(f.History, on)
	f.On = on
	return nil
}

// Close marks the output as closed.
func (f *FakeOutput) Close() error {
	f.Closed = true
	return nil
}
