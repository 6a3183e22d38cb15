// Package control holds the ramp-control core: the profile model, the
// setpoint interpolation, and the single-threaded polling loop that
// drives the heating element phase by phase. Hardware access is behind
// the capability interfaces below so the core runs unchanged against
// the simulated kiln or a real plant.
package control

import "time"

// TemperatureSource reads the current kiln temperature in °C. Readings
// are assumed valid; a sensor fault channel is not modeled here.
type TemperatureSource interface {
	ReadTemperature() float64
}

// HeaterSink drives the heating element. The command is a level:
// repeating the same value is idempotent.
type HeaterSink interface {
	SetHeater(on bool)
}

// AbortSource is the level-triggered abort signal. It is polled every
// loop iteration; as long as it stays asserted any in-progress phase
// will observe it.
type AbortSource interface {
	AbortRequested() bool
}

// Clock supplies monotonic-enough time for tick scheduling.
type Clock interface {
	Now() time.Time
}

// ConfigSource produces the raw profile document as two parallel
// sequences paired by index. On any read or parse failure it returns
// empty sequences, which build into a valid empty profile.
type ConfigSource interface {
	ReadProfile() (times, temps []uint16)
}

// SystemClock is the production Clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }
