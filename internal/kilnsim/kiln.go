// Package kilnsim is the host-side stand-in for the kiln hardware: a
// first-order thermal model in place of the thermocouple and relay, and
// a panel in place of the start/abort button. The control core only
// sees the capability interfaces, so swapping in real drivers later
// does not touch the loop.
package kilnsim

import (
	"sync"

	"controlling_kiln/internal/control"
)

// Default plant parameters.
const (
	DefaultAmbientC        = 25.0
	DefaultHeatRateCPerSec = 3.0
	DefaultCoolRateCPerSec = 0.5
)

// Config tunes the thermal model.
type Config struct {
	AmbientC        float64
	HeatRateCPerSec float64 // rise while the element is on
	CoolRateCPerSec float64 // drift toward ambient while off
}

func (c Config) withDefaults() Config {
	if c.AmbientC == 0 {
		c.AmbientC = DefaultAmbientC
	}
	if c.HeatRateCPerSec == 0 {
		c.HeatRateCPerSec = DefaultHeatRateCPerSec
	}
	if c.CoolRateCPerSec == 0 {
		c.CoolRateCPerSec = DefaultCoolRateCPerSec
	}
	return c
}

// Kiln simulates the plant. The control goroutine reads and commands it
// while the monitoring surface snapshots it, hence the mutex.
type Kiln struct {
	mu       sync.Mutex
	cfg      Config
	clock    control.Clock
	tempC    float64
	heaterOn bool
	lastStep bool
	lastAt   int64 // unix nanos of the last integration step
}

var (
	_ control.TemperatureSource = (*Kiln)(nil)
	_ control.HeaterSink        = (*Kiln)(nil)
)

func New(cfg Config, clock control.Clock) *Kiln {
	cfg = cfg.withDefaults()
	return &Kiln{
		cfg:    cfg,
		clock:  clock,
		tempC:  cfg.AmbientC,
		lastAt: clock.Now().UnixNano(),
	}
}

// ReadTemperature integrates the model up to now and returns °C.
func (k *Kiln) ReadTemperature() float64 {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.step()
	return k.tempC
}

// SetHeater applies the level command. Idempotent.
func (k *Kiln) SetHeater(on bool) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.step()
	k.heaterOn = on
}

// HeaterOn reports the current element state.
func (k *Kiln) HeaterOn() bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.heaterOn
}

// step advances the thermal model by the wall time since the last step.
// Caller holds the mutex.
func (k *Kiln) step() {
	now := k.clock.Now().UnixNano()
	dt := float64(now-k.lastAt) / 1e9
	k.lastAt = now
	if dt <= 0 {
		return
	}
	if k.heaterOn {
		k.tempC += k.cfg.HeatRateCPerSec * dt
		return
	}
	if k.tempC > k.cfg.AmbientC {
		k.tempC -= k.cfg.CoolRateCPerSec * dt
		if k.tempC < k.cfg.AmbientC {
			k.tempC = k.cfg.AmbientC
		}
	}
}
