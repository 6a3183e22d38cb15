package kilnsim

import (
	"sync/atomic"

	"controlling_kiln/internal/control"
)

// Panel is the operator's button, split into its two roles: a start
// latch consumed by the run loop and a level-triggered abort signal
// polled by the phase controller. Both are set from the API goroutines
// and read from the control goroutine.
type Panel struct {
	start atomic.Bool
	abort atomic.Bool
}

var _ control.AbortSource = (*Panel)(nil)

func NewPanel() *Panel { return &Panel{} }

// RequestStart latches a start request. A request made while a run is
// active stays latched and is consumed when the loop returns to idle.
func (p *Panel) RequestStart() { p.start.Store(true) }

// ConsumeStart returns true exactly once per latched start request.
func (p *Panel) ConsumeStart() bool { return p.start.CompareAndSwap(true, false) }

// RequestAbort asserts the abort signal. It stays asserted until the
// run loop clears it after the run terminates, so any in-progress phase
// check observes it.
func (p *Panel) RequestAbort() { p.abort.Store(true) }

// ClearAbort deasserts the signal; called by the run loop once a run
// has terminated.
func (p *Panel) ClearAbort() { p.abort.Store(false) }

// AbortRequested reports the signal level.
func (p *Panel) AbortRequested() bool { return p.abort.Load() }
