// Buzzer state control
// Implements the shared on/off controller behind the session and
// attribute front ends
package core

import (
	"strconv"
	"sync"
)

// State is the logical on/off state of the buzzer
type State uint8

// Buzzer states. The byte values double as the wire encoding accepted
// by the session write path.
const (
	Off State = 0
	On  State = 1
)

// Physical line levels. The buzzer is wired active-low: driving the
// line LOW energizes it, HIGH silences it.
const (
	levelLow  = false
	levelHigh = true
)

// Device is the buzzer device. Exactly one instance exists per
// attachment; both front ends funnel into it. The single mutex guards
// the logical state and the session busy flag as one unit.
type Device struct {
	mu       sync.Mutex
	gpio     GPIODriver
	pin      GPIOPin
	state    State
	busy     bool
	detached bool
}

// NewDevice wraps an already-configured output line. The logical state
// starts Off; platform code applies any configured default afterwards.
func NewDevice(gpio GPIODriver, pin GPIOPin) *Device {
	return &Device{gpio: gpio, pin: pin, state: Off}
}

// setState drives the hardware line and records the logical state as
// one committed unit. Caller must hold d.mu. Level writes are treated
// as infallible at this layer.
func (d *Device) setState(s State) {
	if s == On {
		_ = d.gpio.SetPin(d.pin, levelLow)
	} else {
		_ = d.gpio.SetPin(d.pin, levelHigh)
	}
	d.state = s
	debugPrintln("buzzer: state=" + strconv.Itoa(int(s)))
}

// SetDefault applies the configured power-on state. Called once during
// attachment, before the device is handed to the front ends.
func (d *Device) SetDefault(s State) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.setState(s)
}

// Status returns the current logical state.
func (d *Device) Status() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Detach tears the device down: the line is forced to the silent level,
// the logical state resets to Off and any session claim is released.
// All subsequent Open and Store calls fail with ErrDetached. Idempotent.
func (d *Device) Detach() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.detached {
		return
	}
	_ = d.gpio.SetPin(d.pin, levelHigh)
	d.state = Off
	d.busy = false
	d.detached = true
	debugPrintln("buzzer: detached")
}
