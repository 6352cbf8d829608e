// Attribute front end
// A stateless, always-available read/write property over the same
// device state, without session semantics
package core

import (
	"strconv"
	"strings"
)

// Show renders the logical state for the attribute reader: "0\n" or "1\n".
func (d *Device) Show() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return strconv.Itoa(int(d.state)) + "\n"
}

// Store applies a state written through the attribute interface and
// returns the number of bytes consumed. The busy flag is claimed for
// the duration of the store so an attribute write loses the race
// against an active exclusive session with ErrBusy.
//
// On a parse failure the busy flag is still released, the state branch
// is skipped and ErrParse surfaces. The original driver ran the state
// branch on an indeterminate value there; skipping it is the one
// deliberate behavior change in this port.
func (d *Device) Store(text string) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.detached {
		return 0, ErrDetached
	}
	if d.busy {
		return 0, ErrBusy
	}
	d.busy = true
	defer func() { d.busy = false }()

	val, err := strconv.ParseUint(strings.TrimRight(text, " \t\r\n"), 10, 64)
	if err != nil {
		return 0, ErrParse
	}
	switch val {
	case uint64(On):
		d.setState(On)
	case uint64(Off):
		d.setState(Off)
	}
	return len(text), nil
}
