// Package memgpio provides an in-memory GPIO backend for tests and
// simulated runs without hardware attached.
package memgpio

import (
	"fmt"
	"sync"

	"buzzerd/core"
)

// Driver implements core.GPIODriver with map-backed pin state.
type Driver struct {
	mu     sync.Mutex
	levels map[core.GPIOPin]bool
	output map[core.GPIOPin]bool
}

// New creates an in-memory GPIO driver with no pins configured.
func New() *Driver {
	return &Driver{
		levels: make(map[core.GPIOPin]bool),
		output: make(map[core.GPIOPin]bool),
	}
}

// ConfigureOutput configures a pin as a digital output. Reconfiguring
// an already-configured pin is OK.
func (d *Driver) ConfigureOutput(pin core.GPIOPin) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.output[pin] = true
	return nil
}

// SetPin drives the pin high (true) or low (false)
func (d *Driver) SetPin(pin core.GPIOPin, level bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.output[pin] {
		return fmt.Errorf("memgpio: pin %d not configured as output", pin)
	}
	d.levels[pin] = level
	return nil
}

// GetPin reads the current pin level
func (d *Driver) GetPin(pin core.GPIOPin) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.levels[pin], nil
}

// Level reads the current pin level, ignoring errors. Convenience for
// assertions and status dumps.
func (d *Driver) Level(pin core.GPIOPin) bool {
	level, _ := d.GetPin(pin)
	return level
}
