// Package serialgpio drives GPIO lines on a serial-attached MCU using a
// newline-delimited ASCII command protocol:
//
//	mode <pin> out   -> "ok"
//	set <pin> <0|1>  -> "ok"
//	get <pin>        -> "0" or "1"
//
// Any command may answer "err <reason>" instead.
package serialgpio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"buzzerd/core"
)

// Port is the transport under the driver. This abstraction allows for
// different implementations:
// - Native serial (using github.com/tarm/serial)
// - Mock port (for testing)
type Port interface {
	io.ReadWriteCloser
}

// Driver implements core.GPIODriver against a remote MCU. Commands are
// serialized: one request/response exchange at a time.
type Driver struct {
	mu   sync.Mutex
	port Port
	r    *bufio.Reader
}

// NewDriver wraps an already-open port.
func NewDriver(port Port) *Driver {
	return &Driver{port: port, r: bufio.NewReader(port)}
}

// command sends one line and reads the one-line response.
func (d *Driver) command(cmd string) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, err := io.WriteString(d.port, cmd+"\n"); err != nil {
		return "", fmt.Errorf("serialgpio: send %q: %w", cmd, err)
	}
	resp, err := d.r.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("serialgpio: response to %q: %w", cmd, err)
	}
	resp = strings.TrimSpace(resp)
	if reason, ok := strings.CutPrefix(resp, "err "); ok {
		return "", fmt.Errorf("serialgpio: %q: mcu reported: %s", cmd, reason)
	}
	return resp, nil
}

// expectOK runs a command whose only success response is "ok".
func (d *Driver) expectOK(cmd string) error {
	resp, err := d.command(cmd)
	if err != nil {
		return err
	}
	if resp != "ok" {
		return fmt.Errorf("serialgpio: %q: unexpected response %q", cmd, resp)
	}
	return nil
}

// ConfigureOutput configures the remote pin as a digital output
func (d *Driver) ConfigureOutput(pin core.GPIOPin) error {
	return d.expectOK(fmt.Sprintf("mode %d out", pin))
}

// SetPin drives the remote pin high (true) or low (false)
func (d *Driver) SetPin(pin core.GPIOPin, level bool) error {
	v := 0
	if level {
		v = 1
	}
	return d.expectOK(fmt.Sprintf("set %d %d", pin, v))
}

// GetPin reads the current remote pin level
func (d *Driver) GetPin(pin core.GPIOPin) (bool, error) {
	resp, err := d.command(fmt.Sprintf("get %d", pin))
	if err != nil {
		return false, err
	}
	v, err := strconv.Atoi(resp)
	if err != nil || (v != 0 && v != 1) {
		return false, fmt.Errorf("serialgpio: get pin %d: unexpected response %q", pin, resp)
	}
	return v == 1, nil
}

// Close closes the underlying port.
func (d *Driver) Close() error {
	return d.port.Close()
}
