package serialgpio

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"buzzerd/core"
)

// fakeMCU acts as the remote end of the line protocol. Writes are
// parsed as commands and the responses queued for the next read.
type fakeMCU struct {
	modes map[string]bool
	pins  map[string]string
	cmds  []string
	out   bytes.Buffer
}

func newFakeMCU() *fakeMCU {
	return &fakeMCU{
		modes: make(map[string]bool),
		pins:  make(map[string]string),
	}
}

func (m *fakeMCU) Write(p []byte) (int, error) {
	for _, line := range strings.Split(strings.TrimSuffix(string(p), "\n"), "\n") {
		m.cmds = append(m.cmds, line)
		m.out.WriteString(m.respond(line) + "\n")
	}
	return len(p), nil
}

func (m *fakeMCU) respond(cmd string) string {
	fields := strings.Fields(cmd)
	if len(fields) < 2 {
		return "err malformed command"
	}
	pin := fields[1]
	switch fields[0] {
	case "mode":
		if len(fields) != 3 || fields[2] != "out" {
			return "err bad mode"
		}
		m.modes[pin] = true
		return "ok"
	case "set":
		if len(fields) != 3 || !m.modes[pin] {
			return "err pin not an output"
		}
		m.pins[pin] = fields[2]
		return "ok"
	case "get":
		if v, ok := m.pins[pin]; ok {
			return v
		}
		return "0"
	}
	return "err unknown command"
}

func (m *fakeMCU) Read(p []byte) (int, error) {
	return m.out.Read(p)
}

func (m *fakeMCU) Close() error { return nil }

func TestDriverProtocol(t *testing.T) {
	mcu := newFakeMCU()
	d := NewDriver(mcu)
	pin := core.GPIOPin(9)

	if err := d.ConfigureOutput(pin); err != nil {
		t.Fatalf("ConfigureOutput failed: %v", err)
	}
	if err := d.SetPin(pin, true); err != nil {
		t.Fatalf("SetPin(true) failed: %v", err)
	}
	level, err := d.GetPin(pin)
	if err != nil {
		t.Fatalf("GetPin failed: %v", err)
	}
	if !level {
		t.Errorf("Expected pin high, got low")
	}

	if err := d.SetPin(pin, false); err != nil {
		t.Fatalf("SetPin(false) failed: %v", err)
	}
	level, err = d.GetPin(pin)
	if err != nil {
		t.Fatalf("GetPin failed: %v", err)
	}
	if level {
		t.Errorf("Expected pin low, got high")
	}

	expected := []string{"mode 9 out", "set 9 1", "get 9", "set 9 0", "get 9"}
	if len(mcu.cmds) != len(expected) {
		t.Fatalf("Sent %d commands, want %d: %v", len(mcu.cmds), len(expected), mcu.cmds)
	}
	for i, want := range expected {
		if mcu.cmds[i] != want {
			t.Errorf("Command %d = %q, want %q", i, mcu.cmds[i], want)
		}
	}
}

func TestDriverErrorResponse(t *testing.T) {
	mcu := newFakeMCU()
	d := NewDriver(mcu)

	// set before mode: MCU reports an error
	err := d.SetPin(3, true)
	if err == nil {
		t.Fatalf("SetPin on unconfigured remote pin should fail")
	}
	if !strings.Contains(err.Error(), "pin not an output") {
		t.Errorf("Error does not carry the MCU reason: %v", err)
	}
}

func TestDriverUnexpectedResponse(t *testing.T) {
	mcu := newFakeMCU()
	d := NewDriver(mcu)
	pin := core.GPIOPin(2)

	if err := d.ConfigureOutput(pin); err != nil {
		t.Fatalf("ConfigureOutput failed: %v", err)
	}
	mcu.pins[fmt.Sprint(pin)] = "banana"

	if _, err := d.GetPin(pin); err == nil {
		t.Errorf("GetPin accepted a non-numeric response")
	}
}
