// Exclusive session front end
// Mirrors open/write/release semantics on the shared device
package core

// Session is an exclusive open-to-release window on the device. At most
// one un-released session exists at a time.
type Session struct {
	dev    *Device
	closed bool
}

// Open claims the device for an exclusive session. If another session
// holds it the call fails with ErrBusy and no state is mutated.
func (d *Device) Open() (*Session, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.detached {
		return nil, ErrDetached
	}
	if d.busy {
		return nil, ErrBusy
	}
	d.busy = true
	return &Session{dev: d}, nil
}

// Write commands a state transition from a caller-supplied buffer. The
// first byte selects the state: 1 turns the buzzer on, 0 turns it off,
// any other value is deliberately ignored and leaves the state alone.
// An empty buffer is the only transfer fault at this layer.
func (s *Session) Write(buf []byte) error {
	if len(buf) == 0 {
		return ErrFault
	}
	d := s.dev
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.detached {
		return ErrDetached
	}
	if s.closed {
		return ErrFault
	}
	switch buf[0] {
	case byte(On):
		d.setState(On)
	case byte(Off):
		d.setState(Off)
	}
	return nil
}

// Close releases the session's claim on the device. It never fails and
// never touches the line or the logical state. Closing twice is a
// no-op; a stale handle cannot free a claim it no longer holds.
func (s *Session) Close() {
	d := s.dev
	d.mu.Lock()
	defer d.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	if d.busy {
		d.busy = false
	}
}
