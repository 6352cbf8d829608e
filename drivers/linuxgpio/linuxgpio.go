//go:build linux

// Package linuxgpio drives GPIO lines through the Linux GPIO character
// device (uAPI v2), e.g. /dev/gpiochip0.
package linuxgpio

import (
	"fmt"
	"sync"
	"unsafe"

	"golang.org/x/sys/unix"

	"buzzerd/core"
)

// consumerLabel is reported to the kernel as the line consumer.
const consumerLabel = "buzzerd"

// Structures mirroring the uAPI v2 layout in <linux/gpio.h>. Field
// order and padding must match the kernel ABI exactly; the ioctl
// request numbers below encode the struct sizes.
type lineAttribute struct {
	ID      uint32
	Padding uint32
	Value   uint64
}

type lineConfigAttribute struct {
	Attr lineAttribute
	Mask uint64
}

type lineConfig struct {
	Flags    uint64
	NumAttrs uint32
	Padding  [5]uint32
	Attrs    [10]lineConfigAttribute
}

type lineRequest struct {
	Offsets         [64]uint32
	Consumer        [32]byte
	Config          lineConfig
	NumLines        uint32
	EventBufferSize uint32
	Padding         [5]uint32
	Fd              int32
}

type lineValues struct {
	Bits uint64
	Mask uint64
}

const (
	flagOutput = 1 << 3 // GPIO_V2_LINE_FLAG_OUTPUT

	gpioIoctlType = 0xB4
)

// _IOWR(GPIO_IOCTL_TYPE, nr, size)
func iowr(nr, size uintptr) uintptr {
	return (3 << 30) | (size << 16) | (gpioIoctlType << 8) | nr
}

var (
	getLineIoctl   = iowr(0x07, unsafe.Sizeof(lineRequest{}))
	getValuesIoctl = iowr(0x0E, unsafe.Sizeof(lineValues{}))
	setValuesIoctl = iowr(0x0F, unsafe.Sizeof(lineValues{}))
)

func ioctl(fd int, req uintptr, arg unsafe.Pointer) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), req, uintptr(arg))
	if errno != 0 {
		return errno
	}
	return nil
}

// Driver implements core.GPIODriver on top of one GPIO chip. Each
// configured pin holds its own requested-line descriptor until Close.
type Driver struct {
	mu    sync.Mutex
	fd    int
	path  string
	lines map[core.GPIOPin]int32
}

// Open opens a GPIO chip device, e.g. /dev/gpiochip0.
func Open(path string) (*Driver, error) {
	fd, err := unix.Open(path, unix.O_RDWR|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("linuxgpio: open %s: %w", path, err)
	}
	return &Driver{
		fd:    fd,
		path:  path,
		lines: make(map[core.GPIOPin]int32),
	}, nil
}

// ConfigureOutput requests the line as a dedicated output. Configuring
// an already-requested pin is OK.
func (d *Driver) ConfigureOutput(pin core.GPIOPin) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, exists := d.lines[pin]; exists {
		return nil
	}

	var req lineRequest
	req.Offsets[0] = uint32(pin)
	req.NumLines = 1
	req.Config.Flags = flagOutput
	copy(req.Consumer[:], consumerLabel)

	if err := ioctl(d.fd, getLineIoctl, unsafe.Pointer(&req)); err != nil {
		return fmt.Errorf("linuxgpio: request line %d on %s: %w", pin, d.path, err)
	}

	d.lines[pin] = req.Fd
	return nil
}

// SetPin drives the pin high (true) or low (false)
func (d *Driver) SetPin(pin core.GPIOPin, level bool) error {
	d.mu.Lock()
	fd, exists := d.lines[pin]
	d.mu.Unlock()
	if !exists {
		return fmt.Errorf("linuxgpio: pin %d not configured as output", pin)
	}

	values := lineValues{Mask: 1}
	if level {
		values.Bits = 1
	}
	if err := ioctl(int(fd), setValuesIoctl, unsafe.Pointer(&values)); err != nil {
		return fmt.Errorf("linuxgpio: set line %d: %w", pin, err)
	}
	return nil
}

// GetPin reads back the level the line is being driven to
func (d *Driver) GetPin(pin core.GPIOPin) (bool, error) {
	d.mu.Lock()
	fd, exists := d.lines[pin]
	d.mu.Unlock()
	if !exists {
		return false, fmt.Errorf("linuxgpio: pin %d not configured", pin)
	}

	values := lineValues{Mask: 1}
	if err := ioctl(int(fd), getValuesIoctl, unsafe.Pointer(&values)); err != nil {
		return false, fmt.Errorf("linuxgpio: get line %d: %w", pin, err)
	}
	return values.Bits&1 != 0, nil
}

// Close releases all requested lines and the chip descriptor.
func (d *Driver) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	for pin, fd := range d.lines {
		_ = unix.Close(int(fd))
		delete(d.lines, pin)
	}
	if d.fd >= 0 {
		err := unix.Close(d.fd)
		d.fd = -1
		return err
	}
	return nil
}
