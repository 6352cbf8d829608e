package serialgpio

import (
	"fmt"
	"time"

	"github.com/tarm/serial"
)

// Config holds serial port configuration
type Config struct {
	// Device path (e.g., "/dev/ttyACM0", "COM3")
	Device string

	// Baud rate (ignored for USB CDC devices)
	Baud int

	// Read timeout in milliseconds (0 = blocking)
	ReadTimeout int
}

// DefaultConfig returns a configuration for a typical USB-attached MCU
func DefaultConfig(device string) *Config {
	return &Config{
		Device:      device,
		Baud:        115200,
		ReadTimeout: 500,
	}
}

// Open opens a native serial port and wraps it in a Driver.
func Open(cfg *Config) (*Driver, error) {
	if cfg == nil {
		return nil, fmt.Errorf("serialgpio: config cannot be nil")
	}

	port, err := serial.OpenPort(&serial.Config{
		Name:        cfg.Device,
		Baud:        cfg.Baud,
		ReadTimeout: time.Duration(cfg.ReadTimeout) * time.Millisecond,
	})
	if err != nil {
		return nil, fmt.Errorf("serialgpio: open %s: %w", cfg.Device, err)
	}

	return NewDriver(port), nil
}
