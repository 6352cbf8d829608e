// Attachment lifecycle for the buzzer device
// Resolves the hardware description, configures the line and brings the
// controller online
package platform

import (
	"errors"
	"fmt"

	"buzzerd/core"
)

// ErrNoPin reports a missing or unresolvable buzzer line in the
// hardware description. Attachment aborts; no device comes online.
var ErrNoPin = errors.New("platform: buzzer gpio line missing")

// Attach brings the buzzer online: it resolves the line from cfg,
// configures it as an output and applies the configured default state.
// Any failure here is fatal to the attachment.
func Attach(cfg *Config, gpio core.GPIODriver) (*core.Device, error) {
	if cfg == nil || cfg.Gpios == nil {
		return nil, ErrNoPin
	}

	pin := core.GPIOPin(*cfg.Gpios)
	if err := gpio.ConfigureOutput(pin); err != nil {
		return nil, fmt.Errorf("platform: configure line %d as output: %w", pin, err)
	}

	dev := core.NewDevice(gpio, pin)

	// The default state is only applied when the property is present;
	// without it the line keeps whatever level it had.
	if cfg.DefaultState != "" {
		if cfg.DefaultState == "on" {
			dev.SetDefault(core.On)
		} else {
			dev.SetDefault(core.Off)
		}
	}

	return dev, nil
}

// Detach tears the device down: the line is forced to the silent level
// and both front ends stop accepting callers.
func Detach(dev *core.Device) {
	dev.Detach()
}
