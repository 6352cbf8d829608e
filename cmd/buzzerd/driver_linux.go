//go:build linux

package main

import (
	"buzzerd/core"
	"buzzerd/drivers/linuxgpio"
)

func openLinuxGPIO(chip string) (core.GPIODriver, func() error, error) {
	drv, err := linuxgpio.Open(chip)
	if err != nil {
		return nil, nil, err
	}
	return drv, drv.Close, nil
}
