//go:build !linux

package main

import (
	"fmt"

	"buzzerd/core"
)

func openLinuxGPIO(chip string) (core.GPIODriver, func() error, error) {
	return nil, nil, fmt.Errorf("linux GPIO driver not available on this platform")
}
