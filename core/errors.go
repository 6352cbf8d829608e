package core

import "errors"

// Error kinds surfaced by the controller. All failures are synchronous;
// nothing is retried internally.
var (
	// ErrBusy reports that an exclusive session already holds the device.
	ErrBusy = errors.New("buzzer: device busy")

	// ErrFault reports that the caller-supplied data could not be read.
	ErrFault = errors.New("buzzer: cannot read caller data")

	// ErrParse reports attribute input that is not a decimal integer.
	ErrParse = errors.New("buzzer: not a decimal integer")

	// ErrDetached reports an operation on a device that has been torn down.
	ErrDetached = errors.New("buzzer: device detached")
)
