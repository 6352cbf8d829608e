//go:build linux

package linuxgpio

import "testing"

// The ioctl request numbers encode the struct sizes, so comparing them
// against the values from <linux/gpio.h> checks that the Go structs
// match the kernel ABI layout.
func TestIoctlNumbers(t *testing.T) {
	testCases := []struct {
		name     string
		got      uintptr
		expected uintptr
	}{
		{"GPIO_V2_GET_LINE_IOCTL", getLineIoctl, 0xC250B407},
		{"GPIO_V2_LINE_GET_VALUES_IOCTL", getValuesIoctl, 0xC010B40E},
		{"GPIO_V2_LINE_SET_VALUES_IOCTL", setValuesIoctl, 0xC010B40F},
	}

	for _, tc := range testCases {
		if tc.got != tc.expected {
			t.Errorf("%s = %#x, want %#x", tc.name, tc.got, tc.expected)
		}
	}
}
