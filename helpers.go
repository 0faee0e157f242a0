package sercap

import (
	"fmt"
	"strings"
)

// AvailablePorts lists the serial devices detected on the system.
func AvailablePorts() ([]string, error) {
	ports, err := getPortsList()
	if err != nil {
		return nil, fmt.Errorf("sercap: listing ports: %w", err)
	}
	return ports, nil
}

// isPortAvailable reports whether devicePath names a serial device the
// OS currently knows about. Paths that do not look like serial devices
// are rejected before the OS is consulted.
func isPortAvailable(devicePath string) (bool, error) {
	if strings.Contains(devicePath, "..") {
		return false, fmt.Errorf("invalid device path: contains path traversal")
	}

	if !looksLikeSerialDevice(devicePath) {
		return false, fmt.Errorf("device path doesn't match expected pattern: %s", devicePath)
	}

	ports, err := getPortsList()
	if err != nil {
		return false, err
	}
	for _, port := range ports {
		if port == devicePath {
			return true, nil
		}
	}
	return false, nil
}

// looksLikeSerialDevice accepts /dev/tty* and /dev/cu* on Unix-likes and
// COM1-COM999 on Windows.
func looksLikeSerialDevice(devicePath string) bool {
	if strings.HasPrefix(devicePath, "COM") && len(devicePath) >= 4 && len(devicePath) <= 6 {
		return true
	}
	if strings.HasPrefix(devicePath, "/dev/tty") || strings.HasPrefix(devicePath, "/dev/cu") {
		return true
	}
	return false
}
