package sercap

import "errors"

var (
	// ErrPortNotOpen is returned when an operation requires an open port.
	ErrPortNotOpen = errors.New("sercap: port not open")

	// ErrInvalidPortName is returned when the device path does not look
	// like a serial device or is not present on the system.
	ErrInvalidPortName = errors.New("sercap: invalid or unavailable device path")

	// ErrRunnerUsed is returned when Run is called on a Runner that has
	// already performed its capture. Runners are single-shot.
	ErrRunnerUsed = errors.New("sercap: runner already used")

	// ErrInvalidBuffer is returned for nil or zero-length read buffers.
	ErrInvalidBuffer = errors.New("sercap: invalid buffer")
)

// Process exit codes reported by the sercap CLI.
const (
	// ExitSentinel means the sentinel byte was observed before the
	// capture timeout elapsed.
	ExitSentinel = 0

	// ExitTimeout means the total capture timeout elapsed without the
	// sentinel byte appearing in the stream.
	ExitTimeout = 1

	// ExitDeviceError means the device could not be opened, or an I/O
	// error interrupted the capture. Kept distinct from ExitTimeout so
	// callers can tell "device absent" from "device silent".
	ExitDeviceError = 2
)

// ExitCode maps a capture outcome to a process exit code.
func ExitCode(res Result, err error) int {
	if err != nil {
		return ExitDeviceError
	}
	if res.State == StateTimedOut {
		return ExitTimeout
	}
	return ExitSentinel
}
