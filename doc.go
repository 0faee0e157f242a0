// Package sercap captures serial device output during automated bench
// testing. A Runner opens the device, discards stale input, waits for
// the device to settle, writes a single wake byte, then streams output
// to a writer until a sentinel byte (ASCII ETX by default) arrives or
// the capture budget elapses.
//
// Captures are deterministic for a device that repeats the same output:
// each run is performed by a fresh single-shot Runner, so two runs
// against identical output yield identical captured bytes and outcomes.
package sercap
