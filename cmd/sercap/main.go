// Command sercap captures output from a serial device during automated
// bench testing. It wakes the device with a single byte, echoes
// captured bytes to stdout, and reports the outcome through its exit
// status: 0 when the sentinel byte is seen, 1 on capture timeout, 2
// when the device cannot be opened or I/O fails.
package main

import "os"

// Set at build time via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(execute())
}
