package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/avrbench/sercap"
)

// exitError carries a specific process exit code out of a cobra command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sercap",
		Short: "Capture serial device output during automated testing",
		Long: `sercap opens a serial device, writes a single wake byte, and echoes the
device's output to stdout until a sentinel byte (ASCII ETX by default)
arrives or the capture timeout elapses.

Exit status: 0 = sentinel seen, 1 = timeout, 2 = device or I/O error.`,

		SilenceUsage:  true,
		SilenceErrors: true,

		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),

		RunE: runCapture,
	}

	f := rootCmd.Flags()
	f.BoolP("verbose", "v", false, "enable debug logging on stderr")
	f.String("log-file", "", "also write logs to this file (rotated)")
	f.String("config", "", "path to a YAML config file")
	f.StringP("device", "d", "", "serial device path, e.g. /dev/ttyUSB0")
	f.IntP("baud", "b", sercap.DefaultBaudRate, "baud rate")
	f.Int("data-bits", sercap.DefaultDataBits, "data bits (5-8)")
	f.String("parity", sercap.DefaultParity, "parity (N, E, O, M, S)")
	f.Int("stop-bits", sercap.DefaultStopBits, "stop bits (1 or 2)")
	f.Duration("read-timeout", sercap.DefaultReadTimeout, "per-read timeout")
	f.Duration("settle-delay", sercap.DefaultSettleDelay, "pause after open before the wake byte")
	f.DurationP("timeout", "t", sercap.DefaultTotalTimeout, "total capture timeout")
	f.Uint8("sentinel", sercap.DefaultSentinel, "sentinel byte ending the capture")
	f.Uint8("wake-byte", sercap.DefaultWakeByte, "byte written to wake the device")
	f.Int("read-buffer", sercap.DefaultReadBufferSize, "per-read buffer size in bytes")
	f.Bool("stats", false, "print capture statistics to stderr afterwards")

	rootCmd.AddCommand(newPortsCommand())

	return rootCmd
}

// execute runs the root command and translates errors into process exit
// codes. Timeouts exit 1; anything else that fails exits 2.
func execute() int {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)

		var xe *exitError
		if errors.As(err, &xe) {
			return xe.code
		}
		return sercap.ExitDeviceError
	}
	return sercap.ExitSentinel
}

func runCapture(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	log, err := newLogger(cmd)
	if err != nil {
		return err
	}

	runner, err := sercap.NewRunner(cfg)
	if err != nil {
		return err
	}
	runner.Logger = log

	res, err := runner.Run(cmd.Context(), os.Stdout)

	if stats, _ := cmd.Flags().GetBool("stats"); stats {
		printStats(runner.Metrics.Snapshot())
	}

	if err != nil {
		return &exitError{code: sercap.ExitCode(res, err), err: err}
	}
	if res.State == sercap.StateTimedOut {
		return &exitError{
			code: sercap.ExitTimeout,
			err:  fmt.Errorf("capture timed out after %s (%d bytes captured)", cfg.TotalTimeout, res.BytesCaptured),
		}
	}

	log.Debug().
		Int64("bytes", res.BytesCaptured).
		Dur("elapsed", res.Elapsed).
		Msg("capture complete")
	return nil
}

func printStats(s sercap.MetricsSnapshot) {
	fmt.Fprintf(os.Stderr, "reads=%d empty=%d bytes=%d elapsed=%s throughput=%.0fB/s\n",
		s.ReadOperations, s.EmptyReads, s.BytesCaptured,
		s.CaptureTime.Round(time.Millisecond), s.BytesPerSecond)
}
