package sercap

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"go.uber.org/atomic"
)

// Result reports the outcome of a capture run.
type Result struct {
	// State is StateCompleted or StateTimedOut after a clean run, and
	// StateReading if the run was interrupted by an error.
	State State

	// BytesCaptured counts bytes forwarded to the output writer.
	BytesCaptured int64

	// Elapsed measures from the wake byte to the end of the read loop.
	Elapsed time.Duration
}

// Runner performs one serial capture: open the device, flush stale
// input, wait for it to settle, write the wake byte, then forward
// device output until the sentinel byte arrives or the capture budget
// runs out.
//
// A Runner is single-shot. Re-running a capture against a device that
// repeats its output means constructing a fresh Runner, optionally
// sharing a Metrics instance across runs.
type Runner struct {
	// Logger receives debug/warn events during the run. Defaults to a
	// no-op logger.
	Logger zerolog.Logger

	// Metrics accumulates counters for this run. NewRunner installs a
	// fresh instance; assign a shared one before Run to aggregate
	// across runs.
	Metrics *Metrics

	cfg  Config
	pool *BufferPool

	handle SerialPort
	isOpen atomic.Bool
	used   atomic.Bool
}

// NewRunner validates cfg (applying defaults) and returns a Runner
// ready for a single Run call.
func NewRunner(cfg Config) (*Runner, error) {
	if err := ValidateConfig(&cfg); err != nil {
		return nil, err
	}
	return &Runner{
		Logger:  zerolog.Nop(),
		Metrics: &Metrics{},
		cfg:     cfg,
		pool:    NewBufferPool(cfg.ReadBufferSize),
	}, nil
}

// Config returns the validated configuration the Runner was built with.
func (r *Runner) Config() Config {
	return r.cfg
}

// Run executes the capture, forwarding device output to out as it
// arrives. Chunks are written in the order received, untransformed, and
// a chunk containing the sentinel is forwarded in full before the run
// stops.
//
// A timeout is a normal outcome, reported via Result.State, not an
// error. Errors mean the device could not be opened or I/O failed
// mid-run. The port, once opened, is closed exactly once on every exit
// path.
func (r *Runner) Run(ctx context.Context, out io.Writer) (res Result, err error) {
	res.State = StateReading

	if !r.used.CompareAndSwap(false, true) {
		return res, ErrRunnerUsed
	}

	mode, err := r.cfg.mode()
	if err != nil {
		return res, err
	}

	ok, err := isPortAvailable(r.cfg.DevicePath)
	if err != nil {
		r.Metrics.ConnectionFailures.Inc()
		return res, fmt.Errorf("sercap: checking device %s: %w", r.cfg.DevicePath, err)
	}
	if !ok {
		r.Metrics.ConnectionFailures.Inc()
		return res, fmt.Errorf("%w: %s", ErrInvalidPortName, r.cfg.DevicePath)
	}

	r.Metrics.ConnectionAttempts.Inc()
	handle, err := openPort(r.cfg.DevicePath, mode)
	if err != nil {
		r.Metrics.ConnectionFailures.Inc()
		return res, fmt.Errorf("sercap: opening %s: %w", r.cfg.DevicePath, err)
	}
	r.handle = handle
	r.isOpen.Store(true)
	r.Logger.Debug().
		Str("device", r.cfg.DevicePath).
		Int("baud", r.cfg.BaudRate).
		Msg("port opened")

	defer func() {
		if cerr := r.closePort(); cerr != nil {
			err = errors.Join(err, cerr)
		}
	}()

	if err = handle.SetReadTimeout(r.cfg.ReadTimeout); err != nil {
		return res, fmt.Errorf("sercap: setting read timeout: %w", err)
	}

	// Discard anything queued before the port opened so stale output
	// from an earlier session is not mistaken for the response.
	if err = handle.ResetInputBuffer(); err != nil {
		return res, fmt.Errorf("sercap: flushing input: %w", err)
	}

	if err = r.settle(ctx); err != nil {
		return res, err
	}

	if _, err = handle.Write([]byte{r.cfg.WakeByte}); err != nil {
		return res, fmt.Errorf("sercap: writing wake byte: %w", err)
	}
	r.Metrics.WakeWrites.Inc()
	r.Logger.Debug().Msg("wake byte written, capture started")

	// The capture budget is anchored here, after the wake byte; open
	// and settle time do not count against it.
	start := time.Now()

	buf := r.pool.Get()
	defer r.pool.Put(buf)

	for res.State == StateReading {
		select {
		case <-ctx.Done():
			res.Elapsed = time.Since(start)
			return res, ctx.Err()
		default:
		}

		n, rerr := handle.Read(buf)
		r.Metrics.ReadOperations.Inc()
		if rerr != nil {
			r.Metrics.ReadErrors.Inc()
			res.Elapsed = time.Since(start)
			return res, fmt.Errorf("sercap: reading from %s: %w", r.cfg.DevicePath, rerr)
		}

		if n > 0 {
			chunk := buf[:n]
			// The whole chunk is forwarded before the sentinel check,
			// so bytes sharing a chunk with the sentinel still reach
			// the output.
			if _, werr := out.Write(chunk); werr != nil {
				res.Elapsed = time.Since(start)
				return res, fmt.Errorf("sercap: forwarding output: %w", werr)
			}
			res.BytesCaptured += int64(n)
			r.Metrics.BytesCaptured.Add(int64(n))

			if bytes.IndexByte(chunk, r.cfg.Sentinel) >= 0 {
				res.State = StateCompleted
			}
		} else {
			r.Metrics.EmptyReads.Inc()
		}

		if res.State == StateReading && time.Since(start) > r.cfg.TotalTimeout {
			res.State = StateTimedOut
		}
	}

	res.Elapsed = time.Since(start)
	r.Metrics.CaptureTime.Add(int64(res.Elapsed))

	switch res.State {
	case StateCompleted:
		r.Metrics.CapturesCompleted.Inc()
		r.Logger.Debug().
			Int64("bytes", res.BytesCaptured).
			Dur("elapsed", res.Elapsed).
			Msg("sentinel observed")
	case StateTimedOut:
		r.Metrics.CaptureTimeouts.Inc()
		r.Logger.Warn().
			Int64("bytes", res.BytesCaptured).
			Dur("elapsed", res.Elapsed).
			Msg("capture timed out")
	}

	return res, nil
}

// settle pauses for the configured delay so the device can finish
// initializing after the port opens.
func (r *Runner) settle(ctx context.Context) error {
	if r.cfg.SettleDelay <= 0 {
		return nil
	}
	t := time.NewTimer(r.cfg.SettleDelay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// closePort releases the handle. Safe to call more than once; only the
// first call after a successful open actually closes.
func (r *Runner) closePort() error {
	if !r.isOpen.CompareAndSwap(true, false) {
		return nil
	}
	h := r.handle
	r.handle = nil
	if h != nil {
		return h.Close()
	}
	return nil
}
