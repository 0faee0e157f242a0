package sercap

import (
	"time"

	"go.uber.org/atomic"
)

// Metrics tracks health statistics for capture runs. All fields are
// safe for concurrent use; a single Metrics may be shared between
// successive runners to accumulate totals across runs.
type Metrics struct {
	// Connection statistics
	ConnectionAttempts atomic.Int64 // Port open attempts
	ConnectionFailures atomic.Int64 // Failed opens (absent device, driver error)

	// Read loop statistics
	ReadOperations atomic.Int64 // Total read calls
	EmptyReads     atomic.Int64 // Reads that returned no data (per-read timeout)
	ReadErrors     atomic.Int64 // Reads that returned an error
	BytesCaptured  atomic.Int64 // Total bytes forwarded to the output writer

	// Run outcomes
	WakeWrites        atomic.Int64 // Wake bytes successfully written
	CapturesCompleted atomic.Int64 // Runs ended by the sentinel byte
	CaptureTimeouts   atomic.Int64 // Runs ended by the total timeout
	CaptureTime       atomic.Int64 // Accumulated capture time in nanoseconds
}

// MetricsSnapshot is a point-in-time copy of Metrics with a few derived
// rates, suitable for logging or end-of-run reporting.
type MetricsSnapshot struct {
	Timestamp time.Time

	ConnectionAttempts int64
	ConnectionFailures int64

	ReadOperations int64
	EmptyReads     int64
	ReadErrors     int64
	BytesCaptured  int64

	WakeWrites        int64
	CapturesCompleted int64
	CaptureTimeouts   int64
	CaptureTime       time.Duration

	// BytesPerSecond is throughput over the accumulated capture time.
	BytesPerSecond float64

	// EmptyReadRatio is the fraction of reads that returned no data.
	EmptyReadRatio float64
}

// Snapshot copies the current counter values and computes derived rates.
func (m *Metrics) Snapshot() MetricsSnapshot {
	s := MetricsSnapshot{
		Timestamp:          time.Now(),
		ConnectionAttempts: m.ConnectionAttempts.Load(),
		ConnectionFailures: m.ConnectionFailures.Load(),
		ReadOperations:     m.ReadOperations.Load(),
		EmptyReads:         m.EmptyReads.Load(),
		ReadErrors:         m.ReadErrors.Load(),
		BytesCaptured:      m.BytesCaptured.Load(),
		WakeWrites:         m.WakeWrites.Load(),
		CapturesCompleted:  m.CapturesCompleted.Load(),
		CaptureTimeouts:    m.CaptureTimeouts.Load(),
		CaptureTime:        time.Duration(m.CaptureTime.Load()),
	}

	if s.CaptureTime > 0 {
		s.BytesPerSecond = float64(s.BytesCaptured) / s.CaptureTime.Seconds()
	}
	if s.ReadOperations > 0 {
		s.EmptyReadRatio = float64(s.EmptyReads) / float64(s.ReadOperations)
	}

	return s
}

// Reset clears all counters.
func (m *Metrics) Reset() {
	m.ConnectionAttempts.Store(0)
	m.ConnectionFailures.Store(0)
	m.ReadOperations.Store(0)
	m.EmptyReads.Store(0)
	m.ReadErrors.Store(0)
	m.BytesCaptured.Store(0)
	m.WakeWrites.Store(0)
	m.CapturesCompleted.Store(0)
	m.CaptureTimeouts.Store(0)
	m.CaptureTime.Store(0)
}
