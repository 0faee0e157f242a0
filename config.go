package sercap

import "time"

// Default capture parameters. These mirror the values embedded in the
// original bench-test capture script; all of them can be overridden.
const (
	DefaultBaudRate     = 115200
	DefaultDataBits     = 8
	DefaultParity       = "N"
	DefaultStopBits     = 1
	DefaultReadTimeout  = 100 * time.Millisecond
	DefaultSettleDelay  = 500 * time.Millisecond
	DefaultTotalTimeout = 7 * time.Second

	// DefaultSentinel is ASCII ETX. Its appearance in the captured
	// stream marks intentional end of output.
	DefaultSentinel = 0x03

	// DefaultWakeByte is a single space written to prompt the device
	// to start producing output.
	DefaultWakeByte = ' '

	// DefaultReadBufferSize is the chunk size for each port read.
	DefaultReadBufferSize = 256
)

// Config holds the parameters for a single capture run.
type Config struct {
	// DevicePath is the serial device, e.g. /dev/ttyUSB0 or COM3.
	DevicePath string `mapstructure:"device" validate:"required"`

	BaudRate int    `mapstructure:"baud" validate:"required,gt=0"`
	DataBits int    `mapstructure:"data_bits" validate:"min=5,max=8"`
	Parity   string `mapstructure:"parity" validate:"oneof=N E O M S"`
	StopBits int    `mapstructure:"stop_bits" validate:"oneof=1 2"`

	// ReadTimeout bounds each individual port read so the loop keeps
	// polling even when no data is available.
	ReadTimeout time.Duration `mapstructure:"read_timeout" validate:"gt=0"`

	// SettleDelay is the pause between opening the port and writing the
	// wake byte, giving the device time to finish initializing.
	SettleDelay time.Duration `mapstructure:"settle_delay" validate:"gte=0"`

	// TotalTimeout is the capture budget, measured from the instant the
	// wake byte has been written.
	TotalTimeout time.Duration `mapstructure:"total_timeout" validate:"gt=0"`

	Sentinel byte `mapstructure:"sentinel"`
	WakeByte byte `mapstructure:"wake_byte"`

	// ReadBufferSize is the per-read chunk size. Zero selects
	// DefaultReadBufferSize.
	ReadBufferSize int `mapstructure:"read_buffer_size" validate:"gte=0,lte=65536"`
}

// DefaultConfig returns a Config populated with the stock capture
// parameters. DevicePath is left empty and must be set by the caller.
func DefaultConfig() Config {
	return Config{
		BaudRate:       DefaultBaudRate,
		DataBits:       DefaultDataBits,
		Parity:         DefaultParity,
		StopBits:       DefaultStopBits,
		ReadTimeout:    DefaultReadTimeout,
		SettleDelay:    DefaultSettleDelay,
		TotalTimeout:   DefaultTotalTimeout,
		Sentinel:       DefaultSentinel,
		WakeByte:       DefaultWakeByte,
		ReadBufferSize: DefaultReadBufferSize,
	}
}

// applyDefaults fills zero values that have a sensible stock setting.
// DevicePath and BaudRate are deliberately not defaulted here; they are
// validated instead.
func (c *Config) applyDefaults() {
	if c.DataBits == 0 {
		c.DataBits = DefaultDataBits
	}
	if c.Parity == "" {
		c.Parity = DefaultParity
	}
	if c.StopBits == 0 {
		c.StopBits = DefaultStopBits
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = DefaultReadTimeout
	}
	if c.TotalTimeout == 0 {
		c.TotalTimeout = DefaultTotalTimeout
	}
	if c.Sentinel == 0 {
		c.Sentinel = DefaultSentinel
	}
	if c.WakeByte == 0 {
		c.WakeByte = DefaultWakeByte
	}
	if c.ReadBufferSize == 0 {
		c.ReadBufferSize = DefaultReadBufferSize
	}
}
