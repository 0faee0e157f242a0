package sercap

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateConfigAcceptsDefaults(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DevicePath = "/dev/ttyUSB0"
	require.NoError(t, ValidateConfig(&cfg))
}

func TestValidateConfigAppliesDefaults(t *testing.T) {
	cfg := Config{
		DevicePath: "/dev/ttyUSB0",
		BaudRate:   115200,
	}
	require.NoError(t, ValidateConfig(&cfg))

	assert.Equal(t, DefaultDataBits, cfg.DataBits)
	assert.Equal(t, DefaultParity, cfg.Parity)
	assert.Equal(t, DefaultStopBits, cfg.StopBits)
	assert.Equal(t, DefaultReadTimeout, cfg.ReadTimeout)
	assert.Equal(t, DefaultTotalTimeout, cfg.TotalTimeout)
	assert.Equal(t, byte(DefaultSentinel), cfg.Sentinel)
	assert.Equal(t, byte(DefaultWakeByte), cfg.WakeByte)
	assert.Equal(t, DefaultReadBufferSize, cfg.ReadBufferSize)
}

func TestValidateConfigRejections(t *testing.T) {
	valid := func() Config {
		cfg := DefaultConfig()
		cfg.DevicePath = "/dev/ttyUSB0"
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing device", func(c *Config) { c.DevicePath = "" }},
		{"unsupported baud", func(c *Config) { c.BaudRate = 12345 }},
		{"negative baud", func(c *Config) { c.BaudRate = -9600 }},
		{"data bits too low", func(c *Config) { c.DataBits = 4 }},
		{"data bits too high", func(c *Config) { c.DataBits = 9 }},
		{"bad parity", func(c *Config) { c.Parity = "X" }},
		{"bad stop bits", func(c *Config) { c.StopBits = 3 }},
		{"negative read timeout", func(c *Config) { c.ReadTimeout = -time.Second }},
		{"negative settle delay", func(c *Config) { c.SettleDelay = -time.Second }},
		{"read timeout above total", func(c *Config) { c.ReadTimeout = 10 * time.Second }},
		{"sentinel equals wake byte", func(c *Config) { c.Sentinel = ' ' }},
		{"oversized read buffer", func(c *Config) { c.ReadBufferSize = 1 << 20 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			assert.Error(t, ValidateConfig(&cfg))
		})
	}
}

func TestSupportedBaudRates(t *testing.T) {
	for _, rate := range supportedBaudRates {
		assert.True(t, isSupportedBaudRate(rate), "rate %d should be supported", rate)
	}
	assert.False(t, isSupportedBaudRate(0))
	assert.False(t, isSupportedBaudRate(31337))
}
