package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/avrbench/sercap"
)

// Flag-name to config-key bindings. Precedence is the usual viper
// order: flag > environment (SERCAP_*) > config file > default.
var flagBindings = map[string]string{
	"device":       "device",
	"baud":         "baud",
	"data-bits":    "data_bits",
	"parity":       "parity",
	"stop-bits":    "stop_bits",
	"read-timeout": "read_timeout",
	"settle-delay": "settle_delay",
	"timeout":      "total_timeout",
	"sentinel":     "sentinel",
	"wake-byte":    "wake_byte",
	"read-buffer":  "read_buffer_size",
}

// loadConfig resolves the capture configuration from flags, environment
// variables, and an optional YAML config file.
func loadConfig(cmd *cobra.Command) (sercap.Config, error) {
	def := sercap.DefaultConfig()

	v := viper.New()
	v.SetDefault("baud", def.BaudRate)
	v.SetDefault("data_bits", def.DataBits)
	v.SetDefault("parity", def.Parity)
	v.SetDefault("stop_bits", def.StopBits)
	v.SetDefault("read_timeout", def.ReadTimeout)
	v.SetDefault("settle_delay", def.SettleDelay)
	v.SetDefault("total_timeout", def.TotalTimeout)
	v.SetDefault("sentinel", int(def.Sentinel))
	v.SetDefault("wake_byte", int(def.WakeByte))
	v.SetDefault("read_buffer_size", def.ReadBufferSize)

	v.SetEnvPrefix("SERCAP")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path, _ := cmd.Flags().GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return sercap.Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	for flagName, key := range flagBindings {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(flagName)); err != nil {
			return sercap.Config{}, fmt.Errorf("binding flag %s: %w", flagName, err)
		}
	}

	var cfg sercap.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return sercap.Config{}, fmt.Errorf("decoding config: %w", err)
	}

	if cfg.DevicePath == "" {
		return sercap.Config{}, fmt.Errorf("no serial device given (use --device or SERCAP_DEVICE)")
	}

	return cfg, nil
}
