package sercap

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateConfig applies defaults to cfg and checks it for problems that
// would make a capture run misbehave rather than merely fail to open.
func ValidateConfig(cfg *Config) error {
	cfg.applyDefaults()

	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("sercap: invalid config: %w", err)
	}

	if !isSupportedBaudRate(cfg.BaudRate) {
		return fmt.Errorf("sercap: invalid baud rate %d, must be one of: %v", cfg.BaudRate, supportedBaudRates)
	}

	// A per-read timeout at or above the total budget would make the
	// loop check the deadline at most once.
	if cfg.ReadTimeout >= cfg.TotalTimeout {
		return fmt.Errorf("sercap: read timeout %v must be below total timeout %v", cfg.ReadTimeout, cfg.TotalTimeout)
	}

	if cfg.Sentinel == cfg.WakeByte {
		return fmt.Errorf("sercap: sentinel byte %#02x equals wake byte; echo would end the capture immediately", cfg.Sentinel)
	}

	return nil
}

func isSupportedBaudRate(rate int) bool {
	for _, v := range supportedBaudRates {
		if rate == v {
			return true
		}
	}
	return false
}
