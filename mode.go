package sercap

import (
	"fmt"

	gobug "go.bug.st/serial"
)

// mode translates the Config framing parameters into a go.bug.st/serial
// Mode. Callers must have run ValidateConfig first; unknown values are
// still rejected here so a bad mode never reaches the driver.
func (c Config) mode() (*gobug.Mode, error) {
	m := &gobug.Mode{
		BaudRate: c.BaudRate,
		DataBits: c.DataBits,
	}

	switch c.Parity {
	case "N":
		m.Parity = gobug.NoParity
	case "E":
		m.Parity = gobug.EvenParity
	case "O":
		m.Parity = gobug.OddParity
	case "M":
		m.Parity = gobug.MarkParity
	case "S":
		m.Parity = gobug.SpaceParity
	default:
		return nil, fmt.Errorf("sercap: unsupported parity %q", c.Parity)
	}

	switch c.StopBits {
	case 1:
		m.StopBits = gobug.OneStopBit
	case 2:
		m.StopBits = gobug.TwoStopBits
	default:
		return nil, fmt.Errorf("sercap: unsupported stop bits %d", c.StopBits)
	}

	return m, nil
}
