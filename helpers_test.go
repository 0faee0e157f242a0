package sercap

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLooksLikeSerialDevice(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/dev/ttyUSB0", true},
		{"/dev/ttyACM1", true},
		{"/dev/cu.usbmodem1421", true},
		{"COM3", true},
		{"COM999", true},
		{"COM", false},
		{"/etc/passwd", false},
		{"/dev/sda", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, looksLikeSerialDevice(tt.path))
		})
	}
}

func TestIsPortAvailable(t *testing.T) {
	origList := getPortsList
	getPortsList = func() ([]string, error) { return []string{"/dev/ttyUSB0", "/dev/ttyS0"}, nil }
	t.Cleanup(func() { getPortsList = origList })

	ok, err := isPortAvailable("/dev/ttyUSB0")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = isPortAvailable("/dev/ttyUSB1")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = isPortAvailable("/dev/tty/../../etc/passwd")
	assert.Error(t, err)

	_, err = isPortAvailable("/home/user/notaport")
	assert.Error(t, err)
}

func TestAvailablePortsWrapsListError(t *testing.T) {
	origList := getPortsList
	listErr := errors.New("enumeration failed")
	getPortsList = func() ([]string, error) { return nil, listErr }
	t.Cleanup(func() { getPortsList = origList })

	_, err := AvailablePorts()
	require.ErrorIs(t, err, listErr)
}
