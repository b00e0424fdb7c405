package serial

import (
	"io"
)

// Port is a byte stream to the board's UART.
// Implementations: native serial (github.com/tarm/serial) and, in tests,
// anything satisfying io.ReadWriteCloser.
type Port interface {
	io.ReadWriteCloser

	// Flush flushes any buffered data
	Flush() error
}

// Config holds serial port configuration
type Config struct {
	// Device path (e.g., "/dev/ttyUSB0", "COM3")
	Device string

	// Baud rate of the firmware's report UART
	Baud int

	// Read timeout in milliseconds (0 = blocking)
	ReadTimeout int
}

// DefaultBaud matches the UART setup in targets/stm32l0
const DefaultBaud = 115200

// DefaultConfig returns a configuration for the clock report UART
func DefaultConfig(device string) *Config {
	return &Config{
		Device:      device,
		Baud:        DefaultBaud,
		ReadTimeout: 0,
	}
}
