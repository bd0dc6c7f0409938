//go:build tinygo && baremetal && !picocalc

package hal

// New returns the HAL of a bare Pico 2. It has neither display nor
// keyboard, so the presentation only logs over UART.
func New() HAL { return newBoard() }
