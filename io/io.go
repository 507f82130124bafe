// Package io defines the basic interfaces for working
// with the 8080 I/O port space. The 8080 addresses up to 256
// input and 256 output ports through the IN and OUT instructions
// with the accumulator as the data register. A machine wires its
// peripherals up by implementing Ports and installing it in the CPU.
package io

// Ports defines the 8 bit I/O port space.
type Ports interface {
	// In returns the current value presented on the given input port.
	In(port uint8) uint8
	// Out latches val onto the given output port.
	Out(port uint8, val uint8)
}
