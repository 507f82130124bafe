// Package irq defines the basic interfaces for working
// with an 8080 family interrupt. A receiver of interrupts (the CPU)
// will implement this interface to allow other components which generate
// them to easily raise state without cross coupling component logic.
// NOTE: The 8080 has a single INT line and the interrupting device jams
//       an instruction (nearly always RST n) onto the data bus during
//       acknowledge. That's modeled here as the RST number the sender
//       wants executed.
package irq

type Sender interface {
	// Raised indicates whether the interrupt is currently held high.
	Raised() bool
	// Vector returns the RST number (0-7) to execute on acknowledge.
	Vector() uint8
}

type Receiver interface {
	// Install takes the given sender and stores it for later checks in appropriate logic.
	Install(s Sender)
}
