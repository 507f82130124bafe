// Package memory defines the basic interfaces for working
// with an 8080 family memory map. Since each machine that is
// emulated has specific mappings (ROM, shadowed regions, memory
// mapped video) this is defined as an interface with a flat 64k
// implementation provided for the common case.
//
// All addresses are uint16 so every access wraps at 64k the same
// way the address bus does on real hardware.
package memory

import (
	"fmt"
)

// Size is the number of addressable bytes on an 8080.
const Size = 65536

type Bank interface {
	// Read returns the data byte stored at addr.
	Read(addr uint16) uint8
	// Write updates addr with the new value. For ROM addresses this is simply a no-op without
	// any error.
	Write(addr uint16, val uint8)
	// PowerOn performs power on reset of the memory. This is implementation specific as to
	// whether it's randomized or preset to all zeros.
	PowerOn()
}

var _ = Bank(&Flat{})

// Flat implements Bank as a single 64k RAM array with no mappings.
type Flat struct {
	addr [Size]uint8
}

// Read implements the interface for memory.Bank.
func (f *Flat) Read(addr uint16) uint8 {
	return f.addr[addr]
}

// Write implements the interface for memory.Bank.
func (f *Flat) Write(addr uint16, val uint8) {
	f.addr[addr] = val
}

// PowerOn implements the interface for memory.Bank. RAM is zero filled.
func (f *Flat) PowerOn() {
	f.addr = [Size]uint8{}
}

// ReadAddr returns the little endian 16 bit value stored at addr and addr+1.
// The second byte wraps to 0x0000 when addr is 0xFFFF.
func ReadAddr(b Bank, addr uint16) uint16 {
	return (uint16(b.Read(addr+1)) << 8) + uint16(b.Read(addr))
}

// WriteAddr stores val little endian at addr and addr+1 (wrapping).
func WriteAddr(b Bank, addr uint16, val uint16) {
	b.Write(addr, uint8(val&0xFF))
	b.Write(addr+1, uint8(val>>8))
}

// LoaderOverflow represents an image which doesn't fit in the address space
// from the requested offset.
type LoaderOverflow struct {
	Offset uint16
	Length int
}

// Error implements the interface for error types.
func (e LoaderOverflow) Error() string {
	return fmt.Sprintf("%d bytes at offset 0x%.4X overflows 64k address space by %d bytes", e.Length, e.Offset, int(e.Offset)+e.Length-Size)
}

// Load copies data verbatim into b starting at offset. If the data would run past
// the end of the address space nothing is written and a LoaderOverflow is returned.
func Load(b Bank, offset uint16, data []byte) error {
	if int(offset)+len(data) > Size {
		return LoaderOverflow{Offset: offset, Length: len(data)}
	}
	for i, v := range data {
		b.Write(offset+uint16(i), v)
	}
	return nil
}
