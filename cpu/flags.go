package cpu

import (
	"strings"
)

// Flag bits in the F register.
const (
	F_SIGN      = uint8(0x80)
	F_ZERO      = uint8(0x40)
	F_S5        = uint8(0x20) // Always 0
	F_AUX_CARRY = uint8(0x10)
	F_S3        = uint8(0x08) // Always 0
	F_PARITY    = uint8(0x04)
	F_S1        = uint8(0x02) // Always 1
	F_CARRY     = uint8(0x01)
)

// parityTable holds the even parity result for every byte value.
var parityTable [256]bool

func init() {
	for i := 0; i < 256; i++ {
		bits := 0
		for v := uint8(i); v != 0; v >>= 1 {
			bits += int(v & 1)
		}
		parityTable[i] = bits%2 == 0
	}
}

// Parity returns true if val has an even number of set bits.
func Parity(val uint8) bool {
	return parityTable[val]
}

// packFlags forces the bits which are fixed on hardware.
func packFlags(f uint8) uint8 {
	return (f &^ (F_S5 | F_S3)) | F_S1
}

// FlagString renders the condition flags as "SZAPC" with '-' for clear bits.
func FlagString(f uint8) string {
	var b strings.Builder
	for _, fl := range []struct {
		bit uint8
		c   byte
	}{
		{F_SIGN, 'S'},
		{F_ZERO, 'Z'},
		{F_AUX_CARRY, 'A'},
		{F_PARITY, 'P'},
		{F_CARRY, 'C'},
	} {
		if f&fl.bit != 0 {
			b.WriteByte(fl.c)
			continue
		}
		b.WriteByte('-')
	}
	return b.String()
}

// Flag returns whether the given flag bit is set.
func (p *Processor) Flag(f uint8) bool {
	return p.F&f != 0
}

// SetFlag sets or clears the given flag bit(s).
func (p *Processor) SetFlag(f uint8, on bool) {
	if on {
		p.F |= f
		return
	}
	p.F &^= f
}

// zspCheck sets the Z, S and P flags based on val.
func (p *Processor) zspCheck(val uint8) {
	p.SetFlag(F_ZERO, val == 0)
	p.SetFlag(F_SIGN, val&0x80 != 0)
	p.SetFlag(F_PARITY, parityTable[val])
}

// carryCheck sets C if the 8 bit operation in res carried out of bit 7.
func (p *Processor) carryCheck(res uint16) {
	p.SetFlag(F_CARRY, res > 0xFF)
}

// auxCarryCheck sets AC if adding a and b produced a carry out of bit 3 in res.
func (p *Processor) auxCarryCheck(a, b, res uint8) {
	p.SetFlag(F_AUX_CARRY, (a^b^res)&0x10 != 0)
}
