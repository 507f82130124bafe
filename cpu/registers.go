package cpu

import (
	"fmt"
)

// Register identifies an 8 bit register using the 3 bit encoding
// from the 8080 instruction set (e.g. MOV dst,src is 01dddsss).
type Register int

const (
	REG_B Register = iota
	REG_C
	REG_D
	REG_E
	REG_H
	REG_L
	REG_M // Memory at the address in HL.
	REG_A
)

var regNames = [...]string{"B", "C", "D", "E", "H", "L", "M", "A"}

// String implements fmt.Stringer.
func (r Register) String() string {
	if r < REG_B || r > REG_A {
		return fmt.Sprintf("Register(%d)", int(r))
	}
	return regNames[r]
}

// Pair identifies a 16 bit register pair.
type Pair int

const (
	PAIR_BC Pair = iota
	PAIR_DE
	PAIR_HL
	PAIR_SP
	PAIR_PSW // A is the high byte and flags the low byte.
)

var pairNames = [...]string{"B", "D", "H", "SP", "PSW"}

// String implements fmt.Stringer using the assembler names.
func (rp Pair) String() string {
	if rp < PAIR_BC || rp > PAIR_PSW {
		return fmt.Sprintf("Pair(%d)", int(rp))
	}
	return pairNames[rp]
}

// Registers is a snapshot of the programmer visible register file.
type Registers struct {
	A, F, B, C, D, E, H, L uint8
	SP, PC                 uint16
}

// Registers returns a copy of the current register file.
func (p *Processor) Registers() Registers {
	return Registers{
		A:  p.A,
		F:  p.F,
		B:  p.B,
		C:  p.C,
		D:  p.D,
		E:  p.E,
		H:  p.H,
		L:  p.L,
		SP: p.SP,
		PC: p.PC,
	}
}

// SetRegisters loads the whole register file. Flags are normalized so the fixed
// bits read as they do on hardware.
func (p *Processor) SetRegisters(r Registers) {
	p.A = r.A
	p.F = packFlags(r.F)
	p.B = r.B
	p.C = r.C
	p.D = r.D
	p.E = r.E
	p.H = r.H
	p.L = r.L
	p.SP = r.SP
	p.PC = r.PC
}

// Reg returns the value of the given register. REG_M reads memory at HL.
// An invalid register is a programming error and panics.
func (p *Processor) Reg(r Register) uint8 {
	switch r {
	case REG_B:
		return p.B
	case REG_C:
		return p.C
	case REG_D:
		return p.D
	case REG_E:
		return p.E
	case REG_H:
		return p.H
	case REG_L:
		return p.L
	case REG_M:
		return p.Ram.Read(p.Pair(PAIR_HL))
	case REG_A:
		return p.A
	}
	panic(fmt.Sprintf("invalid register %d", r))
}

// SetReg stores val into the given register. REG_M writes memory at HL.
func (p *Processor) SetReg(r Register, val uint8) {
	switch r {
	case REG_B:
		p.B = val
	case REG_C:
		p.C = val
	case REG_D:
		p.D = val
	case REG_E:
		p.E = val
	case REG_H:
		p.H = val
	case REG_L:
		p.L = val
	case REG_M:
		p.Ram.Write(p.Pair(PAIR_HL), val)
	case REG_A:
		p.A = val
	default:
		panic(fmt.Sprintf("invalid register %d", r))
	}
}

// Pair returns the 16 bit value of a register pair as high<<8 | low.
func (p *Processor) Pair(rp Pair) uint16 {
	switch rp {
	case PAIR_BC:
		return join(p.B, p.C)
	case PAIR_DE:
		return join(p.D, p.E)
	case PAIR_HL:
		return join(p.H, p.L)
	case PAIR_SP:
		return p.SP
	case PAIR_PSW:
		return join(p.A, packFlags(p.F))
	}
	panic(fmt.Sprintf("invalid register pair %d", rp))
}

// SetPair stores val into a register pair, high byte into the first register.
func (p *Processor) SetPair(rp Pair, val uint16) {
	hi, lo := uint8(val>>8), uint8(val&0xFF)
	switch rp {
	case PAIR_BC:
		p.B, p.C = hi, lo
	case PAIR_DE:
		p.D, p.E = hi, lo
	case PAIR_HL:
		p.H, p.L = hi, lo
	case PAIR_SP:
		p.SP = val
	case PAIR_PSW:
		p.A, p.F = hi, packFlags(lo)
	default:
		panic(fmt.Sprintf("invalid register pair %d", rp))
	}
}

// PSW returns the processor status word (A and packed flags) as pushed by PUSH PSW.
func (p *Processor) PSW() uint16 {
	return p.Pair(PAIR_PSW)
}

// SetPSW loads A and the flags as POP PSW does.
func (p *Processor) SetPSW(val uint16) {
	p.SetPair(PAIR_PSW, val)
}

func join(hi, lo uint8) uint16 {
	return (uint16(hi) << 8) | uint16(lo)
}
