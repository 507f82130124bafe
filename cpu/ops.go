package cpu

import (
	"github.com/jmchacon/8080/memory"
)

// instruction is the decoded form of the opcode at addr plus any operand bytes.
type instruction struct {
	op   uint8
	addr uint16
	lo   uint8 // First operand byte (d8, or low byte of d16/a16).
	hi   uint8 // Second operand byte (high byte of d16/a16).
}

// imm16 returns the 16 bit operand (stored little endian after the opcode).
func (i instruction) imm16() uint16 {
	return join(i.hi, i.lo)
}

// handler implements an opcode. PC already points at the next instruction when
// it's called. It returns true when a conditional transfer was taken so the
// longer cycle count applies.
type handler func(p *Processor, in instruction) bool

// condition is an enumeration of the 8080 condition codes in encoding order.
type condition int

const (
	kCOND_NZ condition = iota
	kCOND_Z
	kCOND_NC
	kCOND_C
	kCOND_PO
	kCOND_PE
	kCOND_P
	kCOND_M
	kCOND_ALWAYS
)

// check evaluates a condition code against the current flags.
func (p *Processor) check(c condition) bool {
	switch c {
	case kCOND_NZ:
		return !p.Flag(F_ZERO)
	case kCOND_Z:
		return p.Flag(F_ZERO)
	case kCOND_NC:
		return !p.Flag(F_CARRY)
	case kCOND_C:
		return p.Flag(F_CARRY)
	case kCOND_PO:
		return !p.Flag(F_PARITY)
	case kCOND_PE:
		return p.Flag(F_PARITY)
	case kCOND_P:
		return !p.Flag(F_SIGN)
	case kCOND_M:
		return p.Flag(F_SIGN)
	}
	return true
}

// aluOp is an enumeration of the accumulator operations in encoding order (10ooosss).
type aluOp int

const (
	kALU_ADD aluOp = iota
	kALU_ADC
	kALU_SUB
	kALU_SBB
	kALU_ANA
	kALU_XRA
	kALU_ORA
	kALU_CMP
)

// push pushes val and adjusts the stack pointer. The low byte ends up at the new SP.
func (p *Processor) push(val uint16) {
	p.SP -= 2
	memory.WriteAddr(p.Ram, p.SP, val)
}

// pop pops the top 16 bit value off the stack and adjusts the stack pointer.
func (p *Processor) pop() uint16 {
	v := memory.ReadAddr(p.Ram, p.SP)
	p.SP += 2
	return v
}

// add sets A = A + val + carry with all flags.
func (p *Processor) add(val uint8, carry uint8) {
	res := uint16(p.A) + uint16(val) + uint16(carry)
	p.auxCarryCheck(p.A, val, uint8(res))
	p.carryCheck(res)
	p.A = uint8(res)
	p.zspCheck(p.A)
}

// sub computes A - val - borrow and sets all flags but doesn't store the result.
// The 8080 does this as an add of the ones complement with the borrow inverted,
// so AC is the carry out of bit 3 of that add and C is the inverted carry out.
func (p *Processor) sub(val uint8, borrow uint8) uint8 {
	res := uint16(p.A) + uint16(^val) + uint16(1-borrow)
	p.auxCarryCheck(p.A, ^val, uint8(res))
	p.SetFlag(F_CARRY, res <= 0xFF)
	p.zspCheck(uint8(res))
	return uint8(res)
}

// alu applies op against the accumulator.
func (p *Processor) alu(op aluOp, val uint8) {
	carry := p.F & F_CARRY
	switch op {
	case kALU_ADD:
		p.add(val, 0)
	case kALU_ADC:
		p.add(val, carry)
	case kALU_SUB:
		p.A = p.sub(val, 0)
	case kALU_SBB:
		p.A = p.sub(val, carry)
	case kALU_ANA:
		// AC reflects bit 3 of the operands on 8080 (8085 always sets it).
		p.SetFlag(F_AUX_CARRY, (p.A|val)&0x08 != 0)
		p.A &= val
		p.SetFlag(F_CARRY, false)
		p.zspCheck(p.A)
	case kALU_XRA:
		p.A ^= val
		p.SetFlag(F_AUX_CARRY|F_CARRY, false)
		p.zspCheck(p.A)
	case kALU_ORA:
		p.A |= val
		p.SetFlag(F_AUX_CARRY|F_CARRY, false)
		p.zspCheck(p.A)
	case kALU_CMP:
		p.sub(val, 0)
	}
}

func nop(*Processor, instruction) bool {
	return false
}

func hlt(p *Processor, _ instruction) bool {
	p.status = STATUS_HALTED
	return false
}

func lxi(rp Pair) handler {
	return func(p *Processor, in instruction) bool {
		p.SetPair(rp, in.imm16())
		return false
	}
}

// stax stores A at the address held in rp (BC or DE).
func stax(rp Pair) handler {
	return func(p *Processor, _ instruction) bool {
		p.Ram.Write(p.Pair(rp), p.A)
		return false
	}
}

// ldax loads A from the address held in rp (BC or DE).
func ldax(rp Pair) handler {
	return func(p *Processor, _ instruction) bool {
		p.A = p.Ram.Read(p.Pair(rp))
		return false
	}
}

func inx(rp Pair) handler {
	return func(p *Processor, _ instruction) bool {
		p.SetPair(rp, p.Pair(rp)+1)
		return false
	}
}

func dcx(rp Pair) handler {
	return func(p *Processor, _ instruction) bool {
		p.SetPair(rp, p.Pair(rp)-1)
		return false
	}
}

// inr increments r. C is never touched.
func inr(r Register) handler {
	return func(p *Processor, _ instruction) bool {
		res := p.Reg(r) + 1
		p.SetFlag(F_AUX_CARRY, res&0x0F == 0x00)
		p.zspCheck(res)
		p.SetReg(r, res)
		return false
	}
}

// dcr decrements r. C is never touched.
func dcr(r Register) handler {
	return func(p *Processor, _ instruction) bool {
		res := p.Reg(r) - 1
		p.SetFlag(F_AUX_CARRY, res&0x0F != 0x0F)
		p.zspCheck(res)
		p.SetReg(r, res)
		return false
	}
}

func mvi(r Register) handler {
	return func(p *Processor, in instruction) bool {
		p.SetReg(r, in.lo)
		return false
	}
}

func mov(dst, src Register) handler {
	return func(p *Processor, _ instruction) bool {
		p.SetReg(dst, p.Reg(src))
		return false
	}
}

// dad adds rp into HL and only changes C.
func dad(rp Pair) handler {
	return func(p *Processor, _ instruction) bool {
		res := uint32(p.Pair(PAIR_HL)) + uint32(p.Pair(rp))
		p.SetFlag(F_CARRY, res > 0xFFFF)
		p.SetPair(PAIR_HL, uint16(res))
		return false
	}
}

func rlc(p *Processor, _ instruction) bool {
	c := p.A >> 7
	p.SetFlag(F_CARRY, c != 0)
	p.A = (p.A << 1) | c
	return false
}

func rrc(p *Processor, _ instruction) bool {
	c := p.A & 0x01
	p.SetFlag(F_CARRY, c != 0)
	p.A = (p.A >> 1) | (c << 7)
	return false
}

func ral(p *Processor, _ instruction) bool {
	c := p.F & F_CARRY
	p.SetFlag(F_CARRY, p.A&0x80 != 0)
	p.A = (p.A << 1) | c
	return false
}

func rar(p *Processor, _ instruction) bool {
	c := p.F & F_CARRY
	p.SetFlag(F_CARRY, p.A&0x01 != 0)
	p.A = (p.A >> 1) | (c << 7)
	return false
}

// daa adjusts A into two BCD digits after an add.
func daa(p *Processor, _ instruction) bool {
	carry := p.Flag(F_CARRY)
	correction := uint8(0)
	lsb := p.A & 0x0F
	msb := p.A >> 4
	if p.Flag(F_AUX_CARRY) || lsb > 9 {
		correction += 0x06
	}
	if p.Flag(F_CARRY) || msb > 9 || (msb >= 9 && lsb > 9) {
		correction += 0x60
		carry = true
	}
	p.add(correction, 0)
	p.SetFlag(F_CARRY, carry)
	return false
}

func cma(p *Processor, _ instruction) bool {
	p.A = ^p.A
	return false
}

func stc(p *Processor, _ instruction) bool {
	p.SetFlag(F_CARRY, true)
	return false
}

func cmc(p *Processor, _ instruction) bool {
	p.SetFlag(F_CARRY, !p.Flag(F_CARRY))
	return false
}

func shld(p *Processor, in instruction) bool {
	memory.WriteAddr(p.Ram, in.imm16(), p.Pair(PAIR_HL))
	return false
}

func lhld(p *Processor, in instruction) bool {
	p.SetPair(PAIR_HL, memory.ReadAddr(p.Ram, in.imm16()))
	return false
}

func sta(p *Processor, in instruction) bool {
	p.Ram.Write(in.imm16(), p.A)
	return false
}

func lda(p *Processor, in instruction) bool {
	p.A = p.Ram.Read(in.imm16())
	return false
}

// aluReg applies op to A with register (or M) r.
func aluReg(op aluOp, r Register) handler {
	return func(p *Processor, _ instruction) bool {
		p.alu(op, p.Reg(r))
		return false
	}
}

// aluImm applies op to A with the immediate byte.
func aluImm(op aluOp) handler {
	return func(p *Processor, in instruction) bool {
		p.alu(op, in.lo)
		return false
	}
}

func jmp(c condition) handler {
	return func(p *Processor, in instruction) bool {
		if !p.check(c) {
			return false
		}
		p.PC = in.imm16()
		return true
	}
}

// call pushes the address of the next instruction (already in PC) and jumps.
func call(c condition) handler {
	return func(p *Processor, in instruction) bool {
		if !p.check(c) {
			return false
		}
		p.push(p.PC)
		p.PC = in.imm16()
		return true
	}
}

func ret(c condition) handler {
	return func(p *Processor, _ instruction) bool {
		if !p.check(c) {
			return false
		}
		p.PC = p.pop()
		return true
	}
}

func rst(n uint8) handler {
	return func(p *Processor, _ instruction) bool {
		p.push(p.PC)
		p.PC = uint16(n) << 3
		return true
	}
}

func push(rp Pair) handler {
	return func(p *Processor, _ instruction) bool {
		p.push(p.Pair(rp))
		return false
	}
}

func pop(rp Pair) handler {
	return func(p *Processor, _ instruction) bool {
		p.SetPair(rp, p.pop())
		return false
	}
}

// xthl exchanges HL with the top of the stack.
func xthl(p *Processor, _ instruction) bool {
	v := memory.ReadAddr(p.Ram, p.SP)
	memory.WriteAddr(p.Ram, p.SP, p.Pair(PAIR_HL))
	p.SetPair(PAIR_HL, v)
	return false
}

func xchg(p *Processor, _ instruction) bool {
	p.D, p.H = p.H, p.D
	p.E, p.L = p.L, p.E
	return false
}

func sphl(p *Processor, _ instruction) bool {
	p.SP = p.Pair(PAIR_HL)
	return false
}

func pchl(p *Processor, _ instruction) bool {
	p.PC = p.Pair(PAIR_HL)
	return true
}

func in(p *Processor, ins instruction) bool {
	p.A = 0x00
	if p.ports != nil {
		p.A = p.ports.In(ins.lo)
	}
	return false
}

func out(p *Processor, ins instruction) bool {
	if p.ports != nil {
		p.ports.Out(ins.lo, p.A)
	}
	return false
}

// ei sets the enable latch but interrupts aren't taken until after the next instruction.
func ei(p *Processor, _ instruction) bool {
	p.inte = true
	p.eiDelay = true
	return false
}

func di(p *Processor, _ instruction) bool {
	p.inte = false
	return false
}
