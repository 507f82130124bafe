// Package cpu defines the 8080 architecture and provides
// the methods needed to run the CPU and interface with it
// for emulation.
package cpu

import (
	"fmt"

	"github.com/jmchacon/8080/io"
	"github.com/jmchacon/8080/irq"
	"github.com/jmchacon/8080/memory"
)

var _ = irq.Receiver(&Processor{})

// CPUType is an enumeration of the valid CPU types.
type CPUType int

const (
	CPU_UNIMPLMENTED      CPUType = iota // Start of valid cpu enumerations.
	CPU_8080                             // Documented 8080 instruction set. The undocumented JMP/RET/CALL aliases fault.
	CPU_8080_UNDOCUMENTED                // 8080 where the undocumented JMP/RET/CALL aliases execute as they do on silicon.
	CPU_MAX                              // End of CPU enumerations.
)

// Status is an enumeration of the states the CPU can be in between steps.
type Status int

const (
	STATUS_UNIMPLEMENTED Status = iota // Start of valid status enumerations.
	STATUS_RUNNING                     // Fetching and executing instructions.
	STATUS_HALTED                      // Stopped by HLT. Only an interrupt restarts it.
	STATUS_FAULTED                     // Stopped on an opcode without semantics for this CPU type.
	STATUS_MAX                         // End of status enumerations.
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case STATUS_RUNNING:
		return "Running"
	case STATUS_HALTED:
		return "Halted"
	case STATUS_FAULTED:
		return "Faulted"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

const (
	RESET_VECTOR = uint16(0x0000)

	kINTERRUPT_CYCLES = 11 // Same cost as the RST the interrupting device supplies.
)

type Processor struct {
	A       uint8       // Accumulator register
	B       uint8       // B register (high byte of BC)
	C       uint8       // C register (low byte of BC)
	D       uint8       // D register (high byte of DE)
	E       uint8       // E register (low byte of DE)
	H       uint8       // H register (high byte of HL)
	L       uint8       // L register (low byte of HL)
	F       uint8       // Flags register
	SP      uint16      // Stack pointer
	PC      uint16      // Program counter
	CPUType CPUType     // Must be between UNIMPLEMENTED and MAX from above.
	Ram     memory.Bank // Memory the CPU fetches from and stores to.
	ports   io.Ports    // I/O space for IN/OUT. May be nil.
	irq     irq.Sender  // Interrupt line. May be nil.
	inte    bool        // Interrupt enable latch (EI/DI).
	eiDelay bool        // Set by EI so the following instruction runs before interrupts are taken.
	status  Status      // Must be between UNIMPLEMENTED and MAX from above.
	stopErr error       // Error returned on each Step while halted or faulted.
	clocks  uint64      // Total cycles executed since power on.
}

// ChipDef defines the configuration for a CPU.
type ChipDef struct {
	// Cpu is the variant to emulate.
	Cpu CPUType

	// Ram is the memory the CPU is attached to. It's powered on during Init
	// so programs must be loaded after.
	Ram memory.Bank

	// Ports is the optional I/O space used by IN/OUT. If nil IN reads 0x00
	// and OUT is discarded.
	Ports io.Ports

	// Registers optionally seeds the register file after power on.
	Registers *Registers
}

// A few custom error types to distinguish why the CPU stopped

// UnimplementedOpcode represents an opcode with no semantics for the current CPU type.
type UnimplementedOpcode struct {
	Opcode uint8
	Addr   uint16
}

// Error implements the interface for error types.
func (e UnimplementedOpcode) Error() string {
	return fmt.Sprintf("0x%.2X at 0x%.4X is an unimplemented opcode", e.Opcode, e.Addr)
}

// InvalidCPUState represents an invalid CPU state in the emulator.
type InvalidCPUState struct {
	Reason string
}

// Error implements the interface for error types.
func (e InvalidCPUState) Error() string {
	return fmt.Sprintf("invalid CPU state: %s", e.Reason)
}

// HaltOpcode represents an opcode which halts the CPU.
type HaltOpcode struct {
	Opcode uint8
	Addr   uint16
}

// Error implements the interface for error types.
func (e HaltOpcode) Error() string {
	return fmt.Sprintf("HALT(0x%.2X) executed at 0x%.4X", e.Opcode, e.Addr)
}

// Init will create a new CPU of the type requested and return it in powered on state.
// The memory passed in will also be powered on.
func Init(def *ChipDef) (*Processor, error) {
	if def == nil {
		return nil, InvalidCPUState{"nil ChipDef"}
	}
	if def.Cpu <= CPU_UNIMPLMENTED || def.Cpu >= CPU_MAX {
		return nil, InvalidCPUState{fmt.Sprintf("CPU type %d is invalid", def.Cpu)}
	}
	if def.Ram == nil {
		return nil, InvalidCPUState{"nil Ram"}
	}
	p := &Processor{
		CPUType: def.Cpu,
		Ram:     def.Ram,
		ports:   def.Ports,
	}
	p.Ram.PowerOn()
	p.PowerOn()
	if def.Registers != nil {
		p.SetRegisters(*def.Registers)
	}
	return p, nil
}

// PowerOn will reset the CPU to specific power on state. Registers and the stack
// pointer are zero and flags only have the always set bit. Then it performs a Reset.
func (p *Processor) PowerOn() {
	p.A = 0
	p.B = 0
	p.C = 0
	p.D = 0
	p.E = 0
	p.H = 0
	p.L = 0
	p.SP = 0
	// This bit is always set.
	p.F = F_S1
	p.clocks = 0
	p.Reset()
}

// Reset emulates the RESET pin. The PC goes to the reset vector, interrupts are
// disabled and a halted or faulted CPU runs again. No other registers are touched.
func (p *Processor) Reset() {
	p.PC = RESET_VECTOR
	p.inte = false
	p.eiDelay = false
	p.status = STATUS_RUNNING
	p.stopErr = nil
}

// Install implements the interface for irq.Receiver.
func (p *Processor) Install(s irq.Sender) {
	p.irq = s
}

// Status returns the current execution state.
func (p *Processor) Status() Status {
	return p.status
}

// InterruptsEnabled returns the state of the EI/DI latch.
func (p *Processor) InterruptsEnabled() bool {
	return p.inte
}

// Clocks returns the total number of cycles executed since power on.
func (p *Processor) Clocks() uint64 {
	return p.clocks
}

// Step executes exactly one instruction (or acknowledges one interrupt) and returns
// the number of cycles it took.
//
// A HLT returns its cycles along with a HaltOpcode error. Once halted or faulted
// every further Step returns 0 cycles and the same error without touching any state,
// unless an enabled interrupt wakes a halted CPU.
func (p *Processor) Step() (int, error) {
	switch p.status {
	case STATUS_RUNNING:
	case STATUS_HALTED:
		if !p.interruptPending() {
			return 0, p.stopErr
		}
	case STATUS_FAULTED:
		return 0, p.stopErr
	default:
		return 0, InvalidCPUState{fmt.Sprintf("status is invalid: %d", p.status)}
	}

	if p.interruptPending() {
		return p.runInterrupt(), nil
	}
	p.eiDelay = false

	addr := p.PC
	op := p.Ram.Read(addr)
	o := &opcodes[op]
	if o.ext && p.CPUType != CPU_8080_UNDOCUMENTED {
		p.status = STATUS_FAULTED
		p.stopErr = UnimplementedOpcode{Opcode: op, Addr: addr}
		return 0, p.stopErr
	}

	in := instruction{op: op, addr: addr}
	if o.length > 1 {
		in.lo = p.Ram.Read(addr + 1)
	}
	if o.length > 2 {
		in.hi = p.Ram.Read(addr + 2)
	}
	// Advance first. Anything which transfers control overwrites this.
	p.PC = addr + uint16(o.length)

	cycles := o.cycles
	if o.exec(p, in) && o.taken != 0 {
		cycles = o.taken
	}
	p.clocks += uint64(cycles)

	if p.status == STATUS_HALTED {
		p.stopErr = HaltOpcode{Opcode: op, Addr: addr}
		return cycles, p.stopErr
	}
	return cycles, nil
}

// interruptPending is true if an interrupt should be acknowledged before the next fetch.
func (p *Processor) interruptPending() bool {
	return p.irq != nil && p.inte && !p.eiDelay && p.irq.Raised()
}

// runInterrupt acknowledges the interrupt by executing the RST the sender supplies.
// Acknowledge also clears the enable latch so handlers must EI again.
func (p *Processor) runInterrupt() int {
	p.inte = false
	p.status = STATUS_RUNNING
	p.stopErr = nil
	p.push(p.PC)
	p.PC = uint16(p.irq.Vector()&0x07) << 3
	p.clocks += kINTERRUPT_CYCLES
	return kINTERRUPT_CYCLES
}

// Debug returns a single line summary of the register file.
func (p *Processor) Debug() string {
	return fmt.Sprintf("PC: %.4X SP: %.4X A: %.2X F: %.2X BC: %.4X DE: %.4X HL: %.4X %s", p.PC, p.SP, p.A, p.F, p.Pair(PAIR_BC), p.Pair(PAIR_DE), p.Pair(PAIR_HL), FlagString(p.F))
}
