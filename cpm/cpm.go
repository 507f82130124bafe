// Package cpm provides just enough of a CP/M environment to run .COM
// test programs (such as the classic CPU exercisers) on a bare CPU.
//
// Memory is laid out as:
//
// 0x0000 HLT (warm boot ends the run)
// 0x0005 JMP BDOS
// 0x0100 the COM file (transient program area)
// 0xFF00 BDOS stub
//
// The stub implements console functions 0 (reset), 2 (char in E) and
// 9 ($ terminated string at DE) by writing bytes to ConsolePort. Any other
// function simply returns.
package cpm

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jmchacon/8080/cpu"
	"github.com/jmchacon/8080/handasm"
	portio "github.com/jmchacon/8080/io"
	"github.com/jmchacon/8080/memory"
)

const (
	WARM_BOOT   = uint16(0x0000)
	BDOS_ENTRY  = uint16(0x0005)
	TPA         = uint16(0x0100)
	BDOS        = uint16(0xFF00)
	ConsolePort = uint8(0x01)
)

// ErrTooLarge is returned for a COM file which would run into the BDOS stub.
var ErrTooLarge = errors.New("COM file overlaps the BDOS stub")

const bdosListing = `
FF00 79       MOV A,C
FF01 B7       ORA A
FF02 CA 00 00 JZ 0000   ; P_TERMCPM
FF05 FE 02    CPI 02
FF07 CA 10 FF JZ FF10
FF0A FE 09    CPI 09
FF0C CA 14 FF JZ FF14
FF0F C9       RET
FF10 7B       MOV A,E   ; C_WRITE
FF11 D3 01    OUT 01
FF13 C9       RET
FF14 1A       LDAX D    ; C_WRITESTRING
FF15 FE 24    CPI 24
FF17 C8       RZ
FF18 D3 01    OUT 01
FF1A 13       INX D
FF1B C3 14 FF JMP FF14
`

var bdos *handasm.Program

func init() {
	var err error
	bdos, err = handasm.Assemble(strings.NewReader(bdosListing))
	if err != nil {
		panic(fmt.Sprintf("can't assemble BDOS stub: %v", err))
	}
}

// Load writes the CP/M environment and com into r.
func Load(r memory.Bank, com []byte) error {
	if len(com) > int(BDOS-TPA) {
		return fmt.Errorf("%d bytes: %w", len(com), ErrTooLarge)
	}
	r.Write(WARM_BOOT, 0x76)  // HLT
	r.Write(BDOS_ENTRY, 0xC3) // JMP BDOS
	memory.WriteAddr(r, BDOS_ENTRY+1, BDOS)
	if err := bdos.Load(r); err != nil {
		return err
	}
	return memory.Load(r, TPA, com)
}

// image adapts a byte slice to memory.Bank.
type image []uint8

func (i image) Read(addr uint16) uint8 {
	return i[addr]
}

func (i image) Write(addr uint16, val uint8) {
	i[addr] = val
}

func (i image) PowerOn() {}

// Image returns a 64k memory image with com loaded as Load would.
func Image(com []byte) ([]byte, error) {
	out := make(image, memory.Size)
	if err := Load(out, com); err != nil {
		return nil, err
	}
	return out, nil
}

// Start points p at the program and pushes a return to WARM_BOOT so a
// program which finishes with RET halts.
func Start(p *cpu.Processor) {
	p.PC = TPA
	p.SP = BDOS
	p.SP -= 2
	memory.WriteAddr(p.Ram, p.SP, WARM_BOOT)
}

var _ = portio.Ports(&Console{})

// Console implements io.Ports and copies anything written to ConsolePort to
// a writer. Other ports read as 0x00 and discard writes.
type Console struct {
	w   io.Writer
	err error
}

// NewConsole returns a Console writing to w.
func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

// In implements the interface for io.Ports.
func (c *Console) In(port uint8) uint8 {
	return 0x00
}

// Out implements the interface for io.Ports.
func (c *Console) Out(port uint8, val uint8) {
	if port != ConsolePort || c.err != nil {
		return
	}
	_, c.err = c.w.Write([]byte{val})
}

// Err returns the first error encountered writing to the console.
func (c *Console) Err() error {
	return c.err
}
