// Package disassemble implements a disassembler for 8080 opcodes
package disassemble

import (
	"fmt"
	"strings"

	"github.com/jmchacon/8080/cpu"
	"github.com/jmchacon/8080/memory"
)

// Step will take the given PC value and disassemble the instruction at that location
// returning a string for the disassembly and the bytes forward the PC should move to get to
// the next instruction. This does not interpret the instructions so LDA, JMP, LDA in memory
// will disassemble as that sequence and not follow the JMP.
//
// Output is of the form:
//
// PPPP OP A1 A2 MNEMONIC
//
// with immediate and address operands rendered as $XX and $XXXX. Undocumented
// encodings have their mnemonic prefixed with '*'.
func Step(pc uint16, r memory.Bank) (string, int) {
	o := r.Read(pc)
	info := cpu.Decode(o)

	raw := fmt.Sprintf("%.2X", o)
	op := info.Mnemonic
	switch info.Length {
	case 2:
		pc1 := r.Read(pc + 1)
		raw += fmt.Sprintf(" %.2X", pc1)
		op = strings.Replace(op, "d8", fmt.Sprintf("$%.2X", pc1), 1)
	case 3:
		pc1 := r.Read(pc + 1)
		pc2 := r.Read(pc + 2)
		raw += fmt.Sprintf(" %.2X %.2X", pc1, pc2)
		arg := fmt.Sprintf("$%.2X%.2X", pc2, pc1)
		op = strings.Replace(op, "d16", arg, 1)
		op = strings.Replace(op, "a16", arg, 1)
	}
	if info.Undocumented {
		op = "*" + op
	}
	return fmt.Sprintf("%.4X %-8s %s", pc, raw, op), info.Length
}
