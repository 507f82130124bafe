package cpu

import (
	"strings"
)

// opcode is the static decode information and implementation for one opcode value.
// Mnemonics use Intel syntax with d8/d16/a16 marking operand bytes. A leading
// '*' marks an undocumented encoding.
type opcode struct {
	name   string  // Mnemonic.
	length int     // Total bytes including the opcode.
	cycles int     // Cycles when no conditional transfer happens.
	taken  int     // Cycles when a conditional transfer happens. 0 if unconditional.
	ext    bool    // Only executes on CPU_8080_UNDOCUMENTED, faults otherwise.
	exec   handler // Implementation.
}

// opcodes maps every opcode value to its behavior. Entries for the MOV and
// ALU blocks (0x40-0xBF) are regular and filled in by init.
var opcodes = [256]opcode{
	0x00: {"NOP", 1, 4, 0, false, nop},
	0x01: {"LXI B,d16", 3, 10, 0, false, lxi(PAIR_BC)},
	0x02: {"STAX B", 1, 7, 0, false, stax(PAIR_BC)},
	0x03: {"INX B", 1, 5, 0, false, inx(PAIR_BC)},
	0x04: {"INR B", 1, 5, 0, false, inr(REG_B)},
	0x05: {"DCR B", 1, 5, 0, false, dcr(REG_B)},
	0x06: {"MVI B,d8", 2, 7, 0, false, mvi(REG_B)},
	0x07: {"RLC", 1, 4, 0, false, rlc},
	0x08: {"*NOP", 1, 4, 0, false, nop},
	0x09: {"DAD B", 1, 10, 0, false, dad(PAIR_BC)},
	0x0A: {"LDAX B", 1, 7, 0, false, ldax(PAIR_BC)},
	0x0B: {"DCX B", 1, 5, 0, false, dcx(PAIR_BC)},
	0x0C: {"INR C", 1, 5, 0, false, inr(REG_C)},
	0x0D: {"DCR C", 1, 5, 0, false, dcr(REG_C)},
	0x0E: {"MVI C,d8", 2, 7, 0, false, mvi(REG_C)},
	0x0F: {"RRC", 1, 4, 0, false, rrc},

	0x10: {"*NOP", 1, 4, 0, false, nop},
	0x11: {"LXI D,d16", 3, 10, 0, false, lxi(PAIR_DE)},
	0x12: {"STAX D", 1, 7, 0, false, stax(PAIR_DE)},
	0x13: {"INX D", 1, 5, 0, false, inx(PAIR_DE)},
	0x14: {"INR D", 1, 5, 0, false, inr(REG_D)},
	0x15: {"DCR D", 1, 5, 0, false, dcr(REG_D)},
	0x16: {"MVI D,d8", 2, 7, 0, false, mvi(REG_D)},
	0x17: {"RAL", 1, 4, 0, false, ral},
	0x18: {"*NOP", 1, 4, 0, false, nop},
	0x19: {"DAD D", 1, 10, 0, false, dad(PAIR_DE)},
	0x1A: {"LDAX D", 1, 7, 0, false, ldax(PAIR_DE)},
	0x1B: {"DCX D", 1, 5, 0, false, dcx(PAIR_DE)},
	0x1C: {"INR E", 1, 5, 0, false, inr(REG_E)},
	0x1D: {"DCR E", 1, 5, 0, false, dcr(REG_E)},
	0x1E: {"MVI E,d8", 2, 7, 0, false, mvi(REG_E)},
	0x1F: {"RAR", 1, 4, 0, false, rar},

	0x20: {"*NOP", 1, 4, 0, false, nop},
	0x21: {"LXI H,d16", 3, 10, 0, false, lxi(PAIR_HL)},
	0x22: {"SHLD a16", 3, 16, 0, false, shld},
	0x23: {"INX H", 1, 5, 0, false, inx(PAIR_HL)},
	0x24: {"INR H", 1, 5, 0, false, inr(REG_H)},
	0x25: {"DCR H", 1, 5, 0, false, dcr(REG_H)},
	0x26: {"MVI H,d8", 2, 7, 0, false, mvi(REG_H)},
	0x27: {"DAA", 1, 4, 0, false, daa},
	0x28: {"*NOP", 1, 4, 0, false, nop},
	0x29: {"DAD H", 1, 10, 0, false, dad(PAIR_HL)},
	0x2A: {"LHLD a16", 3, 16, 0, false, lhld},
	0x2B: {"DCX H", 1, 5, 0, false, dcx(PAIR_HL)},
	0x2C: {"INR L", 1, 5, 0, false, inr(REG_L)},
	0x2D: {"DCR L", 1, 5, 0, false, dcr(REG_L)},
	0x2E: {"MVI L,d8", 2, 7, 0, false, mvi(REG_L)},
	0x2F: {"CMA", 1, 4, 0, false, cma},

	0x30: {"*NOP", 1, 4, 0, false, nop},
	0x31: {"LXI SP,d16", 3, 10, 0, false, lxi(PAIR_SP)},
	0x32: {"STA a16", 3, 13, 0, false, sta},
	0x33: {"INX SP", 1, 5, 0, false, inx(PAIR_SP)},
	0x34: {"INR M", 1, 10, 0, false, inr(REG_M)},
	0x35: {"DCR M", 1, 10, 0, false, dcr(REG_M)},
	0x36: {"MVI M,d8", 2, 10, 0, false, mvi(REG_M)},
	0x37: {"STC", 1, 4, 0, false, stc},
	0x38: {"*NOP", 1, 4, 0, false, nop},
	0x39: {"DAD SP", 1, 10, 0, false, dad(PAIR_SP)},
	0x3A: {"LDA a16", 3, 13, 0, false, lda},
	0x3B: {"DCX SP", 1, 5, 0, false, dcx(PAIR_SP)},
	0x3C: {"INR A", 1, 5, 0, false, inr(REG_A)},
	0x3D: {"DCR A", 1, 5, 0, false, dcr(REG_A)},
	0x3E: {"MVI A,d8", 2, 7, 0, false, mvi(REG_A)},
	0x3F: {"CMC", 1, 4, 0, false, cmc},

	// MOV M,M encodes HLT.
	0x76: {"HLT", 1, 7, 0, false, hlt},

	0xC0: {"RNZ", 1, 5, 11, false, ret(kCOND_NZ)},
	0xC1: {"POP B", 1, 10, 0, false, pop(PAIR_BC)},
	0xC2: {"JNZ a16", 3, 10, 10, false, jmp(kCOND_NZ)},
	0xC3: {"JMP a16", 3, 10, 0, false, jmp(kCOND_ALWAYS)},
	0xC4: {"CNZ a16", 3, 11, 17, false, call(kCOND_NZ)},
	0xC5: {"PUSH B", 1, 11, 0, false, push(PAIR_BC)},
	0xC6: {"ADI d8", 2, 7, 0, false, aluImm(kALU_ADD)},
	0xC7: {"RST 0", 1, 11, 0, false, rst(0)},
	0xC8: {"RZ", 1, 5, 11, false, ret(kCOND_Z)},
	0xC9: {"RET", 1, 10, 0, false, ret(kCOND_ALWAYS)},
	0xCA: {"JZ a16", 3, 10, 10, false, jmp(kCOND_Z)},
	0xCB: {"*JMP a16", 3, 10, 0, true, jmp(kCOND_ALWAYS)},
	0xCC: {"CZ a16", 3, 11, 17, false, call(kCOND_Z)},
	0xCD: {"CALL a16", 3, 17, 0, false, call(kCOND_ALWAYS)},
	0xCE: {"ACI d8", 2, 7, 0, false, aluImm(kALU_ADC)},
	0xCF: {"RST 1", 1, 11, 0, false, rst(1)},

	0xD0: {"RNC", 1, 5, 11, false, ret(kCOND_NC)},
	0xD1: {"POP D", 1, 10, 0, false, pop(PAIR_DE)},
	0xD2: {"JNC a16", 3, 10, 10, false, jmp(kCOND_NC)},
	0xD3: {"OUT d8", 2, 10, 0, false, out},
	0xD4: {"CNC a16", 3, 11, 17, false, call(kCOND_NC)},
	0xD5: {"PUSH D", 1, 11, 0, false, push(PAIR_DE)},
	0xD6: {"SUI d8", 2, 7, 0, false, aluImm(kALU_SUB)},
	0xD7: {"RST 2", 1, 11, 0, false, rst(2)},
	0xD8: {"RC", 1, 5, 11, false, ret(kCOND_C)},
	0xD9: {"*RET", 1, 10, 0, true, ret(kCOND_ALWAYS)},
	0xDA: {"JC a16", 3, 10, 10, false, jmp(kCOND_C)},
	0xDB: {"IN d8", 2, 10, 0, false, in},
	0xDC: {"CC a16", 3, 11, 17, false, call(kCOND_C)},
	0xDD: {"*CALL a16", 3, 17, 0, true, call(kCOND_ALWAYS)},
	0xDE: {"SBI d8", 2, 7, 0, false, aluImm(kALU_SBB)},
	0xDF: {"RST 3", 1, 11, 0, false, rst(3)},

	0xE0: {"RPO", 1, 5, 11, false, ret(kCOND_PO)},
	0xE1: {"POP H", 1, 10, 0, false, pop(PAIR_HL)},
	0xE2: {"JPO a16", 3, 10, 10, false, jmp(kCOND_PO)},
	0xE3: {"XTHL", 1, 18, 0, false, xthl},
	0xE4: {"CPO a16", 3, 11, 17, false, call(kCOND_PO)},
	0xE5: {"PUSH H", 1, 11, 0, false, push(PAIR_HL)},
	0xE6: {"ANI d8", 2, 7, 0, false, aluImm(kALU_ANA)},
	0xE7: {"RST 4", 1, 11, 0, false, rst(4)},
	0xE8: {"RPE", 1, 5, 11, false, ret(kCOND_PE)},
	0xE9: {"PCHL", 1, 5, 0, false, pchl},
	0xEA: {"JPE a16", 3, 10, 10, false, jmp(kCOND_PE)},
	0xEB: {"XCHG", 1, 4, 0, false, xchg},
	0xEC: {"CPE a16", 3, 11, 17, false, call(kCOND_PE)},
	0xED: {"*CALL a16", 3, 17, 0, true, call(kCOND_ALWAYS)},
	0xEE: {"XRI d8", 2, 7, 0, false, aluImm(kALU_XRA)},
	0xEF: {"RST 5", 1, 11, 0, false, rst(5)},

	0xF0: {"RP", 1, 5, 11, false, ret(kCOND_P)},
	0xF1: {"POP PSW", 1, 10, 0, false, pop(PAIR_PSW)},
	0xF2: {"JP a16", 3, 10, 10, false, jmp(kCOND_P)},
	0xF3: {"DI", 1, 4, 0, false, di},
	0xF4: {"CP a16", 3, 11, 17, false, call(kCOND_P)},
	0xF5: {"PUSH PSW", 1, 11, 0, false, push(PAIR_PSW)},
	0xF6: {"ORI d8", 2, 7, 0, false, aluImm(kALU_ORA)},
	0xF7: {"RST 6", 1, 11, 0, false, rst(6)},
	0xF8: {"RM", 1, 5, 11, false, ret(kCOND_M)},
	0xF9: {"SPHL", 1, 5, 0, false, sphl},
	0xFA: {"JM a16", 3, 10, 10, false, jmp(kCOND_M)},
	0xFB: {"EI", 1, 4, 0, false, ei},
	0xFC: {"CM a16", 3, 11, 17, false, call(kCOND_M)},
	0xFD: {"*CALL a16", 3, 17, 0, true, call(kCOND_ALWAYS)},
	0xFE: {"CPI d8", 2, 7, 0, false, aluImm(kALU_CMP)},
	0xFF: {"RST 7", 1, 11, 0, false, rst(7)},
}

var aluNames = [...]string{"ADD", "ADC", "SUB", "SBB", "ANA", "XRA", "ORA", "CMP"}

func init() {
	for op := 0x40; op < 0xC0; op++ {
		if op == 0x76 {
			continue
		}
		src := Register(op & 0x07)
		cycles := 4
		if src == REG_M {
			cycles = 7
		}
		if op < 0x80 {
			// MOV dst,src - 01dddsss
			dst := Register((op >> 3) & 0x07)
			cycles++
			if dst == REG_M || src == REG_M {
				cycles = 7
			}
			opcodes[op] = opcode{"MOV " + dst.String() + "," + src.String(), 1, cycles, 0, false, mov(dst, src)}
			continue
		}
		// ALU src - 10ooosss
		a := aluOp((op >> 3) & 0x07)
		opcodes[op] = opcode{aluNames[a] + " " + src.String(), 1, cycles, 0, false, aluReg(a, src)}
	}
}

// Info describes the static decode information for an opcode.
type Info struct {
	Mnemonic     string // Intel mnemonic with d8/d16/a16 placeholders for operands.
	Length       int    // Bytes including the opcode.
	Cycles       int    // Cycles when no conditional transfer happens.
	TakenCycles  int    // Cycles when a conditional transfer happens. 0 if unconditional.
	Undocumented bool   // Encoding isn't documented by Intel.
	Extension    bool   // Only executes on CPU_8080_UNDOCUMENTED.
}

// Decode returns the static decode information for op.
func Decode(op uint8) Info {
	o := &opcodes[op]
	return Info{
		Mnemonic:     strings.TrimPrefix(o.name, "*"),
		Length:       o.length,
		Cycles:       o.cycles,
		TakenCycles:  o.taken,
		Undocumented: strings.HasPrefix(o.name, "*"),
		Extension:    o.ext,
	}
}
