// This file is part of Nestrace.
//
// Nestrace is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Nestrace is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Nestrace.  If not, see <https://www.gnu.org/licenses/>.

package disassembly

import "fmt"

// AddressingMode describes how the instruction's operand is to be
// interpreted.
type AddressingMode int

// List of supported addressing modes.
const (
	Implied AddressingMode = iota
	Accumulator
	Immediate
	Relative // relative addressing is used for branch instructions

	Absolute // abs
	ZeroPage // zpg
	Indirect // (ind)

	IndexedIndirect // (zpg,X)
	IndirectIndexed // (zpg),Y

	AbsoluteIndexedX // abs,X
	AbsoluteIndexedY // abs,Y

	ZeroPageIndexedX // zpg,X
	ZeroPageIndexedY // zpg,Y
)

// Definition defines one opcode in the instruction set.
type Definition struct {
	OpCode         uint8
	Mnemonic       string
	Bytes          int
	Cycles         int
	AddressingMode AddressingMode
}

// String returns a single instruction definition as a string.
func (defn Definition) String() string {
	if defn.Mnemonic == "" {
		return "undecoded instruction"
	}
	return fmt.Sprintf("%02x %s +%dbytes (%d cycles) [mode=%d]", defn.OpCode, defn.Mnemonic, defn.Bytes, defn.Cycles, defn.AddressingMode)
}

// IsBranch returns true if instruction is a branch instruction.
func (defn Definition) IsBranch() bool {
	return defn.AddressingMode == Relative
}

// definitions is indexed by opcode. a nil entry is an opcode we do not
// decode.
var definitions [256]*Definition

// Lookup the definition for an opcode. Returns nil for opcodes with no
// definition.
func Lookup(opcode uint8) *Definition {
	return definitions[opcode]
}

func init() {
	defns := []Definition{
		// load/store
		{0xa9, "LDA", 2, 2, Immediate}, {0xa5, "LDA", 2, 3, ZeroPage}, {0xb5, "LDA", 2, 4, ZeroPageIndexedX},
		{0xad, "LDA", 3, 4, Absolute}, {0xbd, "LDA", 3, 4, AbsoluteIndexedX}, {0xb9, "LDA", 3, 4, AbsoluteIndexedY},
		{0xa1, "LDA", 2, 6, IndexedIndirect}, {0xb1, "LDA", 2, 5, IndirectIndexed},

		{0xa2, "LDX", 2, 2, Immediate}, {0xa6, "LDX", 2, 3, ZeroPage}, {0xb6, "LDX", 2, 4, ZeroPageIndexedY},
		{0xae, "LDX", 3, 4, Absolute}, {0xbe, "LDX", 3, 4, AbsoluteIndexedY},

		{0xa0, "LDY", 2, 2, Immediate}, {0xa4, "LDY", 2, 3, ZeroPage}, {0xb4, "LDY", 2, 4, ZeroPageIndexedX},
		{0xac, "LDY", 3, 4, Absolute}, {0xbc, "LDY", 3, 4, AbsoluteIndexedX},

		{0x85, "STA", 2, 3, ZeroPage}, {0x95, "STA", 2, 4, ZeroPageIndexedX}, {0x8d, "STA", 3, 4, Absolute},
		{0x9d, "STA", 3, 5, AbsoluteIndexedX}, {0x99, "STA", 3, 5, AbsoluteIndexedY},
		{0x81, "STA", 2, 6, IndexedIndirect}, {0x91, "STA", 2, 6, IndirectIndexed},

		{0x86, "STX", 2, 3, ZeroPage}, {0x96, "STX", 2, 4, ZeroPageIndexedY}, {0x8e, "STX", 3, 4, Absolute},
		{0x84, "STY", 2, 3, ZeroPage}, {0x94, "STY", 2, 4, ZeroPageIndexedX}, {0x8c, "STY", 3, 4, Absolute},

		// arithmetic
		{0x69, "ADC", 2, 2, Immediate}, {0x65, "ADC", 2, 3, ZeroPage}, {0x75, "ADC", 2, 4, ZeroPageIndexedX},
		{0x6d, "ADC", 3, 4, Absolute}, {0x7d, "ADC", 3, 4, AbsoluteIndexedX}, {0x79, "ADC", 3, 4, AbsoluteIndexedY},
		{0x61, "ADC", 2, 6, IndexedIndirect}, {0x71, "ADC", 2, 5, IndirectIndexed},

		{0xe9, "SBC", 2, 2, Immediate}, {0xe5, "SBC", 2, 3, ZeroPage}, {0xf5, "SBC", 2, 4, ZeroPageIndexedX},
		{0xed, "SBC", 3, 4, Absolute}, {0xfd, "SBC", 3, 4, AbsoluteIndexedX}, {0xf9, "SBC", 3, 4, AbsoluteIndexedY},
		{0xe1, "SBC", 2, 6, IndexedIndirect}, {0xf1, "SBC", 2, 5, IndirectIndexed},

		// logical
		{0x29, "AND", 2, 2, Immediate}, {0x25, "AND", 2, 3, ZeroPage}, {0x35, "AND", 2, 4, ZeroPageIndexedX},
		{0x2d, "AND", 3, 4, Absolute}, {0x3d, "AND", 3, 4, AbsoluteIndexedX}, {0x39, "AND", 3, 4, AbsoluteIndexedY},
		{0x21, "AND", 2, 6, IndexedIndirect}, {0x31, "AND", 2, 5, IndirectIndexed},

		{0x09, "ORA", 2, 2, Immediate}, {0x05, "ORA", 2, 3, ZeroPage}, {0x15, "ORA", 2, 4, ZeroPageIndexedX},
		{0x0d, "ORA", 3, 4, Absolute}, {0x1d, "ORA", 3, 4, AbsoluteIndexedX}, {0x19, "ORA", 3, 4, AbsoluteIndexedY},
		{0x01, "ORA", 2, 6, IndexedIndirect}, {0x11, "ORA", 2, 5, IndirectIndexed},

		{0x49, "EOR", 2, 2, Immediate}, {0x45, "EOR", 2, 3, ZeroPage}, {0x55, "EOR", 2, 4, ZeroPageIndexedX},
		{0x4d, "EOR", 3, 4, Absolute}, {0x5d, "EOR", 3, 4, AbsoluteIndexedX}, {0x59, "EOR", 3, 4, AbsoluteIndexedY},
		{0x41, "EOR", 2, 6, IndexedIndirect}, {0x51, "EOR", 2, 5, IndirectIndexed},

		// shifts and rotates
		{0x0a, "ASL", 1, 2, Accumulator}, {0x06, "ASL", 2, 5, ZeroPage}, {0x16, "ASL", 2, 6, ZeroPageIndexedX},
		{0x0e, "ASL", 3, 6, Absolute}, {0x1e, "ASL", 3, 7, AbsoluteIndexedX},

		{0x4a, "LSR", 1, 2, Accumulator}, {0x46, "LSR", 2, 5, ZeroPage}, {0x56, "LSR", 2, 6, ZeroPageIndexedX},
		{0x4e, "LSR", 3, 6, Absolute}, {0x5e, "LSR", 3, 7, AbsoluteIndexedX},

		{0x2a, "ROL", 1, 2, Accumulator}, {0x26, "ROL", 2, 5, ZeroPage}, {0x36, "ROL", 2, 6, ZeroPageIndexedX},
		{0x2e, "ROL", 3, 6, Absolute}, {0x3e, "ROL", 3, 7, AbsoluteIndexedX},

		{0x6a, "ROR", 1, 2, Accumulator}, {0x66, "ROR", 2, 5, ZeroPage}, {0x76, "ROR", 2, 6, ZeroPageIndexedX},
		{0x6e, "ROR", 3, 6, Absolute}, {0x7e, "ROR", 3, 7, AbsoluteIndexedX},

		// comparisons
		{0xc9, "CMP", 2, 2, Immediate}, {0xc5, "CMP", 2, 3, ZeroPage}, {0xd5, "CMP", 2, 4, ZeroPageIndexedX},
		{0xcd, "CMP", 3, 4, Absolute}, {0xdd, "CMP", 3, 4, AbsoluteIndexedX}, {0xd9, "CMP", 3, 4, AbsoluteIndexedY},
		{0xc1, "CMP", 2, 6, IndexedIndirect}, {0xd1, "CMP", 2, 5, IndirectIndexed},

		{0xe0, "CPX", 2, 2, Immediate}, {0xe4, "CPX", 2, 3, ZeroPage}, {0xec, "CPX", 3, 4, Absolute},
		{0xc0, "CPY", 2, 2, Immediate}, {0xc4, "CPY", 2, 3, ZeroPage}, {0xcc, "CPY", 3, 4, Absolute},

		// increment/decrement
		{0xe6, "INC", 2, 5, ZeroPage}, {0xf6, "INC", 2, 6, ZeroPageIndexedX},
		{0xee, "INC", 3, 6, Absolute}, {0xfe, "INC", 3, 7, AbsoluteIndexedX},
		{0xc6, "DEC", 2, 5, ZeroPage}, {0xd6, "DEC", 2, 6, ZeroPageIndexedX},
		{0xce, "DEC", 3, 6, Absolute}, {0xde, "DEC", 3, 7, AbsoluteIndexedX},
		{0xe8, "INX", 1, 2, Implied}, {0xca, "DEX", 1, 2, Implied},
		{0xc8, "INY", 1, 2, Implied}, {0x88, "DEY", 1, 2, Implied},

		// register transfers
		{0xaa, "TAX", 1, 2, Implied}, {0x8a, "TXA", 1, 2, Implied},
		{0xa8, "TAY", 1, 2, Implied}, {0x98, "TYA", 1, 2, Implied},
		{0xba, "TSX", 1, 2, Implied}, {0x9a, "TXS", 1, 2, Implied},

		// stack
		{0x48, "PHA", 1, 3, Implied}, {0x68, "PLA", 1, 4, Implied},
		{0x08, "PHP", 1, 3, Implied}, {0x28, "PLP", 1, 4, Implied},

		// flags
		{0x18, "CLC", 1, 2, Implied}, {0x38, "SEC", 1, 2, Implied},
		{0x58, "CLI", 1, 2, Implied}, {0x78, "SEI", 1, 2, Implied},
		{0xb8, "CLV", 1, 2, Implied}, {0xd8, "CLD", 1, 2, Implied},
		{0xf8, "SED", 1, 2, Implied},

		// flow control
		{0x4c, "JMP", 3, 3, Absolute}, {0x6c, "JMP", 3, 5, Indirect},
		{0x20, "JSR", 3, 6, Absolute}, {0x60, "RTS", 1, 6, Implied},
		{0x40, "RTI", 1, 6, Implied},

		// branches
		{0x90, "BCC", 2, 2, Relative}, {0xb0, "BCS", 2, 2, Relative},
		{0xd0, "BNE", 2, 2, Relative}, {0xf0, "BEQ", 2, 2, Relative},
		{0x10, "BPL", 2, 2, Relative}, {0x30, "BMI", 2, 2, Relative},
		{0x50, "BVC", 2, 2, Relative}, {0x70, "BVS", 2, 2, Relative},

		// miscellaneous
		{0x24, "BIT", 2, 3, ZeroPage}, {0x2c, "BIT", 3, 4, Absolute},
		{0xea, "NOP", 1, 2, Implied}, {0x00, "BRK", 1, 7, Implied},

		// unofficial NOPs. these are stable and common enough in real
		// programs that refusing to decode them is more trouble than it is
		// worth
		{0x1a, "NOP", 1, 2, Implied}, {0x3a, "NOP", 1, 2, Implied},
		{0x5a, "NOP", 1, 2, Implied}, {0x7a, "NOP", 1, 2, Implied},
		{0xda, "NOP", 1, 2, Implied}, {0xfa, "NOP", 1, 2, Implied},
		{0x80, "NOP", 2, 2, Immediate}, {0x82, "NOP", 2, 2, Immediate},
		{0x89, "NOP", 2, 2, Immediate}, {0xc2, "NOP", 2, 2, Immediate},
		{0xe2, "NOP", 2, 2, Immediate},
		{0x04, "NOP", 2, 3, ZeroPage}, {0x44, "NOP", 2, 3, ZeroPage}, {0x64, "NOP", 2, 3, ZeroPage},
		{0x14, "NOP", 2, 4, ZeroPageIndexedX}, {0x34, "NOP", 2, 4, ZeroPageIndexedX},
		{0x54, "NOP", 2, 4, ZeroPageIndexedX}, {0x74, "NOP", 2, 4, ZeroPageIndexedX},
		{0xd4, "NOP", 2, 4, ZeroPageIndexedX}, {0xf4, "NOP", 2, 4, ZeroPageIndexedX},
		{0x0c, "NOP", 3, 4, Absolute},
		{0x1c, "NOP", 3, 4, AbsoluteIndexedX}, {0x3c, "NOP", 3, 4, AbsoluteIndexedX},
		{0x5c, "NOP", 3, 4, AbsoluteIndexedX}, {0x7c, "NOP", 3, 4, AbsoluteIndexedX},
		{0xdc, "NOP", 3, 4, AbsoluteIndexedX}, {0xfc, "NOP", 3, 4, AbsoluteIndexedX},
	}

	for i := range defns {
		definitions[defns[i].OpCode] = &defns[i]
	}
}
