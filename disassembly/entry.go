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

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/nestrace/hardware/cpu"
	"github.com/jetsetilly/nestrace/hardware/memory"
	"github.com/jetsetilly/nestrace/symbols"
)

// Entry is a disassembled instruction. The instruction's encoding is captured
// at creation time; an Entry is immutable thereafter and can be shared freely
// by pointer.
type Entry struct {
	defn *Definition

	// the address the instruction was decoded at
	addr uint16

	// the encoded instruction, including the opcode byte. length given by
	// defn.Bytes
	encoding [3]uint8
}

// FromMemory decodes the instruction at pc. Returns nil if the opcode at pc
// has no definition.
func FromMemory(pc uint16, mem memory.Reader) *Entry {
	defn := Lookup(mem.Read(pc))
	if defn == nil {
		return nil
	}

	e := &Entry{
		defn: defn,
		addr: pc,
	}
	for i := 0; i < defn.Bytes; i++ {
		e.encoding[i] = mem.Read(pc + uint16(i))
	}

	return e
}

// Definition returns the opcode definition for the entry.
func (e *Entry) Definition() *Definition {
	return e.defn
}

// Address returns the address the instruction was decoded at.
func (e *Entry) Address() uint16 {
	return e.addr
}

// ByteCode returns the encoded instruction bytes, formatted in the style of
// the trace column. eg. "$ad $00 $20".
func (e *Entry) ByteCode() string {
	s := strings.Builder{}
	for i := 0; i < e.defn.Bytes; i++ {
		if i > 0 {
			s.WriteString(" ")
		}
		s.WriteString(fmt.Sprintf("$%02x", e.encoding[i]))
	}
	return s.String()
}

// operand as an 8bit value. not meaningful for one-byte instructions.
func (e *Entry) operand8() uint8 {
	return e.encoding[1]
}

// operand as a 16bit value. not meaningful for instructions of less than
// three bytes.
func (e *Entry) operand16() uint16 {
	return uint16(e.encoding[1]) | uint16(e.encoding[2])<<8
}

// substitute label for address if a symbols table is available and has an
// entry for the address.
func lookupLabel(addr uint16, sym *symbols.Table, fallback string) string {
	if sym != nil {
		if l, ok := sym.Lookup(addr); ok {
			return l
		}
	}
	return fallback
}

// String returns the mnemonic and operand for the instruction. The sym
// argument may be nil, in which case operands are always rendered
// numerically.
func (e *Entry) String(sym *symbols.Table) string {
	s := strings.Builder{}
	s.WriteString(e.defn.Mnemonic)

	switch e.defn.AddressingMode {
	case Implied:
		// no operand

	case Accumulator:
		s.WriteString(" A")

	case Immediate:
		s.WriteString(fmt.Sprintf(" #$%02x", e.operand8()))

	case Relative:
		// branch target is relative to the address of the next instruction
		target := e.addr + uint16(e.defn.Bytes) + uint16(int8(e.operand8()))
		s.WriteString(" ")
		s.WriteString(lookupLabel(target, sym, fmt.Sprintf("$%04x", target)))

	case Absolute:
		s.WriteString(" ")
		s.WriteString(lookupLabel(e.operand16(), sym, fmt.Sprintf("$%04x", e.operand16())))

	case ZeroPage:
		s.WriteString(" ")
		s.WriteString(lookupLabel(uint16(e.operand8()), sym, fmt.Sprintf("$%02x", e.operand8())))

	case Indirect:
		s.WriteString(fmt.Sprintf(" ($%04x)", e.operand16()))

	case IndexedIndirect:
		s.WriteString(fmt.Sprintf(" ($%02x,X)", e.operand8()))

	case IndirectIndexed:
		s.WriteString(fmt.Sprintf(" ($%02x),Y", e.operand8()))

	case AbsoluteIndexedX:
		s.WriteString(" ")
		s.WriteString(lookupLabel(e.operand16(), sym, fmt.Sprintf("$%04x", e.operand16())))
		s.WriteString(",X")

	case AbsoluteIndexedY:
		s.WriteString(" ")
		s.WriteString(lookupLabel(e.operand16(), sym, fmt.Sprintf("$%04x", e.operand16())))
		s.WriteString(",Y")

	case ZeroPageIndexedX:
		s.WriteString(" ")
		s.WriteString(lookupLabel(uint16(e.operand8()), sym, fmt.Sprintf("$%02x", e.operand8())))
		s.WriteString(",X")

	case ZeroPageIndexedY:
		s.WriteString(" ")
		s.WriteString(lookupLabel(uint16(e.operand8()), sym, fmt.Sprintf("$%02x", e.operand8())))
		s.WriteString(",Y")
	}

	return s.String()
}

// EffectiveAddress returns the " @ $xxxx" annotation for instructions whose
// operand resolves through indexing or indirection. The annotation shows the
// address actually touched by the instruction, which the bare operand does
// not. Returns the empty string for addressing modes where the operand is the
// effective address.
//
// The state argument supplies the index registers in force when the
// instruction retired. The mem argument is needed for the indirect modes; the
// pointer bytes are read through it.
func (e *Entry) EffectiveAddress(state cpu.State, mem memory.Reader, sym *symbols.Table) string {
	var ea uint16

	switch e.defn.AddressingMode {
	default:
		return ""

	case ZeroPageIndexedX:
		// zero page indexing wraps within the zero page
		ea = uint16(e.operand8() + state.X)

	case ZeroPageIndexedY:
		ea = uint16(e.operand8() + state.Y)

	case AbsoluteIndexedX:
		ea = e.operand16() + uint16(state.X)

	case AbsoluteIndexedY:
		ea = e.operand16() + uint16(state.Y)

	case IndexedIndirect:
		ptr := e.operand8() + state.X
		ea = uint16(mem.Read(uint16(ptr))) | uint16(mem.Read(uint16(ptr+1)))<<8

	case IndirectIndexed:
		ptr := e.operand8()
		ea = uint16(mem.Read(uint16(ptr))) | uint16(mem.Read(uint16(ptr+1)))<<8
		ea += uint16(state.Y)

	case Indirect:
		// the 6502 does not carry into the high byte when reading the
		// second pointer byte. the JMP ($xxff) quirk
		ptr := e.operand16()
		hi := (ptr & 0xff00) | ((ptr + 1) & 0x00ff)
		ea = uint16(mem.Read(ptr)) | uint16(mem.Read(hi))<<8
	}

	return fmt.Sprintf(" @ %s", lookupLabel(ea, sym, fmt.Sprintf("$%04x", ea)))
}
