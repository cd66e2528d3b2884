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

package tracer

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/nestrace/disassembly"
	"github.com/jetsetilly/nestrace/hardware/cpu"
	"github.com/jetsetilly/nestrace/hardware/memory"
	"github.com/jetsetilly/nestrace/hardware/ppu"
	"github.com/jetsetilly/nestrace/symbols"
)

// column widths. the byte code and mnemonic columns are padded so the
// columns that follow stay aligned however long the instruction text is.
const (
	byteCodeWidth = 13
	mnemonicWidth = 32
	statusWidth   = 6
)

// flag letters for the status column, most significant bit first. this is
// the lettering traditionally used in NES trace logs; note that it is not
// the same ordering as the hardware's own B and unused bits.
var activeStatusLetters = [8]rune{'N', 'V', 'B', '-', 'D', 'I', 'Z', 'C'}
var inactiveStatusLetters = [8]rune{'n', 'v', 'b', '-', 'd', 'i', 'z', 'c'}

// writeStatus appends the status flag column to the row. the column is
// always the same width regardless of format and of how many flags are set.
func writeStatus(s *strings.Builder, format StatusFormat, status uint8) {
	s.WriteString(" P:")

	if format == StatusHexadecimal {
		s.WriteString(fmt.Sprintf("%02x", status))
		return
	}

	padding := statusWidth
	for i := 0; i < 8; i++ {
		if status&0x80 == 0x80 {
			s.WriteRune(activeStatusLetters[i])
			padding--
		} else if format == StatusText {
			s.WriteRune(inactiveStatusLetters[i])
			padding--
		}
		status <<= 1
	}

	if padding > 0 {
		s.WriteString(strings.Repeat(" ", padding))
	}
}

// writeRow appends one formatted trace row. Rows after the first are
// preceded by a newline; the final row of a session is never
// newline-terminated.
//
// This is a pure function of its arguments. The same arguments always
// produce the same text.
func writeRow(s *strings.Builder, opts Options, mem memory.Reader, sym *symbols.Table,
	cs cpu.State, ps ppu.State, e *disassembly.Entry, firstLine bool) {
	if !firstLine {
		s.WriteString("\n")
	}

	s.WriteString(fmt.Sprintf("%04x  ", cs.PC))

	if opts.ShowByteCode {
		bc := e.ByteCode()
		pad := byteCodeWidth - len(bc)
		if pad < 0 {
			pad = 0
		}
		s.WriteString(bc)
		s.WriteString(strings.Repeat(" ", pad))
	}

	if opts.IndentCode {
		// depth of the stack as a proxy for call depth
		s.WriteString(strings.Repeat(" ", int(0xff-cs.SP)))
	}

	var lookup *symbols.Table
	if opts.UseLabels {
		lookup = sym
	}

	code := e.String(lookup) + e.EffectiveAddress(cs, mem, lookup)
	if pad := mnemonicWidth - len(code); pad > 0 {
		code += strings.Repeat(" ", pad)
	}
	s.WriteString(code)

	if opts.ShowRegisters {
		s.WriteString(fmt.Sprintf(" A:%02x X:%02x Y:%02x", cs.A, cs.X, cs.Y))
		writeStatus(s, opts.StatusFormat, cs.PS)
		s.WriteString(fmt.Sprintf(" SP:%02x", cs.SP))
	}

	if opts.ShowPPUCycles {
		s.WriteString(fmt.Sprintf(" CYC:%3d", ps.Cycle))
	}

	if opts.ShowPPUScanline {
		s.WriteString(fmt.Sprintf(" SL:%3d", ps.Scanline))
	}

	if opts.ShowPPUFrames {
		s.WriteString(fmt.Sprintf(" FC:%d", ps.Frame))
	}

	if opts.ShowCPUCycles {
		s.WriteString(fmt.Sprintf(" CPU Cycle:%d", cs.Cycles))
	}
}
