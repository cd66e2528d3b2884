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

// Package disassembly decodes 6502 machine code into the Entry type consumed
// by the tracer.
//
// An Entry is immutable once created. The intention is that the emulation
// keeps a cache of entries, one per decoded address, and hands the same entry
// to the tracer every time the instruction at that address retires. The
// tracer's history ring stores the pointer it is given; an entry stays alive
// for as long as it is reachable from either the emulation's cache or the
// ring, which is exactly the lifetime required.
//
// Decoding covers the official instruction set and the stable unofficial NOP
// opcodes. Opcodes with no definition decode to nil which the tracer treats
// as "nothing to record".
package disassembly
